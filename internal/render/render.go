package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/ppiankov/tjporte/internal/decision"
)

// RulingTimeLayout renders DD/MM/YYYY às HH:MM.
const RulingTimeLayout = "02/01/2006 às 15:04"

// PermitRequest is the data echoed back on a successful request.
type PermitRequest struct {
	ProcessID     string
	Attorney      string
	Client        string
	Passport      string // as typed, separators included
	Justification string
}

// PermitReceipt is the public confirmation of a registered request.
func PermitReceipt(r PermitRequest) string {
	return fmt.Sprintf(
		"✅ **SOLICITAÇÃO REGISTRADA COM SUCESSO!**\n\n"+
			"**📋 Protocolo:** `%s`\n"+
			"**👨‍💼 Advogado:** %s\n"+
			"**👤 Cliente:** %s\n"+
			"**🆔 Passaporte:** %s\n"+
			"**📝 Motivo:** %s\n\n"+
			"⏳ **Status:** Em análise pelo Tribunal",
		r.ProcessID, r.Attorney, r.Client, r.Passport, r.Justification)
}

// ReviewChecklist is the public document checklist a judge confirms before ruling.
func ReviewChecklist(processID, judge, reasoning string) string {
	return fmt.Sprintf(
		"⚖️ **CONFIRMAÇÃO DE ANÁLISE DOCUMENTAL**\n\n"+
			"**Processo:** %s\n"+
			"**Juiz Relator:** %s\n\n"+
			"🔍 **VERIFIQUE OS DOCUMENTOS ANEXOS:**\n"+
			"📋 **1. LAUDO PSICOLÓGICO** - Hospital da Cidade\n"+
			"   → Status: [APTIDÃO/INAPTIDÃO] ✅\n"+
			"   → Data do exame: [CONFIRMAR] ✅\n\n"+
			"📋 **2. ANTECEDENTES CRIMINAIS** - Polícia Civil\n"+
			"   → Status: [NADA CONSTA/COM RESTRIÇÕES] ✅\n"+
			"   → Data da emissão: [CONFIRMAR] ✅\n\n"+
			"📋 **3. DOCUMENTAÇÃO PESSOAL**\n"+
			"   → Passaporte: [VÁLIDO] ✅\n"+
			"   → Comprovantes: [CONFERIDOS] ✅\n\n"+
			"📝 **FUNDAMENTAÇÃO:**\n"+
			"_%s_\n\n"+
			"**Selecione a decisão abaixo:** ⬇️",
		processID, judge, reasoning)
}

// Ruling is the public record of an approve or deny decision.
func Ruling(r decision.Ruling) string {
	return fmt.Sprintf(
		"⚖️ **DECISÃO JUDICIAL REGISTRADA**\n\n"+
			"**Processo:** %s\n"+
			"**Decisão:** %s\n"+
			"**Juiz:** %s\n"+
			"**Data e Hora:** %s\n\n"+
			"✅ **DOCUMENTOS VERIFICADOS:**\n"+
			"• Laudo psicológico: ✅ VÁLIDO\n"+
			"• Antecedentes criminais: ✅ CONFERIDO\n"+
			"• Documentação pessoal: ✅ REGULAR\n\n"+
			"📝 **FUNDAMENTAÇÃO:**\n"+
			"_%s_\n\n"+
			"🔏 **Registro oficial:** %s",
		r.ProcessID, r.Outcome.Label(), r.Judge, FormatRulingTime(r.DecidedAt),
		r.Justification, r.Registration())
}

// FormatRulingTime renders t the way rulings show it.
func FormatRulingTime(t time.Time) string {
	return t.Format(RulingTimeLayout)
}

// Postponed announces that a process went back to the queue.
func Postponed(processID string) string {
	return fmt.Sprintf(
		"⏸️ **ANÁLISE ADIADA**\n**Processo:** %s\n"+
			"📋 Retornará para análise posterior.",
		processID)
}

// PassportNonNumeric rejects a passport with non-digit characters.
func PassportNonNumeric() string {
	return "❌ **PASSAPORTE INVÁLIDO!**\nDeve conter apenas números (0-9)"
}

// PassportTooLong rejects a passport with too many digits.
func PassportTooLong(max int) string {
	return fmt.Sprintf("❌ **PASSAPORTE INVÁLIDO!**\nMáximo %d dígitos permitidos", max)
}

// SelfRequestBlocked tells a judge to go through an attorney.
func SelfRequestBlocked() string {
	return "❌ **SOLICITAÇÃO BLOQUEADA!**\n" +
		"Juízes não podem solicitar **próprio porte** diretamente.\n" +
		"📋 **Solução:** Peça a um **advogado** para solicitar seu porte."
}

// RequestDenied is the private reply when the caller cannot request permits.
func RequestDenied(allowed []string) string {
	return fmt.Sprintf("❌ **ACESSO NEGADO!**\nApenas **%s** podem solicitar porte.", JoinNames(allowed))
}

// ReviewDenied is the private reply when a non-judge tries to review.
func ReviewDenied(judge string) string {
	return fmt.Sprintf("❌ **ACESSO RESTRITO!**\nApenas **%s** podem analisar processos.", judge)
}

// Permissions lists the caller's recognized roles.
func Permissions(held []string) string {
	var b strings.Builder
	b.WriteString("✅ **SUAS PERMISSÕES:**\n")
	for i, r := range held {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("• ")
		b.WriteString(r)
	}
	return b.String()
}

// NoPermissions reports that none of the caller's roles are recognized.
func NoPermissions(allowed []string) string {
	return "❌ **VOCÊ NÃO TEM PERMISSÕES**\nCargos permitidos: " + strings.Join(allowed, ", ")
}

// FieldRejected reports a form field that failed collection.
func FieldRejected(label string, tooLong bool) string {
	if tooLong {
		return fmt.Sprintf("❌ **CAMPO INVÁLIDO!**\n**%s** excede o tamanho máximo.", label)
	}
	return fmt.Sprintf("❌ **CAMPO OBRIGATÓRIO!**\nPreencha **%s**.", label)
}

// FormExpired reports a submission for a form that is no longer open.
func FormExpired() string {
	return "⌛ **FORMULÁRIO EXPIRADO**\nExecute o comando novamente."
}

// Throttled asks the caller to wait before the next command.
func Throttled() string {
	return "⏳ **AGUARDE!**\nMuitos comandos em sequência. Tente novamente em instantes."
}

// JoinNames joins names as "a, b e c".
func JoinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " e " + names[len(names)-1]
}
