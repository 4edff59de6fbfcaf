package tribunal

import (
	"strings"

	"github.com/ppiankov/tjporte/internal/form"
)

// Form schema IDs.
const (
	PermitFormID = "permit_request"
	ReviewFormID = "process_review"
)

// Field IDs.
const (
	FieldAttorney      = "advogado"
	FieldClient        = "cliente"
	FieldPassport      = "passaporte"
	FieldJustification = "motivo"
	FieldReasoning     = "fundamentacao"
)

const instanceSep = ":"

// PermitForm collects a firearm-permit request.
func PermitForm() form.Schema {
	return form.Schema{
		ID:    PermitFormID,
		Title: "📋 Solicitação de Porte de Arma - TJ",
		Fields: []form.Field{
			{
				ID:          FieldAttorney,
				Label:       "Nome Completo do Advogado",
				Placeholder: "Ex: Dr. Silva OAB/SP-12345",
				Required:    true,
				MaxLength:   50,
			},
			{
				ID:          FieldClient,
				Label:       "Nome Completo do Cliente",
				Placeholder: "Ex: João Costa",
				Required:    true,
				MaxLength:   50,
			},
			{
				ID:          FieldPassport,
				Label:       "Número do Passaporte",
				Placeholder: "Ex: 123456789 (apenas números)",
				Required:    true,
				MaxLength:   11,
			},
			{
				ID:          FieldJustification,
				Label:       "Motivo da Solicitação",
				Placeholder: "Descreva detalhadamente o motivo do porte...",
				Multiline:   true,
				Required:    true,
				MaxLength:   500,
			},
		},
	}
}

// ReviewForm collects a judge's reasoning for one process.
func ReviewForm() form.Schema {
	return form.Schema{
		ID:    ReviewFormID,
		Title: "⚖️ Análise de Processo - TJ",
		Fields: []form.Field{
			{
				ID:          FieldReasoning,
				Label:       "Fundamentação da Decisão",
				Placeholder: "Descreva a análise dos documentos e fundamentação legal...",
				Multiline:   true,
				Required:    true,
				MaxLength:   1000,
			},
		},
	}
}

// instanceID joins a schema ID and the key of its live state, if any.
func instanceID(schemaID, key string) string {
	if key == "" {
		return schemaID
	}
	return schemaID + instanceSep + key
}

// splitInstanceID is the inverse of instanceID.
func splitInstanceID(id string) (schemaID, key string) {
	schemaID, key, _ = strings.Cut(id, instanceSep)
	return schemaID, key
}
