package bot

import (
	"github.com/bwmarrin/discordgo"

	"github.com/ppiankov/tjporte/internal/tribunal"
)

var commandDescriptions = map[tribunal.Command]string{
	tribunal.CommandRequestPermit: "📋 Solicitar porte de arma - Tribunal de Justiça",
	tribunal.CommandReviewProcess: "⚖️ Analisar processo de porte - Apenas Juízes",
	tribunal.CommandPermissions:   "🔐 Verificar minhas permissões no sistema",
}

// ApplicationCommands returns the slash command definitions registered on connect.
func ApplicationCommands() []*discordgo.ApplicationCommand {
	cmds := make([]*discordgo.ApplicationCommand, 0, len(tribunal.Commands))
	for _, c := range tribunal.Commands {
		cmd := &discordgo.ApplicationCommand{
			Name:        string(c),
			Description: commandDescriptions[c],
		}
		if c == tribunal.CommandReviewProcess {
			cmd.Options = []*discordgo.ApplicationCommandOption{{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        tribunal.OptionProtocol,
				Description: "Número do protocolo",
				Required:    true,
			}}
		}
		cmds = append(cmds, cmd)
	}
	return cmds
}

// commandArgs flattens top-level string options.
func commandArgs(data discordgo.ApplicationCommandInteractionData) map[string]string {
	args := make(map[string]string, len(data.Options))
	for _, opt := range data.Options {
		if opt == nil || opt.Type != discordgo.ApplicationCommandOptionString {
			continue
		}
		args[opt.Name] = opt.StringValue()
	}
	return args
}
