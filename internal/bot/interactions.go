package bot

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/ppiankov/tjporte/internal/decision"
	"github.com/ppiankov/tjporte/internal/tribunal"
)

// Handler is the platform-neutral side of the bot. *tribunal.Router
// implements it.
type Handler interface {
	Dispatch(ctx context.Context, cmd tribunal.Command, args map[string]string, inv tribunal.Invoker, resp tribunal.Responder) error
	Submit(ctx context.Context, formInstance string, inv tribunal.Invoker, values map[string]string, resp tribunal.Responder) error
	Press(ctx context.Context, controlID string, action decision.Action, inv tribunal.Invoker, resp tribunal.Responder) error
}

var _ Handler = (*tribunal.Router)(nil)

// dispatcher translates Discord interactions into Handler calls.
type dispatcher struct {
	handler Handler
	names   roleNamer
	logger  *slog.Logger
}

func (d *dispatcher) handle(ctx context.Context, i *discordgo.Interaction, resp tribunal.Responder) error {
	inv := resolveInvoker(i, d.names)

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		data := i.ApplicationCommandData()
		d.logger.Debug("command received", "command", data.Name, "user", inv.ID, "roles", inv.Roles.Names())
		return d.handler.Dispatch(ctx, tribunal.Command(data.Name), commandArgs(data), inv, resp)

	case discordgo.InteractionModalSubmit:
		data := i.ModalSubmitData()
		instance, ok := parseFormCustomID(data.CustomID)
		if !ok {
			d.logger.Warn("unrecognized form submission", "custom_id", data.CustomID, "user", inv.ID)
			return resp.Acknowledge(ctx)
		}
		return d.handler.Submit(ctx, instance, inv, modalValues(data), resp)

	case discordgo.InteractionMessageComponent:
		data := i.MessageComponentData()
		controlID, action, ok := parseDecisionCustomID(data.CustomID)
		if !ok {
			d.logger.Warn("unrecognized component", "custom_id", data.CustomID, "user", inv.ID)
			return resp.Acknowledge(ctx)
		}
		return d.handler.Press(ctx, controlID, action, inv, resp)

	default:
		return nil
	}
}
