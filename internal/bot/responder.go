package bot

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/ppiankov/tjporte/internal/form"
	"github.com/ppiankov/tjporte/internal/tribunal"
)

// interactionResponder answers a single Discord interaction.
type interactionResponder struct {
	session     *discordgo.Session
	interaction *discordgo.Interaction
}

var _ tribunal.Responder = (*interactionResponder)(nil)

func (r *interactionResponder) Reply(ctx context.Context, msg tribunal.Message) error {
	return r.respond(ctx, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: messageData(msg),
	})
}

func (r *interactionResponder) OpenForm(ctx context.Context, instanceID string, schema form.Schema) error {
	return r.respond(ctx, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: modalData(instanceID, schema),
	})
}

func (r *interactionResponder) Acknowledge(ctx context.Context) error {
	return r.respond(ctx, ackResponse(r.interaction.Type))
}

func (r *interactionResponder) respond(ctx context.Context, resp *discordgo.InteractionResponse) error {
	return r.session.InteractionRespond(r.interaction, resp, discordgo.WithContext(ctx))
}

// ackResponse closes an interaction without posting anything. Components
// defer an update of their own message; commands and forms, which have no
// message to update, defer a private reply that is never sent.
func ackResponse(t discordgo.InteractionType) *discordgo.InteractionResponse {
	if t == discordgo.InteractionMessageComponent {
		return &discordgo.InteractionResponse{Type: discordgo.InteractionResponseDeferredMessageUpdate}
	}
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	}
}

func messageData(msg tribunal.Message) *discordgo.InteractionResponseData {
	data := &discordgo.InteractionResponseData{Content: msg.Content}
	if msg.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	if msg.Control != nil {
		data.Components = controlComponents(*msg.Control)
	}
	return data
}

func controlComponents(ref tribunal.ControlRef) []discordgo.MessageComponent {
	buttons := make([]discordgo.MessageComponent, 0, len(ref.Buttons))
	for _, b := range ref.Buttons {
		buttons = append(buttons, discordgo.Button{
			Label:    b.Label,
			Style:    buttonStyle(b.Style),
			CustomID: decisionCustomID(ref.ID, b.Action),
		})
	}
	return []discordgo.MessageComponent{discordgo.ActionsRow{Components: buttons}}
}

func buttonStyle(s tribunal.ButtonStyle) discordgo.ButtonStyle {
	switch s {
	case tribunal.StyleSuccess:
		return discordgo.SuccessButton
	case tribunal.StyleDanger:
		return discordgo.DangerButton
	default:
		return discordgo.SecondaryButton
	}
}

// modalData renders a form schema as a modal, one text input per row.
func modalData(instanceID string, schema form.Schema) *discordgo.InteractionResponseData {
	rows := make([]discordgo.MessageComponent, 0, len(schema.Fields))
	for _, f := range schema.Fields {
		style := discordgo.TextInputShort
		if f.Multiline {
			style = discordgo.TextInputParagraph
		}
		rows = append(rows, discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.TextInput{
				CustomID:    f.ID,
				Label:       f.Label,
				Style:       style,
				Placeholder: f.Placeholder,
				Required:    f.Required,
				MaxLength:   f.MaxLength,
			},
		}})
	}
	return &discordgo.InteractionResponseData{
		CustomID:   formCustomID(instanceID),
		Title:      schema.Title,
		Components: rows,
	}
}

// modalValues collects text input values keyed by field ID.
func modalValues(data discordgo.ModalSubmitInteractionData) map[string]string {
	values := make(map[string]string)
	for _, c := range data.Components {
		row, ok := c.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, inner := range row.Components {
			if input, ok := inner.(*discordgo.TextInput); ok {
				values[input.CustomID] = input.Value
			}
		}
	}
	return values
}
