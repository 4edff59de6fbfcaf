package tribunal

import (
	"context"

	"github.com/ppiankov/tjporte/internal/decision"
	"github.com/ppiankov/tjporte/internal/form"
	"github.com/ppiankov/tjporte/internal/roles"
)

// Invoker is the user behind one interaction, as resolved by the host.
// Roles are read fresh for every interaction and never cached here.
type Invoker struct {
	ID          string
	DisplayName string
	Roles       roles.Set
}

// ButtonStyle is the visual weight of a control button.
type ButtonStyle int

const (
	StyleSuccess ButtonStyle = iota + 1
	StyleDanger
	StyleSecondary
)

// Button is one action of a decision control.
type Button struct {
	Action decision.Action
	Label  string
	Style  ButtonStyle
}

// ControlRef attaches a live decision control to an outgoing message.
type ControlRef struct {
	ID      string
	Buttons []Button
}

// Message is an outgoing text reply. Ephemeral replies are visible only to
// the invoker.
type Message struct {
	Content   string
	Ephemeral bool
	Control   *ControlRef
}

// Responder answers one interaction on the host platform. Handlers call
// exactly one of its methods per interaction.
type Responder interface {
	// Reply sends a message in response to the interaction.
	Reply(ctx context.Context, msg Message) error
	// OpenForm shows schema to the invoker; the submission comes back
	// through Router.Submit with instanceID.
	OpenForm(ctx context.Context, instanceID string, schema form.Schema) error
	// Acknowledge accepts the interaction with no visible effect.
	Acknowledge(ctx context.Context) error
}

// DecisionButtons returns the three decision actions in display order.
func DecisionButtons() []Button {
	return []Button{
		{Action: decision.ActionApprove, Label: "✅ DEFERIR", Style: StyleSuccess},
		{Action: decision.ActionDeny, Label: "❌ INDEFERIR", Style: StyleDanger},
		{Action: decision.ActionPostpone, Label: "⏸️ ADIAR", Style: StyleSecondary},
	}
}

func private(content string) Message {
	return Message{Content: content, Ephemeral: true}
}

func public(content string) Message {
	return Message{Content: content}
}
