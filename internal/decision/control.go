package decision

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// DefaultTimeout is how long a control accepts presses after it is attached.
const DefaultTimeout = 120 * time.Second

var (
	ErrResolved = errors.New("decision already recorded")
	ErrExpired  = errors.New("decision control expired")
)

// Action is one of the three mutually exclusive buttons on a control.
type Action int

const (
	ActionApprove Action = iota + 1
	ActionDeny
	ActionPostpone
)

// Actions lists every action in display order.
var Actions = []Action{ActionApprove, ActionDeny, ActionPostpone}

func (a Action) String() string {
	switch a {
	case ActionApprove:
		return "approve"
	case ActionDeny:
		return "deny"
	case ActionPostpone:
		return "postpone"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// ParseAction maps a component suffix back to an Action.
func ParseAction(s string) (Action, error) {
	for _, a := range Actions {
		if a.String() == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown decision action %q", s)
}

// Outcome returns the ruling outcome an action produces. Postpone produces none.
func (a Action) Outcome() (Outcome, bool) {
	switch a {
	case ActionApprove:
		return OutcomeApproved, true
	case ActionDeny:
		return OutcomeDenied, true
	default:
		return "", false
	}
}

// State is the lifecycle position of a control.
type State string

const (
	StateActive   State = "active"
	StateResolved State = "resolved"
	StateExpired  State = "expired"
)

// Control is a three-way decision bound to one process and the judge's
// reasoning. At most one Claim succeeds over its lifetime.
type Control struct {
	ProcessID     string
	Justification string
	CreatedAt     time.Time
	ExpiresAt     time.Time

	mu    sync.Mutex
	state State
}

// NewControl returns an active control that expires timeout after now.
func NewControl(processID, justification string, now time.Time, timeout time.Duration) *Control {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Control{
		ProcessID:     processID,
		Justification: justification,
		CreatedAt:     now,
		ExpiresAt:     now.Add(timeout),
		state:         StateActive,
	}
}

// State returns the control state as of now.
func (c *Control) State(now time.Time) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked(now)
}

func (c *Control) stateLocked(now time.Time) State {
	if c.state == StateActive && !now.Before(c.ExpiresAt) {
		c.state = StateExpired
	}
	return c.state
}

// Claim moves an active control to resolved. It must be called
// before the ruling is sent so a concurrent press cannot also take effect.
func (c *Control) Claim(now time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.stateLocked(now) {
	case StateResolved:
		return ErrResolved
	case StateExpired:
		return ErrExpired
	}

	c.state = StateResolved
	return nil
}
