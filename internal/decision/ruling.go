package decision

import (
	"fmt"
	"time"
)

// Outcome is the recorded result of a ruling.
type Outcome string

const (
	OutcomeApproved Outcome = "APPROVED"
	OutcomeDenied   Outcome = "DENIED"
)

// Label returns the outcome as written in tribunal receipts.
func (o Outcome) Label() string {
	switch o {
	case OutcomeApproved:
		return "DEFERIDO"
	case OutcomeDenied:
		return "INDEFERIDO"
	default:
		return string(o)
	}
}

// Ruling is a judge's decision on one process. It is rendered once and dropped.
type Ruling struct {
	ProcessID     string
	Outcome       Outcome
	Judge         string
	DecidedAt     time.Time
	Justification string
}

// Registration returns the official registration code TJ-<process>-<outcome>.
func (r Ruling) Registration() string {
	return fmt.Sprintf("TJ-%s-%s", r.ProcessID, r.Outcome)
}

// Rule claims the control for action and, for approve or deny, builds the
// ruling. Postpone resolves the control and returns ok=false.
func (c *Control) Rule(action Action, judge string, now time.Time) (Ruling, bool, error) {
	if err := c.Claim(now); err != nil {
		return Ruling{}, false, err
	}
	outcome, ok := action.Outcome()
	if !ok {
		return Ruling{}, false, nil
	}
	return Ruling{
		ProcessID:     c.ProcessID,
		Outcome:       outcome,
		Judge:         judge,
		DecidedAt:     now,
		Justification: c.Justification,
	}, true, nil
}
