package bot

import (
	"strings"

	"github.com/ppiankov/tjporte/internal/decision"
)

// Component custom IDs carry enough to route an interaction back to live
// state: tj:form:<instance> for modals, tj:decision:<control>:<action> for
// decision buttons. Discord caps custom IDs at 100 characters.
const (
	customIDPrefix = "tj"
	customIDSep    = ":"
	kindForm       = "form"
	kindDecision   = "decision"
)

func formCustomID(instanceID string) string {
	return strings.Join([]string{customIDPrefix, kindForm, instanceID}, customIDSep)
}

// parseFormCustomID returns the form instance ID encoded by formCustomID.
func parseFormCustomID(id string) (string, bool) {
	rest, ok := strings.CutPrefix(id, customIDPrefix+customIDSep+kindForm+customIDSep)
	if !ok || rest == "" {
		return "", false
	}
	return rest, true
}

func decisionCustomID(controlID string, action decision.Action) string {
	return strings.Join([]string{customIDPrefix, kindDecision, controlID, action.String()}, customIDSep)
}

// parseDecisionCustomID returns the control ID and action encoded by
// decisionCustomID.
func parseDecisionCustomID(id string) (string, decision.Action, bool) {
	rest, ok := strings.CutPrefix(id, customIDPrefix+customIDSep+kindDecision+customIDSep)
	if !ok {
		return "", 0, false
	}
	i := strings.LastIndex(rest, customIDSep)
	if i <= 0 {
		return "", 0, false
	}
	action, err := decision.ParseAction(rest[i+1:])
	if err != nil {
		return "", 0, false
	}
	return rest[:i], action, true
}
