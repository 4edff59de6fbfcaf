package tribunal

import (
	"context"
	"errors"

	"github.com/ppiankov/tjporte/internal/decision"
	"github.com/ppiankov/tjporte/internal/metrics"
	"github.com/ppiankov/tjporte/internal/render"
)

// submitReview publishes the document checklist for a process and attaches
// a fresh decision control bound to the process and the judge's reasoning.
func (r *Router) submitReview(ctx context.Context, key string, inv Invoker, values map[string]string, resp Responder) error {
	log := r.logger.With("form", ReviewFormID, "user", inv.ID)

	processID, err := r.reviews.Get(key)
	if err != nil {
		log.Info("review form expired", "key", key)
		r.metrics.IncrementSubmission(ReviewFormID, metrics.ResultExpired)
		return resp.Reply(ctx, private(render.FormExpired()))
	}

	answers, err := ReviewForm().Collect(values)
	if err != nil {
		log.Info("review rejected", "error", err)
		r.metrics.IncrementSubmission(ReviewFormID, metrics.ResultRejected)
		return resp.Reply(ctx, private(fieldRejection(err)))
	}

	if _, err := r.reviews.Take(key); err != nil {
		r.metrics.IncrementSubmission(ReviewFormID, metrics.ResultExpired)
		return resp.Reply(ctx, private(render.FormExpired()))
	}

	reasoning := answers.Get(FieldReasoning)
	ctrl := decision.NewControl(processID, reasoning, r.now(), r.decisionTimeout)
	controlID := r.controls.Put(ctrl)

	msg := public(render.ReviewChecklist(processID, inv.DisplayName, reasoning))
	msg.Control = &ControlRef{ID: controlID, Buttons: DecisionButtons()}

	if err := resp.Reply(ctx, msg); err != nil {
		r.controls.Delete(controlID)
		return err
	}

	r.metrics.IncrementSubmission(ReviewFormID, metrics.ResultOK)
	log.Info("review submitted", "process", processID, "control", controlID)
	return nil
}

// Press applies one decision action to a control. Presses on unknown,
// resolved or expired controls are acknowledged with no visible effect.
func (r *Router) Press(ctx context.Context, controlID string, action decision.Action, inv Invoker, resp Responder) error {
	log := r.logger.With("control", controlID, "action", action.String(), "user", inv.ID)

	ctrl, err := r.controls.Get(controlID)
	if err != nil {
		log.Debug("press on inactive control")
		r.metrics.IncrementIgnoredPress()
		return resp.Acknowledge(ctx)
	}

	now := r.now()
	ruling, ok, err := ctrl.Rule(action, inv.DisplayName, now)
	if err != nil {
		if errors.Is(err, decision.ErrResolved) || errors.Is(err, decision.ErrExpired) {
			log.Debug("press ignored", "reason", err)
			r.metrics.IncrementIgnoredPress()
			return resp.Acknowledge(ctx)
		}
		return err
	}
	r.controls.Delete(controlID)

	if !ok {
		r.metrics.IncrementRuling("postponed")
		log.Info("analysis postponed", "process", ctrl.ProcessID)
		return resp.Reply(ctx, public(render.Postponed(ctrl.ProcessID)))
	}

	r.metrics.IncrementRuling(outcomeLabel(ruling.Outcome))
	log.Info("ruling recorded", "process", ruling.ProcessID, "outcome", string(ruling.Outcome))
	return resp.Reply(ctx, public(render.Ruling(ruling)))
}

// LiveControls returns the number of stored decision controls.
func (r *Router) LiveControls() int {
	return r.controls.Len()
}

func outcomeLabel(o decision.Outcome) string {
	switch o {
	case decision.OutcomeApproved:
		return "approved"
	case decision.OutcomeDenied:
		return "denied"
	default:
		return string(o)
	}
}
