package tribunal

import (
	"context"
	"errors"

	"github.com/ppiankov/tjporte/internal/form"
	"github.com/ppiankov/tjporte/internal/metrics"
	"github.com/ppiankov/tjporte/internal/permit"
	"github.com/ppiankov/tjporte/internal/render"
)

// submitPermit validates a permit request and publishes its receipt.
// The passport is validated first; every check runs before anything public
// is sent.
func (r *Router) submitPermit(ctx context.Context, inv Invoker, values map[string]string, resp Responder) error {
	log := r.logger.With("form", PermitFormID, "user", inv.ID)

	passport := values[FieldPassport]
	if _, err := permit.ValidatePassport(passport); err != nil {
		log.Info("permit request rejected", "error", err)
		r.metrics.IncrementSubmission(PermitFormID, metrics.ResultRejected)
		if errors.Is(err, permit.ErrPassportTooLong) {
			return resp.Reply(ctx, private(render.PassportTooLong(permit.MaxPassportDigits)))
		}
		return resp.Reply(ctx, private(render.PassportNonNumeric()))
	}

	answers, err := intakeSchema().Collect(values)
	if err != nil {
		log.Info("permit request rejected", "error", err)
		r.metrics.IncrementSubmission(PermitFormID, metrics.ResultRejected)
		return resp.Reply(ctx, private(fieldRejection(err)))
	}

	attorney := answers.Get(FieldAttorney)
	client := answers.Get(FieldClient)

	if permit.BlocksSelfRequest(r.Roles(), inv.Roles, inv.DisplayName, attorney, client) {
		log.Info("permit request blocked: judge self request")
		r.metrics.IncrementSubmission(PermitFormID, metrics.ResultRejected)
		return resp.Reply(ctx, private(render.SelfRequestBlocked()))
	}

	processID := permit.GenerateProcessID(r.now())
	r.metrics.IncrementSubmission(PermitFormID, metrics.ResultOK)
	log.Info("permit request registered", "process", processID)

	return resp.Reply(ctx, public(render.PermitReceipt(render.PermitRequest{
		ProcessID:     processID,
		Attorney:      attorney,
		Client:        client,
		Passport:      passport,
		Justification: answers.Get(FieldJustification),
	})))
}

// intakeSchema is PermitForm with the passport length left to the validator,
// which names the failure.
func intakeSchema() form.Schema {
	schema := PermitForm()
	fields := make([]form.Field, len(schema.Fields))
	copy(fields, schema.Fields)
	for i := range fields {
		if fields[i].ID == FieldPassport {
			fields[i].MaxLength = 0
		}
	}
	schema.Fields = fields
	return schema
}

func fieldRejection(err error) string {
	var fe *form.FieldError
	if !errors.As(err, &fe) {
		return render.FieldRejected("", false)
	}
	return render.FieldRejected(fe.Field.Label, errors.Is(err, form.ErrFieldTooLong))
}
