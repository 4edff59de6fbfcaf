package tribunal

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/ppiankov/tjporte/internal/form"
	"github.com/ppiankov/tjporte/internal/metrics"
	"github.com/ppiankov/tjporte/internal/roles"
)

type openedForm struct {
	instanceID string
	schema     form.Schema
}

// recorder captures everything a handler sends back to the host.
type recorder struct {
	replies []Message
	forms   []openedForm
	acks    int
	failAll error
}

func (r *recorder) Reply(_ context.Context, msg Message) error {
	if r.failAll != nil {
		return r.failAll
	}
	r.replies = append(r.replies, msg)
	return nil
}

func (r *recorder) OpenForm(_ context.Context, instanceID string, schema form.Schema) error {
	if r.failAll != nil {
		return r.failAll
	}
	r.forms = append(r.forms, openedForm{instanceID: instanceID, schema: schema})
	return nil
}

func (r *recorder) Acknowledge(context.Context) error {
	r.acks++
	return nil
}

func (r *recorder) visible() int {
	return len(r.replies) + len(r.forms)
}

func (r *recorder) only(t *testing.T) Message {
	t.Helper()
	if len(r.replies) != 1 || len(r.forms) != 0 {
		t.Fatalf("expected exactly one reply, got %d replies and %d forms", len(r.replies), len(r.forms))
	}
	return r.replies[0]
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var errTransport = errors.New("transport down")

func englishRoles() roles.Table {
	return roles.Table{
		Attorney:   "Attorney",
		Judge:      "Judge",
		Prosecutor: "Prosecutor",
		CourtStaff: "Court Staff",
	}
}

func newTestRouter(t *testing.T) (*Router, *testClock, *metrics.Metrics) {
	t.Helper()
	clock := &testClock{now: time.Date(2026, time.October, 19, 14, 5, 9, 0, time.UTC)}
	m := metrics.New()
	r := NewRouter(Config{
		Roles:           englishRoles(),
		DecisionTimeout: 120 * time.Second,
		FormTimeout:     15 * time.Minute,
		Now:             clock.Now,
		Metrics:         m,
		Logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return r, clock, m
}

func invoker(name string, roleNames ...string) Invoker {
	return Invoker{ID: "id-" + name, DisplayName: name, Roles: roles.NewSet(roleNames...)}
}

func permitValues(attorney, client, passport, justification string) map[string]string {
	return map[string]string{
		FieldAttorney:      attorney,
		FieldClient:        client,
		FieldPassport:      passport,
		FieldJustification: justification,
	}
}

// openReview runs the review command and submits the form, returning the
// attached control ID.
func openReview(t *testing.T, r *Router, judge Invoker, processID, reasoning string) string {
	t.Helper()
	ctx := context.Background()

	cmd := &recorder{}
	if err := r.Dispatch(ctx, CommandReviewProcess, map[string]string{OptionProtocol: processID}, judge, cmd); err != nil {
		t.Fatalf("review dispatch failed: %v", err)
	}
	if len(cmd.forms) != 1 {
		t.Fatalf("expected review form, got %+v", cmd)
	}

	sub := &recorder{}
	if err := r.Submit(ctx, cmd.forms[0].instanceID, judge, map[string]string{FieldReasoning: reasoning}, sub); err != nil {
		t.Fatalf("review submit failed: %v", err)
	}
	msg := sub.only(t)
	if msg.Control == nil {
		t.Fatal("review checklist should carry a decision control")
	}
	return msg.Control.ID
}
