package tribunal

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/ppiankov/tjporte/internal/decision"
	"github.com/ppiankov/tjporte/internal/metrics"
	"github.com/ppiankov/tjporte/internal/pending"
	"github.com/ppiankov/tjporte/internal/ratelimit"
	"github.com/ppiankov/tjporte/internal/render"
	"github.com/ppiankov/tjporte/internal/roles"
)

// Command is a slash command name.
type Command string

const (
	CommandRequestPermit Command = "solicitar_porte"
	CommandReviewProcess Command = "analisar_processo"
	CommandPermissions   Command = "minhas_permissoes"
)

// OptionProtocol is the review command's process identifier argument.
const OptionProtocol = "protocolo"

// Commands lists every command the router serves.
var Commands = []Command{CommandRequestPermit, CommandReviewProcess, CommandPermissions}

const sweepInterval = 30 * time.Second

// Config holds Router dependencies. Zero values fall back to defaults.
type Config struct {
	Roles           roles.Table
	DecisionTimeout time.Duration
	FormTimeout     time.Duration
	RateLimit       ratelimit.Config
	Now             func() time.Time
	Metrics         *metrics.Metrics
	Logger          *slog.Logger
}

// Router authorizes commands and drives the intake and review workflows.
// It holds no request data beyond open review forms and live decision
// controls, both dropped after their timeout.
type Router struct {
	roles    atomic.Pointer[roles.Table]
	now      func() time.Time
	limiter  *ratelimit.Limiter
	reviews  *pending.Registry[string]
	controls *pending.Registry[*decision.Control]

	decisionTimeout time.Duration
	metrics         *metrics.Metrics
	logger          *slog.Logger
}

// NewRouter creates a Router from cfg.
func NewRouter(cfg Config) *Router {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.DecisionTimeout <= 0 {
		cfg.DecisionTimeout = decision.DefaultTimeout
	}
	if cfg.FormTimeout <= 0 {
		cfg.FormTimeout = 15 * time.Minute
	}
	if cfg.Roles == (roles.Table{}) {
		cfg.Roles = roles.DefaultTable()
	}

	r := &Router{
		now:             now,
		limiter:         ratelimit.New(cfg.RateLimit, now),
		reviews:         pending.NewRegistry[string](cfg.FormTimeout, now),
		controls:        pending.NewRegistry[*decision.Control](cfg.DecisionTimeout, now),
		decisionTimeout: cfg.DecisionTimeout,
		metrics:         cfg.Metrics,
		logger:          logger,
	}
	r.SetRoles(cfg.Roles)
	return r
}

// SetRoles swaps the role table. Interactions already in flight keep the
// table they started with.
func (r *Router) SetRoles(t roles.Table) {
	r.roles.Store(&t)
}

// Roles returns the current role table.
func (r *Router) Roles() roles.Table {
	return *r.roles.Load()
}

// Run sweeps expired forms and controls until ctx is cancelled.
func (r *Router) Run(ctx context.Context) {
	go r.reviews.Run(ctx, sweepInterval, func(n int) {
		r.metrics.AddExpired("form", n)
	})
	r.controls.Run(ctx, sweepInterval, func(n int) {
		r.metrics.AddExpired("control", n)
		r.logger.Debug("decision controls expired", "count", n)
	})
}

// Dispatch handles one slash command invocation. Unknown commands are
// acknowledged with no visible effect.
func (r *Router) Dispatch(ctx context.Context, cmd Command, args map[string]string, inv Invoker, resp Responder) error {
	log := r.logger.With("command", string(cmd), "user", inv.ID)

	switch cmd {
	case CommandRequestPermit, CommandReviewProcess, CommandPermissions:
	default:
		log.Warn("unknown command ignored")
		return resp.Acknowledge(ctx)
	}

	if !r.limiter.Allow(inv.ID) {
		log.Info("command throttled")
		r.metrics.IncrementCommand(string(cmd), metrics.ResultThrottled)
		return resp.Reply(ctx, private(render.Throttled()))
	}

	table := r.Roles()
	switch cmd {
	case CommandRequestPermit:
		return r.requestPermit(ctx, log, table, inv, resp)
	case CommandReviewProcess:
		return r.reviewProcess(ctx, log, table, args[OptionProtocol], inv, resp)
	default:
		return r.checkPermissions(ctx, log, table, inv, resp)
	}
}

func (r *Router) requestPermit(ctx context.Context, log *slog.Logger, table roles.Table, inv Invoker, resp Responder) error {
	if !table.CanRequestPermit(inv.Roles) {
		log.Info("permission denied", "roles", inv.Roles.Names())
		r.metrics.IncrementCommand(string(CommandRequestPermit), metrics.ResultDenied)
		return resp.Reply(ctx, private(render.RequestDenied(table.RequesterLabels())))
	}

	r.metrics.IncrementCommand(string(CommandRequestPermit), metrics.ResultOK)
	log.Debug("opening permit form")
	return resp.OpenForm(ctx, instanceID(PermitFormID, ""), PermitForm())
}

func (r *Router) reviewProcess(ctx context.Context, log *slog.Logger, table roles.Table, processID string, inv Invoker, resp Responder) error {
	if !table.CanReview(inv.Roles) {
		log.Info("permission denied", "roles", inv.Roles.Names())
		r.metrics.IncrementCommand(string(CommandReviewProcess), metrics.ResultDenied)
		return resp.Reply(ctx, private(render.ReviewDenied(roles.Label(table.Judge))))
	}

	// The identifier is opaque text; it is not checked against past requests.
	key := r.reviews.Put(processID)
	if err := resp.OpenForm(ctx, instanceID(ReviewFormID, key), ReviewForm()); err != nil {
		r.reviews.Delete(key)
		return err
	}

	r.metrics.IncrementCommand(string(CommandReviewProcess), metrics.ResultOK)
	log.Debug("opening review form", "process", processID)
	return nil
}

func (r *Router) checkPermissions(ctx context.Context, log *slog.Logger, table roles.Table, inv Invoker, resp Responder) error {
	held := table.Permissions(inv.Roles)
	r.metrics.IncrementCommand(string(CommandPermissions), metrics.ResultOK)
	log.Debug("permissions checked", "matched", held)

	if len(held) == 0 {
		return resp.Reply(ctx, private(render.NoPermissions(table.Recognized())))
	}
	return resp.Reply(ctx, private(render.Permissions(held)))
}

// Submit handles a form submission identified by the instance ID passed to
// Responder.OpenForm. Unknown forms are acknowledged with no visible effect.
func (r *Router) Submit(ctx context.Context, formInstance string, inv Invoker, values map[string]string, resp Responder) error {
	schemaID, key := splitInstanceID(formInstance)
	switch schemaID {
	case PermitFormID:
		return r.submitPermit(ctx, inv, values, resp)
	case ReviewFormID:
		return r.submitReview(ctx, key, inv, values, resp)
	default:
		r.logger.Warn("unknown form ignored", "form", formInstance, "user", inv.ID)
		return resp.Acknowledge(ctx)
	}
}
