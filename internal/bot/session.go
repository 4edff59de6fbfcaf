package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bwmarrin/discordgo"
)

// respondTimeout bounds one interaction. Discord drops responses that
// arrive after three seconds.
const respondTimeout = 3 * time.Second

// Config holds Session settings.
type Config struct {
	Token   string
	GuildID string // empty registers commands globally
	Handler Handler
	Logger  *slog.Logger
}

// Session owns the Discord gateway connection and the registered commands.
type Session struct {
	dg       *discordgo.Session
	guildID  string
	dispatch *dispatcher
	logger   *slog.Logger

	connected atomic.Bool

	mu         sync.Mutex
	appID      string
	registered []*discordgo.ApplicationCommand
}

// New creates a Session. It does not connect.
func New(cfg Config) (*Session, error) {
	if cfg.Handler == nil {
		return nil, errors.New("bot: handler is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	dg, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds

	s := &Session{
		dg:      dg,
		guildID: cfg.GuildID,
		logger:  logger,
	}
	s.dispatch = &dispatcher{handler: cfg.Handler, names: s.roleName, logger: logger}

	dg.AddHandler(s.onInteraction)
	dg.AddHandler(s.onReady)
	dg.AddHandler(s.onResumed)
	dg.AddHandler(s.onDisconnect)
	return s, nil
}

// Open connects to the gateway and registers the slash commands, scoped to
// the configured guild or global.
func (s *Session) Open(ctx context.Context) error {
	if err := s.dg.Open(); err != nil {
		return fmt.Errorf("failed to connect to discord: %w", err)
	}

	user := s.dg.State.User
	if user == nil {
		return errors.Join(errors.New("connected without a bot user"), s.dg.Close())
	}

	cmds, err := s.dg.ApplicationCommandBulkOverwrite(user.ID, s.guildID, ApplicationCommands(), discordgo.WithContext(ctx))
	if err != nil {
		return errors.Join(fmt.Errorf("failed to register commands: %w", err), s.dg.Close())
	}

	s.mu.Lock()
	s.appID = user.ID
	s.registered = cmds
	s.mu.Unlock()

	s.connected.Store(true)
	s.logger.Info("commands registered", "count", len(cmds), "guild", s.guildID)
	return nil
}

// Ready reports whether the gateway connection is up.
func (s *Session) Ready() bool {
	return s.connected.Load()
}

// User returns the bot account name once connected.
func (s *Session) User() string {
	if u := s.dg.State.User; u != nil {
		return u.Username
	}
	return ""
}

// Close removes guild-scoped commands and disconnects. Global commands are
// left registered.
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	cmds := s.registered
	appID := s.appID
	s.registered = nil
	s.mu.Unlock()

	var errs []error
	if s.guildID != "" {
		for _, c := range cmds {
			if err := s.dg.ApplicationCommandDelete(appID, s.guildID, c.ID, discordgo.WithContext(ctx)); err != nil {
				errs = append(errs, fmt.Errorf("delete command %s: %w", c.Name, err))
			}
		}
	}

	s.connected.Store(false)
	if err := s.dg.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close gateway: %w", err))
	}
	return errors.Join(errs...)
}

// onReady fires on every fresh gateway session, including reconnects that
// could not resume.
func (s *Session) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	s.connected.Store(true)
	s.logger.Info("gateway session ready", "session", r.SessionID)
}

func (s *Session) onResumed(_ *discordgo.Session, _ *discordgo.Resumed) {
	s.connected.Store(true)
	s.logger.Info("gateway session resumed")
}

func (s *Session) onDisconnect(_ *discordgo.Session, _ *discordgo.Disconnect) {
	s.connected.Store(false)
	s.logger.Warn("gateway disconnected")
}

func (s *Session) onInteraction(dg *discordgo.Session, ic *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), respondTimeout)
	defer cancel()

	resp := &interactionResponder{session: dg, interaction: ic.Interaction}
	if err := s.dispatch.handle(ctx, ic.Interaction, resp); err != nil {
		s.logger.Error("interaction failed", "type", int(ic.Type), "interaction", ic.ID, "error", err)
	}
}

// roleName resolves a role from the state cache, refreshing the guild's
// roles from the API on a miss.
func (s *Session) roleName(guildID, roleID string) (string, bool) {
	if r, err := s.dg.State.Role(guildID, roleID); err == nil {
		return r.Name, true
	}

	guildRoles, err := s.dg.GuildRoles(guildID)
	if err != nil {
		s.logger.Warn("failed to fetch guild roles", "guild", guildID, "error", err)
		return "", false
	}

	name, found := "", false
	for _, r := range guildRoles {
		_ = s.dg.State.RoleAdd(guildID, r)
		if r.ID == roleID {
			name, found = r.Name, true
		}
	}
	return name, found
}
