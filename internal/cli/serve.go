package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/tjporte/internal/bot"
	"github.com/ppiankov/tjporte/internal/config"
	"github.com/ppiankov/tjporte/internal/metrics"
	"github.com/ppiankov/tjporte/internal/opsserver"
	"github.com/ppiankov/tjporte/internal/tribunal"
)

const shutdownTimeout = 10 * time.Second

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Connect to Discord and serve the tribunal commands",
	Long: "Connects the bot with the token from $" + config.TokenEnv + ", registers the slash commands\n" +
		"and serves them until interrupted. The role table is hot-reloaded from the config file.",
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	token, err := config.Token()
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌ Token não encontrado! Configure a variável "+config.TokenEnv)
		return err
	}

	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	m := metrics.New()
	router := tribunal.NewRouter(tribunal.Config{
		Roles:           cfg.Roles,
		DecisionTimeout: cfg.DecisionTimeout,
		FormTimeout:     cfg.FormTimeout,
		RateLimit:       cfg.RateLimit,
		Metrics:         m,
		Logger:          logger,
	})

	sess, err := bot.New(bot.Config{
		Token:   token,
		GuildID: cfg.GuildID,
		Handler: router,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go router.Run(ctx)

	if cfg.MetricsAddr != "" {
		ops := opsserver.New(opsserver.Config{
			Addr:     cfg.MetricsAddr,
			Gatherer: m.Registry,
			Ready:    sess.Ready,
			Logger:   logger,
		})
		go func() {
			if err := ops.Serve(ctx); err != nil {
				logger.Error("ops server stopped", "error", err)
			}
		}()
	}

	reloader, err := bot.NewReloader(router, path, logger)
	if err != nil {
		logger.Warn("hot-reload disabled", "error", err)
	} else {
		go reloader.Run(ctx)
	}

	if err := sess.Open(ctx); err != nil {
		return err
	}
	printBanner(sess.User())

	<-ctx.Done()
	fmt.Fprintln(os.Stderr, "\nShutting down...")

	closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return sess.Close(closeCtx)
}

func newLogger(cfg *config.Config) *slog.Logger {
	level, _ := config.ParseLevel(cfg.LogLevel)
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func printBanner(user string) {
	names := make([]string, 0, len(tribunal.Commands))
	for _, c := range tribunal.Commands {
		names = append(names, "/"+string(c))
	}
	fmt.Fprintf(os.Stderr, "✅ Bot %s está ONLINE!\n", user)
	fmt.Fprintln(os.Stderr, "🎯 Sistema TJ-Porte carregado com sucesso!")
	fmt.Fprintf(os.Stderr, "⚖️ Comandos slash disponíveis: %s\n", strings.Join(names, ", "))
	fmt.Fprintln(os.Stderr)
}
