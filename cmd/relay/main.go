package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/yourorg/ui-prompt-relay/internal/api"
	"github.com/yourorg/ui-prompt-relay/internal/config"
	"github.com/yourorg/ui-prompt-relay/internal/db"
	"github.com/yourorg/ui-prompt-relay/internal/logging"
	"github.com/yourorg/ui-prompt-relay/internal/providers"
	"github.com/yourorg/ui-prompt-relay/internal/relay"
	"github.com/yourorg/ui-prompt-relay/internal/store"
)

type cli struct {
	EnvFile  string `help:"Load environment from this file if it exists." default:".env" type:"path"`
	LogLevel string `help:"Override LOG_LEVEL."`

	Serve  serveCmd  `cmd:"" default:"1" help:"Run the HTTP relay (default)."`
	Prompt promptCmd `cmd:"" help:"Send one prompt through the relay and print the result."`
}

type serveCmd struct {
	Addr string `help:"Override HTTP_ADDR."`
}

type promptCmd struct {
	Text string `arg:"" help:"Prompt text."`
}

// app is what every subcommand needs after startup.
type app struct {
	cfg    config.Config
	logger zerolog.Logger
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("relay"),
		kong.Description("Forwards UI component prompts to the OpenAI chat completions API."),
		kong.UsageOnError(),
	)

	if err := godotenv.Load(c.EnvFile); err != nil {
		fmt.Fprintf(os.Stderr, "no %s file loaded, relying on environment\n", c.EnvFile)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}
	if c.LogLevel != "" {
		cfg.LogLevel = c.LogLevel
	}

	a := &app{cfg: cfg, logger: logging.New(cfg.LogLevel, cfg.LogFormat)}
	kctx.FatalIfErrorf(kctx.Run(a))
}

func (s *serveCmd) Run(a *app) error {
	cfg, logger := a.cfg, a.logger
	if s.Addr != "" {
		cfg.HTTPAddr = s.Addr
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		rec  relay.Recorder
		hist api.History
	)
	if cfg.HistoryEnabled() {
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("db connect: %w", err)
		}
		defer pool.Close()

		applied, err := db.Migrate(ctx, pool)
		if err != nil {
			return fmt.Errorf("db migration: %w", err)
		}
		logger.Info().Strs("applied", applied).Msg("migrations")

		gens := store.New(pool).Generations()
		rec, hist = gens, gens
	}

	rel, err := newRelay(cfg, logger, rec)
	if err != nil {
		return err
	}
	server, err := api.NewServer(rel, hist, cfg.UpstreamTimeout, logger)
	if err != nil {
		return fmt.Errorf("server init: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", cfg.HTTPAddr).
			Bool("history", cfg.HistoryEnabled()).
			Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-sig:
	}
	logger.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}

func (p *promptCmd) Run(a *app) error {
	rel, err := newRelay(a.cfg, a.logger, nil)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.UpstreamTimeout)
	defer cancel()

	res := rel.Generate(ctx, "cli", p.Text)
	if res.Kind != relay.KindSuccess {
		return errors.New(res.ResponseBody())
	}
	fmt.Println(res.Content)
	return nil
}

func newRelay(cfg config.Config, logger zerolog.Logger, rec relay.Recorder) (*relay.Relay, error) {
	adapter, err := providers.NewOpenAIAdapter(
		providers.WithAPIKey(cfg.OpenAIAPIKey),
		providers.WithBaseURL(cfg.OpenAIBaseURL),
		providers.WithTimeout(cfg.UpstreamTimeout),
	)
	if err != nil {
		return nil, err
	}
	return relay.New(logger, adapter, rec), nil
}
