package cli

import (
	"context"
	"time"

	"github.com/aranaskd/blogctl/internal/api"
	"github.com/aranaskd/blogctl/internal/cache"
	"github.com/aranaskd/blogctl/internal/config"
	"github.com/aranaskd/blogctl/internal/logger"
	"github.com/aranaskd/blogctl/internal/tracing"
	"github.com/aranaskd/blogctl/pkg/session"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app wires one command invocation together: config, logger, API client,
// session store and manager, and (optionally) the post cache. The manager is
// the single owned session instance; every consumer receives it from here.
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	zl      zerolog.Logger
	client  *api.Client
	manager *session.Manager
	cache   *cache.Cache
	unsub   func()
}

// newApp builds the application for one command. The returned context
// carries a fresh trace ID for the whole invocation.
func newApp(cmd *cobra.Command) (*app, context.Context, error) {
	loader := config.NewLoader(cfgFile)
	cfg, err := loader.Load()
	if err != nil {
		return nil, nil, err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	// Log to file only; stdout belongs to command output.
	lg, err := logger.New(logger.Config{
		Level:     cfg.Logging.Level,
		File:      cfg.Logging.File,
		Redaction: cfg.Logging.Redaction,
		MaxSize:   cfg.Logging.MaxSize,
		MaxAge:    cfg.Logging.MaxAge,
		Compress:  cfg.Logging.Compress,
	})
	if err != nil {
		return nil, nil, err
	}
	zl := lg.GetZerolog()

	if err := tracing.InitOpenTelemetry("blogctl"); err != nil {
		zl.Warn().Err(err).Msg("Failed to initialize tracing")
	}

	client, err := api.New(api.Options{
		BaseURL: cfg.BaseURL,
		Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		Logger:  zl,
	})
	if err != nil {
		lg.Close()
		return nil, nil, err
	}

	store, err := session.NewStore(cfg.DataDir)
	if err != nil {
		lg.Close()
		return nil, nil, err
	}

	manager := session.NewManager(store, client, zl)
	client.SetTokenSource(manager)

	unsub := manager.Subscribe(func(s session.Session) {
		if s.Authenticated() {
			zl.Debug().Str("user_id", s.UserID).Str("username", s.Username).Msg("Session changed: authenticated")
		} else {
			zl.Debug().Msg("Session changed: anonymous")
		}
	})

	a := &app{
		cfg:     cfg,
		log:     lg,
		zl:      zl,
		client:  client,
		manager: manager,
		unsub:   unsub,
	}

	if cfg.Cache.Enabled {
		pc, err := cache.Open(cache.Config{
			Path:   cfg.Cache.Path,
			TTL:    time.Duration(cfg.Cache.TTLMinutes) * time.Minute,
			Logger: zl,
		})
		if err != nil {
			// The cache is a convenience; the client works without it.
			zl.Warn().Err(err).Msg("Post cache unavailable")
		} else {
			a.cache = pc
		}
	}

	ctx := tracing.NewCommandContext(cmd.Context())
	return a, ctx, nil
}

// close tears the invocation down in reverse construction order.
func (a *app) close(ctx context.Context) {
	if a.unsub != nil {
		a.unsub()
	}
	if a.cache != nil {
		a.cache.Close()
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	tracing.ShutdownOpenTelemetry(shutdownCtx)
	a.log.Close()
}
