// Package cli holds the shared wiring between the kompis commands: it
// turns a loaded configuration into a fully assembled bot and provides
// the local chat loop.
package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kompisbot/kompis"
	"github.com/kompisbot/kompis/internal/config"
	"github.com/kompisbot/kompis/internal/logging"
	"github.com/kompisbot/kompis/pkg/adapters/memory"
	"github.com/kompisbot/kompis/pkg/adapters/redis"
	"github.com/kompisbot/kompis/pkg/adapters/sqlite"
	"github.com/kompisbot/kompis/pkg/kommun"
	"github.com/kompisbot/kompis/pkg/ports"
	"github.com/kompisbot/kompis/pkg/topics"
)

// Runtime bundles the assembled bot with the resources the command has
// to close on shutdown.
type Runtime struct {
	Bot    *kompis.Bot
	Logger *slog.Logger

	audit *sqlite.AuditStore
}

// Close releases the runtime's resources.
func (r *Runtime) Close() error {
	if r.audit != nil {
		return r.audit.Close()
	}
	return nil
}

// BuildBot assembles a bot from the configuration: session backend,
// audit store, municipality index, classifier and conversation files.
// The messenger is the caller's choice so the same wiring serves both
// the webhook server and the local chat shell.
func BuildBot(cfg *config.Config, messenger ports.Messenger, registerer prometheus.Registerer) (*Runtime, error) {
	logger := logging.New(logging.ParseLevel(cfg.Log.Level))

	store, err := buildSessionStore(cfg)
	if err != nil {
		return nil, err
	}

	index, err := kommun.LoadFile(cfg.Flows.Kommuner)
	if err != nil {
		return nil, fmt.Errorf("load municipality index: %w", err)
	}

	audit, err := sqlite.New(cfg.Audit.Path)
	if err != nil {
		return nil, fmt.Errorf("open audit store: %w", err)
	}

	opts := []kompis.Option{
		kompis.WithLogger(logger),
		kompis.WithSessionStore(store),
		kompis.WithClassifier(topics.NewClassifier()),
		kompis.WithMunicipalityIndex(index),
		kompis.WithVoteStore(audit),
		kompis.WithFeedbackStore(audit),
		kompis.WithFlows(cfg.Flows.Paths...),
	}
	if cfg.Dialog.InitialNode != "" {
		opts = append(opts, kompis.WithInitialNode(cfg.Dialog.InitialNode))
	}
	if cfg.Dialog.ConfirmRejectNode != "" {
		opts = append(opts, kompis.WithConfirmRejectNode(cfg.Dialog.ConfirmRejectNode))
	}
	if registerer != nil {
		opts = append(opts, kompis.WithMetrics(registerer))
	}

	bot, err := kompis.New(messenger, opts...)
	if err != nil {
		_ = audit.Close()
		return nil, err
	}

	return &Runtime{Bot: bot, Logger: logger, audit: audit}, nil
}

func buildSessionStore(cfg *config.Config) (ports.SessionStore, error) {
	switch cfg.Session.Backend {
	case config.BackendMemory:
		return memory.NewStore(), nil
	case config.BackendRedis:
		var opts []redis.Option
		if cfg.Session.TTLSeconds > 0 {
			opts = append(opts, redis.WithTTL(time.Duration(cfg.Session.TTLSeconds)*time.Second))
		}
		return redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
}
