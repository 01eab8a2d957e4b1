package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/abhisek/scholar/internal/config"
	"github.com/abhisek/scholar/internal/logger"
	"github.com/abhisek/scholar/internal/server"
	"github.com/abhisek/scholar/internal/server/handlers"
	"github.com/abhisek/scholar/internal/server/middleware"
	"github.com/abhisek/scholar/internal/session"
	"github.com/abhisek/scholar/internal/store"
	"github.com/abhisek/scholar/internal/transcribe"
	"github.com/abhisek/scholar/internal/tutor"
)

// sweepInterval is how often expired sessions are dropped from the memory
// and SQLite backends. Redis expires keys itself.
const sweepInterval = 5 * time.Minute

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API for the browser client",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		cmd.SetContext(ctx)

		d, err := loadDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			d.cfg.Addr = addr
		}

		sessions, closeSessions, err := openSessions(ctx, d.cfg, d.store, d.log)
		if err != nil {
			return err
		}
		defer closeSessions()

		workflow := tutor.NewWorkflow(d.pipeline, sessions,
			tutor.WithEventRepo(d.store.EventRepo()),
			tutor.WithLogger(d.log),
		)

		srv := server.NewServer(server.RouterConfig{
			TutorHandler:   handlers.NewTutorHandler(workflow, d.log),
			VoiceHandler:   handlers.NewVoiceHandler(newTranscriber(d.cfg, d.log), d.log),
			HealthHandler:  handlers.NewHealthHandler(),
			Logger:         d.log,
			AllowedOrigins: d.cfg.AllowedOrigins,
			Session: middleware.SessionConfig{
				Secure: d.cfg.TLSEnabled(),
				MaxAge: int(d.cfg.SessionTTL.Seconds()),
			},
			RequestTimeout: d.cfg.RequestTimeout,
		})

		d.log.Info("starting scholar",
			"version", version, "session_backend", d.cfg.SessionBackend,
			"live_generation", d.live)
		return srv.Run(ctx, d.cfg.Addr, d.cfg.TLSCert, d.cfg.TLSKey)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides SCHOLAR_HTTP_ADDR)")
}

// openSessions builds the configured session backend and starts its
// expiry sweep. The returned func stops the sweep, waiting for a running
// prune, and releases the backend. Call it before closing st.
func openSessions(ctx context.Context, cfg config.Config, st *store.Store, log *logger.Logger) (session.Store, func(), error) {
	switch cfg.SessionBackend {
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		log.Info("session backend ready", "backend", "redis", "addr", cfg.RedisAddr)
		return session.NewRedisStore(client, cfg.SessionTTL), func() { _ = client.Close() }, nil

	case config.BackendSQLite:
		s := session.NewSQLStore(st.SessionRepo(), cfg.SessionTTL)
		stop := startSweep(ctx, log, sweepInterval, s.Prune)
		log.Info("session backend ready", "backend", "sqlite")
		return s, stop, nil

	default:
		s := session.NewMemoryStore(cfg.SessionTTL)
		stop := startSweep(ctx, log, sweepInterval, func(context.Context) (int, error) {
			return s.DeleteExpired(), nil
		})
		log.Info("session backend ready", "backend", "memory")
		return s, stop, nil
	}
}

// startSweep runs prune every interval until ctx ends or the returned stop
// func is called. stop returns once no prune is running.
func startSweep(ctx context.Context, log *logger.Logger, interval time.Duration, prune func(context.Context) (int, error)) func() {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		sweep(ctx, log, interval, prune)
	}()
	return func() {
		cancel()
		<-done
	}
}

func sweep(ctx context.Context, log *logger.Logger, interval time.Duration, prune func(context.Context) (int, error)) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := prune(ctx)
			if err != nil {
				log.Warn("session sweep failed", "error", err)
				continue
			}
			if n > 0 {
				log.Debug("expired sessions removed", "count", n)
			}
		}
	}
}

// newTranscriber uses the Groq credential for Whisper. Without one, voice
// input reports itself unavailable.
func newTranscriber(cfg config.Config, log *logger.Logger) transcribe.Transcriber {
	if cfg.LLM.Groq.APIKey == "" {
		log.Info("voice transcription disabled, no Groq API key")
		return transcribe.Unavailable{}
	}
	return transcribe.NewWhisperTranscriberFromKey(cfg.LLM.Groq.APIKey, cfg.LLM.Groq.BaseURL, cfg.TranscribeModel)
}
