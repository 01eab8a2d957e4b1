package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/scholar/internal/config"
	"github.com/abhisek/scholar/internal/generation"
	"github.com/abhisek/scholar/internal/llm"
	"github.com/abhisek/scholar/internal/logger"
	"github.com/abhisek/scholar/internal/store"
	"github.com/abhisek/scholar/internal/tutor"
)

// deps is what every generating command needs: config, logger, the
// event log and a pipeline over the configured provider.
type deps struct {
	cfg      config.Config
	log      *logger.Logger
	store    *store.Store
	pipeline *tutor.Pipeline
	live     bool
}

// loadDeps builds deps. quiet discards logs, for the terminal client where
// stderr output would tear the screen.
func loadDeps(cmd *cobra.Command, quiet bool) (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if m, _ := cmd.Flags().GetString("log-mode"); m != "" {
		cfg.LogMode = m
	}

	log := logger.Nop()
	if !quiet {
		if log, err = logger.New(cfg.LogMode); err != nil {
			return nil, fmt.Errorf("init logger: %w", err)
		}
	}

	st, err := openStore(cmd)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	provider, err := newProvider(cmd.Context(), cfg.LLM, st.EventRepo(), log)
	if err != nil {
		st.Close()
		return nil, err
	}

	gen := generation.NewClient(provider, log, generation.Config{Timeout: cfg.LLM.Timeout})
	return &deps{
		cfg:      cfg,
		log:      log,
		store:    st,
		pipeline: tutor.NewPipeline(gen),
		live:     gen.HasProvider(),
	}, nil
}

// newProvider builds the LLM provider. A missing credential is not fatal:
// it yields a nil provider and every generation falls back.
func newProvider(ctx context.Context, cfg llm.Config, events store.EventRepo, log *logger.Logger) (llm.Provider, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	provider, err := llm.NewProvider(ctx, cfg, events, log)
	if errors.Is(err, llm.ErrNoCredential) {
		log.Warn("LLM provider not configured, lessons will use placeholder text",
			"provider", cfg.Provider, "error", err)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("create LLM provider: %w", err)
	}
	log.Info("LLM provider ready", "provider", cfg.Provider, "model", provider.ModelID())
	return provider, nil
}

func (d *deps) Close() {
	d.log.Sync()
	_ = d.store.Close()
}
