package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/aistack/internal/app"
	"github.com/abhisek/aistack/internal/logging"
	"github.com/abhisek/aistack/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI. A
// non-empty category opens the builder directly.
func runApp(cmd *cobra.Command, category string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go to a file.
	logOpts := logging.Options{Level: cfg.LogLevel}
	if cfg.LoggingEnabled() {
		if logOpts.Path, err = cfg.ResolveLogFile(); err != nil {
			return fmt.Errorf("resolve log file: %w", err)
		}
	}
	logger, err := logging.New(logOpts)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	logger.Info("kiosk starting",
		zap.String("category", category),
		zap.Bool("profile_form", cfg.ProfileForm),
		zap.Int("categories", len(cat.Categories())))

	return app.Run(app.Options{
		Catalog:  cat,
		Config:   cfg,
		Recorder: store.NewRecorder(st.EventRepo(), logger),
		Logger:   logger,
		Rand:     newRand(cfg),
		Category: category,
	})
}
