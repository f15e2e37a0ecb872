package cmd

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/aistack/internal/catalog"
	"github.com/abhisek/aistack/internal/config"
	"github.com/abhisek/aistack/internal/logging"
	"github.com/abhisek/aistack/internal/stack"
	"github.com/abhisek/aistack/internal/store"
)

var rootCmd = &cobra.Command{
	Use:          "aistack",
	Short:        "Build-your-AI-stack kiosk",
	Long:         "aistack is a terminal kiosk where visitors pick a business outcome and assemble the AI stack that delivers it.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides AISTACK_DB env var)")
	pf.String("log-level", "", "Log level: debug, info, warn, error or off (overrides AISTACK_LOG_LEVEL)")
	pf.String("log-file", "", "Log file for the interactive kiosk (overrides AISTACK_LOG_FILE)")
	pf.String("catalog", "", "Catalog YAML replacing the built-in one (overrides AISTACK_CATALOG)")
	pf.Uint64("seed", 0, "Shuffle seed; 0 picks a random one (overrides AISTACK_SEED)")
	pf.Bool("profile-form", false, "Ask visitors for their details before the game (overrides AISTACK_PROFILE_FORM)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the environment, then applies any flags that were set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	f := cmd.Flags()
	if f.Changed("db") {
		cfg.DBPath, _ = f.GetString("db")
	}
	if f.Changed("log-level") {
		cfg.LogLevel, _ = f.GetString("log-level")
	}
	if f.Changed("log-file") {
		cfg.LogFile, _ = f.GetString("log-file")
	}
	if f.Changed("catalog") {
		cfg.CatalogFile, _ = f.GetString("catalog")
	}
	if f.Changed("seed") {
		cfg.Seed, _ = f.GetUint64("seed")
	}
	if f.Changed("profile-form") {
		cfg.ProfileForm, _ = f.GetBool("profile-form")
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// loadCatalog returns the configured catalog, or the built-in one.
func loadCatalog(cfg config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogFile == "" {
		return catalog.Default(), nil
	}
	c, err := catalog.LoadFile(cfg.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return c, nil
}

// newRand seeds the shuffle source. A zero seed is replaced by a random one.
func newRand(cfg config.Config) stack.Rand {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed))
}

func engineConfig(cfg config.Config) stack.Config {
	return stack.Config{FeedbackDelay: cfg.FeedbackDelay, SettleDelay: cfg.SettleDelay}
}

// openStore opens the analytics database at the configured path.
func openStore(cfg config.Config) (*store.Store, error) {
	dbPath, err := cfg.ResolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// stderrLogger is the logger for headless commands.
func stderrLogger(cfg config.Config) (*zap.Logger, error) {
	return logging.New(logging.Options{Level: cfg.LogLevel})
}
