package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/aistack/internal/replay"
)

var replayCmd = &cobra.Command{
	Use:   "replay <script.yaml>",
	Short: "Run a gesture script against the game without a terminal (no database)",
	Long: `Replay taps, pointer drags and touch drags from a YAML script on a
simulated clock and print what each step did.

This is a stateless developer tool: nothing is recorded.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, err := stderrLogger(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		script, err := replay.ParseFile(args[0])
		if err != nil {
			return err
		}

		rep := replay.Runner{
			Source: cat,
			Rand:   newRand(cfg),
			Config: engineConfig(cfg),
		}.Run(script)
		logger.Info("replay finished",
			zap.String("script", args[0]),
			zap.String("category", rep.Category),
			zap.Int("steps", len(rep.Steps)),
			zap.Bool("complete", rep.Complete))

		return replay.Write(cmd.OutOrStdout(), rep)
	},
}
