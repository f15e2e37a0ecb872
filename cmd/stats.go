package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show play statistics per outcome",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		stats, err := st.EventRepo().Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(stats) == 0 {
			fmt.Fprintln(out, "No games played yet.")
			return nil
		}
		fmt.Fprintf(out, "%-10s  %7s  %9s  %9s  %8s  %5s\n",
			"Category", "Started", "Completed", "Abandoned", "Attempts", "Wrong")
		fmt.Fprintln(out, strings.Repeat("─", 60))
		for _, s := range stats {
			fmt.Fprintf(out, "%-10s  %7d  %9d  %9d  %8d  %5d\n",
				s.Category, s.Started, s.Completed, s.Abandoned, s.Attempts, s.WrongAttempts)
		}
		return nil
	},
}
