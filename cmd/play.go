package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play [category]",
	Short: "Skip the intro and build the stack for one outcome",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		category := "button-1"
		if len(args) == 1 {
			category = args[0]
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		if _, ok := cat.Category(category); !ok {
			return fmt.Errorf("unknown category %q (see aistack catalog list)", category)
		}
		return runApp(cmd, category)
	},
}
