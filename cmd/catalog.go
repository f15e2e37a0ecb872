package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse the outcome catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List outcome categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-10s  %-40s  %5s  %7s\n", "ID", "Title", "Slots", "Options")
		fmt.Fprintln(out, strings.Repeat("─", 68))
		cats := cat.Categories()
		for _, c := range cats {
			fmt.Fprintf(out, "%-10s  %-40s  %5d  %7d\n",
				c.ID, c.Title, len(cat.SlotTemplatesFor(c.ID)), len(cat.OptionsFor(c.ID)))
		}
		fmt.Fprintf(out, "\n%d categories\n", len(cats))
		return nil
	},
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <category>",
	Short: "Show the slots and options of one category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		c, ok := cat.Category(args[0])
		if !ok {
			return fmt.Errorf("unknown category %q", args[0])
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %s\n", c.ID, c.Title)
		fmt.Fprintf(out, "%s\n\n", c.Component.Description)
		opts := cat.OptionsFor(c.ID)
		for _, tmpl := range cat.SlotTemplatesFor(c.ID) {
			fmt.Fprintf(out, "%s (%s)\n", tmpl.Name, tmpl.ID)
			for _, o := range opts {
				if o.Target != tmpl.ID {
					continue
				}
				mark := " "
				if o.Correct {
					mark = "✓"
				}
				fmt.Fprintf(out, "  %s %-8s %s\n", mark, o.ID, o.Text)
			}
		}
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogShowCmd)
}
