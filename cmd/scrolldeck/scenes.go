package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var scenesCmd = &cobra.Command{
	Use:   "scenes",
	Short: "List the scene deck with ordinals and deep links",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		deck, err := loadDeck(cfg)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "#\tID\tEMBED\tTITLE")
		for _, d := range deck.Registry.All() {
			embed := ""
			if d.OwnsInternalScroll {
				embed = "yes"
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", d.Ordinal, d.ID, embed, d.Title)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		links := deck.Links.Fragments()
		if len(links) == 0 {
			return nil
		}
		fragments := make([]string, 0, len(links))
		for f := range links {
			fragments = append(fragments, f)
		}
		sort.Strings(fragments)

		fmt.Fprintln(cmd.OutOrStdout())
		for _, f := range fragments {
			fmt.Fprintf(cmd.OutOrStdout(), "#%s -> %s\n", f, links[f])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scenesCmd)
}
