package commands

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/macrolens/calorizator/internal/domain"
	"github.com/macrolens/calorizator/internal/infrastructure/jsonfile"
)

var searchFormat string

var searchCmd = &cobra.Command{
	Use:   "search <query> [--format json|table]",
	Short: "Searches products whose name contains the query.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if searchFormat != "json" && searchFormat != "table" {
			return fmt.Errorf("unknown format %q, want json or table", searchFormat)
		}

		parser, err := newParser(cmd.Context())
		if err != nil {
			return err
		}

		matches, err := parser.SearchProducts(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}

		if searchFormat == "table" {
			renderMatches(cmd, matches)
			return nil
		}

		out, err := jsonfile.Encode(matches)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func renderMatches(cmd *cobra.Command, matches map[string]domain.SearchMatch) {
	names := make([]string, 0, len(matches))
	for name := range matches {
		names = append(names, name)
	}
	slices.Sort(names)

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"Product", "Page", "Protein, g", "Fat, g", "Carbs, g", "Kcal"})
	for _, name := range names {
		m := matches[name]
		t.AppendRow(table.Row{m.Name, m.PageNumber, m.Data.Protein, m.Data.Fat, m.Data.Carbohydrates, m.Data.Calories})
	}
	t.AppendFooter(table.Row{"", "", "", "", "Total", len(matches)})
	t.SetStyle(table.StyleRounded)
	t.Render()
}

func init() {
	searchCmd.Flags().StringVar(&searchFormat, "format", "json", "Output format: json or table.")
	rootCmd.AddCommand(searchCmd)
}
