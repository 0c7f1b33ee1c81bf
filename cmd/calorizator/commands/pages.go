package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/macrolens/calorizator/internal/usecase"
)

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "Prints the number of listing pages.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		parser, err := newParser(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), parser.PageAmount())
		return nil
	},
}

var lettersCmd = &cobra.Command{
	Use:   "letters",
	Short: "Prints the recorded page range of every leading letter.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		index := usecase.NewAlphabetIndex()

		t := table.NewWriter()
		t.SetOutputMirror(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"Letter", "Pages", "Count"})
		for _, letter := range index.Letters() {
			r, err := index.RangeFor(letter)
			if err != nil {
				return err
			}
			t.AppendRow(table.Row{string(letter), r.String(), r.Len()})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pagesCmd)
	rootCmd.AddCommand(lettersCmd)
}
