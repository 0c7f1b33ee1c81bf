package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/macrolens/calorizator/internal/usecase"
)

var (
	dumpPage int
	dumpAll  bool
)

var dumpCmd = &cobra.Command{
	Use:   "dump [--page <n>] [--all=false]",
	Short: "Writes one listing page or the whole listing to JSON.",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := usecase.DumpOptions{AllPages: dumpAll}
		if cmd.Flags().Changed("page") {
			if dumpPage < 0 {
				return fmt.Errorf("page must not be negative, got %d", dumpPage)
			}
			opts.Page = &dumpPage
		}

		parser, err := newParser(cmd.Context())
		if err != nil {
			return err
		}

		path, err := parser.DumpToFile(cmd.Context(), opts)
		if err != nil {
			return err
		}
		if path != "" {
			fmt.Fprintln(cmd.OutOrStdout(), path)
		}
		return nil
	},
}

func init() {
	dumpCmd.Flags().IntVar(&dumpPage, "page", 0, "Dump only this page index into calorizator_page_<n>.json.")
	dumpCmd.Flags().BoolVar(&dumpAll, "all", true, "Dump every page into calorizator.json (ignored with --page).")
	rootCmd.AddCommand(dumpCmd)
}
