package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"padelmania/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Catalog maintenance",
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Check a catalog file without starting the server",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.CatalogPath
		if len(args) == 1 {
			path = args[0]
		}

		cat, err := catalog.Load(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ %s: %d products in %d categories\n", path, cat.Len(), len(cat.Categories()))
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogValidateCmd)
}
