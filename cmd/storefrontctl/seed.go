package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/storefront-admin/storefront-admin/internal/categories"
)

var seedFile string

var seedCategoriesCmd = &cobra.Command{
	Use:   "seed-categories",
	Short: "Load categories from a JSON file into an empty table",
	Long: `Load the categories listed in a JSON file. The file holds an array of
{"nome": ..., "descricao": ...} objects. Nothing is inserted when the
categoria table already has rows.

Examples:
  storefrontctl seed-categories --file data/categorias.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		seed, err := categories.LoadSeedFile(seedFile)
		if err != nil {
			return err
		}
		pool, err := connect(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		inserted, err := categories.NewService(categories.NewRepository(pool)).Seed(ctx, seed)
		if err != nil {
			return err
		}
		logger().Debug("seed finished", "file", seedFile, "entries", len(seed))
		fmt.Fprintf(cmd.OutOrStdout(), "%d categories inserted\n", inserted)
		return nil
	},
}

func init() {
	seedCategoriesCmd.Flags().StringVar(&seedFile, "file", "", "Path to the categories JSON file")
	_ = seedCategoriesCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(seedCategoriesCmd)
}
