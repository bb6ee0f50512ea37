package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KARTHIKRAIG/MEDIMORPH/medrec"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the default development accounts",
	Long: "Create the fixed development accounts if they do not exist.\n" +
		"Idempotent, and refuses to run when ENVIRONMENT=production.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, store *medrec.Store) error {
			created, err := store.SeedDefaultAccounts(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %d default users\n", created)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
