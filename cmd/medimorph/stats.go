package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KARTHIKRAIG/MEDIMORPH/medrec"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Report record counts per collection",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, store *medrec.Store) error {
			stats, err := store.CollectionStats(ctx)
			if err != nil {
				return err
			}
			for _, name := range []string{
				"users", "medications", "reminders",
				"medication_logs", "prescription_uploads",
			} {
				fmt.Fprintf(cmd.OutOrStdout(), "%-22s %d\n", name, stats[name])
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
