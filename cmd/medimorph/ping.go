package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KARTHIKRAIG/MEDIMORPH/meddb"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check database connectivity",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig()
		if err != nil {
			return err
		}

		if err := meddb.TestConnection(config); err != nil {
			return fmt.Errorf("connection test: %w", err)
		}

		access, err := meddb.Connect(config)
		if err != nil {
			return err
		}
		defer func() {
			_ = access.Disconnect()
		}()
		if err := access.Ping(); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Database %s is reachable\n", config.Database)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pingCmd)
}
