package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	uriFlag    string
	dbFlag     string
)

var rootCmd = &cobra.Command{
	Use:   "medimorph",
	Short: "medimorph manages the medication-tracking database",
	Long: "medimorph is the operational CLI for the MEDIMORPH data layer.\n" +
		"It checks database connectivity, seeds the development accounts\n" +
		"and reports per-collection record counts.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&uriFlag, "uri", "", "MongoDB connection URI (overrides config)")
	rootCmd.PersistentFlags().StringVar(&dbFlag, "database", "", "Database name (overrides config)")
}
