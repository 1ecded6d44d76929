package main

import (
	"os"
	_ "time/tzdata"

	"github.com/spf13/cobra"

	"github.com/ManuelReschke/RetailFox/internal/pkg/env"
)

var rootCmd = &cobra.Command{
	Use:           "retailfox-admin",
	Short:         "RetailFox database and billing administration",
	Long:          `Schema migrations and billing correlation maintenance for RetailFox`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		env.SetupEnvFile()
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd, storeCmd, billingCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
