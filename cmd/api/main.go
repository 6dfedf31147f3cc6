package main

import (
	"fmt"
	"os"

	_ "tallerpro/docs"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "tallerpro",
	Short: "Repair-shop work orders, deposits and staff access",
	Long:  "tallerpro serves the work-order lifecycle and payment ledger API.\nRunning it without a subcommand starts the HTTP server.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.Version = version
}

// @title           TallerPro API
// @version         1.0
// @description     Repair-shop work orders, deposits and staff access.

// @host localhost:8080

// @BasePath  /api

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
