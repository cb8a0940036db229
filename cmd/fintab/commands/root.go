package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	env        string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fintab",
	Short: "fintab - SEC EDGAR financial growth analysis",
	Long: `fintab Unified CLI

Fetches SEC EDGAR company facts, organizes revenue, profit, and EPS
series by fiscal period, and computes CAGR, YoY, and QoQ growth with
data quality reporting.

Usage:
  go run ./cmd/fintab [command]

Examples:
  go run ./cmd/fintab analyze AAPL
  go run ./cmd/fintab analyze BRK.B --export growth
  go run ./cmd/fintab api
  go run ./cmd/fintab scheduler`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
