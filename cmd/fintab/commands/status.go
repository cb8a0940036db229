package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check connectivity of all dependencies",
	Long: `Checks every external dependency and prints the result.

Checked:
- SEC EDGAR: fetches the ticker index and reports the company count
- Redis: ping, or disabled when REDIS_ENABLED=false
- PostgreSQL: pool health, or skipped when DATABASE_URL is unset

Example:
  go run ./cmd/fintab status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	fmt.Println("=== fintab Status ===")
	fmt.Println()

	d, err := buildDeps()
	if err != nil {
		return err
	}
	defer d.close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	failures := 0

	// 1. EDGAR
	fmt.Println("🌐 SEC EDGAR")
	index, err := d.edgar.TickerIndex(ctx)
	if err != nil {
		PrintError(fmt.Sprintf("Ticker index fetch failed: %v", err))
		failures++
	} else {
		PrintSuccess(fmt.Sprintf("Ticker index reachable (%d companies)", len(index)))
	}
	fmt.Println()

	// 2. Redis
	fmt.Println("🔴 Redis")
	switch {
	case d.rdb == nil || !d.rdb.Enabled():
		PrintInfo("Disabled (analysis runs uncached)")
	default:
		if err := d.rdb.Redis().Ping(ctx).Err(); err != nil {
			PrintError(fmt.Sprintf("Ping failed: %v", err))
			failures++
		} else {
			PrintSuccess("Connected")
		}
	}
	fmt.Println()

	// 3. PostgreSQL
	fmt.Println("🗄️  PostgreSQL")
	if d.db == nil {
		PrintInfo("DATABASE_URL not set (snapshots are not persisted)")
	} else {
		health, err := d.db.HealthCheck(ctx)
		if err != nil {
			PrintError(fmt.Sprintf("Health check failed: %v", err))
			failures++
		} else {
			PrintSuccess(fmt.Sprintf("Connected (%d/%d connections in use, ping %v)",
				health.Stats.AcquiredConns, health.Stats.TotalConns, health.ResponseTime))
		}
	}
	fmt.Println()

	if failures > 0 {
		return fmt.Errorf("%d dependency check(s) failed", failures)
	}

	PrintSuccess("All dependencies healthy")
	return nil
}
