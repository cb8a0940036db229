package commands

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/jwhan/fintab/internal/contracts"
	"github.com/jwhan/fintab/internal/export"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <ticker>",
	Short: "Analyze a company's financial growth",
	Long: `Fetches SEC EDGAR company facts for a ticker, organizes annual and
quarterly series for the tracked metrics, and prints growth rates with
data quality reporting.

The ticker is normalized first: class shares like BRK.B are rewritten
to EDGAR's hyphen form, and renamed tickers (FB, TWTR) are corrected.

Example:
  go run ./cmd/fintab analyze AAPL
  go run ./cmd/fintab analyze BRK.B
  go run ./cmd/fintab analyze MSFT --export growth
  go run ./cmd/fintab analyze MSFT --export annual --output msft.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

var (
	analyzeExport string
	analyzeOutput string
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Flags
	analyzeCmd.Flags().StringVar(&analyzeExport, "export", "", "write a CSV table instead of printing (annual|quarterly|growth)")
	analyzeCmd.Flags().StringVar(&analyzeOutput, "output", "", "CSV output path (default <ticker>_<kind>_data.csv)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	d, err := buildDeps()
	if err != nil {
		return err
	}
	defer d.close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := d.service.Analyze(ctx, args[0])
	if err != nil {
		PrintError(fmt.Sprintf("Analysis failed: %v", err))
		return err
	}

	if analyzeExport != "" {
		return writeExport(result)
	}

	printResult(result)
	return nil
}

// writeExport renders one CSV table to a file
func writeExport(result *contracts.AnalysisResult) error {
	kind, err := export.ParseKind(analyzeExport)
	if err != nil {
		return err
	}

	path := analyzeOutput
	if path == "" {
		path = export.Filename(result.Ticker, kind)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := export.WriteCSV(f, result, kind); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	PrintSuccess(fmt.Sprintf("Exported %s table to %s", kind, path))
	return nil
}

// printResult renders the full analysis to the terminal
func printResult(result *contracts.AnalysisResult) {
	fmt.Println()
	PrintDoubleSeparator()
	name := result.CompanyName
	if name == "" {
		name = result.Ticker
	}
	fmt.Printf("  %s (%s)\n", name, result.Ticker)
	PrintSeparator()
	PrintKeyValue("Generated", result.GeneratedAt.Format("2006-01-02 15:04 MST"), 10)
	PrintDoubleSeparator()

	if result.Empty() {
		PrintWarning("No usable financial data for any tracked metric")
		return
	}

	printValuesTable(result, contracts.FrameAnnual, "Annual values")
	printValuesTable(result, contracts.FrameQuarterly, "Quarterly values")
	printGrowthTable(result)

	if len(result.Unavailable) > 0 {
		fmt.Println()
		labels := make([]string, 0, len(result.Unavailable))
		for _, metric := range result.Unavailable {
			labels = append(labels, metric.Label())
		}
		PrintInfo("No data available for:")
		PrintList(labels)
	}

	if warnings := result.Warnings(); len(warnings) > 0 {
		fmt.Println()
		for _, w := range warnings {
			PrintWarning(w)
		}
	}
	fmt.Println()
}

// printValuesTable prints one period-by-metric value table
func printValuesTable(result *contracts.AnalysisResult, frame contracts.Frame, title string) {
	type period struct {
		label string
		end   time.Time
	}
	seen := make(map[string]period)
	values := make(map[string]map[contracts.Metric]float64)

	for _, metric := range contracts.MetricOrder {
		analysis, ok := result.Metrics[metric]
		if !ok {
			continue
		}
		for _, key := range analysis.Series.Keys(frame) {
			if _, ok := seen[key.Label]; !ok {
				seen[key.Label] = period{label: key.Label, end: key.PeriodEnd}
				values[key.Label] = make(map[contracts.Metric]float64)
			}
			values[key.Label][metric], _ = analysis.Series.Value(key)
		}
	}

	if len(seen) == 0 {
		return
	}

	periods := make([]period, 0, len(seen))
	for _, p := range seen {
		periods = append(periods, p)
	}
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].end.Before(periods[j].end)
	})

	fmt.Println()
	fmt.Printf("📊 %s\n", title)

	columns := []string{"Period"}
	widths := []int{8}
	for _, metric := range contracts.MetricOrder {
		columns = append(columns, metric.Label())
		widths = append(widths, 16)
	}
	PrintTableHeader(columns, widths)

	for _, p := range periods {
		row := []string{p.label}
		for _, metric := range contracts.MetricOrder {
			if v, ok := values[p.label][metric]; ok {
				row = append(row, formatValue(v))
			} else {
				row = append(row, "-")
			}
		}
		PrintTableRow(row, widths)
	}
}

// printGrowthTable prints every growth result in pipeline order
func printGrowthTable(result *contracts.AnalysisResult) {
	fmt.Println()
	fmt.Println("📈 Growth rates")

	columns := []string{"Metric", "Kind", "From", "To", "Rate"}
	widths := []int{18, 6, 9, 9, 12}
	PrintTableHeader(columns, widths)

	for _, metric := range contracts.MetricOrder {
		analysis, ok := result.Metrics[metric]
		if !ok {
			continue
		}
		for i := range analysis.Growth {
			g := &analysis.Growth[i]
			PrintTableRow([]string{
				metric.Label(),
				string(g.Kind),
				g.From.Label,
				g.To.Label,
				g.Display(),
			}, widths)
		}
	}
}

// formatValue renders a metric value compactly: dollar amounts in
// millions or billions, per-share values as-is
func formatValue(v float64) string {
	abs := v
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= 1e9:
		return fmt.Sprintf("%.2fB", v/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("%.2fM", v/1e6)
	default:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}
