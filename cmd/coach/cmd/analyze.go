package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arthguru/finance-coach/internal/analysis"
	"github.com/arthguru/finance-coach/internal/cli"
	"github.com/arthguru/finance-coach/internal/pipeline"
)

var (
	analyzeInput  string
	analyzeSample bool
	analyzeSeed   int64
	analyzeJSON   bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full pipeline over a ledger and print the results",
	Long: `Analyze loads a CSV ledger (or generates a sample one), runs the
metric and planning stages, and prints the metrics, recommendations,
goals, and monthly cash flow report.

Example:
  coach analyze --input ledger.csv
  coach analyze --sample --seed 42
  coach analyze --input ledger.csv --json > results.json`,
	Run: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeInput, "input", "", "path to a CSV ledger")
	analyzeCmd.Flags().BoolVar(&analyzeSample, "sample", false, "analyze a generated sample ledger")
	analyzeCmd.Flags().Int64Var(&analyzeSeed, "seed", 0, "sample generation seed (0 = time-based)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print machine-readable JSON instead of styled output")
}

func runAnalyze(cmd *cobra.Command, args []string) {
	ledger, _, err := loadLedger(analyzeInput, analyzeSample, analyzeSeed)
	exitOnError(err, "failed to load ledger")
	log.Debug().Int("transactions", len(ledger)).Msg("Ledger loaded")

	ctrl := pipeline.New(ledger)
	exitOnError(ctrl.Run(), "analysis failed")

	metrics, err := ctrl.Metrics()
	exitOnError(err, "metrics unavailable")
	plan, err := ctrl.Plan()
	exitOnError(err, "plan unavailable")
	months := analysis.MonthlySeries(ledger)

	if analyzeJSON {
		exitOnError(cli.EncodeJSON(os.Stdout, metrics, plan, months), "failed to encode results")
		return
	}

	fmt.Println(cli.RenderTitle())
	fmt.Println()
	fmt.Println(cli.RenderMetrics(metrics))
	fmt.Println(cli.RenderPlan(plan))
	fmt.Println(cli.RenderReport(months))
}
