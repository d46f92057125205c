package commands

import (
	"github.com/spf13/cobra"
)

var (
	flagFormat  string
	flagOutput  string
	flagWorkers int
	flagNoColor bool
)

var rootCmd = &cobra.Command{
	Use:   "aivss",
	Short: "Deterministic AIVSS scoring for agentic AI security assessments",
	Long:  `aivss scores agentic AI security assessments: it parses CVSS:4.0 vectors, aggregates the ten agentic risk factors, applies threat multipliers, and produces a ranked ten-category report.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "terminal", "Output format (terminal, json, markdown, sarif)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.PersistentFlags().IntVar(&flagWorkers, "workers", 0, "Number of scoring workers (default: NumCPU)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
