package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aegentdev/aivss/internal/assess"
	"github.com/aegentdev/aivss/internal/composite"
	"github.com/aegentdev/aivss/internal/config"
	"github.com/aegentdev/aivss/internal/history"
	"github.com/aegentdev/aivss/internal/output"
	"github.com/aegentdev/aivss/internal/report"
	"github.com/aegentdev/aivss/internal/threat"
)

var (
	flagFailOn      string
	flagCI          bool
	flagVerbose     bool
	flagTrack       bool
	flagHistoryPath string
	flagThreatTable string
)

var assessCmd = &cobra.Command{
	Use:   "assess <request-file>",
	Short: "Score an assessment request and produce the ranked report",
	Args:  cobra.ExactArgs(1),
	RunE:  runAssess,
}

func init() {
	assessCmd.Flags().StringVar(&flagFailOn, "fail-on", "", "Exit with code 1 if any category reaches this rating (critical, high, medium, low)")
	assessCmd.Flags().BoolVar(&flagCI, "ci", false, "CI mode: equivalent to --fail-on high --format terminal --no-color")
	assessCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Show vectors and rationales per category")
	assessCmd.Flags().BoolVar(&flagTrack, "track", false, "Record the result and warn when the agent's risk increased since the last run")
	assessCmd.Flags().StringVar(&flagHistoryPath, "history-path", "", "Path to history file for --track (default: ~/.aivss/history.json)")
	assessCmd.Flags().StringVar(&flagThreatTable, "threat-table", "", "YAML file mapping threat signals to multipliers")
	rootCmd.AddCommand(assessCmd)
}

func runAssess(cmd *cobra.Command, args []string) error {
	requestPath := args[0]

	cfg := loadAssessConfig(cmd, requestPath)
	applyCIDefaults()

	req, err := assess.LoadRequest(requestPath)
	if err != nil {
		return err
	}

	engine, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := contextWithInterrupt()
	defer cancel()

	rep, err := engine.Run(ctx, req)
	if err != nil {
		return fmt.Errorf("assessment failed: %w", err)
	}

	if flagTrack {
		trackHistory(rep)
	}

	if err := writeOutput(rep); err != nil {
		return err
	}

	return checkFailOnThreshold(rep)
}

// trackHistory records the agent's top risk and warns on drift since the
// previous run. Failures here never abort the assessment.
func trackHistory(rep *report.Report) {
	path := flagHistoryPath
	if path == "" {
		path = history.DefaultPath()
	}
	store := history.New(path)
	if err := store.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: loading history: %v\n", err)
		return
	}

	topID := report.Rank(rep)[0]
	var topScore float64
	for _, a := range rep.Assessments {
		if a.CategoryID == topID {
			topScore = a.AIVSS.FinalScore
			break
		}
	}

	if prev, ok := store.Get(rep.Metadata.AgentName); ok && topScore > prev.TopScore {
		fmt.Fprintf(os.Stderr, "warning: risk increased for %s: top score %.1f (was %.1f on %s)\n",
			rep.Metadata.AgentName, topScore, prev.TopScore, prev.AssessedAt)
	}

	store.Set(rep.Metadata.AgentName, topID, topScore, rep.AgenticRiskScore.FinalAARSScore)
	if err := store.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: saving history: %v\n", err)
	}
}

// loadAssessConfig reads .aivss.yml next to the request file. Flags set on
// the command line win over the config file.
func loadAssessConfig(cmd *cobra.Command, requestPath string) config.Config {
	cfg, err := config.Load(requestPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	if !cmd.Flags().Changed("format") && cfg.Format != "" {
		flagFormat = cfg.Format
	}
	if !cmd.Flags().Changed("fail-on") && cfg.FailOn != "" {
		flagFailOn = cfg.FailOn
	}
	if !cmd.Flags().Changed("workers") && cfg.Workers > 0 {
		flagWorkers = cfg.Workers
	}
	if !cmd.Flags().Changed("no-color") && cfg.NoColor {
		flagNoColor = true
	}
	return cfg
}

func applyCIDefaults() {
	if flagCI {
		if flagFailOn == "" {
			flagFailOn = "high"
		}
		if flagFormat == "terminal" {
			flagNoColor = true
		}
	}
	if os.Getenv("NO_COLOR") != "" {
		flagNoColor = true
	}
}

// buildEngine creates the scoring engine, applying threat multiplier
// overrides. The --threat-table file wins over the config file.
func buildEngine(cfg config.Config) (*assess.Engine, error) {
	engine := assess.New(flagWorkers)

	multipliers := cfg.ThreatMultipliers
	if flagThreatTable != "" {
		loaded, err := loadThreatTable(flagThreatTable)
		if err != nil {
			return nil, err
		}
		multipliers = loaded
	}

	if len(multipliers) > 0 {
		table := make(map[threat.Signal]float64, len(multipliers))
		for name, value := range multipliers {
			table[threat.Signal(name)] = value
		}
		resolver, err := threat.NewResolver(table)
		if err != nil {
			return nil, fmt.Errorf("threat multipliers: %w", err)
		}
		engine.SetResolver(resolver)
	}

	return engine, nil
}

func loadThreatTable(path string) (map[string]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading threat table: %w", err)
	}
	var table map[string]float64
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parsing threat table %s: %w", path, err)
	}
	return table, nil
}

func contextWithInterrupt() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		<-sigCh
		cancel()
	}()
	return ctx, cancel
}

func writeOutput(rep *report.Report) error {
	output.ToolVersion = Version

	var formatter output.Formatter
	switch strings.ToLower(flagFormat) {
	case "json":
		formatter = &output.JSONFormatter{}
	case "sarif":
		formatter = &output.SARIFFormatter{}
	case "markdown", "md":
		formatter = &output.MarkdownFormatter{}
	default:
		formatter = &output.TerminalFormatter{NoColor: flagNoColor, Verbose: flagVerbose}
	}

	w := os.Stdout
	if flagOutput != "" {
		f, err := os.Create(flagOutput)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	return formatter.Format(w, rep)
}

func checkFailOnThreshold(rep *report.Report) error {
	if flagFailOn == "" {
		return nil
	}
	threshold, err := composite.ParseRating(flagFailOn)
	if err != nil {
		return fmt.Errorf("invalid --fail-on: %w", err)
	}
	for _, a := range rep.Assessments {
		if a.AIVSS.QualitativeRating >= threshold {
			os.Exit(1)
		}
	}
	return nil
}
