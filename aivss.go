// Package aivss provides a public API for deterministic AIVSS scoring of
// agentic AI security assessments.
//
// This is the library entry point. For the CLI tool, see cmd/aivss/.
package aivss

import (
	"context"
	"fmt"

	"github.com/aegentdev/aivss/internal/assess"
	"github.com/aegentdev/aivss/internal/composite"
	"github.com/aegentdev/aivss/internal/factors"
	"github.com/aegentdev/aivss/internal/report"
	"github.com/aegentdev/aivss/internal/severity"
	"github.com/aegentdev/aivss/internal/taxonomy"
	"github.com/aegentdev/aivss/internal/threat"
	"github.com/aegentdev/aivss/internal/vector"
)

// Re-export core types from internal packages so consumers don't need to
// import internal packages.
type (
	Rating             = composite.Rating
	Score              = composite.Score
	Report             = report.Report
	Metadata           = report.Metadata
	CategoryAssessment = report.CategoryAssessment
	FactorScores       = factors.Scores
	Request            = assess.Request
	CategoryInput      = assess.CategoryInput
	Category           = taxonomy.Category
)

const (
	RatingNone     = composite.RatingNone
	RatingLow      = composite.RatingLow
	RatingMedium   = composite.RatingMedium
	RatingHigh     = composite.RatingHigh
	RatingCritical = composite.RatingCritical
)

// SchemaVersion is the taxonomy revision stamped into every report.
const SchemaVersion = taxonomy.SchemaVersion

// DefaultThreatMultiplier applies when no threat intelligence is supplied.
const DefaultThreatMultiplier = threat.Default

// Assess scores every category of the request and returns the validated,
// taxonomy-ordered report.
func Assess(ctx context.Context, req Request, opts ...Option) (*Report, error) {
	cfg := applyOpts(opts)
	engine, err := buildEngine(cfg)
	if err != nil {
		return nil, err
	}
	return engine.Run(ctx, req)
}

// AssessFile loads a request document from a YAML or JSON file and scores it.
func AssessFile(ctx context.Context, path string, opts ...Option) (*Report, error) {
	req, err := assess.LoadRequest(path)
	if err != nil {
		return nil, err
	}
	return Assess(ctx, req, opts...)
}

// ScoreVector parses a CVSS:4.0 vector and returns its interpolated base
// score.
func ScoreVector(vectorText string) (float64, error) {
	v, err := vector.Parse(vectorText)
	if err != nil {
		return 0, err
	}
	return severity.New(nil).Score(v)
}

// ScoreComposite combines a base severity, an AARS value, and a threat
// multiplier into the final composite score.
func ScoreComposite(baseScore, aars, multiplier float64) (Score, error) {
	return composite.Compute(baseScore, aars, multiplier)
}

// Categories returns the fixed taxonomy in declaration order.
func Categories() ([]Category, error) {
	return taxonomy.Categories()
}

// FactorNames returns the ten agentic risk factor names in canonical order.
func FactorNames() []string {
	return factors.Names()
}

// Rank orders a report's category identifiers from highest to lowest risk.
func Rank(r *Report) []string {
	return report.Rank(r)
}

// --- internal helpers ---

func applyOpts(opts []Option) *assessConfig {
	cfg := &assessConfig{}
	for _, o := range opts {
		o(cfg)
	}
	return cfg
}

// buildEngine creates a fully wired assessment engine.
func buildEngine(cfg *assessConfig) (*assess.Engine, error) {
	engine := assess.New(cfg.workers)

	if len(cfg.threatMultipliers) > 0 {
		table := make(map[threat.Signal]float64, len(cfg.threatMultipliers))
		for name, value := range cfg.threatMultipliers {
			table[threat.Signal(name)] = value
		}
		resolver, err := threat.NewResolver(table)
		if err != nil {
			return nil, fmt.Errorf("threat multiplier table: %w", err)
		}
		engine.SetResolver(resolver)
	}

	return engine, nil
}
