// Package assess orchestrates a full assessment run: it scores the ten
// category inputs of a request concurrently, then joins the results into a
// validated, ranked report.
package assess

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aegentdev/aivss/internal/composite"
	"github.com/aegentdev/aivss/internal/factors"
	"github.com/aegentdev/aivss/internal/report"
	"github.com/aegentdev/aivss/internal/severity"
	"github.com/aegentdev/aivss/internal/taxonomy"
	"github.com/aegentdev/aivss/internal/threat"
	"github.com/aegentdev/aivss/internal/vector"
)

// Engine scores assessment requests. Every scoring primitive is pure; the
// engine only adds fan-out and the join barrier in front of report.Build.
type Engine struct {
	classifier *severity.Classifier
	resolver   *threat.Resolver
	workers    int
}

// New creates an Engine with the given number of workers. If workers <= 0,
// it defaults to runtime.NumCPU().
func New(workers int) *Engine {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	r, _ := threat.NewResolver(nil) // builtin table never fails validation
	return &Engine{
		classifier: severity.New(nil),
		resolver:   r,
		workers:    workers,
	}
}

// SetTable replaces the severity reference table.
func (e *Engine) SetTable(t *severity.Table) {
	e.classifier = severity.New(t)
}

// SetResolver replaces the threat multiplier resolver.
func (e *Engine) SetResolver(r *threat.Resolver) {
	e.resolver = r
}

// Run scores every category of the request on the worker pool and builds
// the report. Each category is independent; the only ordering constraint is
// the join before validation and ranking. A cancelled context aborts the
// run; partial results are never padded into a report.
func (e *Engine) Run(ctx context.Context, req Request) (*report.Report, error) {
	if req.SchemaVersion != "" {
		if err := taxonomy.CheckVersion(req.SchemaVersion); err != nil {
			return nil, err
		}
	}

	agentFactors, err := factors.FromMap(req.FactorScores)
	if err != nil {
		return nil, fmt.Errorf("agent factor scores: %w", err)
	}

	// Fan out category inputs to workers. Results keep input positions so
	// the run is deterministic regardless of interleaving.
	type job struct {
		index int
		input CategoryInput
	}
	jobCh := make(chan job, len(req.Categories))
	for i, in := range req.Categories {
		jobCh <- job{index: i, input: in}
	}
	close(jobCh)

	var (
		mu          sync.Mutex
		errs        []error
		assessments = make([]report.CategoryAssessment, len(req.Categories))
		wg          sync.WaitGroup
	)

	for i := 0; i < e.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobCh {
				if ctx.Err() != nil {
					return
				}
				a, err := e.scoreCategory(j.input, agentFactors)
				mu.Lock()
				if err != nil {
					errs = append(errs, fmt.Errorf("category %s: %w", j.input.Category, err))
				} else {
					assessments[j.index] = a
				}
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	meta := req.Metadata
	if meta.AssessmentID == "" {
		meta.AssessmentID = uuid.NewString()
	}
	if meta.AssessmentDate == "" {
		meta.AssessmentDate = time.Now().UTC().Format(time.RFC3339)
	}

	return report.Build(meta, agentFactors, assessments)
}

// scoreCategory runs the full per-category pipeline: parse, classify,
// aggregate, resolve, combine.
func (e *Engine) scoreCategory(in CategoryInput, agentFactors factors.Scores) (report.CategoryAssessment, error) {
	v, err := vector.Parse(in.Vector)
	if err != nil {
		return report.CategoryAssessment{}, err
	}

	baseScore, err := e.classifier.Score(v)
	if err != nil {
		return report.CategoryAssessment{}, err
	}

	canonical, err := vector.Serialize(v)
	if err != nil {
		return report.CategoryAssessment{}, err
	}

	catFactors := agentFactors
	if in.Factors != nil {
		catFactors, err = factors.FromMap(in.Factors)
		if err != nil {
			return report.CategoryAssessment{}, err
		}
	}
	aars, err := catFactors.Aggregate()
	if err != nil {
		return report.CategoryAssessment{}, err
	}

	multiplier, err := e.resolveMultiplier(in, v)
	if err != nil {
		return report.CategoryAssessment{}, err
	}

	score, err := composite.Compute(baseScore, aars, multiplier)
	if err != nil {
		return report.CategoryAssessment{}, err
	}

	return report.CategoryAssessment{
		CategoryID: in.Category,
		CVSS: report.BaseAssessment{
			BaseScore:    baseScore,
			VectorString: canonical,
			Rationale:    in.Rationale,
		},
		AIVSS: report.CompositeResult{
			FinalScore:        score.Value,
			QualitativeRating: score.Rating,
			Vector:            score.Vector,
		},
	}, nil
}

// resolveMultiplier picks the threat multiplier for a category, in order of
// precedence: raw override, explicit signal, the vector's E metric, default.
func (e *Engine) resolveMultiplier(in CategoryInput, v vector.Vector) (float64, error) {
	if in.Multiplier != nil {
		return e.resolver.ResolveOverride(*in.Multiplier)
	}
	if in.ThreatSignal != "" {
		return e.resolver.Resolve(threat.Signal(in.ThreatSignal))
	}
	if maturity, ok := v[vector.ExploitMaturity]; ok {
		if signal, known := threat.FromExploitMaturity(maturity); known {
			return e.resolver.Resolve(signal)
		}
	}
	return e.resolver.Resolve("")
}
