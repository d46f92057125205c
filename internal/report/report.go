// Package report assembles and validates the fixed-shape assessment report:
// metadata, the agent-level AARS breakdown, and exactly ten category
// assessments. Building and ranking are separate pure operations.
package report

import (
	"errors"
	"fmt"
	"sort"

	"github.com/aegentdev/aivss/internal/composite"
	"github.com/aegentdev/aivss/internal/factors"
	"github.com/aegentdev/aivss/internal/taxonomy"
)

var (
	ErrCategoryCount     = errors.New("report must contain exactly ten category assessments")
	ErrDuplicateCategory = errors.New("duplicate category")
	ErrUnknownCategory   = errors.New("category not in taxonomy")
	ErrMissingMetadata   = errors.New("missing metadata field")
)

// Metadata identifies an assessment run. AgentDescription is the only
// optional field.
type Metadata struct {
	AssessmentID     string `json:"assessmentId" yaml:"assessment_id"`
	AssessmentDate   string `json:"assessmentDate" yaml:"assessment_date"`
	AssessorName     string `json:"assessorName" yaml:"assessor_name"`
	AgentName        string `json:"agentName" yaml:"agent_name"`
	AgentDescription string `json:"agentDescription,omitempty" yaml:"agent_description,omitempty"`
}

// BaseAssessment is the CVSS side of one category: the interpolated base
// score, the canonical vector, and the assessor's free-text rationale.
type BaseAssessment struct {
	BaseScore    float64 `json:"baseScore"`
	VectorString string  `json:"vectorString"`
	Rationale    string  `json:"rationale,omitempty"`
}

// CompositeResult is the AIVSS side of one category.
type CompositeResult struct {
	FinalScore        float64          `json:"finalScore"`
	QualitativeRating composite.Rating `json:"qualitativeRating"`
	Vector            string           `json:"vector"`
}

// CategoryAssessment is one scored category. Immutable once produced.
type CategoryAssessment struct {
	CategoryID        string          `json:"categoryId"`
	VulnerabilityName string          `json:"vulnerabilityName"`
	OwaspRank         int             `json:"owaspRank"`
	CVSS              BaseAssessment  `json:"cvss"`
	AIVSS             CompositeResult `json:"aivss"`
}

// AgenticRiskScore is the agent-level AARS breakdown carried in the report.
type AgenticRiskScore struct {
	FinalAARSScore float64        `json:"finalAarsScore"`
	FactorScores   factors.Scores `json:"factorScores"`
}

// Report is the stable boundary shape consumed by dashboards and storage.
type Report struct {
	SchemaVersion    string               `json:"schemaVersion"`
	Metadata         Metadata             `json:"assessmentMetadata"`
	AgenticRiskScore AgenticRiskScore     `json:"agenticRiskScore"`
	Assessments      []CategoryAssessment `json:"vulnerabilityAssessments"`
}

// Build validates and assembles a report. The category assessments must
// cover the fixed taxonomy exactly once each; nothing is padded or dropped.
// Caller-supplied inputs are never mutated; names and ranks are stamped from
// the taxonomy so the document stays the single source of truth.
func Build(meta Metadata, agentFactors factors.Scores, assessments []CategoryAssessment) (*Report, error) {
	if err := validateMetadata(meta); err != nil {
		return nil, err
	}

	aars, err := agentFactors.Aggregate()
	if err != nil {
		return nil, err
	}

	if len(assessments) != taxonomy.Size {
		return nil, fmt.Errorf("%w: got %d", ErrCategoryCount, len(assessments))
	}

	cats, err := taxonomy.Categories()
	if err != nil {
		return nil, err
	}
	byID := make(map[string]taxonomy.Category, len(cats))
	for _, c := range cats {
		byID[c.ID] = c
	}

	out := make([]CategoryAssessment, len(assessments))
	seen := make(map[string]bool, len(assessments))
	for i, a := range assessments {
		cat, ok := byID[a.CategoryID]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, a.CategoryID)
		}
		if seen[a.CategoryID] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCategory, a.CategoryID)
		}
		seen[a.CategoryID] = true

		a.VulnerabilityName = cat.Name
		a.OwaspRank = cat.Rank
		out[i] = a
	}

	sort.Slice(out, func(i, j int) bool { return out[i].OwaspRank < out[j].OwaspRank })

	return &Report{
		SchemaVersion: taxonomy.SchemaVersion,
		Metadata:      meta,
		AgenticRiskScore: AgenticRiskScore{
			FinalAARSScore: aars,
			FactorScores:   agentFactors,
		},
		Assessments: out,
	}, nil
}

// Rank orders category identifiers by composite score descending, breaking
// ties by base severity descending and then taxonomy rank ascending. The
// final tie-break guarantees a total order, so ranking is reproducible even
// on exact score ties.
func Rank(r *Report) []string {
	ranked := make([]CategoryAssessment, len(r.Assessments))
	copy(ranked, r.Assessments)

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].AIVSS.FinalScore != ranked[j].AIVSS.FinalScore {
			return ranked[i].AIVSS.FinalScore > ranked[j].AIVSS.FinalScore
		}
		if ranked[i].CVSS.BaseScore != ranked[j].CVSS.BaseScore {
			return ranked[i].CVSS.BaseScore > ranked[j].CVSS.BaseScore
		}
		return ranked[i].OwaspRank < ranked[j].OwaspRank
	})

	ids := make([]string, len(ranked))
	for i, a := range ranked {
		ids[i] = a.CategoryID
	}
	return ids
}

func validateMetadata(meta Metadata) error {
	required := []struct {
		name  string
		value string
	}{
		{"assessmentId", meta.AssessmentID},
		{"assessmentDate", meta.AssessmentDate},
		{"assessorName", meta.AssessorName},
		{"agentName", meta.AgentName},
	}
	for _, f := range required {
		if f.value == "" {
			return fmt.Errorf("%w: %s", ErrMissingMetadata, f.name)
		}
	}
	return nil
}
