package output

import (
	"encoding/json"
	"io"

	"github.com/aegentdev/aivss/internal/composite"
	"github.com/aegentdev/aivss/internal/report"
)

// ToolVersion is the aivss version reported in SARIF and markdown output.
var ToolVersion = "dev"

// SARIFFormatter renders a report in SARIF 2.1.0 format so assessments can
// land in GitHub Code Scanning next to conventional findings. Each taxonomy
// category becomes one rule and one result.
type SARIFFormatter struct{}

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool       sarifTool      `json:"tool"`
	Results    []sarifResult  `json:"results"`
	Properties map[string]any `json:"properties,omitempty"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string              `json:"id"`
	Name             string              `json:"name"`
	ShortDescription sarifMessage        `json:"shortDescription"`
	DefaultConfig    sarifDefaultConfig  `json:"defaultConfiguration"`
	Properties       sarifRuleProperties `json:"properties"`
}

type sarifDefaultConfig struct {
	Level string `json:"level"`
}

type sarifRuleProperties struct {
	Tags []string `json:"tags,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID     string         `json:"ruleId"`
	RuleIndex  int            `json:"ruleIndex"`
	Level      string         `json:"level"`
	Message    sarifMessage   `json:"message"`
	Properties map[string]any `json:"properties,omitempty"`
}

func (f *SARIFFormatter) Format(w io.Writer, rep *report.Report) error {
	rules := make([]sarifRule, 0, len(rep.Assessments))
	results := make([]sarifResult, 0, len(rep.Assessments))
	for i, a := range rep.Assessments {
		rules = append(rules, sarifRule{
			ID:               a.CategoryID,
			Name:             a.VulnerabilityName,
			ShortDescription: sarifMessage{Text: a.VulnerabilityName},
			DefaultConfig:    sarifDefaultConfig{Level: ratingToLevel(a.AIVSS.QualitativeRating)},
			Properties:       sarifRuleProperties{Tags: []string{"agentic-ai"}},
		})

		r := sarifResult{
			RuleID:    a.CategoryID,
			RuleIndex: i,
			Level:     ratingToLevel(a.AIVSS.QualitativeRating),
			Message:   sarifMessage{Text: a.VulnerabilityName + " " + a.AIVSS.Vector},
			Properties: map[string]any{
				"finalScore":   a.AIVSS.FinalScore,
				"baseScore":    a.CVSS.BaseScore,
				"vectorString": a.CVSS.VectorString,
			},
		}
		if a.CVSS.Rationale != "" {
			r.Properties["rationale"] = a.CVSS.Rationale
		}
		results = append(results, r)
	}

	log := sarifLog{
		Schema:  "https://docs.oasis-open.org/sarif/sarif/v2.1.0/sarif-schema-2.1.0.json",
		Version: "2.1.0",
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:           "aivss",
						Version:        ToolVersion,
						InformationURI: "https://github.com/aegentdev/aivss",
						Rules:          rules,
					},
				},
				Results: results,
				Properties: map[string]any{
					"assessmentId":  rep.Metadata.AssessmentID,
					"agentName":     rep.Metadata.AgentName,
					"schemaVersion": rep.SchemaVersion,
					"aarsScore":     rep.AgenticRiskScore.FinalAARSScore,
				},
			},
		},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(log)
}

func ratingToLevel(r composite.Rating) string {
	switch r {
	case composite.RatingCritical:
		return "error"
	case composite.RatingHigh:
		return "warning"
	case composite.RatingMedium, composite.RatingLow:
		return "note"
	default:
		return "none"
	}
}
