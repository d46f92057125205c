package assess

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aegentdev/aivss/internal/report"
)

// CategoryInput is the assessor's raw input for one taxonomy category.
type CategoryInput struct {
	// Category is the taxonomy identifier, e.g. "AAI003".
	Category string `json:"category" yaml:"category"`
	// Vector is the CVSS:4.0 vector text as supplied by the assessor.
	Vector string `json:"vector" yaml:"vector"`
	// Rationale is the assessor's free-text justification.
	Rationale string `json:"rationale,omitempty" yaml:"rationale,omitempty"`
	// Factors, when present, replaces the agent-level factor scores for
	// this category. All ten factors must then be given.
	Factors map[string]float64 `json:"factors,omitempty" yaml:"factors,omitempty"`
	// ThreatSignal names threat intelligence for this category
	// (unreported, proof_of_concept, actively_attacked).
	ThreatSignal string `json:"threat_signal,omitempty" yaml:"threat_signal,omitempty"`
	// Multiplier is a raw threat multiplier override in [0, 1]. It takes
	// precedence over ThreatSignal and the vector's E metric.
	Multiplier *float64 `json:"multiplier,omitempty" yaml:"multiplier,omitempty"`
}

// Request is a complete assessment input document.
type Request struct {
	// SchemaVersion pins the taxonomy revision the request was written
	// against. Empty means the engine's current version.
	SchemaVersion string             `json:"schema_version,omitempty" yaml:"schema_version,omitempty"`
	Metadata      report.Metadata    `json:"metadata" yaml:"metadata"`
	FactorScores  map[string]float64 `json:"factor_scores" yaml:"factor_scores"`
	Categories    []CategoryInput    `json:"categories" yaml:"categories"`
}

// LoadRequest reads a request document from a YAML or JSON file, chosen by
// extension.
func LoadRequest(path string) (Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Request{}, fmt.Errorf("reading request: %w", err)
	}

	var req Request
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &req)
	case ".yml", ".yaml":
		err = yaml.Unmarshal(data, &req)
	default:
		return Request{}, fmt.Errorf("unsupported request format %q (want .json, .yml or .yaml)", filepath.Ext(path))
	}
	if err != nil {
		return Request{}, fmt.Errorf("parsing request %s: %w", path, err)
	}
	return req, nil
}
