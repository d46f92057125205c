// Package factors defines the ten agentic risk-amplification factors and
// their aggregation into the Agentic AI Risk Score (AARS).
//
// The ten factors are a closed record, not an open map: a missing or extra
// factor is a construction-time error, never a silent zero.
package factors

import (
	"errors"
	"fmt"
	"sort"
)

// Score is a single factor's contribution: absent (0), partial (0.5), or
// full (1).
type Score float64

var (
	ErrInvalidFactorValue = errors.New("factor value must be 0.0, 0.5, or 1.0")
	ErrMissingFactor      = errors.New("missing factor")
	ErrUnknownFactor      = errors.New("unknown factor")
)

// Scores holds exactly the ten named risk-amplification factors. JSON and
// YAML field names are the stable boundary keys.
type Scores struct {
	AutonomyOfAction      Score `json:"autonomy_of_action" yaml:"autonomy_of_action"`
	ToolUse               Score `json:"tool_use" yaml:"tool_use"`
	MemoryUse             Score `json:"memory_use" yaml:"memory_use"`
	DynamicIdentity       Score `json:"dynamic_identity" yaml:"dynamic_identity"`
	MultiAgentInteraction Score `json:"multi_agent_interaction" yaml:"multi_agent_interaction"`
	NonDeterminism        Score `json:"non_determinism" yaml:"non_determinism"`
	SelfModification      Score `json:"self_modification" yaml:"self_modification"`
	GoalDrivenPlanning    Score `json:"goal_driven_planning" yaml:"goal_driven_planning"`
	ContextualAwareness   Score `json:"contextual_awareness" yaml:"contextual_awareness"`
	OpacityReflexivity    Score `json:"opacity_and_reflexivity" yaml:"opacity_and_reflexivity"`
}

// field binds a boundary key to its struct slot, in declaration order.
type field struct {
	key string
	get func(*Scores) Score
	set func(*Scores, Score)
}

var fields = []field{
	{"autonomy_of_action", func(s *Scores) Score { return s.AutonomyOfAction }, func(s *Scores, v Score) { s.AutonomyOfAction = v }},
	{"tool_use", func(s *Scores) Score { return s.ToolUse }, func(s *Scores, v Score) { s.ToolUse = v }},
	{"memory_use", func(s *Scores) Score { return s.MemoryUse }, func(s *Scores, v Score) { s.MemoryUse = v }},
	{"dynamic_identity", func(s *Scores) Score { return s.DynamicIdentity }, func(s *Scores, v Score) { s.DynamicIdentity = v }},
	{"multi_agent_interaction", func(s *Scores) Score { return s.MultiAgentInteraction }, func(s *Scores, v Score) { s.MultiAgentInteraction = v }},
	{"non_determinism", func(s *Scores) Score { return s.NonDeterminism }, func(s *Scores, v Score) { s.NonDeterminism = v }},
	{"self_modification", func(s *Scores) Score { return s.SelfModification }, func(s *Scores, v Score) { s.SelfModification = v }},
	{"goal_driven_planning", func(s *Scores) Score { return s.GoalDrivenPlanning }, func(s *Scores, v Score) { s.GoalDrivenPlanning = v }},
	{"contextual_awareness", func(s *Scores) Score { return s.ContextualAwareness }, func(s *Scores, v Score) { s.ContextualAwareness = v }},
	{"opacity_and_reflexivity", func(s *Scores) Score { return s.OpacityReflexivity }, func(s *Scores, v Score) { s.OpacityReflexivity = v }},
}

// Names returns the ten factor keys in declaration order.
func Names() []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.key
	}
	return out
}

// Validate checks every factor is one of the three allowed values.
func (s Scores) Validate() error {
	for _, f := range fields {
		if v := f.get(&s); v != 0 && v != 0.5 && v != 1 {
			return fmt.Errorf("%w: %s=%v", ErrInvalidFactorValue, f.key, float64(v))
		}
	}
	return nil
}

// Aggregate sums the ten factors into the AARS. The three-value domain
// guarantees the result lies in [0,10]; no separate clamp is applied.
func (s Scores) Aggregate() (float64, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	var sum float64
	for _, f := range fields {
		sum += float64(f.get(&s))
	}
	return sum, nil
}

// AsMap renders the record as the ten fixed boundary keys.
func (s Scores) AsMap() map[string]float64 {
	out := make(map[string]float64, len(fields))
	for _, f := range fields {
		out[f.key] = float64(f.get(&s))
	}
	return out
}

// FromMap builds a Scores record from map-shaped input (the JSON/YAML
// boundary). All ten keys must be present; unknown keys and out-of-domain
// values are rejected.
func FromMap(m map[string]float64) (Scores, error) {
	var s Scores
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		v, ok := m[f.key]
		if !ok {
			return Scores{}, fmt.Errorf("%w: %s", ErrMissingFactor, f.key)
		}
		f.set(&s, Score(v))
		seen[f.key] = true
	}

	var extra []string
	for k := range m {
		if !seen[k] {
			extra = append(extra, k)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		return Scores{}, fmt.Errorf("%w: %v", ErrUnknownFactor, extra)
	}

	if err := s.Validate(); err != nil {
		return Scores{}, err
	}
	return s, nil
}
