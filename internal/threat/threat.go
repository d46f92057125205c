// Package threat resolves the urgency multiplier applied to composite
// scores. Absent any exploit-maturity signal the multiplier is 0.97; known
// signals map through a table that callers may replace from configuration.
package threat

import (
	"errors"
	"fmt"
)

// Default is the multiplier used when no exploit-maturity signal is known.
const Default = 0.97

// Signal is a named exploit-maturity level.
type Signal string

const (
	SignalUnreported     Signal = "unreported"
	SignalProofOfConcept Signal = "proof_of_concept"
	SignalActive         Signal = "actively_attacked"
)

var (
	ErrUnknownSignal        = errors.New("unknown threat signal")
	ErrOutOfRangeMultiplier = errors.New("multiplier outside [0,1]")
	ErrActiveBelowCeiling   = errors.New("actively_attacked must map to 1.0")
)

// builtinTable is the default signal→multiplier mapping. Active attack is
// pinned to the ceiling; the other levels are operator-tunable judgment.
var builtinTable = map[Signal]float64{
	SignalUnreported:     0.91,
	SignalProofOfConcept: 0.94,
	SignalActive:         1.0,
}

// Resolver maps exploit-maturity signals to multipliers.
type Resolver struct {
	table map[Signal]float64
}

// NewResolver builds a Resolver. A nil or empty table selects the builtin
// mapping. Supplied tables are validated: every multiplier must lie in [0,1]
// and actively_attacked, if present, must be 1.0.
func NewResolver(table map[Signal]float64) (*Resolver, error) {
	if len(table) == 0 {
		return &Resolver{table: builtinTable}, nil
	}
	merged := make(map[Signal]float64, len(builtinTable)+len(table))
	for s, m := range builtinTable {
		merged[s] = m
	}
	for s, m := range table {
		if m < 0 || m > 1 {
			return nil, fmt.Errorf("%w: %s=%v", ErrOutOfRangeMultiplier, s, m)
		}
		if s == SignalActive && m != 1.0 {
			return nil, fmt.Errorf("%w: got %v", ErrActiveBelowCeiling, m)
		}
		merged[s] = m
	}
	return &Resolver{table: merged}, nil
}

// Resolve maps a signal to its multiplier. The empty signal means "no
// explicit signal" and yields the default.
func (r *Resolver) Resolve(signal Signal) (float64, error) {
	if signal == "" {
		return Default, nil
	}
	m, ok := r.table[signal]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSignal, signal)
	}
	return m, nil
}

// ResolveOverride validates a raw caller-supplied multiplier.
func (r *Resolver) ResolveOverride(m float64) (float64, error) {
	if m < 0 || m > 1 {
		return 0, fmt.Errorf("%w: %v", ErrOutOfRangeMultiplier, m)
	}
	return m, nil
}

// FromExploitMaturity converts a vector's E metric value to a signal.
// E:X ("not defined") and unknown values report no signal.
func FromExploitMaturity(value string) (Signal, bool) {
	switch value {
	case "A":
		return SignalActive, true
	case "P":
		return SignalProofOfConcept, true
	case "U":
		return SignalUnreported, true
	default:
		return "", false
	}
}
