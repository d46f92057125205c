// Package vector parses and serializes CVSS:4.0 severity vector strings
// into an ordered metric→value mapping used by the severity classifier.
package vector

import (
	"errors"
	"sort"
	"strings"
)

// Metric is a CVSS:4.0 metric code (e.g. "AV", "PR", "VC").
type Metric string

// Mandatory base metrics, in canonical serialization order.
const (
	AttackVector       Metric = "AV"
	AttackComplexity   Metric = "AC"
	AttackRequirements Metric = "AT"
	PrivilegesRequired Metric = "PR"
	UserInteraction    Metric = "UI"
	VulnConfident      Metric = "VC"
	VulnIntegrity      Metric = "VI"
	VulnAvailability   Metric = "VA"
	SubConfident       Metric = "SC"
	SubIntegrity       Metric = "SI"
	SubAvailability    Metric = "SA"
)

// ExploitMaturity is the optional threat-group metric. When present it feeds
// the threat multiplier resolver; it never participates in classification.
const ExploitMaturity Metric = "E"

// Prefix is the required version token at the head of every vector string.
const Prefix = "CVSS:4.0"

// Sentinel errors for the four parse failure classes. Callers match with
// errors.Is; the wrapped message carries the offending code or value.
var (
	ErrMalformedVector    = errors.New("malformed vector")
	ErrUnknownMetric      = errors.New("unknown metric")
	ErrInvalidMetricValue = errors.New("invalid metric value")
	ErrIncompleteVector   = errors.New("incomplete vector")
)

// mandatoryOrder is the canonical order for the eleven base metrics.
var mandatoryOrder = []Metric{
	AttackVector, AttackComplexity, AttackRequirements,
	PrivilegesRequired, UserInteraction,
	VulnConfident, VulnIntegrity, VulnAvailability,
	SubConfident, SubIntegrity, SubAvailability,
}

// optionalOrder is the canonical order for the threat, environmental, and
// supplemental groups. Only metrics actually present are serialized.
var optionalOrder = []Metric{
	ExploitMaturity,
	"CR", "IR", "AR",
	"MAV", "MAC", "MAT", "MPR", "MUI",
	"MVC", "MVI", "MVA", "MSC", "MSI", "MSA",
	"S", "AU", "R", "V", "RE", "U",
}

// metricValues enumerates the allowed values per metric, most severe first.
// Position in the slice doubles as the severity rank used for interpolation
// distance (0 = most severe).
var metricValues = map[Metric][]string{
	AttackVector:       {"N", "A", "L", "P"},
	AttackComplexity:   {"L", "H"},
	AttackRequirements: {"N", "P"},
	PrivilegesRequired: {"N", "L", "H"},
	UserInteraction:    {"N", "P", "A"},
	VulnConfident:      {"H", "L", "N"},
	VulnIntegrity:      {"H", "L", "N"},
	VulnAvailability:   {"H", "L", "N"},
	SubConfident:       {"H", "L", "N"},
	SubIntegrity:       {"H", "L", "N"},
	SubAvailability:    {"H", "L", "N"},

	ExploitMaturity: {"A", "P", "U", "X"},

	"CR": {"H", "M", "L", "X"},
	"IR": {"H", "M", "L", "X"},
	"AR": {"H", "M", "L", "X"},

	"MAV": {"N", "A", "L", "P", "X"},
	"MAC": {"L", "H", "X"},
	"MAT": {"N", "P", "X"},
	"MPR": {"N", "L", "H", "X"},
	"MUI": {"N", "P", "A", "X"},
	"MVC": {"H", "L", "N", "X"},
	"MVI": {"H", "L", "N", "X"},
	"MVA": {"H", "L", "N", "X"},
	"MSC": {"H", "L", "N", "X"},
	"MSI": {"S", "H", "L", "N", "X"},
	"MSA": {"S", "H", "L", "N", "X"},

	"S":  {"N", "P", "X"},
	"AU": {"N", "Y", "X"},
	"R":  {"A", "U", "I", "X"},
	"V":  {"D", "C", "X"},
	"RE": {"L", "M", "H", "X"},
	"U":  {"Clear", "Green", "Amber", "Red", "X"},
}

// Vector is an ordered mapping from metric code to its selected value.
// Two vectors are equal when they hold the same metric/value pairs.
type Vector map[Metric]string

// Mandatory returns the eleven base metric codes in canonical order.
func Mandatory() []Metric {
	out := make([]Metric, len(mandatoryOrder))
	copy(out, mandatoryOrder)
	return out
}

// Known reports whether the metric code is part of any recognized group.
func Known(m Metric) bool {
	_, ok := metricValues[m]
	return ok
}

// Rank returns the severity rank of value within metric's enumeration
// (0 = most severe). Returns -1 for unknown metric or value.
func Rank(m Metric, value string) int {
	vals, ok := metricValues[m]
	if !ok {
		return -1
	}
	for i, v := range vals {
		if v == value {
			return i
		}
	}
	return -1
}

// Clone returns an independent copy of the vector.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	for m, val := range v {
		out[m] = val
	}
	return out
}

// Equal reports whether two vectors hold identical metric/value pairs.
func (v Vector) Equal(other Vector) bool {
	if len(v) != len(other) {
		return false
	}
	for m, val := range v {
		if other[m] != val {
			return false
		}
	}
	return true
}

// Metrics returns the vector's metric codes sorted lexically. Primarily a
// test and debugging aid; serialization uses the canonical order instead.
func (v Vector) Metrics() []Metric {
	out := make([]Metric, 0, len(v))
	for m := range v {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func isMandatory(m Metric) bool {
	for _, mm := range mandatoryOrder {
		if mm == m {
			return true
		}
	}
	return false
}

func validValue(m Metric, value string) bool {
	for _, v := range metricValues[m] {
		if v == value {
			return true
		}
	}
	return false
}

// normalizeCode uppercases a metric code, leaving mixed-case values alone.
func normalizeCode(code string) Metric {
	return Metric(strings.ToUpper(strings.TrimSpace(code)))
}
