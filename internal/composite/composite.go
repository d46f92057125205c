// Package composite combines a base severity score, an AARS, and a threat
// multiplier into the final 0–10 risk score and its qualitative rating.
package composite

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrOutOfRangeInput flags a base severity or AARS outside [0,10]. Inputs
// are rejected rather than clamped so upstream bugs surface instead of
// producing a quietly-wrong composite.
var ErrOutOfRangeInput = errors.New("input outside [0,10]")

// Rating is the qualitative band of a composite score.
type Rating int

const (
	RatingNone Rating = iota
	RatingLow
	RatingMedium
	RatingHigh
	RatingCritical
)

func (r Rating) String() string {
	switch r {
	case RatingCritical:
		return "Critical"
	case RatingHigh:
		return "High"
	case RatingMedium:
		return "Medium"
	case RatingLow:
		return "Low"
	case RatingNone:
		return "None"
	default:
		return "Unknown"
	}
}

// ParseRating converts a string to a Rating.
func ParseRating(s string) (Rating, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical":
		return RatingCritical, nil
	case "high":
		return RatingHigh, nil
	case "medium":
		return RatingMedium, nil
	case "low":
		return RatingLow, nil
	case "none":
		return RatingNone, nil
	default:
		return RatingNone, fmt.Errorf("unknown rating: %q", s)
	}
}

// MarshalJSON serializes the rating as its band label.
func (r Rating) MarshalJSON() ([]byte, error) {
	return []byte(`"` + r.String() + `"`), nil
}

// UnmarshalJSON parses a band label.
func (r *Rating) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseRating(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Score is the final composite result: the rounded value, its band, and the
// composite vector rendered at one-decimal precision.
type Score struct {
	Value  float64
	Rating Rating
	Vector string
}

// Compute derives the composite score: the mean of base severity and AARS,
// scaled by the threat multiplier, clamped to [0,10] and rounded to one
// decimal. Only the final result is clamped; out-of-range inputs are errors.
func Compute(baseSeverity, aars, multiplier float64) (Score, error) {
	if baseSeverity < 0 || baseSeverity > 10 {
		return Score{}, fmt.Errorf("%w: base severity %v", ErrOutOfRangeInput, baseSeverity)
	}
	if aars < 0 || aars > 10 {
		return Score{}, fmt.Errorf("%w: AARS %v", ErrOutOfRangeInput, aars)
	}

	raw := ((baseSeverity + aars) / 2) * multiplier
	raw = math.Min(10, math.Max(0, raw))
	value := math.Round(raw*10) / 10

	return Score{
		Value:  value,
		Rating: Band(value),
		Vector: fmt.Sprintf("(CVSS:%.1f/AARS:%.1f)", baseSeverity, aars),
	}, nil
}

// Band maps a rounded composite value to its qualitative rating.
// Thresholds: None 0.0, Low 0.1–3.9, Medium 4.0–6.9, High 7.0–8.9,
// Critical 9.0–10.0.
func Band(value float64) Rating {
	switch {
	case value <= 0:
		return RatingNone
	case value < 4.0:
		return RatingLow
	case value < 7.0:
		return RatingMedium
	case value < 9.0:
		return RatingHigh
	default:
		return RatingCritical
	}
}
