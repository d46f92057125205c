package vector

import (
	"fmt"
	"strings"
)

// Parse decodes a CVSS:4.0 vector string. The prefix token is required;
// metric order in the input is irrelevant. All eleven mandatory metrics must
// be present exactly once; optional threat/environmental/supplemental metrics
// are validated and preserved but never affect mandatory-metric checks.
func Parse(text string) (Vector, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty string", ErrMalformedVector)
	}

	parts := strings.Split(text, "/")
	if !strings.EqualFold(parts[0], Prefix) {
		return nil, fmt.Errorf("%w: expected %s prefix, got %q", ErrMalformedVector, Prefix, parts[0])
	}

	v := make(Vector, len(parts)-1)
	for _, part := range parts[1:] {
		code, value, ok := strings.Cut(part, ":")
		if !ok || code == "" || value == "" {
			return nil, fmt.Errorf("%w: segment %q is not CODE:VALUE", ErrMalformedVector, part)
		}
		m := normalizeCode(code)
		if !Known(m) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, code)
		}
		if _, dup := v[m]; dup {
			return nil, fmt.Errorf("%w: metric %s appears twice", ErrMalformedVector, m)
		}
		if !validValue(m, value) {
			return nil, fmt.Errorf("%w: %s:%s", ErrInvalidMetricValue, m, value)
		}
		v[m] = value
	}

	for _, m := range mandatoryOrder {
		if _, ok := v[m]; !ok {
			return nil, fmt.Errorf("%w: missing %s", ErrIncompleteVector, m)
		}
	}

	return v, nil
}

// Serialize emits the canonical form: the version prefix, the eleven
// mandatory metrics in documented order, then any optional metrics in their
// documented group order. Serialize(Parse(t)) is the canonical form of t and
// re-parses to an equal vector.
func Serialize(v Vector) (string, error) {
	var b strings.Builder
	b.WriteString(Prefix)

	for _, m := range mandatoryOrder {
		val, ok := v[m]
		if !ok {
			return "", fmt.Errorf("%w: missing %s", ErrIncompleteVector, m)
		}
		writeSegment(&b, m, val)
	}
	for _, m := range optionalOrder {
		if val, ok := v[m]; ok {
			writeSegment(&b, m, val)
		}
	}

	return b.String(), nil
}

func writeSegment(b *strings.Builder, m Metric, value string) {
	b.WriteByte('/')
	b.WriteString(string(m))
	b.WriteByte(':')
	b.WriteString(value)
}
