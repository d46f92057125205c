package vector_test

import (
	"errors"
	"testing"

	"github.com/aegentdev/aivss/internal/vector"
	"github.com/stretchr/testify/require"
)

const fullVector = "CVSS:4.0/AV:N/AC:L/AT:N/PR:N/UI:N/VC:H/VI:H/VA:H/SC:H/SI:H/SA:H"

func TestParseValid(t *testing.T) {
	v, err := vector.Parse(fullVector)
	require.NoError(t, err)
	require.Len(t, v, 11)
	require.Equal(t, "N", v[vector.AttackVector])
	require.Equal(t, "H", v[vector.SubAvailability])
}

func TestParseOptionalGroups(t *testing.T) {
	v, err := vector.Parse(fullVector + "/E:P/CR:H/MSI:S")
	require.NoError(t, err)
	require.Len(t, v, 14)
	require.Equal(t, "P", v[vector.ExploitMaturity])
	require.Equal(t, "S", v[vector.Metric("MSI")])
}

func TestParseFailures(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", vector.ErrMalformedVector},
		{"bad prefix", "CVSS:3.1/AV:N/AC:L", vector.ErrMalformedVector},
		{"no prefix", "AV:N/AC:L/AT:N", vector.ErrMalformedVector},
		{"bare segment", "CVSS:4.0/AV", vector.ErrMalformedVector},
		{"duplicate metric", fullVector + "/AV:L", vector.ErrMalformedVector},
		{"unknown code", fullVector + "/ZZ:N", vector.ErrUnknownMetric},
		{"bad value", "CVSS:4.0/AV:Q/AC:L/AT:N/PR:N/UI:N/VC:H/VI:H/VA:H/SC:H/SI:H/SA:H", vector.ErrInvalidMetricValue},
		{"missing mandatory", "CVSS:4.0/AV:N/AC:L/AT:N/PR:N/UI:N/VC:H/VI:H/VA:H/SC:H/SI:H", vector.ErrIncompleteVector},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := vector.Parse(tt.input)
			require.Error(t, err)
			require.True(t, errors.Is(err, tt.want), "got %v, want %v", err, tt.want)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		fullVector,
		"CVSS:4.0/AV:L/AC:H/AT:P/PR:H/UI:A/VC:L/VI:N/VA:L/SC:N/SI:L/SA:N",
		fullVector + "/E:A",
		fullVector + "/E:U/CR:M/S:P",
	}
	for _, in := range inputs {
		v, err := vector.Parse(in)
		require.NoError(t, err)
		out, err := vector.Serialize(v)
		require.NoError(t, err)
		v2, err := vector.Parse(out)
		require.NoError(t, err)
		require.True(t, v.Equal(v2), "round trip of %s", in)
	}
}

func TestSerializeCanonicalOrder(t *testing.T) {
	// Scrambled input serializes to the documented order.
	scrambled := "CVSS:4.0/SA:H/AV:N/VC:H/AC:L/SI:H/AT:N/VI:H/PR:N/SC:H/UI:N/VA:H/E:P"
	v, err := vector.Parse(scrambled)
	require.NoError(t, err)
	out, err := vector.Serialize(v)
	require.NoError(t, err)
	require.Equal(t, fullVector+"/E:P", out)
}

func TestSerializeIncomplete(t *testing.T) {
	v := vector.Vector{vector.AttackVector: "N"}
	_, err := vector.Serialize(v)
	require.ErrorIs(t, err, vector.ErrIncompleteVector)
}

func TestRank(t *testing.T) {
	require.Equal(t, 0, vector.Rank(vector.AttackVector, "N"))
	require.Equal(t, 3, vector.Rank(vector.AttackVector, "P"))
	require.Equal(t, 0, vector.Rank(vector.VulnConfident, "H"))
	require.Equal(t, 2, vector.Rank(vector.VulnConfident, "N"))
	require.Equal(t, -1, vector.Rank(vector.AttackVector, "Q"))
	require.Equal(t, -1, vector.Rank(vector.Metric("ZZ"), "N"))
}
