package factors_test

import (
	"testing"

	"github.com/aegentdev/aivss/internal/factors"
	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	s := factors.Scores{
		AutonomyOfAction:      1.0,
		ToolUse:               1.0,
		MemoryUse:             0.5,
		DynamicIdentity:       1.0,
		MultiAgentInteraction: 0,
		NonDeterminism:        0.5,
		SelfModification:      0,
		GoalDrivenPlanning:    1.0,
		ContextualAwareness:   1.0,
		OpacityReflexivity:    0.5,
	}
	got, err := s.Aggregate()
	require.NoError(t, err)
	require.Equal(t, 6.5, got)
}

func TestAggregateBounds(t *testing.T) {
	zero := factors.Scores{}
	got, err := zero.Aggregate()
	require.NoError(t, err)
	require.Equal(t, 0.0, got)

	all := factors.Scores{
		AutonomyOfAction: 1, ToolUse: 1, MemoryUse: 1, DynamicIdentity: 1,
		MultiAgentInteraction: 1, NonDeterminism: 1, SelfModification: 1,
		GoalDrivenPlanning: 1, ContextualAwareness: 1, OpacityReflexivity: 1,
	}
	got, err = all.Aggregate()
	require.NoError(t, err)
	require.Equal(t, 10.0, got)
}

func TestAggregateInvalidValue(t *testing.T) {
	s := factors.Scores{ToolUse: 0.7}
	_, err := s.Aggregate()
	require.ErrorIs(t, err, factors.ErrInvalidFactorValue)
	require.Contains(t, err.Error(), "tool_use")
}

func TestFromMap(t *testing.T) {
	m := map[string]float64{
		"autonomy_of_action":      1.0,
		"tool_use":                0.5,
		"memory_use":              0,
		"dynamic_identity":        1.0,
		"multi_agent_interaction": 0.5,
		"non_determinism":         1.0,
		"self_modification":       0,
		"goal_driven_planning":    0.5,
		"contextual_awareness":    1.0,
		"opacity_and_reflexivity": 0,
	}
	s, err := factors.FromMap(m)
	require.NoError(t, err)
	require.Equal(t, factors.Score(0.5), s.ToolUse)

	sum, err := s.Aggregate()
	require.NoError(t, err)
	require.Equal(t, 5.5, sum)
}

func TestFromMapMissingFactor(t *testing.T) {
	m := map[string]float64{"autonomy_of_action": 1.0}
	_, err := factors.FromMap(m)
	require.ErrorIs(t, err, factors.ErrMissingFactor)
}

func TestFromMapUnknownFactor(t *testing.T) {
	m := map[string]float64{"charisma": 1.0}
	for _, name := range factors.Names() {
		m[name] = 0.5
	}
	_, err := factors.FromMap(m)
	require.ErrorIs(t, err, factors.ErrUnknownFactor)
	require.Contains(t, err.Error(), "charisma")
}

func TestFromMapInvalidValue(t *testing.T) {
	m := map[string]float64{}
	for _, name := range factors.Names() {
		m[name] = 0.5
	}
	m["memory_use"] = 0.3
	_, err := factors.FromMap(m)
	require.ErrorIs(t, err, factors.ErrInvalidFactorValue)
}

func TestNamesAndAsMap(t *testing.T) {
	names := factors.Names()
	require.Len(t, names, 10)
	require.Equal(t, "autonomy_of_action", names[0])
	require.Equal(t, "opacity_and_reflexivity", names[9])

	m := (factors.Scores{MemoryUse: 1}).AsMap()
	require.Len(t, m, 10)
	require.Equal(t, 1.0, m["memory_use"])
	require.Equal(t, 0.0, m["tool_use"])
}
