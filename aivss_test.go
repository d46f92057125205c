package aivss_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aegentdev/aivss"
)

const worstVector = "CVSS:4.0/AV:N/AC:L/AT:N/PR:N/UI:N/VC:H/VI:H/VA:H/SC:H/SI:H/SA:H"

func testRequest(t *testing.T) aivss.Request {
	t.Helper()
	cats, err := aivss.Categories()
	require.NoError(t, err)

	inputs := make([]aivss.CategoryInput, len(cats))
	for i, c := range cats {
		inputs[i] = aivss.CategoryInput{
			Category: c.ID,
			Vector:   worstVector,
		}
	}

	scores := make(map[string]float64, 10)
	for _, name := range aivss.FactorNames() {
		scores[name] = 0
	}
	scores["autonomy_of_action"] = 1
	scores["tool_use"] = 1
	scores["memory_use"] = 0.5
	scores["goal_driven_planning"] = 1
	scores["contextual_awareness"] = 0.5

	return aivss.Request{
		Metadata: aivss.Metadata{
			AssessmentID:   "5d2e8f10-0004-4b3c-9a77-1c6e4f8d2b55",
			AssessmentDate: "2026-03-02T14:00:00Z",
			AssessorName:   "sec-team",
			AgentName:      "billing-copilot",
		},
		FactorScores: scores,
		Categories:   inputs,
	}
}

func TestAssess(t *testing.T) {
	rep, err := aivss.Assess(context.Background(), testRequest(t))
	require.NoError(t, err)

	require.Equal(t, aivss.SchemaVersion, rep.SchemaVersion)
	require.Equal(t, 4.0, rep.AgenticRiskScore.FinalAARSScore)
	require.Len(t, rep.Assessments, 10)
	// ((10.0 + 4.0) / 2) * 0.97 = 6.79 -> 6.8
	require.Equal(t, 6.8, rep.Assessments[0].AIVSS.FinalScore)
	require.Equal(t, aivss.RatingMedium, rep.Assessments[0].AIVSS.QualitativeRating)
}

func TestAssessWithThreatMultipliers(t *testing.T) {
	req := testRequest(t)
	req.Categories[0].ThreatSignal = "unreported"

	rep, err := aivss.Assess(context.Background(), req,
		aivss.WithWorkers(2),
		aivss.WithThreatMultipliers(map[string]float64{"unreported": 0.90}),
	)
	require.NoError(t, err)
	// ((10.0 + 4.0) / 2) * 0.90 = 6.3
	require.Equal(t, 6.3, rep.Assessments[0].AIVSS.FinalScore)
}

func TestAssessRejectsBadMultiplierTable(t *testing.T) {
	_, err := aivss.Assess(context.Background(), testRequest(t),
		aivss.WithThreatMultipliers(map[string]float64{"unreported": 1.7}),
	)
	require.Error(t, err)
	require.Contains(t, err.Error(), "threat multiplier table")
}

func TestAssessFile(t *testing.T) {
	dir := t.TempDir()
	doc := `
metadata:
  assessment_id: 5d2e8f10-0004-4b3c-9a77-1c6e4f8d2b55
  assessment_date: "2026-03-02T14:00:00Z"
  assessor_name: sec-team
  agent_name: billing-copilot
factor_scores:
  autonomy_of_action: 1
  tool_use: 1
  memory_use: 0.5
  dynamic_identity: 0
  multi_agent_interaction: 0
  non_determinism: 0
  self_modification: 0
  goal_driven_planning: 1
  contextual_awareness: 0.5
  opacity_and_reflexivity: 0
categories:
`
	cats, err := aivss.Categories()
	require.NoError(t, err)
	for _, c := range cats {
		doc += "  - category: " + c.ID + "\n    vector: " + worstVector + "\n"
	}

	path := filepath.Join(dir, "request.yml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	rep, err := aivss.AssessFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, rep.Assessments, 10)
	require.Equal(t, "billing-copilot", rep.Metadata.AgentName)
}

func TestScoreVector(t *testing.T) {
	score, err := aivss.ScoreVector(worstVector)
	require.NoError(t, err)
	require.Equal(t, 10.0, score)

	_, err = aivss.ScoreVector("CVSS:4.0/AV:N")
	require.Error(t, err)
}

func TestScoreComposite(t *testing.T) {
	s, err := aivss.ScoreComposite(9.4, 8.5, aivss.DefaultThreatMultiplier)
	require.NoError(t, err)
	require.Equal(t, 8.7, s.Value)
	require.Equal(t, aivss.RatingHigh, s.Rating)
	require.Equal(t, "(CVSS:9.4/AARS:8.5)", s.Vector)
}

func TestCategories(t *testing.T) {
	cats, err := aivss.Categories()
	require.NoError(t, err)
	require.Len(t, cats, 10)
	require.Equal(t, "AAI001", cats[0].ID)
	require.Equal(t, "Agentic AI Tool Misuse", cats[0].Name)
}

func TestRank(t *testing.T) {
	rep, err := aivss.Assess(context.Background(), testRequest(t))
	require.NoError(t, err)

	ids := aivss.Rank(rep)
	require.Len(t, ids, 10)
	// All composite scores tie, so taxonomy order decides.
	require.Equal(t, "AAI001", ids[0])
}
