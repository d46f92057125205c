package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aegentdev/aivss/internal/taxonomy"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	flagFormat = "terminal"
	flagNoColor = true

	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)
	defer rootCmd.SetOut(nil)
	defer rootCmd.SetErr(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestCategoriesCommand(t *testing.T) {
	out, err := execute(t, "categories")
	require.NoError(t, err)
	require.Contains(t, out, "AAI001")
	require.Contains(t, out, "Agentic AI Tool Misuse")
	require.Contains(t, out, "AAI010")
	require.Contains(t, out, taxonomy.SchemaVersion)
}

func TestCategoriesCommandJSON(t *testing.T) {
	out, err := execute(t, "categories", "--format", "json")
	require.NoError(t, err)

	var cats []taxonomy.Category
	require.NoError(t, json.Unmarshal([]byte(out), &cats))
	require.Len(t, cats, 10)
	require.Equal(t, "AAI001", cats[0].ID)
}

func TestFactorsCommand(t *testing.T) {
	out, err := execute(t, "factors")
	require.NoError(t, err)
	require.Contains(t, out, " 1. autonomy_of_action")
	require.Contains(t, out, "10. opacity_and_reflexivity")
}

func TestExplainKnownCategory(t *testing.T) {
	out, err := execute(t, "explain", "AAI008", "--no-color")
	require.NoError(t, err)
	require.Contains(t, out, "AAI008")
	require.Contains(t, out, "Agent Supply Chain and Dependency Attacks")
	require.Contains(t, out, "Rank: 8")
	require.Contains(t, out, "Description:")
}

func TestExplainJSON(t *testing.T) {
	out, err := execute(t, "explain", "aai003", "--format", "json")
	require.NoError(t, err)

	var cat taxonomy.Category
	require.NoError(t, json.Unmarshal([]byte(out), &cat))
	require.Equal(t, "AAI003", cat.ID)
	require.Equal(t, 3, cat.Rank)
	require.NotEmpty(t, cat.Description)
}

func TestExplainNotFound(t *testing.T) {
	_, err := execute(t, "explain", "AAI099")
	require.Error(t, err)
	require.Contains(t, err.Error(), "not found")
}

func TestScoreCommand(t *testing.T) {
	out, err := execute(t, "score",
		"CVSS:4.0/AV:N/AC:L/AT:N/PR:N/UI:N/VC:H/VI:H/VA:H/SC:H/SI:H/SA:H")
	require.NoError(t, err)
	require.Contains(t, out, "Base score: 10.0")
	require.NotContains(t, out, "AIVSS:")
}

func TestScoreCommandComposite(t *testing.T) {
	out, err := execute(t, "score",
		"CVSS:4.0/AV:N/AC:L/AT:N/PR:N/UI:N/VC:H/VI:H/VA:H/SC:H/SI:H/SA:H",
		"--aars", "4.0", "--format", "json")
	require.NoError(t, err)

	var res scoreResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Equal(t, 10.0, res.BaseScore)
	require.NotNil(t, res.FinalScore)
	// ((10.0 + 4.0) / 2) * 0.97 = 6.79 -> 6.8
	require.Equal(t, 6.8, *res.FinalScore)
	require.Equal(t, "Medium", res.Rating)
	require.Equal(t, "(CVSS:10.0/AARS:4.0)", res.Vector)
}

func TestScoreCommandBadVector(t *testing.T) {
	_, err := execute(t, "score", "CVSS:4.0/AV:N")
	require.Error(t, err)
}

func TestAssessCommand(t *testing.T) {
	dir := t.TempDir()

	doc := `
metadata:
  assessment_id: 9e4a7b21-0005-4d8e-a0c3-6f1b2e9d5a66
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
	cats, err := taxonomy.Categories()
	require.NoError(t, err)
	for _, c := range cats {
		doc += "  - category: " + c.ID + "\n" +
			"    vector: CVSS:4.0/AV:N/AC:L/AT:N/PR:N/UI:N/VC:H/VI:H/VA:H/SC:H/SI:H/SA:H\n"
	}

	reqPath := filepath.Join(dir, "request.yml")
	require.NoError(t, os.WriteFile(reqPath, []byte(doc), 0o644))
	outPath := filepath.Join(dir, "report.json")
	historyPath := filepath.Join(dir, "history.json")

	_, err = execute(t, "assess", reqPath,
		"--format", "json", "-o", outPath,
		"--track", "--history-path", historyPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))
	require.Equal(t, taxonomy.SchemaVersion, parsed["schemaVersion"])
	require.Len(t, parsed["vulnerabilityAssessments"].([]any), 10)

	// --track persisted a history entry for the agent.
	hist, err := os.ReadFile(historyPath)
	require.NoError(t, err)
	require.Contains(t, string(hist), "billing-copilot")
}

func TestAssessCommandMissingFile(t *testing.T) {
	_, err := execute(t, "assess", filepath.Join(t.TempDir(), "absent.yml"),
		"-o", "", "--track=false")
	require.Error(t, err)
}
