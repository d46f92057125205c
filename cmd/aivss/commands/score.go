package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aegentdev/aivss/internal/composite"
	"github.com/aegentdev/aivss/internal/severity"
	"github.com/aegentdev/aivss/internal/threat"
	"github.com/aegentdev/aivss/internal/vector"
)

var (
	flagAARS       float64
	flagMultiplier float64
	flagSignal     string
)

var scoreCmd = &cobra.Command{
	Use:   "score <vector>",
	Short: "Score a single CVSS:4.0 vector, optionally combined with an AARS",
	Long: `Score parses a CVSS:4.0 vector and prints its interpolated base score.
With --aars it also computes the composite AIVSS score, using --signal or
--multiplier for the threat dimension (default multiplier 0.97).`,
	Args: cobra.ExactArgs(1),
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().Float64Var(&flagAARS, "aars", -1, "Agentic risk score in [0, 10] to combine with the base score")
	scoreCmd.Flags().Float64Var(&flagMultiplier, "multiplier", -1, "Raw threat multiplier override in [0, 1]")
	scoreCmd.Flags().StringVar(&flagSignal, "signal", "", "Threat signal (unreported, proof_of_concept, actively_attacked)")
	rootCmd.AddCommand(scoreCmd)
}

type scoreResult struct {
	BaseScore    float64  `json:"baseScore"`
	VectorString string   `json:"vectorString"`
	FinalScore   *float64 `json:"finalScore,omitempty"`
	Rating       string   `json:"qualitativeRating,omitempty"`
	Vector       string   `json:"vector,omitempty"`
}

func runScore(cmd *cobra.Command, args []string) error {
	v, err := vector.Parse(args[0])
	if err != nil {
		return err
	}

	baseScore, err := severity.New(nil).Score(v)
	if err != nil {
		return err
	}
	canonical, err := vector.Serialize(v)
	if err != nil {
		return err
	}

	res := scoreResult{BaseScore: baseScore, VectorString: canonical}

	if cmd.Flags().Changed("aars") {
		multiplier, err := resolveScoreMultiplier(cmd, v)
		if err != nil {
			return err
		}
		score, err := composite.Compute(baseScore, flagAARS, multiplier)
		if err != nil {
			return err
		}
		res.FinalScore = &score.Value
		res.Rating = score.Rating.String()
		res.Vector = score.Vector
	}

	w := cmd.OutOrStdout()

	if strings.ToLower(flagFormat) == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	fmt.Fprintf(w, "Base score: %.1f\n", res.BaseScore)
	fmt.Fprintf(w, "Vector:     %s\n", res.VectorString)
	if res.FinalScore != nil {
		fmt.Fprintf(w, "AIVSS:      %.1f (%s) %s\n", *res.FinalScore, res.Rating, res.Vector)
	}
	return nil
}

func resolveScoreMultiplier(cmd *cobra.Command, v vector.Vector) (float64, error) {
	resolver, err := threat.NewResolver(nil)
	if err != nil {
		return 0, err
	}
	if cmd.Flags().Changed("multiplier") {
		return resolver.ResolveOverride(flagMultiplier)
	}
	if flagSignal != "" {
		return resolver.Resolve(threat.Signal(flagSignal))
	}
	if maturity, ok := v[vector.ExploitMaturity]; ok {
		if signal, known := threat.FromExploitMaturity(maturity); known {
			return resolver.Resolve(signal)
		}
	}
	return resolver.Resolve("")
}
