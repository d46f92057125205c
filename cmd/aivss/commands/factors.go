package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aegentdev/aivss/internal/factors"
)

var factorsCmd = &cobra.Command{
	Use:   "factors",
	Short: "List the ten agentic risk factors of the AARS",
	RunE:  runFactors,
}

func init() {
	rootCmd.AddCommand(factorsCmd)
}

func runFactors(cmd *cobra.Command, args []string) error {
	names := factors.Names()
	w := cmd.OutOrStdout()

	if strings.ToLower(flagFormat) == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(names)
	}

	for i, name := range names {
		fmt.Fprintf(w, "%2d. %s\n", i+1, name)
	}
	fmt.Fprintf(w, "\nEach factor scores 0.0, 0.5, or 1.0; the AARS is their sum.\n")

	return nil
}
