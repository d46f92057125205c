package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aegentdev/aivss/internal/taxonomy"
)

var explainCmd = &cobra.Command{
	Use:   "explain <CATEGORY_ID>",
	Short: "Show detailed information about a taxonomy category",
	Args:  cobra.ExactArgs(1),
	RunE:  runExplain,
}

func init() {
	rootCmd.AddCommand(explainCmd)
}

func runExplain(cmd *cobra.Command, args []string) error {
	id := strings.ToUpper(strings.TrimSpace(args[0]))

	cat, ok := taxonomy.ByID(id)
	if !ok {
		return fmt.Errorf("category %q not found", id)
	}

	w := cmd.OutOrStdout()

	if strings.ToLower(flagFormat) == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cat)
	}

	color := func(code, text string) string {
		if flagNoColor {
			return text
		}
		return code + text + "\033[0m"
	}

	bold := "\033[1m"
	dim := "\033[2m"

	fmt.Fprintf(w, "\n%s %s\n", color(dim, "Category:"), color(bold, cat.ID))
	fmt.Fprintf(w, "%s %s\n", color(dim, "Name:"), cat.Name)
	fmt.Fprintf(w, "%s %d\n", color(dim, "Rank:"), cat.Rank)

	if cat.Description != "" {
		fmt.Fprintf(w, "\n%s\n%s\n", color(bold, "Description:"), cat.Description)
	}

	fmt.Fprintln(w)
	return nil
}
