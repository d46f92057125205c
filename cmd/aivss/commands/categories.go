package commands

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aegentdev/aivss/internal/taxonomy"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the ten taxonomy categories every report must cover",
	RunE:  runCategories,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, args []string) error {
	cats, err := taxonomy.Categories()
	if err != nil {
		return fmt.Errorf("loading taxonomy: %w", err)
	}

	w := cmd.OutOrStdout()

	if strings.ToLower(flagFormat) == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cats)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tRANK\tNAME\n")
	fmt.Fprintf(tw, "--\t----\t----\n")
	for _, c := range cats {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", c.ID, c.Rank, c.Name)
	}
	tw.Flush()
	fmt.Fprintf(w, "\nschema %s\n", taxonomy.SchemaVersion)

	return nil
}
