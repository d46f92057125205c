package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aegentdev/aivss/internal/update"
)

// Version and Commit are set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("aivss %s (commit: %s)\n", Version, Commit)

		if rel, ok := update.LatestRelease(Version, "aegentdev/aivss"); ok {
			fmt.Fprintf(os.Stderr, "\nA newer release is available: %s\n  %s\n", rel.Tag, rel.InstallCmd)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
