package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kisixing/srcdeps-core/internal/config"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the srcdeps version and the configuration model versions it reads",
	Run: func(cmd *cobra.Command, _ []string) {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "srcdeps %s\n", Version)
		fmt.Fprintf(w, "configModelVersion %s (reads %s)\n",
			config.LatestConfigModelVersion(),
			strings.Join(config.SupportedConfigModelVersions(), ", "))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
