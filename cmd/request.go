package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kisixing/srcdeps-core/internal/build"
	"github.com/kisixing/srcdeps-core/internal/config"
	"github.com/kisixing/srcdeps-core/pkg/sdk"
)

var idCmd = &cobra.Command{
	Use:   "id <groupId:artifactId:version>",
	Short: "Print the repository and build identity of a source dependency",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(flagPath)
		if err != nil {
			return err
		}
		r, err := newRequest(cfg, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", r.RepositoryID, r.ID())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(idCmd)
}

// newRequest builds the request for the dependency given as
// groupId:artifactId:version.
func newRequest(cfg *config.Configuration, coordinate string) (*build.Request, error) {
	return sdk.NewRequest(cfg, coordinate, sdk.RequestOptions{DependentProjectRoot: flagPath})
}
