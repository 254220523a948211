package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kisixing/srcdeps-core/internal/config"
)

var flagOutput string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that the configuration reads and builds",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(flagPath)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "OK (%d repositories)\n", len(cfg.Repositories))
		return nil
	},
}

var showConfigCmd = &cobra.Command{
	Use:   "show-config",
	Short: "Print the configuration with defaults and inheritance applied",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		b, err := loadBuilder(flagPath)
		if err != nil {
			return err
		}
		cfg, err := b.Build()
		if err != nil {
			return fmt.Errorf("building configuration: %w", err)
		}
		return showConfig(cmd.OutOrStdout(), b, cfg)
	},
}

func init() {
	showConfigCmd.Flags().StringVarP(&flagOutput, "output", "o", "yaml", "output format: yaml or json")
	rootCmd.AddCommand(validateCmd, showConfigCmd)
}

// loadBuilder reads the configuration file and applies defaults and
// inheritance.
func loadBuilder(workDir string) (*config.Builder, error) {
	configPath := flagConfig
	if configPath == "" {
		configPath = config.FindFile(workDir)
	}
	if configPath == "" {
		return nil, fmt.Errorf("no configuration file in %s: looked for %s", workDir, strings.Join(config.FileNames(), ", "))
	}

	b, err := config.LoadFromFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", configPath, err)
	}
	return b.ApplyDefaults(), nil
}

// loadConfig loads and builds the configuration.
func loadConfig(workDir string) (*config.Configuration, error) {
	b, err := loadBuilder(workDir)
	if err != nil {
		return nil, err
	}
	cfg, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("building configuration: %w", err)
	}
	return cfg, nil
}

func showConfig(w io.Writer, b *config.Builder, cfg *config.Configuration) error {
	switch flagOutput {
	case "yaml", "":
		return b.Write(w, config.WriteEffective)
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling config: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	default:
		return fmt.Errorf("unknown output format %q", flagOutput)
	}
}
