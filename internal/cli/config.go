package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/yildizm/ReviewRadar/internal/config"
	"gopkg.in/yaml.v3"
)

// defaultConfigFile is where config init writes without --output
const defaultConfigFile = ".reviewradar.yaml"

// newConfigCommand creates the config command with subcommands
func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:         "config",
		Short:       "Manage ReviewRadar configuration",
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		Long: `Create, inspect and check the configuration that points ReviewRadar at
an analysis service and sets its defaults.`,
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand())
	configCmd.AddCommand(newConfigValidateCommand())
	configCmd.AddCommand(newConfigPathCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var (
		outputPath string
		force      bool
	)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented configuration file",
		Long: `Write a commented configuration file with every setting at its default.
The global --endpoint flag sets the analysis service URL in the new file.`,
		Example: `  reviewradar config init
  reviewradar config init --endpoint https://radar.internal:8000
  reviewradar config init --output ~/.config/reviewradar/config.yaml --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputPath == "" {
				outputPath = defaultConfigFile
			}
			if err := writeSampleConfig(outputPath, endpoint, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Configuration written to %s\n", GetEmoji("success"), outputPath)
			return nil
		},
	}

	initCmd.Flags().StringVarP(&outputPath, "output", "o", "", "config file to write (default: "+defaultConfigFile+")")
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	return initCmd
}

// writeSampleConfig writes the sample config, refusing to replace an
// existing file unless force is set
func writeSampleConfig(path, serviceEndpoint string, force bool) error {
	if !force && fileExists(path) {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
	}

	if dir := filepath.Dir(path); dir != "." && dir != "/" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, []byte(config.SampleConfig(serviceEndpoint)), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func newConfigShowCommand() *cobra.Command {
	var format string

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration after defaults, config files and REVIEWRADAR_*
environment variables are merged.`,
		Example: `  reviewradar config show
  reviewradar config show --format json --config ./staging.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewLoader().LoadConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			var data []byte
			switch format {
			case "json":
				data, err = json.MarshalIndent(cfg, "", "  ")
				data = append(data, '\n')
			case "yaml":
				data, err = yaml.Marshal(cfg)
			default:
				return fmt.Errorf("unsupported format: %s (use json or yaml)", format)
			}
			if err != nil {
				return fmt.Errorf("failed to encode configuration: %w", err)
			}

			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	showCmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format (yaml, json)")

	return showCmd
}

func newConfigValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration and summarise it",
		Long: `Load and validate the configuration, then print the settings a submission
will use: service endpoint, thresholds, histogram layout, output and history.`,
		Example: `  reviewradar config validate
  reviewradar config validate --config ./staging.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewLoader().LoadConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s Configuration is valid\n", GetEmoji("success"))
			return writeConfigSummary(cfg, out)
		},
	}
}

// writeConfigSummary renders the settings that shape a submission
func writeConfigSummary(cfg *config.Config, out io.Writer) error {
	timeout := "none"
	if cfg.Service.Timeout > 0 {
		timeout = cfg.Service.Timeout.String()
	}

	data := pterm.TableData{
		{"Setting", "Value"},
		{"Service endpoint", cfg.Service.Endpoint},
		{"Request timeout", timeout},
		{"Manual fallback threshold", fmt.Sprintf("%s (%.2f)", cfg.Threshold(), cfg.Threshold().Value())},
		{"Histogram buckets", fmt.Sprintf("%d (width %d)", cfg.Analysis.HistogramBuckets, 100/cfg.Analysis.HistogramBuckets)},
		{"Confidence 100", string(cfg.Overflow())},
		{"Output format", cfg.Output.DefaultFormat},
		{"History", historyStatus(cfg)},
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("failed to render configuration: %w", err)
	}
	_, err = fmt.Fprintln(out, table)
	return err
}

func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "List configuration file search paths",
		Long: `List the files ReviewRadar reads configuration from, highest priority
first, and mark the ones that exist.`,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			for i, path := range config.GetConfigPaths() {
				mark := "-"
				if fileExists(path) {
					mark = GetEmoji("success")
				}
				fmt.Fprintf(out, "%d. %s %s\n", i+1, mark, path)
			}
			fmt.Fprintf(out, "%s %s* environment variables override every file\n", GetEmoji("tip"), config.EnvPrefix)
		},
	}
}

func historyStatus(cfg *config.Config) string {
	if !cfg.History.Enabled {
		return "disabled"
	}
	return cfg.HistoryPath()
}

func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}
