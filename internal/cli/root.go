package cli

import (
	"fmt"
	"runtime"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/yildizm/ReviewRadar/internal/config"
	"github.com/yildizm/ReviewRadar/internal/emoji"
	"github.com/yildizm/ReviewRadar/internal/ui"
)

// skipConfigAnnotation marks commands that load configuration themselves
const skipConfigAnnotation = "reviewradar/skip-config"

var (
	cfgFile    string
	verbose    bool
	noColor    bool
	noEmoji    bool
	outputFmt  string
	endpoint   string
	outputFile string

	globalConfig *config.Config
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "reviewradar",
		Short: "Review authenticity analysis client",
		Long: `ReviewRadar sends product reviews to a review-authenticity analysis service
and shows which ones look real and which look fake.

Run without arguments to open the interactive terminal UI, or use the
subcommands to analyze a product page, a single review, or a file of reviews.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Auto-disable emojis on Windows if not explicitly set
			if runtime.GOOS == "windows" && !cmd.Flag("no-emoji").Changed {
				noEmoji = true
			}
			emoji.SetEmojiDisabled(noEmoji)

			if skipsConfig(cmd) {
				return nil
			}
			return initConfig(cmd)
		},
		Args: cobra.NoArgs,
		RunE: runTUI,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "text", "output format (text, json, markdown, csv, html)")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "analysis service base URL")
	rootCmd.PersistentFlags().StringVar(&outputFile, "output-file", "", "save output to file instead of stdout")

	// Add subcommands
	rootCmd.AddCommand(newTUICommand())
	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newReviewCommand())
	rootCmd.AddCommand(newBatchCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newHistoryCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

// initConfig loads the configuration and applies global flag overrides
func initConfig(cmd *cobra.Command) error {
	cfg, err := config.NewLoader().LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("endpoint") {
		cfg.Service.Endpoint = endpoint
	}
	if !flags.Changed("output") && cfg.Output.DefaultFormat != "" {
		outputFmt = cfg.Output.DefaultFormat
	}
	if !flags.Changed("verbose") && cfg.Output.Verbose {
		verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	applyColorMode(cfg.Output.ColorMode)
	if cfg.Output.Theme != "" && !ui.SetThemeByName(cfg.Output.Theme) {
		return fmt.Errorf("unknown theme: %s", cfg.Output.Theme)
	}

	globalConfig = cfg
	return nil
}

// applyColorMode combines --no-color with the configured color mode
func applyColorMode(mode string) {
	switch {
	case noColor || mode == "never":
		noColor = true
		ui.SetColorDisabled(true)
		pterm.DisableColor()
	case mode == "always":
		ui.SetColorDisabled(false)
		pterm.EnableColor()
	}
}

func skipsConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[skipConfigAnnotation] == "true" {
			return true
		}
	}
	return false
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Show version information",
		Long:        "Display version number, build commit, date, and runtime information",
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ReviewRadar %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// GetGlobalConfig returns the loaded configuration, or defaults before
// the root command has run
func GetGlobalConfig() *config.Config {
	if globalConfig == nil {
		return config.DefaultConfig()
	}
	return globalConfig
}

// Global helpers
func isVerbose() bool {
	return verbose
}

func getOutputFormat() string {
	return outputFmt
}

func isEmojiDisabled() bool {
	return noEmoji
}
