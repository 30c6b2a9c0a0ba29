// Package cmd provides the CLI commands for pricing-truth.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pricing-truth/internal/config"
	"pricing-truth/internal/logging"
)

var (
	cfgFile   string
	rulesFile string
	verbose   bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "pricing-truth",
	Short: "Evidence-backed pricing verdicts for SaaS products",
	Long: `pricing-truth gathers competitor pricing evidence from the web,
normalizes it to monthly USD, and renders a deterministic verdict on
whether a product is underpriced, fairly priced, or overpriced.

Every verdict carries a confidence score, citations back to the source
pages, and an explicit list of gaps where evidence was missing.

Examples:
  pricing-truth analyze "Acme PM" --price "$99/month"
  pricing-truth analyze "Acme PM" --price "$99/month" --competitor https://rival.com
  pricing-truth analyze "Acme PM" --price "$99/month" --format markdown --out report.md
  pricing-truth analyze "Acme PM" --price "$99/month" --evidence bundle.json`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.pricing-truth.json)")
	rootCmd.PersistentFlags().StringVar(&rulesFile, "rules", "", "HCL rules file overriding FX rates, thresholds, and vocabulary")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	// Initialize logging
	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("pricing-truth version 0.1.0")
	},
}

// configCmd manages configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// configInitCmd writes a default config file
var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ".pricing-truth.json"
		if len(args) > 0 {
			path = args[0]
		}
		if err := config.Default().Save(path); err != nil {
			return err
		}
		fmt.Printf("Wrote default configuration to %s\n", path)
		return nil
	},
}

// configShowCmd prints the active configuration
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active configuration as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := json.MarshalIndent(config.Get(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
