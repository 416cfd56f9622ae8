package main

import (
	"fmt"
	"os"

	"github.com/jsondict/jsondict/internal/config"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for jsondict.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jsondict",
		Short: "Generate xlsx data dictionaries from JSON documents",
		Long: `jsondict turns JSON documents into styled xlsx data dictionaries.

Every top-level key of the document becomes one worksheet. Each scalar
field becomes one row carrying its key path, inferred type, and example
value, next to the documentation columns analysts fill in by hand.

Running jsondict without arguments documents data/input_model.json.
Use 'jsondict generate' for explicit files and options.`,
		Args:          cobra.NoArgs,
		RunE:          runDefaultCmd,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewGenerateCmd())
	cmd.AddCommand(NewStyleCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// runDefaultCmd runs the generation pipeline against the default input path
// when jsondict is invoked without a subcommand.
func runDefaultCmd(cmd *cobra.Command, _ []string) error {
	cfg := config.NewConfig()
	cfg.Targets = []string{config.DefaultInputPath}
	cfg.HistoryDir = config.XDGDataDir()

	if err := resolveFileConfig(cfg); err != nil {
		return err
	}

	return executeGenerate(cmd, cfg)
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
