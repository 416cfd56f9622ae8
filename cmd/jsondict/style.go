package main

import (
	"fmt"

	"github.com/jsondict/jsondict/internal/config"
	"github.com/jsondict/jsondict/internal/workbook"
	"github.com/spf13/cobra"
)

// NewStyleCmd creates the style command.
func NewStyleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "style <file.xlsx> [file.xlsx ...]",
		Short: "Re-apply dictionary styling to existing workbooks",
		Long: `Style reopens existing xlsx workbooks and applies the full dictionary
styling pass: type and required-flag fills, borders, merged key runs,
fitted column widths, and the header auto filter.

Generate runs the same pass automatically; style exists to restore
formatting after manual edits, or to format workbooks produced
elsewhere as long as their sheets follow the dictionary column layout.

Examples:
  # Restyle one workbook
  jsondict style dictionary.xlsx

  # Restyle several workbooks with custom labels
  jsondict style -c myconfig.yaml first.xlsx second.xlsx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runStyleCmd,
	}

	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .jsondict.yaml in current or home directory)")

	return cmd
}

// runStyleCmd executes the style command.
func runStyleCmd(cmd *cobra.Command, args []string) error {
	cfg := config.NewConfig()
	cfg.Targets = args

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return err
	}

	// The layout identifies the type, required, and key columns by header,
	// so label overrides must match the ones used at generation time
	if err := resolveFileConfig(cfg); err != nil {
		return err
	}

	layout := buildLayout(cfg)
	for _, target := range args {
		if err := workbook.Style(target, layout); err != nil {
			return fmt.Errorf("failed to style %s: %w", target, err)
		}
		fmt.Printf("Workbook styled: %s\n", target)
	}

	return nil
}
