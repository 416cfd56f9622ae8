package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jsondict/jsondict/internal/config"
	"github.com/jsondict/jsondict/internal/history"
	"github.com/jsondict/jsondict/internal/model"
	"github.com/jsondict/jsondict/internal/report"
	"github.com/spf13/cobra"
)

// NewCompareCmd creates the compare command.
// This command reports schema drift between stored generation snapshots.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [file.json]",
		Short: "Report schema drift between dictionary generations",
		Long: `Compare shows how a JSON document's schema changed between dictionary
generations: fields that were added, fields that were removed, and
fields whose inferred type changed.

Every generate run stores a snapshot of the produced dictionary (unless
--no-history is given). Compare diffs the two most recent snapshots of
the given source file, or the latest snapshot against a specific one.

The comparison requires at least two snapshots for the specified source.
Use 'jsondict generate' to document a file and record snapshots.

Examples:
  # Compare the latest two generations of a source
  jsondict compare model.json

  # List stored snapshots for a source
  jsondict compare --list model.json

  # Compare the latest generation with snapshot 5
  jsondict compare --with-snapshot-id 5 model.json

  # Output the drift report in JSON format
  jsondict compare --json model.json

  # List every source with stored snapshots
  jsondict compare --list-sources`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompareCmd,
	}

	// History listing flags
	cmd.Flags().BoolP("list", "l", false,
		"List stored snapshots for the specified source file")
	cmd.Flags().BoolP("list-sources", "L", false,
		"List all sources with stored snapshots")

	// Comparison target flags
	cmd.Flags().Int64P("with-snapshot-id", "i", 0,
		"Compare the latest generation with a specific snapshot (use --list to see IDs)")

	// Output format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output the drift report in JSON format")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output the drift report in Markdown format")

	// Store and label resolution
	cmd.Flags().String("history-dir", "",
		"Directory holding the snapshot database (default: XDG data directory)")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .jsondict.yaml in current or home directory)")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	// Handle --list-sources flag first (requires the store but no source)
	listSources, err := cmd.Flags().GetBool("list-sources")
	if err != nil {
		return err
	}

	// Validate arguments before opening the store (unless --list-sources)
	var source string
	if !listSources {
		if len(args) == 0 {
			return errors.New("source file is required (use --list-sources to see stored sources)")
		}
		source = args[0]
	}

	historyDir, err := cmd.Flags().GetString("history-dir")
	if err != nil {
		return err
	}
	if historyDir == "" {
		historyDir = config.XDGDataDir()
	}

	// Comparing never creates the store: without stored snapshots there
	// is nothing to diff
	opts := history.DefaultOptions()
	opts.CreateIfNotExists = false

	store, err := history.Open(historyDir, opts)
	if err != nil {
		return fmt.Errorf("failed to open history store: %w", err)
	}
	defer store.Close()

	ctx := context.Background()

	// Handle --list-sources flag
	if listSources {
		return listRecordedSources(ctx, store)
	}

	// Handle --list flag
	list, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	if list {
		return listSnapshots(ctx, store, source)
	}

	// Get output format flags
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	markdownOutput, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	if jsonOutput && markdownOutput {
		return config.ErrConflictingReportFormats
	}

	// Get comparison target flags
	withSnapshotID, err := cmd.Flags().GetInt64("with-snapshot-id")
	if err != nil {
		return err
	}

	// Stored rows pad their level cells with the configured placeholder,
	// so field paths resolve with the same labels generation used
	cfg := config.NewConfig()
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	if err := resolveFileConfig(cfg); err != nil {
		return err
	}
	placeholder := buildLayout(cfg).Placeholder

	// Perform comparison
	return runComparison(ctx, store, source, withSnapshotID, placeholder, jsonOutput, markdownOutput)
}

// listRecordedSources lists every source document with stored snapshots.
func listRecordedSources(ctx context.Context, store *history.Store) error {
	sources, err := store.ListSources(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sources: %w", err)
	}

	if len(sources) == 0 {
		fmt.Println("No snapshots found in the history store.")
		fmt.Println("\nUse 'jsondict generate <file.json>' to document a file and record a snapshot.")
		return nil
	}

	fmt.Printf("Recorded sources (%d):\n\n", len(sources))
	for _, source := range sources {
		fmt.Printf("  • %s\n", source)
	}
	fmt.Println("\nUse 'jsondict compare --list <file.json>' to see snapshots for a source.")

	return nil
}

// listSnapshots lists all stored snapshots for a specific source document.
func listSnapshots(ctx context.Context, store *history.Store, source string) error {
	snapshots, err := store.History(ctx, source)
	if err != nil {
		return fmt.Errorf("failed to get snapshot history: %w", err)
	}

	if len(snapshots) == 0 {
		fmt.Printf("No snapshots found for %s\n", source)
		fmt.Println("\nUse 'jsondict generate' to document this file.")
		return nil
	}

	fmt.Printf("Snapshots for %s (%d generations):\n\n", source, len(snapshots))
	fmt.Printf("  %-6s  %-20s  %s\n", "ID", "Generated", "Contents")
	fmt.Println("  " + strings.Repeat("-", 60))

	for _, meta := range snapshots {
		fmt.Printf("  %-6d  %-20s  %d sections, %d fields\n",
			meta.ID,
			meta.GeneratedAt.Format("2006-01-02 15:04:05"),
			meta.SectionCount,
			meta.FieldCount,
		)
	}

	fmt.Println("\nUse 'jsondict compare <file.json>' to compare the latest two snapshots.")
	fmt.Println("Use 'jsondict compare --with-snapshot-id <id> <file.json>' to compare with a specific snapshot.")

	return nil
}

// runComparison diffs the latest snapshot of a source against its
// predecessor, or against a specific snapshot when an ID is given.
func runComparison(ctx context.Context, store *history.Store, source string, withSnapshotID int64, placeholder string, jsonOutput, markdownOutput bool) error {
	current, previous, err := store.LatestTwo(ctx, source)
	if err != nil {
		return fmt.Errorf("failed to get snapshot history: %w", err)
	}

	if current == nil {
		return fmt.Errorf("no snapshots found for %s", source)
	}

	if withSnapshotID > 0 {
		// Compare against the snapshot with the specified ID
		previous, err = store.GetByID(ctx, withSnapshotID)
		if err != nil {
			return fmt.Errorf("failed to get snapshot with ID %d: %w", withSnapshotID, err)
		}
		if previous == nil {
			return fmt.Errorf("snapshot with ID %d not found", withSnapshotID)
		}
		// Validate that the snapshot belongs to the same source
		if previous.Source != source {
			return fmt.Errorf("snapshot ID %d belongs to %s, not %s", withSnapshotID, previous.Source, source)
		}
	} else if previous == nil {
		return errors.New("at least 2 snapshots are required for comparison (found 1)")
	}

	drift := model.NewDrift(previous.Dictionary, current.Dictionary, placeholder)
	drift.FromSnapshot = previous.ID
	drift.ToSnapshot = current.ID
	drift.FromGeneratedAt = previous.GeneratedAt
	drift.ToGeneratedAt = current.GeneratedAt

	// Output the result
	if jsonOutput {
		writer := report.NewJSONWriter(os.Stdout, report.WithPrettyPrint())
		_, err := writer.WriteDrift(drift)
		return err
	}
	if markdownOutput {
		writer := report.NewMarkdownWriter(os.Stdout)
		_, err := writer.WriteDrift(drift)
		return err
	}
	writer := report.NewSimpleWriter(os.Stdout)
	_, err = writer.WriteDrift(drift)
	return err
}
