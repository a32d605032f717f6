package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/entrhq/shuttle/pkg/config"
	"github.com/entrhq/shuttle/pkg/inbound"
	"github.com/entrhq/shuttle/pkg/portal"
	"github.com/entrhq/shuttle/pkg/upload"
)

var (
	uploadDir     string
	uploadSince   string
	selectorsPath string
	jsonOutput    bool
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload eligible report files from a directory",
	Long: `Collect files from the inbound directory, send the eligible reports
to the portal in one transfer, and print a per-file result list.`,
	Example: `  # Upload everything currently in ./reports
  shuttle upload --dir ./reports

  # Only files changed since a point in time
  shuttle upload --dir ./reports --since 2026-08-30T00:00:00Z

  # Use portal selectors overridden for a markup change
  shuttle upload --dir ./reports --selectors selectors.yaml`,
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().StringVar(&uploadDir, "dir", ".", "Directory holding inbound files")
	uploadCmd.Flags().StringVar(&uploadSince, "since", "", "Only consider files modified after this RFC 3339 time")
	uploadCmd.Flags().StringVar(&selectorsPath, "selectors", "", "YAML file overriding portal DOM selectors")
	uploadCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print results as JSON")
}

func runUpload(cmd *cobra.Command, args []string) error {
	applyVerbosity(cmd)

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	selectors := portal.DefaultSelectors()
	if selectorsPath != "" {
		if selectors, err = portal.LoadSelectors(selectorsPath); err != nil {
			return err
		}
	}

	var since time.Time
	if uploadSince != "" {
		if since, err = time.Parse(time.RFC3339, uploadSince); err != nil {
			return fmt.Errorf("parse --since: %w", err)
		}
	}

	source := &inbound.DirSource{Dir: uploadDir}
	files, err := source.ChangesSince(since)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		log.Info("no inbound files found", "dir", uploadDir)
		return nil
	}

	coordinator := upload.NewCoordinator(portal.NewOrchestrator(cfg, selectors))
	results, err := coordinator.Upload(files)
	if err != nil {
		return err
	}

	if err := printResults(results); err != nil {
		return err
	}

	for _, result := range results {
		if !result.Success {
			return fmt.Errorf("%d of %d files failed to upload", countFailed(results), len(results))
		}
	}
	return nil
}

func printResults(results []upload.PerFileResult) error {
	if jsonOutput {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(results)
	}

	for _, result := range results {
		switch {
		case result.Skipped:
			fmt.Printf("SKIP  %s\n", result.FileName)
		case result.Success:
			fmt.Printf("OK    %s\n", result.FileName)
		default:
			fmt.Printf("FAIL  %s: %s\n", result.FileName, result.Error)
		}
	}
	return nil
}

func countFailed(results []upload.PerFileResult) int {
	failed := 0
	for _, result := range results {
		if !result.Success {
			failed++
		}
	}
	return failed
}
