package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"clipforge/internal/storage"
	"clipforge/pkg/config"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List finished videos and content packages",
	Long:  `Show the artifacts in the output directory, and in the GCS archive when one is configured.`,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	local := storage.NewLocalStorage(cfg.Video.OutputDir)
	artifacts, err := local.ListArtifacts()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Println("No artifacts yet")
			return nil
		}
		return fmt.Errorf("list artifacts: %w", err)
	}

	if len(artifacts) == 0 {
		fmt.Println("No artifacts yet")
	} else {
		fmt.Printf("Artifacts in %s:\n", cfg.Video.OutputDir)
		for _, a := range artifacts {
			fmt.Printf("  %s\n", filepath.Base(a))
		}
	}

	if cfg.GCS.Enabled && cfg.GCSBucket != "" {
		listArchived(cmd, cfg)
	}
	return nil
}

func listArchived(cmd *cobra.Command, cfg *config.Config) {
	ctx := cmd.Context()

	archiver, err := storage.NewGCSArchiver(ctx, cfg.GCSBucket, cfg.GCS.Prefix)
	if err != nil {
		slog.Warn("could not reach GCS archive", "error", err)
		return
	}
	defer func() { _ = archiver.Close() }()

	archived, err := archiver.ListArtifacts(ctx)
	if err != nil {
		slog.Warn("could not list GCS archive", "error", err)
		return
	}

	fmt.Printf("Archived in gs://%s:\n", cfg.GCSBucket)
	for _, a := range archived {
		fmt.Printf("  %s\n", a)
	}
}
