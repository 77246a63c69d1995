package cmd

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"clipforge/internal/app"
	"clipforge/pkg/config"
)

var runCmd = &cobra.Command{
	Use:   "run [source]",
	Short: "Process one source video into micro-clips",
	Long: `Process a source video end to end: download (for URLs), crop, analyze,
narrate, subtitle, and assemble the final video with its marketing copy.

The source is either a product page URL or a path to a local video file.`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	source := args[0]
	if source == "" {
		return errors.New("please provide a source URL or file")
	}

	ctx := cmd.Context()
	cfg := config.Load()

	service, err := app.BuildService(ctx, cfg)
	if err != nil {
		return err
	}

	result, err := app.NewPipeline(service).Process(ctx, source)
	if err != nil {
		return err
	}

	slog.Info("Processing complete",
		"title", result.Title,
		"video", result.VideoPath,
		"descriptions", result.DescriptionsPath,
		"clips", result.ClipsProduced,
	)

	if result.ClipsProduced < result.ClipsPlanned {
		slog.Warn("Some clips were skipped",
			"planned", result.ClipsPlanned,
			"produced", result.ClipsProduced,
		)
	}
	return nil
}
