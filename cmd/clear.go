package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"clipforge/pkg/config"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove intermediate files from the work directory",
	Long:  `Delete session directories left in the work directory. Finished artifacts in the output directory are kept.`,
	RunE:  runClear,
}

func init() {
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	entries, err := os.ReadDir(cfg.Video.WorkDir)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("Work directory is already empty")
			return nil
		}
		return fmt.Errorf("read work directory: %w", err)
	}

	count := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if err := os.RemoveAll(filepath.Join(cfg.Video.WorkDir, entry.Name())); err != nil {
			return fmt.Errorf("remove %s: %w", entry.Name(), err)
		}
		count++
	}

	fmt.Printf("Cleared %d session(s) from %s\n", count, cfg.Video.WorkDir)
	return nil
}
