package cmd

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).MarginBottom(1)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive setup wizard for Clipforge",
	Long:  `Check for ffmpeg, create working directories, and configure API keys.`,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	fmt.Println(titleStyle.Render("🎬 Clipforge Setup"))

	steps := []struct {
		name string
		fn   func() error
	}{
		{"Checking tools", checkTools},
		{"Creating directories", createDirectories},
		{"Configuring environment", configureEnv},
	}

	for _, step := range steps {
		if err := step.fn(); err != nil {
			return fmt.Errorf("%s: %w", step.name, err)
		}
	}

	return nil
}

func checkTools() error {
	missing := false
	for _, tool := range []string{"ffmpeg", "ffprobe"} {
		if commandExists(tool) {
			fmt.Println(successStyle.Render("✓ Found " + tool))
			continue
		}
		missing = true
		fmt.Println(warnStyle.Render(tool + " not found"))
	}

	if missing {
		return fmt.Errorf("ffmpeg and ffprobe are required - install from https://ffmpeg.org/download.html")
	}
	return nil
}

func createDirectories() error {
	dirs := []string{"work", "output"}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	fmt.Println(successStyle.Render("✓ Created directories"))
	return nil
}

func configureEnv() error {
	if _, err := os.Stat(".env"); err == nil {
		var overwrite bool
		if err := huh.NewConfirm().
			Title("Found existing .env file").
			Description("Overwrite?").
			Value(&overwrite).
			Run(); err != nil {
			return err
		}
		if !overwrite {
			fmt.Println(infoStyle.Render("Kept existing .env"))
			return nil
		}
	}

	env := make(map[string]string)

	if err := configureRequiredKeys(env); err != nil {
		return err
	}

	if err := configureGroq(env); err != nil {
		return err
	}

	if err := configureGCS(env); err != nil {
		return err
	}

	return writeEnvFile(env)
}

func configureRequiredKeys(env map[string]string) error {
	var geminiKey string

	if err := huh.NewInput().
		Title("Gemini API Key").
		Description("https://aistudio.google.com/apikey - used for video analysis and narration").
		EchoMode(huh.EchoModePassword).
		Value(&geminiKey).
		Validate(required("Gemini API Key")).
		Run(); err != nil {
		return err
	}

	env["GEMINI_API_KEY"] = strings.TrimSpace(geminiKey)
	return nil
}

func configureGroq(env map[string]string) error {
	var setup bool
	if err := huh.NewConfirm().
		Title("Setup Groq?").
		Description("Alternative provider for marketing copy (optional)").
		Value(&setup).
		Run(); err != nil {
		return err
	}

	if !setup {
		return nil
	}

	var apiKey string
	if err := huh.NewInput().
		Title("GROQ API Key").
		Description("https://console.groq.com/keys").
		EchoMode(huh.EchoModePassword).
		Value(&apiKey).
		Run(); err != nil {
		return err
	}

	apiKey = strings.TrimSpace(apiKey)
	if apiKey != "" {
		env["GROQ_API_KEY"] = apiKey
	}
	return nil
}

func configureGCS(env map[string]string) error {
	var setup bool
	if err := huh.NewConfirm().
		Title("Setup Cloud Storage archive?").
		Description("Mirror finished videos to a GCS bucket (optional)").
		Value(&setup).
		Run(); err != nil {
		return err
	}

	if !setup {
		return nil
	}

	if !commandExists("gcloud") {
		fmt.Println(warnStyle.Render("gcloud CLI not found - install from https://cloud.google.com/sdk/docs/install"))
	}

	var bucket string
	if err := huh.NewInput().
		Title("GCS Bucket").
		Placeholder("my-clipforge-archive").
		Value(&bucket).
		Run(); err != nil {
		return err
	}

	bucket = strings.TrimSpace(bucket)
	if bucket == "" {
		return nil
	}
	env["GCS_BUCKET"] = bucket

	if commandExists("gcloud") {
		var create bool
		if err := huh.NewConfirm().
			Title("Create the bucket now?").
			Value(&create).
			Run(); err != nil {
			return err
		}
		if create {
			err := runWithSpinner("Creating bucket", func() error {
				return runSetupCmd("gcloud", "storage", "buckets", "create", "gs://"+bucket)
			})
			if err != nil {
				fmt.Println(warnStyle.Render(fmt.Sprintf("Bucket creation failed: %v", err)))
			}
		}
	}

	fmt.Println(infoStyle.Render("Enable the archive with gcs.enabled: true in config.yaml"))
	return nil
}

func writeEnvFile(env map[string]string) error {
	f, err := os.Create(".env")
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	order := []string{
		"GEMINI_API_KEY",
		"GROQ_API_KEY",
		"GCS_BUCKET",
	}

	for _, key := range order {
		if val, ok := env[key]; ok && val != "" {
			_, _ = fmt.Fprintf(f, "%s=%s\n", key, val)
		}
	}

	fmt.Println(successStyle.Render("✓ Created .env file"))
	printNextSteps()
	return nil
}

func printNextSteps() {
	fmt.Println()
	fmt.Println(titleStyle.Render("Next steps:"))
	fmt.Println("  1. Tune prompts.yaml and config.yaml if needed")
	fmt.Println("  2. Run: clipforge run <product page URL or video file>")
}

func required(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func commandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

func runSetupCmd(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %s", err, stderr.String())
	}
	return nil
}

func runWithSpinner(title string, fn func() error) error {
	var err error
	_ = spinner.New().
		Title(title).
		Action(func() { err = fn() }).
		Run()
	if err != nil {
		return err
	}
	fmt.Println(successStyle.Render("✓ " + title))
	return nil
}
