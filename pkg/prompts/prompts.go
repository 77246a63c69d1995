// Package prompts loads and renders the prompt templates sent to the
// language models. Templates live in prompts.yaml so they can be tuned
// without recompiling.
package prompts

import (
	"bytes"
	"fmt"
	"os"
	"text/template"

	"gopkg.in/yaml.v3"
)

const defaultPromptsPath = "prompts.yaml"

type Prompts struct {
	System    SystemPrompts    `yaml:"system"`
	Analysis  AnalysisPrompts  `yaml:"analysis"`
	Marketing MarketingPrompts `yaml:"marketing"`
}

type SystemPrompts struct {
	Analysis  string `yaml:"analysis"`
	Marketing string `yaml:"marketing"`
}

type AnalysisPrompts struct {
	FindClips string `yaml:"find_clips"`
}

type MarketingPrompts struct {
	Generate string `yaml:"generate"`
}

type AnalysisParams struct {
	MaxClips       int
	MinClipSeconds int
	MaxClipSeconds int
}

type MarketingParams struct {
	ClipSummaries string
}

func Load() (*Prompts, error) {
	return LoadFrom(defaultPromptsPath)
}

func LoadFrom(path string) (*Prompts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompts file: %w", err)
	}

	var p Prompts
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse prompts file: %w", err)
	}

	return &p, nil
}

func (p *Prompts) RenderAnalysis(params AnalysisParams) (string, error) {
	return render(p.Analysis.FindClips, params)
}

func (p *Prompts) RenderMarketing(params MarketingParams) (string, error) {
	return render(p.Marketing.Generate, params)
}

func render(tmpl string, data any) (string, error) {
	t, err := template.New("prompt").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}
