package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/solos-nft/solos-deploy/internal/domain/config"
	"github.com/solos-nft/solos-deploy/internal/usecase"
)

// ConfigRenderer renders config-related output
type ConfigRenderer struct {
	out io.Writer
}

// NewConfigRenderer creates a new config renderer
func NewConfigRenderer(out io.Writer) *ConfigRenderer {
	return &ConfigRenderer{
		out: out,
	}
}

// getRelativePath returns the relative path from current directory
func getRelativePath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}

	relPath, err := filepath.Rel(cwd, path)
	if err != nil {
		return path
	}

	return relPath
}

// RenderConfig renders the configuration display
func (r *ConfigRenderer) RenderConfig(result *usecase.ShowConfigResult) error {
	if result.ProjectFile != "" {
		fmt.Fprintf(r.out, "📦 Project file: %s\n", getRelativePath(result.ProjectFile))
	} else {
		fmt.Fprintln(r.out, FormatWarning("No solos.toml or solos.yaml found"))
	}

	if !result.Exists {
		fmt.Fprintln(r.out, "No .solos/config.local.json file found")
		return nil
	}

	fmt.Fprintln(r.out, "📋 Current config:")
	for _, key := range config.ValidConfigKeys() {
		value := result.Config.Get(key)
		if value == "" {
			value = labelStyle.Sprint("(not set)")
		}
		fmt.Fprintf(r.out, "%-9s %s\n", titleCase(string(key))+":", value)
	}

	fmt.Fprintf(r.out, "📁 config file: %s\n", getRelativePath(result.ConfigPath))
	return nil
}

// RenderSet renders the result of setting a configuration value
func (r *ConfigRenderer) RenderSet(result *usecase.SetConfigResult) error {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Set %s to: %s", result.Key, result.Value)))
	fmt.Fprintf(r.out, "📁 config saved to: %s\n", getRelativePath(result.ConfigPath))
	return nil
}

// RenderRemove renders the result of removing a configuration value
func (r *ConfigRenderer) RenderRemove(result *usecase.RemoveConfigResult) error {
	if result.RemovedValue == "" {
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("%s was not set", result.Key)))
	} else {
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Removed %s (was: %s)", result.Key, result.RemovedValue)))
	}

	fmt.Fprintf(r.out, "📁 config saved to: %s\n", getRelativePath(result.ConfigPath))
	return nil
}
