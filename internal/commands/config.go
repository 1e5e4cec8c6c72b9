package commands

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// projectConfig carries defaults read from an optional smithy4s.yml in the
// working directory. Command-line flags win over config values.
type projectConfig struct {
	Artifact          string
	Output            string
	ResourceOutput    string
	Skip              []string
	RendererCommand   string
	RendererArgs      []string
	RendererExtension string
}

// loadProjectConfig reads smithy4s.yml if present. A missing file is not an
// error; every field stays at its zero value.
func loadProjectConfig() (*projectConfig, error) {
	if _, err := os.Stat("smithy4s.yml"); os.IsNotExist(err) {
		return &projectConfig{}, nil
	}

	v := viper.New()
	v.SetConfigName("smithy4s")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read smithy4s.yml: %w", err)
	}

	return &projectConfig{
		Artifact:          v.GetString("artifact"),
		Output:            v.GetString("output"),
		ResourceOutput:    v.GetString("resource_output"),
		Skip:              v.GetStringSlice("skip"),
		RendererCommand:   v.GetString("renderer.command"),
		RendererArgs:      v.GetStringSlice("renderer.args"),
		RendererExtension: v.GetString("renderer.extension"),
	}, nil
}

// fallback returns value unless it is empty, then def.
func fallback(value, def string) string {
	if value != "" {
		return value
	}
	return def
}
