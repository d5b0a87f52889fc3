package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"src.lined.dev/pkg/term"
)

// config is the YAML configuration file of the demo shell.
type config struct {
	// Prompt before the first line of the buffer.
	Prompt string `yaml:"prompt"`
	// Right-aligned prompt on the first line.
	RPrompt string `yaml:"rprompt"`
	// Pattern for the prompt before continuation lines; %N expands to the
	// continuation line number.
	SecondaryPrompt string `yaml:"secondary-prompt"`
	// Maximum height the editor may use; 0 means no limit.
	MaxHeight int `yaml:"max-height"`
	// Mouse tracking mode: off, normal, button or any.
	Mouse string `yaml:"mouse"`
	// Commands offered when completing the first word.
	Commands []string `yaml:"commands"`

	History historyConfig `yaml:"history"`
}

type historyConfig struct {
	// Path of the history database. An empty path disables history.
	File string `yaml:"file"`

	IgnoreDups  bool `yaml:"ignore-dups"`
	IgnoreSpace bool `yaml:"ignore-space"`
	Beep        bool `yaml:"beep"`
	Expand      bool `yaml:"expand"`
	Verify      bool `yaml:"verify"`
}

func defaultConfig() config {
	histFile := ""
	if home, err := os.UserHomeDir(); err == nil {
		histFile = filepath.Join(home, ".lined.db")
	}
	return config{
		Prompt:          "lined> ",
		SecondaryPrompt: "%N> ",
		Commands: []string{
			"cd", "echo", "exit", "help", "history", "ls", "set"},
		History: historyConfig{
			File:       histFile,
			IgnoreDups: true,
			Beep:       true,
		},
	}
}

// loadConfig reads the configuration file at path on top of the defaults.
// A missing file is not an error; a malformed one is.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func parseMouseMode(s string) (term.MouseMode, error) {
	switch s {
	case "", "off":
		return term.MouseOff, nil
	case "normal":
		return term.MouseNormal, nil
	case "button":
		return term.MouseButton, nil
	case "any":
		return term.MouseAny, nil
	}
	return term.MouseOff, fmt.Errorf("invalid mouse mode %q", s)
}
