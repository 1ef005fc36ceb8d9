// Package branding provides compile-time identity values for the CLI.
//
// branding.yaml is embedded with //go:embed so forks can rename the tool,
// its dot-directories and its environment prefix without touching code.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName         string `yaml:"cli_name"`
	DisplayName     string `yaml:"display_name"`
	Description     string `yaml:"description"`
	HomeDir         string `yaml:"home_dir"`
	StateDir        string `yaml:"state_dir"`
	EnvPrefix       string `yaml:"env_prefix"`
	GoModule        string `yaml:"go_module"`
	GitHubRepo      string `yaml:"github_repo"`
	TemplateRepoURL string `yaml:"template_repo_url"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or empty.
		defaults = brand{
			CLIName:         "pluto",
			DisplayName:     "Pluto",
			Description:     "AI agent and command installer for coding assistants",
			HomeDir:         ".pluto",
			StateDir:        ".pluto",
			EnvPrefix:       "PLUTO",
			GoModule:        "github.com/pluto-labs/pluto",
			GitHubRepo:      "pluto-labs/pluto",
			TemplateRepoURL: "https://github.com/pluto-labs/pluto.git",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "pluto").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "Pluto").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".pluto").
func HomeDir() string { load(); return defaults.HomeDir }

// StateDir returns the private per-project directory name (e.g., ".pluto").
// Hook commands registered in tool settings reference paths below it, so the
// value doubles as the ownership marker for settings entries.
func StateDir() string { load(); return defaults.StateDir }

// EnvPrefix returns the environment variable prefix (e.g., "PLUTO").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GitHubRepo returns the "owner/repo" string.
func GitHubRepo() string { load(); return defaults.GitHubRepo }

// TemplateRepoURL returns the default git URL the update command clones.
func TemplateRepoURL() string { load(); return defaults.TemplateRepoURL }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "PLUTO_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
