package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pluto-labs/pluto/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Recognized configuration keys.
const (
	KeyTemplateRepo  = "template_repo"
	KeyTemplatesDir  = "templates_dir"
	KeyDefaultBranch = "default_branch"
)

// DefaultBranch is used by update when neither the flag nor the config sets one.
const DefaultBranch = "main"

// Keys returns the configuration keys the CLI understands.
func Keys() []string {
	return []string{KeyTemplateRepo, KeyTemplatesDir, KeyDefaultBranch}
}

// Dir returns the path to the Pluto home directory (~/.pluto/).
// PLUTO_HOME overrides the location.
func Dir() string {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.pluto/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()
	viper.SetDefault(KeyDefaultBranch, DefaultBranch)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !isKnownKey(key) {
		return fmt.Errorf("unknown config key %q (known: %v)", key, Keys())
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// TemplateRepoURL returns the repository update clones, checking (in order):
// 1. PLUTO_TEMPLATE_REPO env var
// 2. config key "template_repo"
// 3. branding.TemplateRepoURL()
func TemplateRepoURL() string {
	if v := Get(KeyTemplateRepo); v != "" {
		return v
	}
	return branding.TemplateRepoURL()
}

// Branch returns the configured default branch for update.
func Branch() string {
	if v := Get(KeyDefaultBranch); v != "" {
		return v
	}
	return DefaultBranch
}

func isKnownKey(key string) bool {
	for _, k := range Keys() {
		if k == key {
			return true
		}
	}
	return false
}
