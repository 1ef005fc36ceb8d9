package userdata

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pluto-labs/pluto/internal/branding"
	"github.com/pluto-labs/pluto/internal/config"
)

// Directory names inside the install root.
const (
	TemplatesDir = "templates"
	BinDir       = "bin"
	ShareDir     = "share"
)

// DirPermNormal is used for directories the CLI creates.
const DirPermNormal os.FileMode = 0755

// ErrNoTemplates is returned when no template root can be found.
var ErrNoTemplates = errors.New("no template directory found")

// InstallRoot returns the machine-wide install location (~/.pluto).
// PLUTO_HOME overrides it.
func InstallRoot() string {
	return config.Dir()
}

// TemplateCandidates lists template roots in lookup order:
//  1. the --templates flag
//  2. PLUTO_TEMPLATES
//  3. config key "templates_dir"
//  4. <install root>/templates
//  5. <executable dir>/../share/pluto/templates
func TemplateCandidates(flag string) []string {
	var out []string
	add := func(p string) {
		if p != "" {
			out = append(out, p)
		}
	}
	add(flag)
	add(os.Getenv(branding.EnvVar("TEMPLATES")))
	add(config.Get(config.KeyTemplatesDir))
	add(filepath.Join(InstallRoot(), TemplatesDir))
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		add(filepath.Join(filepath.Dir(exe), "..", ShareDir, branding.CLIName(), TemplatesDir))
	}
	return out
}

// TemplatesRoot returns the first template candidate that is a directory.
// An explicit flag that does not exist is an error rather than a fallback.
func TemplatesRoot(flag string) (string, error) {
	if flag != "" {
		if !isDir(flag) {
			return "", fmt.Errorf("%w: %s", ErrNoTemplates, flag)
		}
		return filepath.Abs(flag)
	}
	for _, c := range TemplateCandidates("") {
		if isDir(c) {
			return filepath.Abs(c)
		}
	}
	return "", ErrNoTemplates
}

// LauncherCandidates returns the paths where an install script may have
// linked the CLI onto PATH.
func LauncherCandidates() []string {
	name := branding.CLIName()
	candidates := []string{filepath.Join("/usr/local/bin", name)}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(home, ".local", "bin", name),
			filepath.Join(home, "bin", name),
		)
	}
	return candidates
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
