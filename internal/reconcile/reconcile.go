package reconcile

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pluto-labs/pluto/internal/integrations"
	"github.com/pluto-labs/pluto/internal/logging"
	"github.com/pluto-labs/pluto/internal/manifest"
	"github.com/pluto-labs/pluto/internal/platform"
	"github.com/pluto-labs/pluto/internal/settings"
)

// Report describes what UninstallPrevious changed. Paths are project
// relative and slash separated.
type Report struct {
	HadManifest     bool
	RemovedFiles    []string
	SettingsUpdated []string
	SettingsDeleted []string
	StateRemoved    bool
	Warnings        []string
}

// Changed reports whether anything was removed.
func (r *Report) Changed() bool {
	return len(r.RemovedFiles) > 0 || len(r.SettingsUpdated) > 0 ||
		len(r.SettingsDeleted) > 0 || r.StateRemoved
}

func (r *Report) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// UninstallPrevious removes everything a previous install added to
// projectDir. A project that was never initialized is not an error: owned
// hooks are still cleaned using the marker, but allow-list entries are left
// alone since they may be the user's. Per-file failures are collected as warnings; only a
// failure to remove the state directory is returned.
func UninstallPrevious(projectDir string) (*Report, error) {
	logger := logging.Get("reconcile")
	report := &Report{}
	store := manifest.NewStore(projectDir)

	m, err := store.Load()
	switch {
	case err == nil:
		report.HadManifest = true
	case errors.Is(err, manifest.ErrNotInitialized):
		if store.Exists() {
			report.warnf("ignoring unusable manifest: %v", err)
		}
		m = nil
	default:
		return nil, err
	}

	touchedDirs := removeFiles(projectDir, m, report)
	cleanSettings(projectDir, m, report)

	for _, dir := range touchedDirs {
		platform.RemoveEmptyParents(dir, projectDir)
	}

	existed := store.Exists() || dirExists(store.Dir())
	if err := store.Remove(); err != nil {
		return report, err
	}
	report.StateRemoved = existed

	logger.Info().
		Int("files", len(report.RemovedFiles)).
		Int("settings", len(report.SettingsUpdated)+len(report.SettingsDeleted)).
		Bool("state", report.StateRemoved).
		Msg("previous install reconciled")
	return report, nil
}

// removeFiles deletes recorded files and returns the directories they lived
// in so emptied directories can be pruned afterwards.
func removeFiles(projectDir string, m *manifest.Manifest, report *Report) []string {
	if m == nil {
		return nil
	}

	var rels []string
	if m.HasFileRecord() {
		rels = m.AllFiles()
	} else {
		rels = legacyFiles(m)
	}

	dirs := make(map[string]bool)
	for _, rel := range rels {
		path, ok := projectPath(projectDir, rel)
		if !ok {
			report.warnf("skipping recorded path outside project: %s", rel)
			continue
		}
		existed, err := platform.RemoveIfExists(path)
		if err != nil {
			report.warnf("removing %s: %v", rel, err)
			continue
		}
		if existed {
			report.RemovedFiles = append(report.RemovedFiles, filepath.ToSlash(rel))
			dirs[filepath.Dir(path)] = true
		}
	}

	out := make([]string, 0, len(dirs))
	for d := range dirs {
		out = append(out, d)
	}
	// Deepest first so nested empties go before their parents are checked.
	sort.Slice(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
	return out
}

// legacyFiles reconstructs the paths an install wrote before file recording
// existed: one file per agent per fan-out tool and each aggregate file.
func legacyFiles(m *manifest.Manifest) []string {
	var rels []string
	for _, t := range m.Tools {
		name, ok := integrations.ParseToolName(t)
		if !ok {
			continue
		}
		profile, _ := integrations.Profile(name)
		if profile.Mode == integrations.ModeAggregate {
			rels = append(rels, profile.AggregateFile)
			continue
		}
		for _, agent := range m.Agents {
			for _, ext := range profile.Extensions {
				rels = append(rels, filepath.Join(profile.ContentDir, agent+ext))
			}
		}
	}
	return rels
}

func cleanSettings(projectDir string, m *manifest.Manifest, report *Report) {
	ownedHook := settings.OwnedHook(settings.Marker())

	for _, profile := range integrations.SettingsProfiles() {
		path := filepath.Join(projectDir, profile.SettingsFile)
		rel := filepath.ToSlash(profile.SettingsFile)
		if !fileExists(path) {
			continue
		}

		doc := settings.Load(path)
		changed, empty := settings.RemoveOwned(doc, ownedHook, settings.InSet(ownedAllow(m, profile.Name)))
		if !changed {
			continue
		}

		if empty {
			if _, err := platform.RemoveIfExists(path); err != nil {
				report.warnf("removing %s: %v", rel, err)
				continue
			}
			report.SettingsDeleted = append(report.SettingsDeleted, rel)
			platform.RemoveEmptyParents(filepath.Dir(path), projectDir)
			continue
		}

		if err := settings.Save(path, doc); err != nil {
			report.warnf("updating %s: %v", rel, err)
			continue
		}
		report.SettingsUpdated = append(report.SettingsUpdated, rel)
	}
}

// ownedAllow returns the allow entries a previous install added to tool's
// settings. Without a manifest nothing is known to be ours. Legacy manifests
// did not record entries, so the known set is assumed when they enabled the
// allow list.
func ownedAllow(m *manifest.Manifest, tool integrations.ToolName) []string {
	switch {
	case m == nil:
		return nil
	case m.HasFileRecord():
		return m.AllowEntries[string(tool)]
	case m.AllowList:
		return settings.KnownAllowEntries()
	}
	return nil
}

// projectPath joins a recorded relative path to projectDir, refusing paths
// that would land outside it.
func projectPath(projectDir, rel string) (string, bool) {
	rel = filepath.FromSlash(rel)
	if rel == "" || filepath.IsAbs(rel) {
		return "", false
	}
	clean := filepath.Clean(rel)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.Join(projectDir, clean), true
}
