package manifest

import (
	"fmt"
	"slices"
	"sort"
)

// CommitMode controls how the installed hooks treat code changes.
type CommitMode string

const (
	CommitOff    CommitMode = "off"
	CommitManual CommitMode = "manual"
	CommitAuto   CommitMode = "auto"
)

// CommitModes lists the valid commit modes in display order.
var CommitModes = []CommitMode{CommitOff, CommitManual, CommitAuto}

// ParseCommitMode validates a commit mode string. Empty means off.
func ParseCommitMode(s string) (CommitMode, error) {
	if s == "" {
		return CommitOff, nil
	}
	m := CommitMode(s)
	if slices.Contains(CommitModes, m) {
		return m, nil
	}
	return "", fmt.Errorf("unknown commit mode %q (valid: off, manual, auto)", s)
}

// Enabled reports whether hooks should be installed for this mode.
func (m CommitMode) Enabled() bool {
	return m == CommitManual || m == CommitAuto
}

// Manifest is the project install record.
type Manifest struct {
	Version      string              `json:"version"`
	Tools        []string            `json:"tools"`
	Agents       []string            `json:"agents"`
	CommitMode   CommitMode          `json:"commitMode,omitempty"`
	AllowList    bool                `json:"allowList,omitempty"`
	InstalledAt  string              `json:"installedAt,omitempty"`
	Files        map[string][]string `json:"files"`
	AllowEntries map[string][]string `json:"allowEntries,omitempty"`
}

// HasFileRecord reports whether the manifest records created files. Older
// manifests only list tools and agents and decode with a nil Files map.
func (m *Manifest) HasFileRecord() bool {
	return m.Files != nil
}

// RecordFiles stores the project-relative paths created for a tool.
func (m *Manifest) RecordFiles(tool string, paths []string) {
	if m.Files == nil {
		m.Files = make(map[string][]string)
	}
	sorted := append([]string{}, paths...)
	sort.Strings(sorted)
	m.Files[tool] = sorted
}

// RecordAllowEntries stores the allow-list entries inserted into a tool's
// settings file. Entries that were already present are not recorded.
func (m *Manifest) RecordAllowEntries(tool string, entries []string) {
	if len(entries) == 0 {
		return
	}
	if m.AllowEntries == nil {
		m.AllowEntries = make(map[string][]string)
	}
	m.AllowEntries[tool] = slices.Clone(entries)
}

// AllFiles returns every recorded path, sorted and deduplicated.
func (m *Manifest) AllFiles() []string {
	var all []string
	for _, paths := range m.Files {
		all = append(all, paths...)
	}
	sort.Strings(all)
	return slices.Compact(all)
}
