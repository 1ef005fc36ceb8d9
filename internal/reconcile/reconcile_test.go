package reconcile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pluto-labs/pluto/internal/manifest"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func exists(root, rel string) bool {
	_, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	return err == nil
}

func readJSON(t *testing.T, root, rel string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatal(err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	return out
}

const ownedHook = `{"matcher": "Write|Edit", "hooks": [{"type": "command", "command": ".pluto/hooks/on-code-change.sh"}]}`

func TestUninstallPreviousNothingInstalled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "README.md", "hello\n")

	report, err := UninstallPrevious(dir)
	if err != nil {
		t.Fatalf("UninstallPrevious: %v", err)
	}
	if report.Changed() || report.HadManifest {
		t.Errorf("unexpected changes: %+v", report)
	}
	if !exists(dir, "README.md") {
		t.Error("unrelated file removed")
	}
}

func TestUninstallPreviousRecordedInstall(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, ".claude/commands/foo-bar.md", "Foo\n")
	writeFile(t, dir, ".claude/commands/mine.md", "user command\n")
	writeFile(t, dir, "AGENTS.md", "# AI Agents\n")
	writeFile(t, dir, ".claude/settings.json", `{
  "model": "opus",
  "hooks": {
    "PostToolUse": [
      `+ownedHook+`,
      {"matcher": "Bash", "hooks": [{"type": "command", "command": "./lint.sh"}]}
    ],
    "UserPromptSubmit": [
      {"hooks": [{"type": "command", "command": ".pluto/hooks/on-prompt.sh"}]}
    ]
  },
  "permissions": {"allow": ["Bash(git add:*)", "Bash(git commit:*)", "Read(*)"]}
}`)
	writeFile(t, dir, ".pluto/hooks/on-code-change.sh", "#!/bin/sh\n")

	m := &manifest.Manifest{Tools: []string{"claude-code", "codex"}, Agents: []string{"foo-bar"}}
	m.RecordFiles("claude-code", []string{".claude/commands/foo-bar.md"})
	m.RecordFiles("codex", []string{"AGENTS.md"})
	// "Bash(git add:*)" was in the file before the install, so only commit was recorded.
	m.RecordAllowEntries("claude-code", []string{"Bash(git commit:*)"})
	if err := manifest.NewStore(dir).Save(m); err != nil {
		t.Fatal(err)
	}

	report, err := UninstallPrevious(dir)
	if err != nil {
		t.Fatalf("UninstallPrevious: %v", err)
	}

	wantRemoved := []string{".claude/commands/foo-bar.md", "AGENTS.md"}
	if !reflect.DeepEqual(report.RemovedFiles, wantRemoved) {
		t.Errorf("RemovedFiles = %v, want %v", report.RemovedFiles, wantRemoved)
	}
	if !exists(dir, ".claude/commands/mine.md") {
		t.Error("user command removed")
	}
	if exists(dir, ".pluto") || !report.StateRemoved {
		t.Error("state directory not removed")
	}
	if !reflect.DeepEqual(report.SettingsUpdated, []string{".claude/settings.json"}) {
		t.Errorf("SettingsUpdated = %v", report.SettingsUpdated)
	}

	doc := readJSON(t, dir, ".claude/settings.json")
	if doc["model"] != "opus" {
		t.Error("unrelated key lost")
	}
	hooks := doc["hooks"].(map[string]any)
	if _, ok := hooks["UserPromptSubmit"]; ok {
		t.Error("emptied hook category not pruned")
	}
	post := hooks["PostToolUse"].([]any)
	if len(post) != 1 {
		t.Fatalf("PostToolUse has %d entries, want only the foreign one", len(post))
	}
	allow := doc["permissions"].(map[string]any)["allow"].([]any)
	want := []any{"Bash(git add:*)", "Read(*)"}
	if !reflect.DeepEqual(allow, want) {
		t.Errorf("allow = %v, want %v", allow, want)
	}
}

func TestUninstallPreviousDeletesEmptiedSettings(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".windsurf/settings.json", `{"hooks": {"PostToolUse": [`+ownedHook+`]}}`)

	m := &manifest.Manifest{Tools: []string{"windsurf"}, Agents: []string{}}
	m.RecordFiles("windsurf", nil)
	if err := manifest.NewStore(dir).Save(m); err != nil {
		t.Fatal(err)
	}

	report, err := UninstallPrevious(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(report.SettingsDeleted, []string{".windsurf/settings.json"}) {
		t.Errorf("SettingsDeleted = %v", report.SettingsDeleted)
	}
	if exists(dir, ".windsurf") {
		t.Error("emptied .windsurf directory left behind")
	}
}

func TestUninstallPreviousWithoutManifestKeepsAllowEntries(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".cline/settings.json", `{"permissions": {"allow": ["Bash(git status:*)", "Bash(make:*)"]}, "hooks": {"PostToolUse": [{"matcher": "Write|Edit", "hooks": [{"type": "command", "command": ".pluto/hooks/on-code-change.sh"}]}]}}`)

	report, err := UninstallPrevious(dir)
	if err != nil {
		t.Fatal(err)
	}
	if report.HadManifest {
		t.Error("HadManifest = true")
	}
	doc := readJSON(t, dir, ".cline/settings.json")
	if _, ok := doc["hooks"]; ok {
		t.Error("owned hook not removed")
	}
	allow := doc["permissions"].(map[string]any)["allow"].([]any)
	if !reflect.DeepEqual(allow, []any{"Bash(git status:*)", "Bash(make:*)"}) {
		t.Errorf("allow = %v, want user entries untouched", allow)
	}
}

func TestUninstallPreviousLegacyManifestAllowList(t *testing.T) {
	tests := []struct {
		name      string
		allowList bool
		want      []any
	}{
		{"allow list enabled", true, []any{"Bash(make:*)"}},
		{"allow list disabled", false, []any{"Bash(git status:*)", "Bash(make:*)"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, ".pluto/config.json", fmt.Sprintf(`{"version": "1.0.0", "tools": ["cline"], "agents": [], "allowList": %t}`, tt.allowList))
			writeFile(t, dir, ".cline/settings.json", `{"permissions": {"allow": ["Bash(git status:*)", "Bash(make:*)"]}}`)

			if _, err := UninstallPrevious(dir); err != nil {
				t.Fatal(err)
			}
			doc := readJSON(t, dir, ".cline/settings.json")
			allow := doc["permissions"].(map[string]any)["allow"].([]any)
			if !reflect.DeepEqual(allow, tt.want) {
				t.Errorf("allow = %v, want %v", allow, tt.want)
			}
		})
	}
}

func TestUninstallPreviousLegacyManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".pluto/config.json", `{
  "version": "1.0.0",
  "tools": ["cursor", "copilot"],
  "agents": ["pluto-snap"],
  "installedAt": "2024-05-01T10:00:00.000Z"
}`)
	writeFile(t, dir, ".cursor/rules/pluto-snap.mdc", "snap\n")
	writeFile(t, dir, ".cursor/rules/team.md", "team rule\n")
	writeFile(t, dir, ".github/copilot-instructions.md", "# GitHub Copilot Instructions\n")
	writeFile(t, dir, ".github/workflows/ci.yml", "on: push\n")

	report, err := UninstallPrevious(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !report.HadManifest {
		t.Error("legacy manifest not loaded")
	}
	if exists(dir, ".cursor/rules/pluto-snap.mdc") || exists(dir, ".github/copilot-instructions.md") {
		t.Error("legacy files not removed")
	}
	if !exists(dir, ".cursor/rules/team.md") || !exists(dir, ".github/workflows/ci.yml") {
		t.Error("user files removed")
	}
}

func TestUninstallPreviousRefusesEscapingPaths(t *testing.T) {
	parent := t.TempDir()
	dir := filepath.Join(parent, "project")
	writeFile(t, parent, "outside.md", "keep\n")

	m := &manifest.Manifest{Tools: []string{"claude-code"}}
	m.RecordFiles("claude-code", []string{"../outside.md"})
	if err := manifest.NewStore(dir).Save(m); err != nil {
		t.Fatal(err)
	}

	report, err := UninstallPrevious(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !exists(parent, "outside.md") {
		t.Error("file outside the project was removed")
	}
	if len(report.Warnings) == 0 {
		t.Error("expected a warning for the escaping path")
	}
}

func TestUninstallPreviousTwice(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "AGENTS.md", "x")
	m := &manifest.Manifest{Tools: []string{"codex"}}
	m.RecordFiles("codex", []string{"AGENTS.md"})
	if err := manifest.NewStore(dir).Save(m); err != nil {
		t.Fatal(err)
	}

	if _, err := UninstallPrevious(dir); err != nil {
		t.Fatal(err)
	}
	report, err := UninstallPrevious(dir)
	if err != nil {
		t.Fatal(err)
	}
	if report.Changed() {
		t.Errorf("second run changed something: %+v", report)
	}
}
