package linker

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/pluto-labs/pluto/internal/integrations"
	"github.com/pluto-labs/pluto/internal/manifest"
	"github.com/pluto-labs/pluto/internal/reconcile"
)

func fixedNow() time.Time {
	return time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)
}

func templateRepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeTemplates(t, root, map[string]string{
		"commands/claude-code/foo.md":     "# foo\n",
		"commands/claude-code/bar/foo.md": "# foo in bar\n",
		"commands/claude-code/review.md":  "---\nname: review\ndescription: Review code\n---\nReview.\n",
		"commands/cursor/review.mdc":      "cursor review (mdc)\n",
		"commands/cursor/review.md":       "cursor review (md)\n",
		"commands/codex/review.md":        "Codex review\n",
		"commands/codex/foo.md":           "Codex foo\n",
		"hooks/on-code-change.sh":         "#!/bin/sh\npluto track code-change\n",
		"hooks/on-prompt.sh":              "#!/bin/sh\npluto track prompt\n",
	})
	return root
}

// snapshot maps every file under dir to its content.
func snapshot(t *testing.T, dir string) map[string]string {
	t.Helper()
	out := make(map[string]string)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(dir, path)
		out[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func TestInstallFanOutScenario(t *testing.T) {
	project := t.TempDir()
	in := &Installer{Templates: templateRepo(t), ProjectDir: project, Now: fixedNow}

	res, err := in.Install(Options{
		Tools:  []integrations.ToolName{integrations.ClaudeCode},
		Agents: []string{"foo-bar"},
	})
	if err != nil {
		t.Fatalf("Install: %v", err)
	}
	if w := res.Warnings(); len(w) != 0 {
		t.Errorf("warnings: %v", w)
	}

	data, err := os.ReadFile(filepath.Join(project, ".claude", "commands", "foo-bar.md"))
	if err != nil {
		t.Fatalf("foo-bar.md not installed: %v", err)
	}
	if string(data) != "# foo in bar\n" {
		t.Errorf("foo-bar.md = %q", data)
	}
	for _, name := range []string{"foo.md", "foo-root.md"} {
		if _, err := os.Stat(filepath.Join(project, ".claude", "commands", name)); !os.IsNotExist(err) {
			t.Errorf("%s should not be installed", name)
		}
	}
	if _, err := os.Stat(filepath.Join(project, ".claude", "settings.json")); !os.IsNotExist(err) {
		t.Error("settings written although commit mode is off and allow list is off")
	}

	m, err := manifest.NewStore(project).Load()
	if err != nil {
		t.Fatalf("manifest: %v", err)
	}
	if !reflect.DeepEqual(m.Files["claude-code"], []string{".claude/commands/foo-bar.md"}) {
		t.Errorf("recorded files = %v", m.Files)
	}
	if m.InstalledAt != "2026-10-15T09:30:00Z" {
		t.Errorf("InstalledAt = %q", m.InstalledAt)
	}
}

func TestInstallPrefersMdcForCursor(t *testing.T) {
	project := t.TempDir()
	in := &Installer{Templates: templateRepo(t), ProjectDir: project, Now: fixedNow}

	if _, err := in.Install(Options{Tools: []integrations.ToolName{integrations.Cursor}, Agents: []string{"review"}}); err != nil {
		t.Fatal(err)
	}
	got := snapshot(t, filepath.Join(project, ".cursor"))
	want := map[string]string{"rules/review.mdc": "cursor review (mdc)\n"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf(".cursor = %v, want %v", got, want)
	}
}

func TestInstallHooksAndAllowList(t *testing.T) {
	project := t.TempDir()
	settingsPath := filepath.Join(project, ".claude", "settings.json")
	writeTemplates(t, project, map[string]string{
		".claude/settings.json": `{"model": "opus", "permissions": {"allow": ["Bash(git add:*)"]}}`,
	})

	in := &Installer{Templates: templateRepo(t), ProjectDir: project, Now: fixedNow}
	res, err := in.Install(Options{
		Tools:      []integrations.ToolName{integrations.ClaudeCode, integrations.Codex},
		Agents:     []string{"review"},
		CommitMode: manifest.CommitAuto,
		AllowList:  true,
	})
	if err != nil {
		t.Fatalf("Install: %v", err)
	}
	if !reflect.DeepEqual(res.Hooks, []string{"on-code-change.sh", "on-prompt.sh"}) {
		t.Errorf("Hooks = %v", res.Hooks)
	}

	hook := filepath.Join(project, ".pluto", "hooks", "on-code-change.sh")
	info, err := os.Stat(hook)
	if err != nil {
		t.Fatalf("hook script missing: %v", err)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm() != 0755 {
		t.Errorf("hook mode = %o, want 755", info.Mode().Perm())
	}

	var doc map[string]any
	data, _ := os.ReadFile(settingsPath)
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if doc["model"] != "opus" {
		t.Error("existing settings key lost")
	}
	hooks := doc["hooks"].(map[string]any)
	post := hooks["PostToolUse"].([]any)[0].(map[string]any)
	if post["matcher"] != "Write|Edit" {
		t.Errorf("matcher = %v", post["matcher"])
	}
	if _, ok := hooks["UserPromptSubmit"]; !ok {
		t.Error("prompt hook not registered")
	}

	m, err := manifest.NewStore(project).Load()
	if err != nil {
		t.Fatal(err)
	}
	recorded := m.AllowEntries["claude-code"]
	for _, e := range recorded {
		if e == "Bash(git add:*)" {
			t.Error("pre-existing allow entry recorded as installed")
		}
	}
	if len(recorded) != 5 {
		t.Errorf("recorded %d allow entries, want 5: %v", len(recorded), recorded)
	}
	if _, ok := m.AllowEntries["codex"]; ok {
		t.Error("codex has no settings file but allow entries were recorded")
	}
}

func TestInstallThenUninstallKeepsUserAllowEntries(t *testing.T) {
	project := t.TempDir()
	original := `{"model": "opus", "permissions": {"allow": ["Bash(git add:*)"]}}`
	writeTemplates(t, project, map[string]string{".claude/settings.json": original})

	in := &Installer{Templates: templateRepo(t), ProjectDir: project, Now: fixedNow}
	if _, err := in.Install(Options{Tools: []integrations.ToolName{integrations.ClaudeCode}, Agents: []string{"review"}, AllowList: true}); err != nil {
		t.Fatalf("Install: %v", err)
	}
	if _, err := reconcile.UninstallPrevious(project); err != nil {
		t.Fatalf("UninstallPrevious: %v", err)
	}

	var doc map[string]any
	data, err := os.ReadFile(filepath.Join(project, ".claude", "settings.json"))
	if err != nil {
		t.Fatalf("settings removed: %v", err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	want := map[string]any{"model": "opus", "permissions": map[string]any{"allow": []any{"Bash(git add:*)"}}}
	if !reflect.DeepEqual(doc, want) {
		t.Errorf("settings after uninstall = %v, want %v", doc, want)
	}
}

func TestInstallIsIdempotent(t *testing.T) {
	project := t.TempDir()
	writeTemplates(t, project, map[string]string{
		".claude/settings.json":   `{"hooks": {"PostToolUse": [{"matcher": "Bash", "hooks": [{"type": "command", "command": "./lint.sh"}]}]}}`,
		".claude/commands/own.md": "user file\n",
	})
	in := &Installer{Templates: templateRepo(t), ProjectDir: project, Now: fixedNow}
	opts := Options{
		Tools:      []integrations.ToolName{integrations.ClaudeCode, integrations.Cursor, integrations.Copilot, integrations.Codex},
		Agents:     []string{"review", "foo"},
		CommitMode: manifest.CommitManual,
		AllowList:  true,
	}

	if _, err := in.Install(opts); err != nil {
		t.Fatal(err)
	}
	first := snapshot(t, project)

	if _, err := in.Install(opts); err != nil {
		t.Fatal(err)
	}
	second := snapshot(t, project)

	if !reflect.DeepEqual(first, second) {
		for k, v := range first {
			if second[k] != v {
				t.Errorf("%s differs after second install:\n%s\n---\n%s", k, v, second[k])
			}
		}
		for k := range second {
			if _, ok := first[k]; !ok {
				t.Errorf("%s appeared after second install", k)
			}
		}
	}
	if first[".claude/commands/own.md"] != "user file\n" {
		t.Error("user file changed")
	}
	if !strings.HasPrefix(first["AGENTS.md"], "# AI Agents\n\nGenerated by Pluto.\n\n") {
		t.Errorf("AGENTS.md = %q", first["AGENTS.md"])
	}
}

func TestInstallMissingToolTemplatesWarns(t *testing.T) {
	project := t.TempDir()
	in := &Installer{Templates: templateRepo(t), ProjectDir: project, Now: fixedNow}

	res, err := in.Install(Options{Tools: []integrations.ToolName{integrations.Windsurf}, Agents: []string{"review"}})
	if err != nil {
		t.Fatalf("Install: %v", err)
	}
	if len(res.Warnings()) == 0 {
		t.Error("expected a warning for a tool without templates")
	}
	if !manifest.NewStore(project).Exists() {
		t.Error("manifest not written")
	}
}

func TestInstallMissingHookScriptSkipsHook(t *testing.T) {
	templates := templateRepo(t)
	if err := os.Remove(filepath.Join(templates, "hooks", "on-prompt.sh")); err != nil {
		t.Fatal(err)
	}
	project := t.TempDir()
	in := &Installer{Templates: templates, ProjectDir: project, Now: fixedNow}

	res, err := in.Install(Options{
		Tools:      []integrations.ToolName{integrations.ClaudeCode},
		Agents:     []string{"review"},
		CommitMode: manifest.CommitAuto,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(res.Hooks, []string{"on-code-change.sh"}) {
		t.Errorf("Hooks = %v", res.Hooks)
	}

	data, err := os.ReadFile(filepath.Join(project, ".claude", "settings.json"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "UserPromptSubmit") {
		t.Error("hook registered for a script that was not installed")
	}
}

func TestAvailable(t *testing.T) {
	templates := templateRepo(t)
	got := Available(templates, []integrations.ToolName{integrations.ClaudeCode, integrations.Codex})
	want := []string{"foo", "foo-bar", "foo-root", "review"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Available = %v, want %v", got, want)
	}
}
