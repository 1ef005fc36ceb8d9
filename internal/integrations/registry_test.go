package integrations

import (
	"path/filepath"
	"testing"
)

func TestParseToolName_AllKnown(t *testing.T) {
	cases := []struct {
		input string
		want  ToolName
	}{
		{"claude-code", ClaudeCode},
		{"cursor", Cursor},
		{"windsurf", Windsurf},
		{"copilot", Copilot},
		{"cline", Cline},
		{"codex", Codex},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			name, ok := ParseToolName(tc.input)
			if !ok {
				t.Fatalf("ParseToolName(%q) returned false, want true", tc.input)
			}
			if name != tc.want {
				t.Fatalf("ParseToolName(%q) = %q, want %q", tc.input, name, tc.want)
			}
		})
	}
}

func TestParseToolName_Invalid(t *testing.T) {
	cases := []string{"unknown", "", "CURSOR", "claude", "augment"}

	for _, input := range cases {
		t.Run(input, func(t *testing.T) {
			name, ok := ParseToolName(input)
			if ok {
				t.Fatalf("ParseToolName(%q) returned true, want false", input)
			}
			if name != "" {
				t.Fatalf("ParseToolName(%q) = %q, want empty string", input, name)
			}
		})
	}
}

func TestAllTools_Count(t *testing.T) {
	if got := len(AllTools()); got != 6 {
		t.Fatalf("AllTools() returned %d tools, want 6", got)
	}
	if got := len(Profiles()); got != 6 {
		t.Fatalf("Profiles() returned %d profiles, want 6", got)
	}
}

func TestProfileModes(t *testing.T) {
	cases := []struct {
		tool     ToolName
		mode     Mode
		dest     string
		settings bool
	}{
		{ClaudeCode, ModeFanOut, filepath.Join(".claude", "commands"), true},
		{Cursor, ModeFanOut, filepath.Join(".cursor", "rules"), true},
		{Copilot, ModeAggregate, filepath.Join(".github", "copilot-instructions.md"), false},
		{Codex, ModeAggregate, "AGENTS.md", false},
	}

	for _, tc := range cases {
		t.Run(string(tc.tool), func(t *testing.T) {
			p, ok := Profile(tc.tool)
			if !ok {
				t.Fatalf("Profile(%q) not found", tc.tool)
			}
			if p.Mode != tc.mode {
				t.Errorf("Mode = %q, want %q", p.Mode, tc.mode)
			}
			if p.Destination() != tc.dest {
				t.Errorf("Destination() = %q, want %q", p.Destination(), tc.dest)
			}
			if p.SupportsSettings() != tc.settings {
				t.Errorf("SupportsSettings() = %v, want %v", p.SupportsSettings(), tc.settings)
			}
		})
	}
}

func TestProfileReturnsCopy(t *testing.T) {
	p, _ := Profile(Cursor)
	p.Extensions[0] = ".txt"

	again, _ := Profile(Cursor)
	if again.Extensions[0] != ".mdc" {
		t.Errorf("registry mutated through returned profile: %v", again.Extensions)
	}
}

func TestSettingsProfiles(t *testing.T) {
	for _, p := range SettingsProfiles() {
		if p.SettingsFile == "" {
			t.Errorf("%s returned without settings file", p.Name)
		}
		if p.Name == Copilot || p.Name == Codex {
			t.Errorf("%s has no settings but was returned", p.Name)
		}
	}
}
