package branding

import "testing"

func TestEmbeddedValues(t *testing.T) {
	if got := CLIName(); got != "pluto" {
		t.Errorf("CLIName() = %q, want %q", got, "pluto")
	}
	if got := StateDir(); got != ".pluto" {
		t.Errorf("StateDir() = %q, want %q", got, ".pluto")
	}
	if got := TemplateRepoURL(); got == "" {
		t.Error("TemplateRepoURL() is empty")
	}
}

func TestEnvVar(t *testing.T) {
	cases := map[string]string{
		"home":      "PLUTO_HOME",
		"TEMPLATES": "PLUTO_TEMPLATES",
	}
	for in, want := range cases {
		if got := EnvVar(in); got != want {
			t.Errorf("EnvVar(%q) = %q, want %q", in, got, want)
		}
	}
}
