package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStartIgnoresSessionDir(t *testing.T) {
	dir := t.TempDir()
	if _, err := Start(dir, "auto"); err != nil {
		t.Fatal(err)
	}
	if _, err := Start(dir, "auto"); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(Dir(dir), ".gitignore"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "*\n" {
		t.Errorf(".gitignore = %q, want %q", data, "*\n")
	}
}

func TestEnsureIgnoredAppends(t *testing.T) {
	tests := []struct {
		name     string
		existing string
		want     string
	}{
		{"no trailing newline", "log.jsonl", "log.jsonl\n*\n"},
		{"trailing newline", "log.jsonl\n", "log.jsonl\n*\n"},
		{"already present", "*\n", "*\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, ".gitignore")
			if err := os.WriteFile(path, []byte(tt.existing), 0644); err != nil {
				t.Fatal(err)
			}
			if err := ensureIgnored(dir); err != nil {
				t.Fatalf("ensureIgnored: %v", err)
			}
			data, _ := os.ReadFile(path)
			if string(data) != tt.want {
				t.Errorf(".gitignore = %q, want %q", data, tt.want)
			}
		})
	}
}
