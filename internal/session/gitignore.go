package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ignoreAll keeps the session directory out of commits made by the
// auto-commit hook.
const ignoreAll = "*"

// ensureIgnored appends the ignore-everything line to dir/.gitignore unless
// it is already there.
func ensureIgnored(dir string) error {
	path := filepath.Join(dir, ".gitignore")

	content, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	for _, l := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(l) == ignoreAll {
			return nil
		}
	}

	suffix := ignoreAll + "\n"
	if len(content) > 0 && !strings.HasSuffix(string(content), "\n") {
		suffix = "\n" + suffix
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s for append: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(suffix); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
