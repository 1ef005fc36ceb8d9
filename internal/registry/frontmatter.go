package registry

import (
	"bufio"
	"bytes"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

const frontmatterDelim = "---"

// ReadFrontmatter returns the YAML frontmatter of a template file. Files
// without frontmatter, or with frontmatter that does not parse, yield a
// zero Frontmatter.
func ReadFrontmatter(path string) Frontmatter {
	data, err := os.ReadFile(path)
	if err != nil {
		return Frontmatter{}
	}
	return ParseFrontmatter(data)
}

// ParseFrontmatter extracts the block between a leading "---" line and the
// next "---" line and decodes it.
func ParseFrontmatter(data []byte) Frontmatter {
	var fm Frontmatter

	scanner := bufio.NewScanner(bytes.NewReader(data))
	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != frontmatterDelim {
		return fm
	}

	var block strings.Builder
	closed := false
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == frontmatterDelim {
			closed = true
			break
		}
		block.WriteString(line)
		block.WriteByte('\n')
	}
	if !closed {
		return fm
	}

	if err := yaml.Unmarshal([]byte(block.String()), &fm); err != nil {
		return Frontmatter{}
	}
	return fm
}
