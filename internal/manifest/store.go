package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pluto-labs/pluto/internal/branding"
	"github.com/pluto-labs/pluto/internal/logging"
	"github.com/pluto-labs/pluto/internal/platform"
)

const manifestFile = "config.json"

// ErrNotInitialized is returned when a project has no usable manifest.
var ErrNotInitialized = errors.New("project not initialized")

// Store reads and writes the manifest of one project directory.
type Store struct {
	ProjectDir string
}

// NewStore returns a Store for projectDir.
func NewStore(projectDir string) *Store {
	return &Store{ProjectDir: projectDir}
}

// Dir returns the project's private state directory (.pluto).
func (s *Store) Dir() string {
	return filepath.Join(s.ProjectDir, branding.StateDir())
}

// Path returns the manifest file path.
func (s *Store) Path() string {
	return filepath.Join(s.Dir(), manifestFile)
}

// Exists reports whether a manifest file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.Path())
	return err == nil
}

// Load reads, validates and decodes the manifest. Every way of not having a
// usable manifest (absent, corrupt, schema-invalid, unsupported version)
// yields an error wrapping ErrNotInitialized.
func (s *Store) Load() (*Manifest, error) {
	logger := logging.Get("manifest")

	data, err := os.ReadFile(s.Path())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotInitialized
		}
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	result, err := Validate(data)
	if err != nil {
		logger.Debug().Err(err).Str("path", s.Path()).Msg("manifest unreadable")
		return nil, fmt.Errorf("%w: %v", ErrNotInitialized, err)
	}
	if !result.Valid {
		msgs := make([]string, 0, len(result.Issues))
		for _, issue := range result.Issues {
			msgs = append(msgs, issue.String())
		}
		return nil, fmt.Errorf("%w: invalid manifest: %s", ErrNotInitialized, strings.Join(msgs, "; "))
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: decoding manifest: %v", ErrNotInitialized, err)
	}

	ok, err := Compatible(m.Version)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotInitialized, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: manifest version %s is not supported", ErrNotInitialized, m.Version)
	}
	if Newer(m.Version) {
		logger.Warn().Str("version", m.Version).Msg("manifest written by a newer release")
	}
	if m.CommitMode == "" {
		m.CommitMode = CommitOff
	}

	return &m, nil
}

// Save writes m as indented JSON, replacing any previous manifest in one
// rename. An empty Version is filled with SchemaVersion.
func (s *Store) Save(m *Manifest) error {
	if m.Version == "" {
		m.Version = SchemaVersion
	}
	if m.Tools == nil {
		m.Tools = []string{}
	}
	if m.Agents == nil {
		m.Agents = []string{}
	}
	if m.Files == nil {
		m.Files = map[string][]string{}
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	data = append(data, '\n')

	if err := platform.WriteFileAtomic(s.Path(), data, 0644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// Remove deletes the whole private state directory. A missing directory is
// not an error.
func (s *Store) Remove() error {
	if err := os.RemoveAll(s.Dir()); err != nil {
		return fmt.Errorf("removing %s: %w", s.Dir(), err)
	}
	return nil
}
