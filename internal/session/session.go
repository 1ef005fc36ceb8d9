// Package session keeps the per-project session record that hook scripts
// update: a small state document and an append-only JSON lines log, both
// under .pluto/session/.
package session

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pluto-labs/pluto/internal/branding"
	"github.com/pluto-labs/pluto/internal/logging"
	"github.com/pluto-labs/pluto/internal/platform"
)

const (
	sessionDir = "session"
	stateFile  = "state.json"
	logFile    = "log.jsonl"
)

// ErrNoSession is returned by Read when no session has been started.
var ErrNoSession = errors.New("no active session")

var now = time.Now

// State is the current session document.
type State struct {
	ID        string    `json:"id"`
	Mode      string    `json:"mode"`
	StartedAt time.Time `json:"startedAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Events    int       `json:"events"`
}

// Entry is one line of the session log.
type Entry struct {
	Time    time.Time `json:"time"`
	Session string    `json:"session"`
	Event   string    `json:"event"`
	Detail  string    `json:"detail,omitempty"`
}

// Dir returns the session directory for a project.
func Dir(projectDir string) string {
	return filepath.Join(projectDir, branding.StateDir(), sessionDir)
}

// StatePath returns the session state file for a project.
func StatePath(projectDir string) string {
	return filepath.Join(Dir(projectDir), stateFile)
}

// LogPath returns the session log file for a project.
func LogPath(projectDir string) string {
	return filepath.Join(Dir(projectDir), logFile)
}

// Start begins a new session, replacing any previous state. The log is kept.
func Start(projectDir, mode string) (*State, error) {
	t := now().UTC()
	st := &State{
		ID:        uuid.New().String(),
		Mode:      mode,
		StartedAt: t,
		UpdatedAt: t,
	}
	if err := writeState(projectDir, st); err != nil {
		return nil, err
	}
	if err := ensureIgnored(Dir(projectDir)); err != nil {
		return nil, err
	}
	logger := logging.Get("session")
	logger.Debug().Str("id", st.ID).Str("mode", mode).Msg("session started")
	return st, nil
}

// Read returns the current session state.
func Read(projectDir string) (*State, error) {
	data, err := os.ReadFile(StatePath(projectDir))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("reading session state: %w", err)
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil || st.ID == "" {
		return nil, ErrNoSession
	}
	return &st, nil
}

// Record appends an event to the session log and bumps the event counter.
// A session in mode "manual" is started when none exists.
func Record(projectDir, event, detail string) (*State, error) {
	if event == "" {
		return nil, errors.New("event name is required")
	}

	st, err := Read(projectDir)
	if errors.Is(err, ErrNoSession) {
		st, err = Start(projectDir, "manual")
	}
	if err != nil {
		return nil, err
	}

	t := now().UTC()
	line, err := json.Marshal(Entry{Time: t, Session: st.ID, Event: event, Detail: detail})
	if err != nil {
		return nil, fmt.Errorf("encoding session entry: %w", err)
	}
	if err := appendLine(LogPath(projectDir), line); err != nil {
		return nil, err
	}

	st.Events++
	st.UpdatedAt = t
	if err := writeState(projectDir, st); err != nil {
		return nil, err
	}
	return st, nil
}

// Entries returns every entry in the session log, oldest first. Lines that
// do not decode are skipped.
func Entries(projectDir string) ([]Entry, error) {
	data, err := os.ReadFile(LogPath(projectDir))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading session log: %w", err)
	}

	var entries []Entry
	for _, line := range bytes.Split(data, []byte("\n")) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(line, &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func writeState(projectDir string, st *State) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session state: %w", err)
	}
	data = append(data, '\n')
	if err := platform.WriteFileAtomic(StatePath(projectDir), data, 0644); err != nil {
		return fmt.Errorf("writing session state: %w", err)
	}
	return nil
}

func appendLine(path string, line []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening session log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("writing session log: %w", err)
	}
	return nil
}
