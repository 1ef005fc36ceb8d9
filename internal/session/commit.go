package session

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/pluto-labs/pluto/internal/logging"
)

// Event names written by the hook scripts.
const (
	EventPrompt     = "prompt"
	EventCodeChange = "code-change"
	EventCommit     = "commit"
)

const (
	defaultCommitMessage = "pluto: code change"
	maxSubjectLen        = 72
)

// CommitMessage builds a commit subject from the latest prompt recorded in
// the current session.
func CommitMessage(projectDir string) string {
	st, err := Read(projectDir)
	if err != nil {
		return defaultCommitMessage
	}
	entries, err := Entries(projectDir)
	if err != nil {
		return defaultCommitMessage
	}
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if e.Session != st.ID || e.Event != EventPrompt {
			continue
		}
		subject := strings.TrimSpace(strings.SplitN(e.Detail, "\n", 2)[0])
		if subject == "" {
			break
		}
		if r := []rune(subject); len(r) > maxSubjectLen {
			subject = string(r[:maxSubjectLen-3]) + "..."
		}
		return subject
	}
	return defaultCommitMessage
}

// CommitAll stages every change in projectDir and commits it with message.
// It reports false without an error when git is missing, projectDir is not
// a work tree, or there is nothing to commit.
func CommitAll(ctx context.Context, projectDir, message string) (bool, error) {
	logger := logging.Get("session")
	if _, err := exec.LookPath("git"); err != nil {
		logger.Debug().Msg("git not found, auto-commit skipped")
		return false, nil
	}
	if _, err := git(ctx, projectDir, "rev-parse", "--is-inside-work-tree"); err != nil {
		logger.Debug().Str("dir", projectDir).Msg("not a git work tree, auto-commit skipped")
		return false, nil
	}

	if _, err := git(ctx, projectDir, "add", "-A"); err != nil {
		return false, fmt.Errorf("staging changes: %w", err)
	}
	code, err := git(ctx, projectDir, "diff", "--cached", "--quiet")
	switch {
	case err == nil:
		return false, nil
	case code != 1:
		return false, fmt.Errorf("checking staged changes: %w", err)
	}

	if _, err := git(ctx, projectDir, "commit", "-q", "-m", message); err != nil {
		return false, fmt.Errorf("committing: %w", err)
	}
	logger.Info().Str("message", message).Msg("changes committed")
	return true, nil
}

// git runs git in dir and returns its exit code alongside any error.
func git(ctx context.Context, dir string, args ...string) (int, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), fmt.Errorf("git %s: %w\n%s", args[0], err, strings.TrimSpace(string(output)))
		}
		return -1, fmt.Errorf("git %s: %w", args[0], err)
	}
	return 0, nil
}
