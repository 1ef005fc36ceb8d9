package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pluto-labs/pluto/internal/branding"
	"github.com/pluto-labs/pluto/internal/logging"
)

// ErrGitNotFound is returned when git is not on PATH.
var ErrGitNotFound = errors.New("git is required but not found in PATH")

// sparsePaths are the template directories checked out by a sparse clone.
var sparsePaths = []string{"commands", "hooks"}

// Cloner fetches a repository branch into dest. dest must not exist or be
// empty.
type Cloner interface {
	Clone(ctx context.Context, repoURL, branch, dest string) error
}

// GitCloner clones with the git executable.
type GitCloner struct {
	// Sparse limits the checkout to the template directories when the
	// installed git supports it.
	Sparse bool
}

// Clone performs a shallow single-branch clone. With Sparse set it first
// tries a sparse checkout and falls back to a full shallow clone.
func (g GitCloner) Clone(ctx context.Context, repoURL, branch, dest string) error {
	if err := ensureGit(); err != nil {
		return err
	}
	logger := logging.Get("catalog")

	if g.Sparse {
		err := trySparseClone(ctx, dest, repoURL, branch)
		if err == nil {
			return nil
		}
		logger.Debug().Err(err).Msg("sparse clone failed, falling back to full shallow clone")
		if err := emptyDir(dest); err != nil {
			return err
		}
	}

	if err := shallowClone(ctx, dest, repoURL, branch); err != nil {
		return fmt.Errorf("cloning %s@%s: %w", repoURL, branch, err)
	}
	return nil
}

// CloneTemp clones repoURL at branch into a fresh temp directory. The caller
// must call cleanup when done. On error nothing is left behind.
func CloneTemp(ctx context.Context, cloner Cloner, repoURL, branch string) (dir string, cleanup func(), err error) {
	dir, err = os.MkdirTemp("", branding.CLIName()+"-templates-*")
	if err != nil {
		return "", nil, fmt.Errorf("creating temp directory: %w", err)
	}
	cleanup = func() { _ = os.RemoveAll(dir) }

	logger := logging.Get("catalog")
	logger.Info().Str("repo", repoURL).Str("branch", branch).Str("dir", dir).Msg("cloning templates")
	if err := cloner.Clone(ctx, repoURL, branch, dir); err != nil {
		cleanup()
		return "", nil, err
	}
	return dir, cleanup, nil
}

func trySparseClone(ctx context.Context, dest, repoURL, branch string) error {
	if err := git(ctx, "", "clone", "--depth=1", "--branch", branch, "--sparse", "--no-checkout", repoURL, dest); err != nil {
		return fmt.Errorf("sparse clone: %w", err)
	}
	args := append([]string{"sparse-checkout", "set"}, sparsePaths...)
	if err := git(ctx, dest, args...); err != nil {
		return fmt.Errorf("sparse-checkout set: %w", err)
	}
	if err := git(ctx, dest, "checkout"); err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	return nil
}

func shallowClone(ctx context.Context, dest, repoURL, branch string) error {
	return git(ctx, "", "clone", "--depth=1", "--branch", branch, repoURL, dest)
}

func git(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w\n%s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

// emptyDir removes everything inside dir, keeping dir itself.
func emptyDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(dir, e.Name())); err != nil {
			return fmt.Errorf("cleaning %s: %w", dir, err)
		}
	}
	return nil
}

func ensureGit() error {
	if _, err := exec.LookPath("git"); err != nil {
		return ErrGitNotFound
	}
	return nil
}
