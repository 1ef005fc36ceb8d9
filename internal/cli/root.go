package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pluto-labs/pluto/internal/branding"
	"github.com/pluto-labs/pluto/internal/catalog"
	"github.com/pluto-labs/pluto/internal/config"
	"github.com/pluto-labs/pluto/internal/logging"
	"github.com/pluto-labs/pluto/internal/prompt"
	"github.com/pluto-labs/pluto/internal/ui"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	verbosity int
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` installs commands, rules and git-workflow hooks for AI coding
assistants (Claude Code, Cursor, Windsurf, GitHub Copilot, Cline, Codex) into the
current project, and can update or remove them again.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbosity)
		config.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}

// env is what a command needs from the outside world. Tests build one
// directly with fakes.
type env struct {
	dir      string
	out      io.Writer
	prompter prompt.Prompter
	cloner   catalog.Cloner
	now      func() time.Time
}

func newEnv(cmd *cobra.Command) (*env, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting current directory: %w", err)
	}
	return &env{
		dir:      dir,
		out:      cmd.OutOrStdout(),
		prompter: prompt.New(cmd.InOrStdin(), cmd.OutOrStdout()),
		cloner:   catalog.GitCloner{Sparse: true},
		now:      time.Now,
	}, nil
}

func (e *env) printf(format string, args ...any) {
	fmt.Fprintf(e.out, format, args...)
}

func (e *env) println(args ...any) {
	fmt.Fprintln(e.out, args...)
}

// cancelled turns a user abort into a clean exit and passes other errors through.
func (e *env) cancelled(err error) error {
	if errors.Is(err, prompt.ErrAborted) {
		e.println(ui.Dim("Cancelled."))
		return nil
	}
	return err
}

func (e *env) warnings(ws []string) {
	for _, w := range ws {
		e.println(ui.Warn(w))
	}
}
