package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pluto-labs/pluto/internal/manifest"
	"github.com/pluto-labs/pluto/internal/session"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(trackCmd)
}

var trackCmd = &cobra.Command{
	Use:    "track <event> [detail...]",
	Short:  "Record a workflow event in the project session log",
	Hidden: true,
	Args:   cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		return runTrack(cmd.Context(), e, args[0], strings.Join(args[1:], " "))
	},
}

// runTrack is called from hook scripts, so a project without a manifest is
// a quiet no-op. In auto mode a code change is committed right away.
func runTrack(ctx context.Context, e *env, event, detail string) error {
	m, err := manifest.NewStore(e.dir).Load()
	if err != nil {
		if errors.Is(err, manifest.ErrNotInitialized) {
			return nil
		}
		return err
	}

	if _, err := session.Read(e.dir); errors.Is(err, session.ErrNoSession) {
		if _, err := session.Start(e.dir, string(m.CommitMode)); err != nil {
			return fmt.Errorf("starting session: %w", err)
		}
	}

	st, err := session.Record(e.dir, event, detail)
	if err != nil {
		return fmt.Errorf("recording %s: %w", event, err)
	}
	if event != session.EventCodeChange || st.Mode != string(manifest.CommitAuto) {
		return nil
	}

	msg := session.CommitMessage(e.dir)
	committed, err := session.CommitAll(ctx, e.dir, msg)
	if err != nil {
		return err
	}
	if committed {
		if _, err := session.Record(e.dir, session.EventCommit, msg); err != nil {
			return fmt.Errorf("recording commit: %w", err)
		}
	}
	return nil
}
