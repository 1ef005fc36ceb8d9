package cli

import (
	"fmt"

	"github.com/pluto-labs/pluto/internal/branding"
	"github.com/pluto-labs/pluto/internal/manifest"
	"github.com/pluto-labs/pluto/internal/reconcile"
	"github.com/pluto-labs/pluto/internal/ui"
	"github.com/pluto-labs/pluto/internal/userdata"
	"github.com/spf13/cobra"
)

var (
	uninstallYes         bool
	uninstallProjectOnly bool
)

func init() {
	uninstallCmd.Flags().BoolVarP(&uninstallYes, "yes", "y", false, "Skip the confirmation prompt")
	uninstallCmd.Flags().BoolVar(&uninstallProjectOnly, "project-only", false, "Only remove the installation from the current project")
	rootCmd.AddCommand(uninstallCmd)
}

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove installed configuration from this project and uninstall the CLI",
	Long: `Remove every file, hook and allow-list entry that was installed into the
current project, then remove the system-wide installation and any launcher
symlinks pointing into it. Use --project-only to keep the CLI installed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		return runUninstall(e, uninstallYes, uninstallProjectOnly, userdata.InstallRoot(), userdata.LauncherCandidates())
	},
}

func runUninstall(e *env, yes, projectOnly bool, root string, launchers []string) error {
	initialized := manifest.NewStore(e.dir).Exists()

	if !yes {
		msg := fmt.Sprintf("Remove %s from this project and uninstall it from %s?", branding.DisplayName(), root)
		if projectOnly {
			msg = fmt.Sprintf("Remove %s from this project?", branding.DisplayName())
		}
		ok, err := e.prompter.Confirm(msg, false)
		if err != nil {
			return e.cancelled(err)
		}
		if !ok {
			e.println(ui.Dim("Cancelled."))
			return nil
		}
	}

	if initialized {
		report, err := reconcile.UninstallPrevious(e.dir)
		if err != nil {
			return fmt.Errorf("removing project installation: %w", err)
		}
		e.println(ui.Success(fmt.Sprintf("Removed %d file(s) from this project.", len(report.RemovedFiles))))
		for _, s := range report.SettingsUpdated {
			e.println(ui.Bullet("cleaned " + s))
		}
		for _, s := range report.SettingsDeleted {
			e.println(ui.Bullet("deleted " + s))
		}
		e.warnings(report.Warnings)
	} else {
		e.println(ui.Dim("This project is not initialized."))
	}

	if projectOnly {
		return nil
	}

	res, err := userdata.RemoveInstall(root, launchers)
	if err != nil {
		return fmt.Errorf("removing installation: %w", err)
	}
	for _, l := range res.Launchers {
		e.println(ui.Bullet("removed launcher " + l))
	}
	if res.Removed {
		e.println(ui.Success("Removed " + res.Root))
	}
	e.warnings(res.Warnings)
	e.println(ui.Title(branding.DisplayName() + " uninstalled."))
	return nil
}
