package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/pluto-labs/pluto/internal/integrations"
	"github.com/pluto-labs/pluto/internal/linker"
	"github.com/pluto-labs/pluto/internal/manifest"
	"github.com/pluto-labs/pluto/internal/ui"
	"github.com/pluto-labs/pluto/internal/userdata"
	"github.com/spf13/cobra"
)

var (
	listJSON      bool
	listTemplates string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available content, supported tools and this project's installation",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		return runList(e, listTemplates, listJSON)
	},
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&listTemplates, "templates", "", "Template directory to list")
	rootCmd.AddCommand(listCmd)
}

type listTool struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Destination string `json:"destination"`
	Settings    string `json:"settings,omitempty"`
}

type listOutput struct {
	Templates string                `json:"templates,omitempty"`
	Content   []linker.ContentEntry `json:"content"`
	Tools     []listTool            `json:"tools"`
	Installed *manifest.Manifest    `json:"installed,omitempty"`
}

func runList(e *env, templatesFlag string, asJSON bool) error {
	out := listOutput{Content: []linker.ContentEntry{}}

	for _, p := range integrations.Profiles() {
		out.Tools = append(out.Tools, listTool{
			Name:        string(p.Name),
			DisplayName: p.DisplayName,
			Destination: p.Destination(),
			Settings:    p.SettingsFile,
		})
	}

	templates, err := userdata.TemplatesRoot(templatesFlag)
	switch {
	case err == nil:
		out.Templates = templates
		out.Content = linker.Content(templates, integrations.AllTools())
	case errors.Is(err, userdata.ErrNoTemplates) && templatesFlag == "":
	default:
		return err
	}

	m, err := manifest.NewStore(e.dir).Load()
	switch {
	case err == nil:
		out.Installed = m
	case errors.Is(err, manifest.ErrNotInitialized):
	default:
		return err
	}

	if asJSON {
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling list: %w", err)
		}
		e.println(string(data))
		return nil
	}
	return printList(e, out)
}

func printList(e *env, out listOutput) error {
	e.println(ui.Heading("Content"))
	if out.Templates == "" {
		e.println(ui.Dim("  No templates found."))
	} else if len(out.Content) == 0 {
		e.println(ui.Dim("  No content in " + out.Templates))
	} else {
		w := tabwriter.NewWriter(e.out, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "  ID\tTOOLS\tDESCRIPTION")
		for _, c := range out.Content {
			fmt.Fprintf(w, "  %s\t%s\t%s\n", c.ID, strings.Join(c.Tools, ","), c.Description)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	e.println()
	e.println(ui.Heading("Tools"))
	w := tabwriter.NewWriter(e.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "  TOOL\tNAME\tDESTINATION\tSETTINGS")
	for _, t := range out.Tools {
		settings := t.Settings
		if settings == "" {
			settings = "-"
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", t.Name, t.DisplayName, t.Destination, settings)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	e.println()
	e.println(ui.Heading("This project"))
	m := out.Installed
	if m == nil {
		e.println(ui.Dim("  Not initialized."))
		return nil
	}
	e.println(ui.Bullet("Tools: " + strings.Join(m.Tools, ", ")))
	e.println(ui.Bullet("Content: " + strings.Join(m.Agents, ", ")))
	e.println(ui.Bullet("Commit mode: " + string(m.CommitMode)))
	e.println(ui.Bullet(fmt.Sprintf("Allow list: %t", m.AllowList)))
	if m.InstalledAt != "" {
		e.println(ui.Bullet("Installed: " + m.InstalledAt))
	}
	e.println(ui.Bullet(fmt.Sprintf("Files: %d", len(m.AllFiles()))))
	return nil
}
