package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"portfolio-backend/internal/admin"
	"portfolio-backend/internal/models"
	"portfolio-backend/internal/projects"
)

var projectsCmd = &cobra.Command{
	Use:     "projects",
	Aliases: []string{"project"},
	Short:   "List and manage portfolio projects",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects in display order",
	RunE: func(cmd *cobra.Command, args []string) error {
		typ, _ := cmd.Flags().GetString("type")

		list := projects.NewRepository(backend).List(cmd.Context())
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, renderProjectTable(list, typ))
		if !backend.Configured() {
			fmt.Fprintln(out, mutedStyle.Render("Supabase is not configured."))
		}
		return nil
	},
}

var projectsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a project after the last one",
	RunE: func(cmd *cobra.Command, args []string) error {
		panel, err := openPanel(cmd)
		if err != nil {
			return err
		}
		form, err := panel.StartNew()
		if err != nil {
			return err
		}
		return saveForm(cmd, panel, form)
	},
}

var projectsEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change a project's title, type, description or PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		panel, err := openPanel(cmd)
		if err != nil {
			return err
		}
		form, err := panel.StartEdit(models.ProjectID(args[0]))
		if err != nil {
			return fmt.Errorf("project %s: %w", args[0], err)
		}
		return saveForm(cmd, panel, form)
	},
}

var projectsRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a project",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		id := models.ProjectID(args[0])

		panel, err := openPanel(cmd)
		if err != nil {
			return err
		}
		existing, ok := panel.Board().Find(id)
		if !ok {
			return fmt.Errorf("project %s: %w", id, projects.ErrNotFound)
		}
		if err := panel.RequestDelete(id); err != nil {
			return err
		}

		if !force {
			var confirm bool
			msg := fmt.Sprintf("Delete %q? This cannot be undone.", existing.Title)
			if err := huh.NewConfirm().Title(msg).Value(&confirm).Run(); err != nil || !confirm {
				panel.CancelDelete()
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
		}
		return panel.ConfirmDelete(cmd.Context())
	},
}

var projectsMoveCmd = &cobra.Command{
	Use:   "move <from> <to>",
	Short: "Move the project at position <from> to position <to> (1-based)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := position(args[0])
		if err != nil {
			return err
		}
		to, err := position(args[1])
		if err != nil {
			return err
		}

		panel, err := openPanel(cmd)
		if err != nil {
			return err
		}
		if err := panel.Reorder(cmd.Context(), from, to); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderProjectTable(panel.Projects(), ""))
		return nil
	},
}

// saveForm applies the changed flags to form and saves it through the panel.
func saveForm(cmd *cobra.Command, panel *admin.Panel, form projects.ProjectInput) error {
	flags := cmd.Flags()
	if flags.Changed("title") {
		form.Title, _ = flags.GetString("title")
	}
	if flags.Changed("type") {
		typ, _ := flags.GetString("type")
		form.Type = models.ProjectType(typ)
	}
	if flags.Changed("description") {
		form.Description, _ = flags.GetString("description")
	}
	if flags.Changed("pdf-url") {
		url, _ := flags.GetString("pdf-url")
		if err := panel.SetPDFMode(admin.PDFLink); err != nil {
			return err
		}
		form.PDFURL = &url
	}

	if err := form.Normalize().Validate(); err != nil {
		return err
	}

	if flags.Changed("pdf") {
		path, _ := flags.GetString("pdf")
		if err := panel.SetPDFMode(admin.PDFUpload); err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening %s: %w", path, err)
		}
		defer f.Close()
		if _, err := panel.UploadProjectPDF(cmd.Context(), form.Title, f); err != nil {
			return err
		}
	}

	return panel.Save(cmd.Context(), form)
}

func position(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid position %q: positions start at 1", arg)
	}
	return n - 1, nil
}

func init() {
	projectsListCmd.Flags().StringP("type", "t", "", "only show projects of this type")

	for _, c := range []*cobra.Command{projectsAddCmd, projectsEditCmd} {
		c.Flags().String("title", "", "project title")
		c.Flags().StringP("type", "t", "", "project type (default PRD)")
		c.Flags().StringP("description", "d", "", "project description")
		c.Flags().String("pdf-url", "", "link to the project PDF (empty to clear)")
		c.Flags().String("pdf", "", "path of a PDF to upload")
		c.MarkFlagsMutuallyExclusive("pdf-url", "pdf")
	}
	projectsAddCmd.MarkFlagRequired("title")

	projectsRmCmd.Flags().BoolP("force", "f", false, "skip confirmation")

	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsAddCmd)
	projectsCmd.AddCommand(projectsEditCmd)
	projectsCmd.AddCommand(projectsRmCmd)
	projectsCmd.AddCommand(projectsMoveCmd)
	rootCmd.AddCommand(projectsCmd)
}
