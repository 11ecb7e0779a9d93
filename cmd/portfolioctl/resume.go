package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"portfolio-backend/internal/resume"
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Show or replace the resume",
}

var resumeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resume link",
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := resume.NewRepository(backend, cfg.ResumeBucket).Get(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if rec == nil || rec.FileURL == "" {
			fmt.Fprintln(out, "Resume coming soon")
			return nil
		}
		fmt.Fprintln(out, rec.FileURL)
		if !rec.UpdatedAt.IsZero() {
			fmt.Fprintln(out, mutedStyle.Render("updated "+rec.UpdatedAt.Format("2006-01-02 15:04 MST")))
		}
		return nil
	},
}

var resumeSetCmd = &cobra.Command{
	Use:   "set <url>",
	Short: "Point the resume at an externally hosted file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		panel, err := openPanel(cmd)
		if err != nil {
			return err
		}
		return panel.SaveResumeURL(cmd.Context(), args[0])
	},
}

var resumeUploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a PDF as the resume",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening %s: %w", args[0], err)
		}
		defer f.Close()

		panel, err := openPanel(cmd)
		if err != nil {
			return err
		}
		if err := panel.UploadResume(cmd.Context(), f); err != nil {
			return err
		}
		if rec := panel.Resume(); rec != nil {
			fmt.Fprintln(cmd.OutOrStdout(), rec.FileURL)
		}
		return nil
	},
}

func init() {
	resumeCmd.AddCommand(resumeShowCmd)
	resumeCmd.AddCommand(resumeSetCmd)
	resumeCmd.AddCommand(resumeUploadCmd)
	rootCmd.AddCommand(resumeCmd)
}
