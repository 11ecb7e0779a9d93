package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"portfolio-backend/internal/admin"
	"portfolio-backend/internal/config"
	"portfolio-backend/internal/projects"
	"portfolio-backend/internal/resume"
	"portfolio-backend/internal/supabase"
)

// passwordEnv supplies the admin password non-interactively.
const passwordEnv = "PORTFOLIO_ADMIN_PASSWORD"

var (
	cfg      *config.Config
	backend  supabase.Store
	password string
)

var rootCmd = &cobra.Command{
	Use:   "portfolioctl",
	Short: "Manage portfolio projects and the resume",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			loaded, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			cfg = loaded
		}
		if backend == nil {
			backend = supabase.Open(cfg)
		}
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&password, "password", "p", "", "admin password (default $"+passwordEnv+" or prompt)")
}

// openPanel logs in to the admin workflow. Toasts go to the command's output.
func openPanel(cmd *cobra.Command) (*admin.Panel, error) {
	policy, err := projects.ParsePolicy(cfg.ReorderPolicy)
	if err != nil {
		return nil, err
	}

	panel := admin.NewPanel(admin.PanelConfig{
		Credentials: admin.NewCredentials(backend),
		Projects:    projects.NewRepository(backend),
		PDFs:        projects.NewPDFs(backend, cfg.ProjectsBucket),
		Resume:      resume.NewRepository(backend, cfg.ResumeBucket),
		Policy:      policy,
		Notifier:    toastNotifier(cmd.OutOrStdout()),
	})

	pw, err := adminPassword()
	if err != nil {
		return nil, err
	}
	if err := panel.Login(cmd.Context(), pw); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	return panel, nil
}

func adminPassword() (string, error) {
	if password != "" {
		return password, nil
	}
	if pw := os.Getenv(passwordEnv); pw != "" {
		return pw, nil
	}

	var pw string
	err := huh.NewInput().
		Title("Admin password").
		EchoMode(huh.EchoModePassword).
		Value(&pw).
		Run()
	if err != nil {
		return "", fmt.Errorf("password prompt cancelled")
	}
	return pw, nil
}
