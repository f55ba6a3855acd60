package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/hireloop/intervue/cmd/chat_tui"
	"github.com/hireloop/intervue/pkg/interview"
	"github.com/hireloop/intervue/pkg/server"
)

func NewChatCmd() *cobra.Command {
	var apiURL string

	chatCmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive mock interview",
		Long: `Start an interactive mock interview session.

Pick a role, answer the interviewer's questions (typed, or by choosing
an option for multiple-choice questions), and get feedback after each
answer. Press esc to end the interview and q or ctrl+c to quit.

The backend address comes from --api-url, INTERVUE_API_URL, or the
config file, in that order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return fmt.Errorf("chat requires an interactive terminal")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if apiURL != "" {
				cfg.Client.BaseURL = apiURL
			}

			lipgloss.SetColorProfile(termenv.ColorProfile())

			client := interview.NewClient(cfg.Client.BaseURL, cfg.Client.RequestTimeout)
			model := chat_tui.New(client, server.Roles())

			program := tea.NewProgram(model, tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("running interview UI: %w", err)
			}
			return nil
		},
	}

	chatCmd.Flags().StringVar(&apiURL, "api-url", "", "Base URL of the interview backend (default from config)")

	return chatCmd
}
