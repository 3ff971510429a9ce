package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/taskhub/taskhub/internal/tui"
	"github.com/spf13/cobra"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive board",
	Long:  "Opens a full-screen view of the current board with keyboard navigation, task creation and status cycling.",
	RunE:  runUI,
}

func runUI(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if s.CurrentBoard() == nil {
		return fmt.Errorf("no current board. Run: taskhub board use <board>")
	}

	p := tea.NewProgram(tui.New(s), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
