package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/taskhub/taskhub/internal/model"
)

// --- Color palette ---
var (
	clrSubtle    = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#666666"}
	clrHighlight = lipgloss.AdaptiveColor{Light: "#3730A3", Dark: "#818CF8"}
	clrGreen     = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	clrYellow    = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#F59E0B"}
	clrRed       = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
	clrDim       = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#555555"}
)

// --- Styles ---
var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(clrHighlight)
	dimStyle   = lipgloss.NewStyle().Foreground(clrDim)
	groupStyle = lipgloss.NewStyle().Bold(true)

	cursorStyle = lipgloss.NewStyle().Foreground(clrHighlight).Bold(true)

	popupStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(clrHighlight).
			Padding(1, 2).
			Width(60)

	statusBarStyle = lipgloss.NewStyle().Foreground(clrGreen).Bold(true)

	footerKeyStyle  = lipgloss.NewStyle().Bold(true).Foreground(clrHighlight)
	footerDescStyle = lipgloss.NewStyle().Foreground(clrSubtle)
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.board == nil {
		return dimStyle.Render("\n  No board selected.\n")
	}

	content := m.viewBoard()

	if m.popup != popupNone {
		content = m.overlayPopup(content)
	}

	return content
}

func (m Model) viewBoard() string {
	var b strings.Builder

	// Header.
	header := titleStyle.Render(m.board.Title)
	header += dimStyle.Render(fmt.Sprintf(" — %d tasks", len(m.board.Tasks)))
	b.WriteString(header + "\n\n")

	if len(m.rows) == 0 {
		b.WriteString(dimStyle.Render("  Empty board. Press ") +
			footerKeyStyle.Render("c") +
			dimStyle.Render(" to create a task.\n"))
	}

	for i, r := range m.rows {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("▸ ")
		}
		switch r.kind {
		case rowGroupHeader:
			arrow := "▸"
			if r.group.IsExpanded {
				arrow = "▾"
			}
			line := fmt.Sprintf("%s%s %s %s", cursor, arrow,
				groupStyle.Render(r.group.Title),
				dimStyle.Render(fmt.Sprintf("(%d)", len(r.group.TaskIDs))))
			b.WriteString(line + "\n")
		case rowUngroupedHeader:
			b.WriteString("  " + dimStyle.Render(fmt.Sprintf("Ungrouped (%d)", len(m.board.UngroupedTaskIDs))) + "\n")
		case rowTask:
			b.WriteString(cursor + "  " + m.renderTaskLine(r.task) + "\n")
		}
	}

	// Status bar.
	if m.statusMsg != "" {
		b.WriteString("\n" + statusBarStyle.Render("  "+m.statusMsg))
	}

	// Footer.
	b.WriteString("\n")
	b.WriteString(renderFooter([]struct{ key, desc string }{
		{"↑↓", "navigate"},
		{"enter", "expand"},
		{"c", "new task"},
		{"n", "new group"},
		{"s", "status"},
		{"p", "priority"},
		{"m", "regroup"},
		{"d", "delete"},
		{"q", "quit"},
	}))

	return b.String()
}

func (m Model) renderTaskLine(t *model.Task) string {
	status := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.store.StatusColor(t.Status))).
		Render(fmt.Sprintf("%-10s", t.Status))

	var pri string
	switch t.Priority {
	case model.PriorityHigh:
		pri = lipgloss.NewStyle().Foreground(clrRed).Bold(true).Render("high  ")
	case model.PriorityMedium:
		pri = lipgloss.NewStyle().Foreground(clrYellow).Render("medium")
	default:
		pri = dimStyle.Render("low   ")
	}

	title := truncate(t.Title, 48)

	extra := ""
	if t.DueDate != "" {
		extra += dimStyle.Render("  due " + t.DueDate)
	}
	if n := len(t.Subtasks); n > 0 {
		done := 0
		for _, st := range t.Subtasks {
			if st.Completed {
				done++
			}
		}
		extra += dimStyle.Render(fmt.Sprintf("  [%d/%d]", done, n))
	}

	return fmt.Sprintf("%s %s %s%s", status, pri, title, extra)
}

// --- Popups ---

func (m Model) overlayPopup(bg string) string {
	var popup string

	switch m.popup {
	case popupCreateTask:
		popup = m.viewCreateTaskPopup()
	case popupCreateGroup:
		popup = m.viewCreateGroupPopup()
	case popupConfirmDelete:
		popup = m.viewConfirmDeletePopup()
	default:
		return bg
	}

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			popup,
			lipgloss.WithWhitespaceChars(" "),
		)
	}

	return popup
}

func (m Model) viewCreateTaskPopup() string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(clrHighlight).Render("Create Task") + "\n\n")

	b.WriteString("Title:\n")
	b.WriteString(m.titleInput.View() + "\n\n")

	b.WriteString("Description:\n")
	b.WriteString(m.descInput.View() + "\n\n")

	priStyle := lipgloss.NewStyle().Bold(true)
	switch m.createPriority {
	case model.PriorityHigh:
		priStyle = priStyle.Foreground(clrRed)
	case model.PriorityMedium:
		priStyle = priStyle.Foreground(clrYellow)
	default:
		priStyle = priStyle.Foreground(clrSubtle)
	}
	b.WriteString(fmt.Sprintf("Priority: %s\n\n", priStyle.Render(string(m.createPriority))))

	b.WriteString(footerDescStyle.Render("enter create • tab switch • ctrl+p priority • esc cancel"))

	return m.popupBoxStyle().Render(b.String())
}

func (m Model) viewCreateGroupPopup() string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(clrHighlight).Render("Create Group") + "\n\n")
	b.WriteString("Title:\n")
	b.WriteString(m.titleInput.View() + "\n\n")
	b.WriteString(footerDescStyle.Render("enter create • esc cancel"))

	return m.popupBoxStyle().Render(b.String())
}

func (m Model) viewConfirmDeletePopup() string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(clrRed).Render("Delete Task") + "\n\n")
	b.WriteString("This removes the task permanently.\n\n")
	b.WriteString(footerKeyStyle.Render("y") + footerDescStyle.Render(" confirm  ") +
		footerKeyStyle.Render("n") + footerDescStyle.Render(" cancel"))

	return m.popupBoxStyle().Render(b.String())
}

func (m Model) popupBoxStyle() lipgloss.Style {
	w := 60
	if m.width > 0 {
		w = m.width - 12
		if w < 42 {
			w = 42
		}
		if w > 84 {
			w = 84
		}
	}
	return popupStyle.Width(w)
}

// --- Shared helpers ---

func renderFooter(keys []struct{ key, desc string }) string {
	var parts []string
	for _, k := range keys {
		parts = append(parts, footerKeyStyle.Render(k.key)+" "+footerDescStyle.Render(k.desc))
	}
	return "  " + strings.Join(parts, "  ")
}

func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
