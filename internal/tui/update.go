package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/taskhub/taskhub/internal/model"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.popup != popupNone {
			return m.handlePopupKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case boardRefreshedMsg:
		m.board = msg.board
		m.rebuildRows()
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	// Navigation.
	case "j", "down":
		m.cursor++
		m.clampCursor()
	case "k", "up":
		m.cursor--
		m.clampCursor()
	case "g":
		m.cursor = 0
	case "G":
		m.cursor = len(m.rows) - 1
		m.clampCursor()

	// Toggle group expansion.
	case "enter", " ":
		if r := m.selectedRow(); r != nil && r.kind == rowGroupHeader && m.board != nil {
			m.store.ToggleGroupExpanded(m.board.ID, r.group.ID)
			return m, m.refreshBoard()
		}

	// Cycle the selected task's status through the palette.
	case "s":
		if r := m.selectedRow(); r != nil && r.kind == rowTask {
			next := m.nextStatus(r.task.Status)
			m.store.UpdateTask(r.task.ID, model.TaskPatch{Status: model.Ptr(next)})
			m.setStatus("Status → " + next)
			return m, m.refreshBoard()
		}

	// Cycle the selected task's priority.
	case "p":
		if r := m.selectedRow(); r != nil && r.kind == rowTask {
			next := nextPriority(r.task.Priority)
			m.store.UpdateTask(r.task.ID, model.TaskPatch{Priority: model.Ptr(next)})
			m.setStatus("Priority → " + string(next))
			return m, m.refreshBoard()
		}

	// Move the selected task to the next group (wrapping through ungrouped).
	case "m":
		if r := m.selectedRow(); r != nil && r.kind == rowTask && m.board != nil {
			target := m.nextGroupID(r)
			m.store.MoveTaskToGroup(m.board.ID, r.task.ID, target)
			return m, m.refreshBoard()
		}

	// Delete the selected task (with confirmation) or group.
	case "d", "backspace":
		if r := m.selectedRow(); r != nil {
			switch r.kind {
			case rowTask:
				m.deleteTaskID = r.task.ID
				m.popup = popupConfirmDelete
			case rowGroupHeader:
				m.store.DeleteGroup(m.board.ID, r.group.ID)
				m.setStatus("Deleted group " + r.group.Title + " (tasks kept)")
				return m, m.refreshBoard()
			}
		}

	// Create a new task.
	case "c", "ctrl+n":
		m.popup = popupCreateTask
		m.titleInput.Reset()
		m.titleInput.Focus()
		m.descInput.Reset()
		m.descInput.Blur()
		m.inputFocused = 0
		m.createPriority = model.PriorityMedium
		return m, textinput.Blink

	// Create a new group.
	case "n":
		m.popup = popupCreateGroup
		m.titleInput.Reset()
		m.titleInput.Placeholder = "Group title..."
		m.titleInput.Focus()
		return m, textinput.Blink

	// Refresh.
	case "R":
		return m, m.refreshBoard()
	}

	return m, nil
}

// --- Popup keys ---

func (m Model) handlePopupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.popup {
	case popupCreateTask:
		return m.handleCreateTaskPopup(msg)
	case popupCreateGroup:
		return m.handleCreateGroupPopup(msg)
	case popupConfirmDelete:
		return m.handleConfirmDeletePopup(msg)
	}
	return m, nil
}

func (m Model) handleCreateTaskPopup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.popup = popupNone
		return m, nil
	case "tab":
		if m.inputFocused == 0 {
			m.titleInput.Blur()
			m.descInput.Focus()
			m.inputFocused = 1
		} else {
			m.descInput.Blur()
			m.titleInput.Focus()
			m.inputFocused = 0
		}
		return m, textinput.Blink
	case "ctrl+p":
		m.createPriority = nextPriority(m.createPriority)
		return m, nil
	case "enter":
		if m.board == nil {
			m.popup = popupNone
			return m, nil
		}
		proto := model.Task{
			Title:       m.titleInput.Value(),
			Description: m.descInput.Value(),
			Priority:    m.createPriority,
		}
		t, ok := m.store.CreateTask(m.board.ID, m.firstColumnID(), proto)
		m.popup = popupNone
		if ok {
			m.setStatus("Created " + t.Title)
		}
		return m, m.refreshBoard()
	}

	var cmd tea.Cmd
	if m.inputFocused == 0 {
		m.titleInput, cmd = m.titleInput.Update(msg)
	} else {
		m.descInput, cmd = m.descInput.Update(msg)
	}
	return m, cmd
}

func (m Model) handleCreateGroupPopup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.popup = popupNone
		return m, nil
	case "enter":
		title := m.titleInput.Value()
		if title == "" {
			m.setStatus("Title cannot be empty")
			return m, nil
		}
		if m.board != nil {
			m.store.CreateGroup(m.board.ID, title)
		}
		m.popup = popupNone
		m.setStatus("Created group " + title)
		return m, m.refreshBoard()
	}

	var cmd tea.Cmd
	m.titleInput, cmd = m.titleInput.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmDeletePopup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		m.store.DeleteTask(m.deleteTaskID)
		m.popup = popupNone
		m.setStatus("Task deleted")
		return m, m.refreshBoard()
	case "n", "esc":
		m.popup = popupNone
		return m, nil
	}
	return m, nil
}

// --- Helpers ---

func (m *Model) setStatus(s string) {
	m.statusMsg = s
}

// nextStatus returns the palette entry after the given one, wrapping.
func (m *Model) nextStatus(current string) string {
	configs := m.store.StatusConfigs()
	if len(configs) == 0 {
		return current
	}
	for i, c := range configs {
		if c.Name == current {
			return configs[(i+1)%len(configs)].Name
		}
	}
	return configs[0].Name
}

func nextPriority(p model.Priority) model.Priority {
	switch p {
	case model.PriorityLow:
		return model.PriorityMedium
	case model.PriorityMedium:
		return model.PriorityHigh
	default:
		return model.PriorityLow
	}
}

// nextGroupID computes the move target for a task row: through each group in
// order, then the ungrouped list ("").
func (m *Model) nextGroupID(r *row) string {
	if len(m.board.Groups) == 0 {
		return ""
	}
	if r.group == nil {
		return m.board.Groups[0].ID
	}
	for i := range m.board.Groups {
		if m.board.Groups[i].ID == r.group.ID {
			if i+1 < len(m.board.Groups) {
				return m.board.Groups[i+1].ID
			}
			return ""
		}
	}
	return ""
}
