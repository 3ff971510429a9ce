package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/taskhub/taskhub/internal/model"
	"github.com/taskhub/taskhub/internal/store"
)

// popup identifies which modal dialog is active.
type popup int

const (
	popupNone popup = iota
	popupCreateTask
	popupCreateGroup
	popupConfirmDelete
)

// rowKind tags one display row of the flattened board.
type rowKind int

const (
	rowGroupHeader rowKind = iota
	rowTask
	rowUngroupedHeader
)

// row is one selectable line of the board view. Task rows carry the task;
// header rows carry the group (nil for the ungrouped header).
type row struct {
	kind  rowKind
	group *model.Group
	task  *model.Task
}

// Model is the top-level bubbletea model.
type Model struct {
	store  *store.Store
	width  int
	height int

	// Board state, rebuilt from a store snapshot after every mutation.
	board *model.Board
	rows  []row

	cursor int

	// Popup state.
	popup          popup
	titleInput     textinput.Model
	descInput      textinput.Model
	inputFocused   int // 0=title, 1=desc
	createPriority model.Priority
	deleteTaskID   string

	statusMsg string
	quitting  bool
}

// New creates a new TUI model over the store's current board.
func New(s *store.Store) Model {
	ti := textinput.New()
	ti.Placeholder = "Task title..."
	ti.CharLimit = 120
	ti.Width = 50

	di := textinput.New()
	di.Placeholder = "Description (optional)..."
	di.CharLimit = 500
	di.Width = 50

	return Model{
		store:          s,
		titleInput:     ti,
		descInput:      di,
		createPriority: model.PriorityMedium,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.refreshBoard()
}

type boardRefreshedMsg struct {
	board *model.Board
}

func (m Model) refreshBoard() tea.Cmd {
	return func() tea.Msg {
		return boardRefreshedMsg{board: m.store.CurrentBoard()}
	}
}

// rebuildRows flattens the board into display rows: each group header
// followed by its tasks when expanded, then the ungrouped section.
func (m *Model) rebuildRows() {
	m.rows = nil
	if m.board == nil {
		return
	}

	tasksByID := make(map[string]*model.Task, len(m.board.Tasks))
	for i := range m.board.Tasks {
		tasksByID[m.board.Tasks[i].ID] = &m.board.Tasks[i]
	}

	for i := range m.board.Groups {
		g := &m.board.Groups[i]
		m.rows = append(m.rows, row{kind: rowGroupHeader, group: g})
		if !g.IsExpanded {
			continue
		}
		for _, id := range g.TaskIDs {
			if t, ok := tasksByID[id]; ok {
				m.rows = append(m.rows, row{kind: rowTask, group: g, task: t})
			}
		}
	}

	if len(m.board.UngroupedTaskIDs) > 0 {
		m.rows = append(m.rows, row{kind: rowUngroupedHeader})
		for _, id := range m.board.UngroupedTaskIDs {
			if t, ok := tasksByID[id]; ok {
				m.rows = append(m.rows, row{kind: rowTask, task: t})
			}
		}
	}

	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) selectedRow() *row {
	if m.cursor < len(m.rows) {
		return &m.rows[m.cursor]
	}
	return nil
}

// firstColumnID picks the lowest-order column for new tasks.
func (m *Model) firstColumnID() string {
	if m.board == nil || len(m.board.Columns) == 0 {
		return ""
	}
	best := m.board.Columns[0]
	for _, c := range m.board.Columns[1:] {
		if c.Order < best.Order {
			best = c
		}
	}
	return best.ID
}
