package model

// DefaultGray is the status color returned when no config matches a name.
const DefaultGray = "#6B7280"

// DefaultStatusConfigs is the status palette a fresh document starts with.
func DefaultStatusConfigs() []StatusConfig {
	return []StatusConfig{
		{Name: "todo", Color: "#4F46E5"},
		{Name: "working", Color: "#F59E0B"},
		{Name: "stuck", Color: "#EF4444"},
		{Name: "done", Color: "#10B981"},
	}
}

// DefaultColumns returns the five columns every new board starts with.
// Fixed order 0-4 and fixed types.
func DefaultColumns(boardID string) []Column {
	return []Column{
		{ID: NewID(), Title: "Title", Type: ColumnText, BoardID: boardID, Order: 0},
		{ID: NewID(), Title: "Status", Type: ColumnStatus, BoardID: boardID, Order: 1},
		{ID: NewID(), Title: "Priority", Type: ColumnPriority, BoardID: boardID, Order: 2},
		{ID: NewID(), Title: "Assignee", Type: ColumnPerson, BoardID: boardID, Order: 3},
		{ID: NewID(), Title: "Due Date", Type: ColumnDate, BoardID: boardID, Order: 4},
	}
}

// LocalUser is the member a document is seeded with before anyone signs in.
func LocalUser() User {
	return User{
		ID:    "user-local",
		Name:  "Local User",
		Email: "local@taskhub",
		Role:  RoleAdmin,
	}
}

// SeedDocument builds the starter document used on first run and when a
// persisted snapshot has an unknown schema version: one workspace, one board,
// the default status palette.
func SeedDocument(owner User) Document {
	ws := NewWorkspace("My Workspace", owner)
	board := NewBoard("Getting Started", "Your first board")
	ws.Boards = append(ws.Boards, board)

	configs := DefaultStatusConfigs()
	names := make([]string, len(configs))
	for i, c := range configs {
		names[i] = c.Name
	}

	return Document{
		Workspaces:         []Workspace{ws},
		CurrentWorkspaceID: ws.ID,
		CurrentBoardID:     board.ID,
		CurrentUser:        &owner,
		BoardViewType:      ViewList,
		Statuses:           names,
		StatusConfigs:      configs,
	}
}

// StatusNames projects the config list to its ordered names. Kept alongside
// the configs in the document for the legacy statuses field.
func StatusNames(configs []StatusConfig) []string {
	names := make([]string, len(configs))
	for i, c := range configs {
		names[i] = c.Name
	}
	return names
}
