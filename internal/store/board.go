package store

import "github.com/taskhub/taskhub/internal/model"

// CreateBoard appends a new board (five default columns, list view, empty
// tasks and groups) to the workspace and makes it current. Returns false
// when the workspace does not exist.
func (s *Store) CreateBoard(workspaceID, title, description string) (model.Board, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board := model.NewBoard(title, description)

	found := false
	out := make([]model.Workspace, len(s.doc.Workspaces))
	for i, ws := range s.doc.Workspaces {
		if ws.ID == workspaceID {
			boards := make([]model.Board, len(ws.Boards), len(ws.Boards)+1)
			copy(boards, ws.Boards)
			ws.Boards = append(boards, board)
			found = true
		}
		out[i] = ws
	}
	if !found {
		return model.Board{}, false
	}
	s.doc.Workspaces = out
	s.doc.CurrentBoardID = board.ID
	s.indexBoard(board)

	s.persistLocked()
	return board.Clone(), true
}

// UpdateBoard patch-merges into the board and refreshes its updatedAt.
func (s *Store) UpdateBoard(id string, patch model.BoardPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, b := model.FindBoard(s.doc.Workspaces, id); b == nil {
		return
	}
	s.doc.Workspaces = model.UpdateBoard(s.doc.Workspaces, id, func(b model.Board) model.Board {
		b = patch.Apply(b)
		b.UpdatedAt = model.Now()
		return b
	})
	s.persistLocked()
}

// DeleteBoard removes the board; its tasks and groups disappear with it.
// Deleting the current board clears the current-board pointer.
func (s *Store) DeleteBoard(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	out := make([]model.Workspace, len(s.doc.Workspaces))
	for i, ws := range s.doc.Workspaces {
		boards := make([]model.Board, 0, len(ws.Boards))
		for _, b := range ws.Boards {
			if b.ID == id {
				s.unindexBoard(b)
				found = true
				continue
			}
			boards = append(boards, b)
		}
		ws.Boards = boards
		out[i] = ws
	}
	if !found {
		return
	}
	s.doc.Workspaces = out
	if s.doc.CurrentBoardID == id {
		s.doc.CurrentBoardID = ""
	}
	s.persistLocked()
}

// SetCurrentBoard points the store at another board. Unknown ids are a no-op.
func (s *Store) SetCurrentBoard(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, b := model.FindBoard(s.doc.Workspaces, id); b == nil {
		return
	}
	s.doc.CurrentBoardID = id
	s.persistLocked()
}

// SetBoardViewType sets the board's own view type and the process-wide
// last-used view type. The legacy field feeds the dashboard default; both
// are independently readable.
func (s *Store) SetBoardViewType(boardID string, viewType model.ViewType) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, b := model.FindBoard(s.doc.Workspaces, boardID); b == nil {
		return
	}
	s.doc.Workspaces = model.UpdateBoard(s.doc.Workspaces, boardID, func(b model.Board) model.Board {
		b.ViewType = viewType
		return b
	})
	s.doc.BoardViewType = viewType
	s.persistLocked()
}

// BoardViewType returns the process-wide last-used view type.
func (s *Store) BoardViewType() model.ViewType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.BoardViewType
}

// AddColumn appends a column with order one past the board's current
// maximum (or 0 on an empty board). Returns false for an unknown board.
func (s *Store) AddColumn(boardID, title string, colType model.ColumnType) (model.Column, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, b := model.FindBoard(s.doc.Workspaces, boardID)
	if b == nil {
		return model.Column{}, false
	}

	maxOrder := -1
	for _, c := range b.Columns {
		if c.Order > maxOrder {
			maxOrder = c.Order
		}
	}
	col := model.Column{
		ID:      model.NewID(),
		Title:   title,
		Type:    colType,
		BoardID: boardID,
		Order:   maxOrder + 1,
	}

	s.doc.Workspaces = model.UpdateBoard(s.doc.Workspaces, boardID, func(b model.Board) model.Board {
		columns := make([]model.Column, len(b.Columns), len(b.Columns)+1)
		copy(columns, b.Columns)
		b.Columns = append(columns, col)
		b.UpdatedAt = model.Now()
		return b
	})
	s.boardOf[col.ID] = boardID

	s.persistLocked()
	return col, true
}

// UpdateColumn patch-merges into the column identified by id alone; the
// owning board is resolved through the index.
func (s *Store) UpdateColumn(id string, patch model.ColumnPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	boardID, ok := s.boardOf[id]
	if !ok {
		return
	}
	s.doc.Workspaces = model.UpdateBoard(s.doc.Workspaces, boardID, func(b model.Board) model.Board {
		return model.UpdateColumnInBoard(b, id, patch.Apply)
	})
	s.persistLocked()
}

// DeleteColumn removes the column and hard-deletes every task on the board
// whose columnId matches. Removed task ids are scrubbed from group and
// ungrouped lists so no dangling references remain.
func (s *Store) DeleteColumn(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	boardID, ok := s.boardOf[id]
	if !ok {
		return
	}

	var removedTasks []string
	s.doc.Workspaces = model.UpdateBoard(s.doc.Workspaces, boardID, func(b model.Board) model.Board {
		columns := make([]model.Column, 0, len(b.Columns))
		for _, c := range b.Columns {
			if c.ID != id {
				columns = append(columns, c)
			}
		}
		b.Columns = columns

		tasks := make([]model.Task, 0, len(b.Tasks))
		for _, t := range b.Tasks {
			if t.ColumnID == id {
				removedTasks = append(removedTasks, t.ID)
				continue
			}
			tasks = append(tasks, t)
		}
		b.Tasks = tasks

		for _, taskID := range removedTasks {
			b = model.RemoveTaskRef(b, taskID)
		}
		b.UpdatedAt = model.Now()
		return b
	})

	delete(s.boardOf, id)
	for _, taskID := range removedTasks {
		delete(s.boardOf, taskID)
	}
	s.persistLocked()
}
