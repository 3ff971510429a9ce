package store

import "github.com/taskhub/taskhub/internal/model"

// CreateTask builds a task from the partial prototype (defaults: title
// "New Task", status "todo", priority "medium", no assignees), appends it to
// the board's task list and to ungroupedTaskIds — new tasks always start
// ungrouped. Returns the fully constructed task so callers never poll
// derived state for it. False when the board does not exist.
func (s *Store) CreateTask(boardID, columnID string, proto model.Task) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, b := model.FindBoard(s.doc.Workspaces, boardID); b == nil {
		return model.Task{}, false
	}

	task := model.NewTask(columnID, proto)
	s.doc.Workspaces = model.UpdateBoard(s.doc.Workspaces, boardID, func(b model.Board) model.Board {
		tasks := make([]model.Task, len(b.Tasks), len(b.Tasks)+1)
		copy(tasks, b.Tasks)
		b.Tasks = append(tasks, task)

		ungrouped := make([]string, len(b.UngroupedTaskIDs), len(b.UngroupedTaskIDs)+1)
		copy(ungrouped, b.UngroupedTaskIDs)
		b.UngroupedTaskIDs = append(ungrouped, task.ID)

		b.UpdatedAt = task.CreatedAt
		return b
	})
	s.boardOf[task.ID] = boardID

	s.persistLocked()
	return task.Clone(), true
}

// UpdateTask patch-merges into the task identified by id alone, refreshing
// the task's and the owning board's updatedAt. Unknown ids are a no-op.
func (s *Store) UpdateTask(id string, patch model.TaskPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	boardID, ok := s.boardOf[id]
	if !ok {
		return
	}
	s.doc.Workspaces = model.UpdateBoard(s.doc.Workspaces, boardID, func(b model.Board) model.Board {
		return model.UpdateTaskInBoard(b, id, func(t model.Task) model.Task {
			t = patch.Apply(t)
			t.UpdatedAt = model.Now()
			return t
		})
	})
	s.persistLocked()
}

// DeleteTask removes the task from the owning board and scrubs its id from
// whichever group or ungrouped list held it, so every surviving task id
// stays referenced exactly once.
func (s *Store) DeleteTask(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	boardID, ok := s.boardOf[id]
	if !ok {
		return
	}
	s.doc.Workspaces = model.UpdateBoard(s.doc.Workspaces, boardID, func(b model.Board) model.Board {
		tasks := make([]model.Task, 0, len(b.Tasks))
		for _, t := range b.Tasks {
			if t.ID != id {
				tasks = append(tasks, t)
			}
		}
		b.Tasks = tasks
		b = model.RemoveTaskRef(b, id)
		b.UpdatedAt = model.Now()
		return b
	})
	delete(s.boardOf, id)
	s.persistLocked()
}

// MoveTaskToColumn reassigns the task to another column of its board.
func (s *Store) MoveTaskToColumn(taskID, columnID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	boardID, ok := s.boardOf[taskID]
	if !ok {
		return
	}
	s.doc.Workspaces = model.UpdateBoard(s.doc.Workspaces, boardID, func(b model.Board) model.Board {
		return model.UpdateTaskInBoard(b, taskID, func(t model.Task) model.Task {
			t.ColumnID = columnID
			t.UpdatedAt = model.Now()
			return t
		})
	})
	s.persistLocked()
}

// MoveTaskToGroup moves the task into the named group, or back to the
// ungrouped list when groupID is empty. The id is first removed from every
// group and from the ungrouped list, then inserted exactly once, so the
// membership invariant holds by construction. No-op when the task does not
// belong to the board.
func (s *Store) MoveTaskToGroup(boardID, taskID, groupID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, b := model.FindBoard(s.doc.Workspaces, boardID)
	if b == nil {
		return
	}
	owns := false
	for _, t := range b.Tasks {
		if t.ID == taskID {
			owns = true
			break
		}
	}
	if !owns {
		return
	}
	if groupID != "" {
		found := false
		for _, g := range b.Groups {
			if g.ID == groupID {
				found = true
				break
			}
		}
		if !found {
			return
		}
	}

	now := model.Now()
	s.doc.Workspaces = model.UpdateBoard(s.doc.Workspaces, boardID, func(b model.Board) model.Board {
		b = model.RemoveTaskRef(b, taskID)
		if groupID == "" {
			b.UngroupedTaskIDs = append(b.UngroupedTaskIDs, taskID)
		} else {
			groups := make([]model.Group, len(b.Groups))
			for i, g := range b.Groups {
				if g.ID == groupID {
					g.TaskIDs = append(append([]string(nil), g.TaskIDs...), taskID)
					g.UpdatedAt = now
				}
				groups[i] = g
			}
			b.Groups = groups
		}
		b.UpdatedAt = now
		return b
	})
	s.persistLocked()
}
