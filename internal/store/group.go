package store

import "github.com/taskhub/taskhub/internal/model"

// CreateGroup appends a new expanded, empty group to the board. Returns
// false when the board does not exist.
func (s *Store) CreateGroup(boardID, title string) (model.Group, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, b := model.FindBoard(s.doc.Workspaces, boardID); b == nil {
		return model.Group{}, false
	}

	group := model.NewGroup(title)
	s.doc.Workspaces = model.UpdateBoard(s.doc.Workspaces, boardID, func(b model.Board) model.Board {
		groups := make([]model.Group, len(b.Groups), len(b.Groups)+1)
		copy(groups, b.Groups)
		b.Groups = append(groups, group)
		b.UpdatedAt = group.CreatedAt
		return b
	})

	s.persistLocked()
	return group.Clone(), true
}

// UpdateGroup patch-merges into the group and refreshes its and the board's
// updatedAt.
func (s *Store) UpdateGroup(boardID, groupID string, patch model.GroupPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.groupExists(boardID, groupID) {
		return
	}
	s.doc.Workspaces = model.UpdateBoard(s.doc.Workspaces, boardID, func(b model.Board) model.Board {
		return model.UpdateGroupInBoard(b, groupID, func(g model.Group) model.Group {
			g = patch.Apply(g)
			g.UpdatedAt = model.Now()
			return g
		})
	})
	s.persistLocked()
}

// DeleteGroup removes the group and moves its task ids back into the
// board's ungrouped list — never silently dropped.
func (s *Store) DeleteGroup(boardID, groupID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.groupExists(boardID, groupID) {
		return
	}
	s.doc.Workspaces = model.UpdateBoard(s.doc.Workspaces, boardID, func(b model.Board) model.Board {
		groups := make([]model.Group, 0, len(b.Groups))
		var orphaned []string
		for _, g := range b.Groups {
			if g.ID == groupID {
				orphaned = g.TaskIDs
				continue
			}
			groups = append(groups, g)
		}
		b.Groups = groups
		ungrouped := make([]string, len(b.UngroupedTaskIDs), len(b.UngroupedTaskIDs)+len(orphaned))
		copy(ungrouped, b.UngroupedTaskIDs)
		b.UngroupedTaskIDs = append(ungrouped, orphaned...)
		b.UpdatedAt = model.Now()
		return b
	})
	s.persistLocked()
}

// ToggleGroupExpanded flips the group's expanded/collapsed flag. The flag
// is presentation state, so neither updatedAt is touched.
func (s *Store) ToggleGroupExpanded(boardID, groupID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.groupExists(boardID, groupID) {
		return
	}
	s.doc.Workspaces = model.UpdateBoard(s.doc.Workspaces, boardID, func(b model.Board) model.Board {
		groups := make([]model.Group, len(b.Groups))
		for i, g := range b.Groups {
			if g.ID == groupID {
				g.IsExpanded = !g.IsExpanded
			}
			groups[i] = g
		}
		b.Groups = groups
		return b
	})
	s.persistLocked()
}

// groupExists reports whether the board exists and contains the group.
// Callers hold s.mu.
func (s *Store) groupExists(boardID, groupID string) bool {
	_, b := model.FindBoard(s.doc.Workspaces, boardID)
	if b == nil {
		return false
	}
	for _, g := range b.Groups {
		if g.ID == groupID {
			return true
		}
	}
	return false
}
