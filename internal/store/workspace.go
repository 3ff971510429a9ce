package store

import "github.com/taskhub/taskhub/internal/model"

// CreateWorkspace appends a new workspace owned by the process-current user
// as sole member and makes it current. The store does not reject empty
// names; that is the caller's contract.
func (s *Store) CreateWorkspace(name string) model.Workspace {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner := model.LocalUser()
	if s.doc.CurrentUser != nil {
		owner = *s.doc.CurrentUser
	}
	ws := model.NewWorkspace(name, owner)

	workspaces := make([]model.Workspace, len(s.doc.Workspaces), len(s.doc.Workspaces)+1)
	copy(workspaces, s.doc.Workspaces)
	s.doc.Workspaces = append(workspaces, ws)
	s.doc.CurrentWorkspaceID = ws.ID

	s.persistLocked()
	return ws.Clone()
}

// UpdateWorkspace patch-merges into the workspace. Unknown ids are a no-op.
func (s *Store) UpdateWorkspace(id string, patch model.WorkspacePatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	out := make([]model.Workspace, len(s.doc.Workspaces))
	for i, ws := range s.doc.Workspaces {
		if ws.ID == id {
			ws = patch.Apply(ws)
			found = true
		}
		out[i] = ws
	}
	if !found {
		return
	}
	s.doc.Workspaces = out
	s.persistLocked()
}

// DeleteWorkspace removes the workspace and everything it owns. Deleting the
// current workspace clears the current-workspace pointer.
func (s *Store) DeleteWorkspace(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Workspace, 0, len(s.doc.Workspaces))
	found := false
	for _, ws := range s.doc.Workspaces {
		if ws.ID == id {
			found = true
			for _, b := range ws.Boards {
				s.unindexBoard(b)
			}
			continue
		}
		out = append(out, ws)
	}
	if !found {
		return
	}
	s.doc.Workspaces = out
	if s.doc.CurrentWorkspaceID == id {
		s.doc.CurrentWorkspaceID = ""
	}
	s.persistLocked()
}

// SetCurrentWorkspace points the store at another workspace. Unknown ids are
// a no-op.
func (s *Store) SetCurrentWorkspace(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ws := range s.doc.Workspaces {
		if ws.ID == id {
			s.doc.CurrentWorkspaceID = id
			s.persistLocked()
			return
		}
	}
}

// SetCurrentUser replaces the process-current user. Populated from the
// identity provider's session payload, not derived internally.
func (s *Store) SetCurrentUser(user *model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user == nil {
		s.doc.CurrentUser = nil
	} else {
		u := *user
		s.doc.CurrentUser = &u
	}
	s.persistLocked()
}

// AddUserToWorkspace adds (or replaces, matched by id) a member.
func (s *Store) AddUserToWorkspace(workspaceID string, user model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	out := make([]model.Workspace, len(s.doc.Workspaces))
	for i, ws := range s.doc.Workspaces {
		if ws.ID == workspaceID {
			members := make([]model.User, 0, len(ws.Members)+1)
			for _, m := range ws.Members {
				if m.ID != user.ID {
					members = append(members, m)
				}
			}
			ws.Members = append(members, user)
			found = true
		}
		out[i] = ws
	}
	if !found {
		return
	}
	s.doc.Workspaces = out
	s.persistLocked()
}

// RemoveUserFromWorkspace drops a member by id.
func (s *Store) RemoveUserFromWorkspace(workspaceID, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	out := make([]model.Workspace, len(s.doc.Workspaces))
	for i, ws := range s.doc.Workspaces {
		if ws.ID == workspaceID {
			members := make([]model.User, 0, len(ws.Members))
			for _, m := range ws.Members {
				if m.ID != userID {
					members = append(members, m)
				}
			}
			ws.Members = members
			found = true
		}
		out[i] = ws
	}
	if !found {
		return
	}
	s.doc.Workspaces = out
	s.persistLocked()
}
