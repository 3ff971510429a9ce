package model

// Deep copies. Used by the store's snapshot accessor so consumers can never
// alias the live document, and by tests comparing before/after states.

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	out := d
	out.Workspaces = make([]Workspace, len(d.Workspaces))
	for i, ws := range d.Workspaces {
		out.Workspaces[i] = ws.Clone()
	}
	if d.CurrentUser != nil {
		u := *d.CurrentUser
		out.CurrentUser = &u
	}
	out.Statuses = append([]string(nil), d.Statuses...)
	out.StatusConfigs = append([]StatusConfig(nil), d.StatusConfigs...)
	return out
}

// Clone returns a deep copy of the workspace.
func (w Workspace) Clone() Workspace {
	out := w
	out.Members = append([]User(nil), w.Members...)
	out.Boards = make([]Board, len(w.Boards))
	for i, b := range w.Boards {
		out.Boards[i] = b.Clone()
	}
	return out
}

// Clone returns a deep copy of the board.
func (b Board) Clone() Board {
	out := b
	out.Columns = append([]Column(nil), b.Columns...)
	out.Tasks = make([]Task, len(b.Tasks))
	for i, t := range b.Tasks {
		out.Tasks[i] = t.Clone()
	}
	out.Groups = make([]Group, len(b.Groups))
	for i, g := range b.Groups {
		out.Groups[i] = g.Clone()
	}
	out.UngroupedTaskIDs = append([]string(nil), b.UngroupedTaskIDs...)
	return out
}

// Clone returns a deep copy of the task.
func (t Task) Clone() Task {
	out := t
	out.Assignees = append([]string(nil), t.Assignees...)
	out.Subtasks = make([]Subtask, len(t.Subtasks))
	for i, st := range t.Subtasks {
		st.Assignees = append([]string(nil), st.Assignees...)
		out.Subtasks[i] = st
	}
	return out
}

// Clone returns a deep copy of the group.
func (g Group) Clone() Group {
	out := g
	out.TaskIDs = append([]string(nil), g.TaskIDs...)
	return out
}
