package model

// Tree helpers. All of them treat the input as immutable: they return a new
// slice with fresh copies along the path to the changed node and share
// everything else. Callers must not mutate what they pass in afterwards.

// UpdateBoard returns a new workspace list with the board identified by
// boardID replaced by fn(board). Unknown ids return the input unchanged.
func UpdateBoard(workspaces []Workspace, boardID string, fn func(Board) Board) []Workspace {
	out := make([]Workspace, len(workspaces))
	for i, ws := range workspaces {
		for j, b := range ws.Boards {
			if b.ID != boardID {
				continue
			}
			boards := make([]Board, len(ws.Boards))
			copy(boards, ws.Boards)
			boards[j] = fn(b)
			ws.Boards = boards
		}
		out[i] = ws
	}
	return out
}

// UpdateEachBoard applies fn to every board in every workspace. Used by
// global operations such as a status rename.
func UpdateEachBoard(workspaces []Workspace, fn func(Board) Board) []Workspace {
	out := make([]Workspace, len(workspaces))
	for i, ws := range workspaces {
		boards := make([]Board, len(ws.Boards))
		for j, b := range ws.Boards {
			boards[j] = fn(b)
		}
		ws.Boards = boards
		out[i] = ws
	}
	return out
}

// FindBoard locates a board and its owning workspace. Returns nil, nil when
// the id is unknown; callers probe speculatively with stale ids.
func FindBoard(workspaces []Workspace, boardID string) (*Workspace, *Board) {
	for i := range workspaces {
		for j := range workspaces[i].Boards {
			if workspaces[i].Boards[j].ID == boardID {
				return &workspaces[i], &workspaces[i].Boards[j]
			}
		}
	}
	return nil, nil
}

// FindTask locates a task and its owning board across all workspaces.
// Returns nil, nil when the id is unknown.
func FindTask(workspaces []Workspace, taskID string) (*Board, *Task) {
	for i := range workspaces {
		for j := range workspaces[i].Boards {
			b := &workspaces[i].Boards[j]
			for k := range b.Tasks {
				if b.Tasks[k].ID == taskID {
					return b, &b.Tasks[k]
				}
			}
		}
	}
	return nil, nil
}

// UpdateTaskInBoard replaces one task inside a board and refreshes the
// board's updatedAt stamp.
func UpdateTaskInBoard(b Board, taskID string, fn func(Task) Task) Board {
	tasks := make([]Task, len(b.Tasks))
	for i, t := range b.Tasks {
		if t.ID == taskID {
			tasks[i] = fn(t)
		} else {
			tasks[i] = t
		}
	}
	b.Tasks = tasks
	b.UpdatedAt = Now()
	return b
}

// UpdateGroupInBoard replaces one group inside a board and refreshes the
// board's updatedAt stamp.
func UpdateGroupInBoard(b Board, groupID string, fn func(Group) Group) Board {
	groups := make([]Group, len(b.Groups))
	for i, g := range b.Groups {
		if g.ID == groupID {
			groups[i] = fn(g)
		} else {
			groups[i] = g
		}
	}
	b.Groups = groups
	b.UpdatedAt = Now()
	return b
}

// UpdateColumnInBoard replaces one column inside a board and refreshes the
// board's updatedAt stamp.
func UpdateColumnInBoard(b Board, columnID string, fn func(Column) Column) Board {
	columns := make([]Column, len(b.Columns))
	for i, c := range b.Columns {
		if c.ID == columnID {
			columns[i] = fn(c)
		} else {
			columns[i] = c
		}
	}
	b.Columns = columns
	b.UpdatedAt = Now()
	return b
}

// removeString drops every occurrence of v from s, returning a fresh slice.
func removeString(s []string, v string) []string {
	out := make([]string, 0, len(s))
	for _, x := range s {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}

// RemoveTaskRef scrubs a task id from a board's ungrouped list and from
// every group. Upholds the membership invariant before a re-insert or after
// a task deletion.
func RemoveTaskRef(b Board, taskID string) Board {
	b.UngroupedTaskIDs = removeString(b.UngroupedTaskIDs, taskID)
	groups := make([]Group, len(b.Groups))
	for i, g := range b.Groups {
		if containsString(g.TaskIDs, taskID) {
			g.TaskIDs = removeString(g.TaskIDs, taskID)
			g.UpdatedAt = Now()
		}
		groups[i] = g
	}
	b.Groups = groups
	return b
}

func containsString(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
