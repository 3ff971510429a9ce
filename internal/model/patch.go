package model

// Patches are partial updates: nil fields are left untouched, set fields
// overwrite. Apply never stamps updatedAt; the store does that.

// WorkspacePatch is a partial workspace update.
type WorkspacePatch struct {
	Name *string
}

// Apply merges the patch into a copy of w.
func (p WorkspacePatch) Apply(w Workspace) Workspace {
	if p.Name != nil {
		w.Name = *p.Name
	}
	return w
}

// BoardPatch is a partial board update.
type BoardPatch struct {
	Title       *string
	Description *string
	ViewType    *ViewType
}

// Apply merges the patch into a copy of b.
func (p BoardPatch) Apply(b Board) Board {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Description != nil {
		b.Description = *p.Description
	}
	if p.ViewType != nil {
		b.ViewType = *p.ViewType
	}
	return b
}

// ColumnPatch is a partial column update.
type ColumnPatch struct {
	Title *string
	Type  *ColumnType
	Order *int
}

// Apply merges the patch into a copy of c.
func (p ColumnPatch) Apply(c Column) Column {
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Type != nil {
		c.Type = *p.Type
	}
	if p.Order != nil {
		c.Order = *p.Order
	}
	return c
}

// TaskPatch is a partial task update.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *Priority
	Assignees   *[]string
	DueDate     *string
	ColumnID    *string
	Subtasks    *[]Subtask
}

// Apply merges the patch into a copy of t.
func (p TaskPatch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Assignees != nil {
		t.Assignees = append([]string(nil), (*p.Assignees)...)
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.ColumnID != nil {
		t.ColumnID = *p.ColumnID
	}
	if p.Subtasks != nil {
		t.Subtasks = append([]Subtask(nil), (*p.Subtasks)...)
	}
	return t
}

// GroupPatch is a partial group update.
type GroupPatch struct {
	Title       *string
	Description *string
	IsExpanded  *bool
}

// Apply merges the patch into a copy of g.
func (p GroupPatch) Apply(g Group) Group {
	if p.Title != nil {
		g.Title = *p.Title
	}
	if p.Description != nil {
		g.Description = *p.Description
	}
	if p.IsExpanded != nil {
		g.IsExpanded = *p.IsExpanded
	}
	return g
}

// Ptr returns a pointer to v. Convenience for building patches.
func Ptr[T any](v T) *T {
	return &v
}
