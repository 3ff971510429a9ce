// Package model defines the workspace document tree and the pure helpers
// that update it. The document is normalized: workspaces own boards, boards
// own columns, tasks and groups; groups reference tasks by id only.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Priority ranks a task or subtask.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ViewType selects how a board is rendered.
type ViewType string

const (
	ViewList     ViewType = "list"
	ViewKanban   ViewType = "kanban"
	ViewCalendar ViewType = "calendar"
)

// ColumnType tags what kind of value a board column holds.
type ColumnType string

const (
	ColumnText     ColumnType = "text"
	ColumnStatus   ColumnType = "status"
	ColumnPriority ColumnType = "priority"
	ColumnPerson   ColumnType = "person"
	ColumnDate     ColumnType = "date"
	ColumnCheckbox ColumnType = "checkbox"
)

// Role is a workspace member's role.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// User is a workspace member.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
	Role   Role   `json:"role"`
}

// Subtask is a checklist item owned by a single task. No further nesting.
type Subtask struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	Status    string    `json:"status"`
	Priority  Priority  `json:"priority"`
	Assignees []string  `json:"assignees"`
	DueDate   string    `json:"dueDate,omitempty"` // date-only, YYYY-MM-DD
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Task is a unit of work on a board. Its id appears in exactly one of the
// board's ungroupedTaskIds or one group's taskIds, never both.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"` // free string; matches a StatusConfig name by convention
	Priority    Priority  `json:"priority"`
	Assignees   []string  `json:"assignees"`
	DueDate     string    `json:"dueDate,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	ColumnID    string    `json:"columnId"`
	Subtasks    []Subtask `json:"subtasks"`
}

// Column describes one display column of a board. Order defines display
// position only; values are unique per board but gaps are allowed.
type Column struct {
	ID      string     `json:"id"`
	Title   string     `json:"title"`
	Type    ColumnType `json:"type"`
	BoardID string     `json:"boardId"`
	Order   int        `json:"order"`
}

// Group is a named bucket of task ids within a board.
type Group struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	IsExpanded  bool      `json:"isExpanded"`
	TaskIDs     []string  `json:"taskIds"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Board owns its columns, tasks and groups exclusively.
type Board struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
	Columns          []Column  `json:"columns"`
	Tasks            []Task    `json:"tasks"`
	Groups           []Group   `json:"groups"`
	ViewType         ViewType  `json:"viewType"`
	UngroupedTaskIDs []string  `json:"ungroupedTaskIds"`
}

// Workspace is the root-level container.
type Workspace struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	Members   []User    `json:"members"`
	Boards    []Board   `json:"boards"`
}

// StatusConfig maps a status name to its display color. The ordered config
// list is process-wide, not per-board, and names are unique.
type StatusConfig struct {
	Name  string `json:"name"`
	Color string `json:"color"` // hex, e.g. #10B981
}

// Document is the whole persisted state tree.
type Document struct {
	Workspaces         []Workspace    `json:"workspaces"`
	CurrentWorkspaceID string         `json:"currentWorkspaceId"`
	CurrentBoardID     string         `json:"currentBoardId"`
	CurrentUser        *User          `json:"currentUser"`
	BoardViewType      ViewType       `json:"boardViewType"` // legacy process-wide default, kept alongside per-board viewType
	Statuses           []string       `json:"statuses"`      // legacy name list, kept in sync with StatusConfigs
	StatusConfigs      []StatusConfig `json:"statusConfigs"`
}

// NewID returns a fresh opaque entity id. Ids are never reused.
func NewID() string {
	return uuid.NewString()
}

// Now returns the timestamp used for createdAt/updatedAt stamps.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// NewWorkspace builds an empty workspace with the given owner as sole member.
func NewWorkspace(name string, owner User) Workspace {
	return Workspace{
		ID:        NewID(),
		Name:      name,
		CreatedAt: Now(),
		Members:   []User{owner},
		Boards:    []Board{},
	}
}

// NewBoard builds a board with the five default columns, list view and no
// tasks or groups.
func NewBoard(title, description string) Board {
	now := Now()
	id := NewID()
	return Board{
		ID:               id,
		Title:            title,
		Description:      description,
		CreatedAt:        now,
		UpdatedAt:        now,
		Columns:          DefaultColumns(id),
		Tasks:            []Task{},
		Groups:           []Group{},
		ViewType:         ViewList,
		UngroupedTaskIDs: []string{},
	}
}

// NewTask builds a task from a partial prototype, filling defaults for every
// omitted field. The caller owns placing its id into a group or the
// ungrouped list.
func NewTask(columnID string, proto Task) Task {
	now := Now()
	t := Task{
		ID:          NewID(),
		Title:       proto.Title,
		Description: proto.Description,
		Status:      proto.Status,
		Priority:    proto.Priority,
		Assignees:   proto.Assignees,
		DueDate:     proto.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
		ColumnID:    columnID,
		Subtasks:    []Subtask{},
	}
	if t.Title == "" {
		t.Title = "New Task"
	}
	if t.Status == "" {
		t.Status = "todo"
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if t.Assignees == nil {
		t.Assignees = []string{}
	}
	return t
}

// NewSubtask builds a subtask with the same defaulting rules as NewTask.
func NewSubtask(title string) Subtask {
	now := Now()
	return Subtask{
		ID:        NewID(),
		Title:     title,
		Completed: false,
		Status:    "todo",
		Priority:  PriorityMedium,
		Assignees: []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewGroup builds an expanded, empty group.
func NewGroup(title string) Group {
	now := Now()
	return Group{
		ID:         NewID(),
		Title:      title,
		IsExpanded: true,
		TaskIDs:    []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
