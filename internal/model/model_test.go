package model

import (
	"testing"
)

func TestNewTask_Defaults(t *testing.T) {
	task := NewTask("col-1", Task{})

	if task.ID == "" {
		t.Fatal("expected generated id")
	}
	if task.Title != "New Task" {
		t.Errorf("expected default title 'New Task', got %q", task.Title)
	}
	if task.Status != "todo" {
		t.Errorf("expected default status 'todo', got %q", task.Status)
	}
	if task.Priority != PriorityMedium {
		t.Errorf("expected default priority medium, got %q", task.Priority)
	}
	if task.Assignees == nil || len(task.Assignees) != 0 {
		t.Errorf("expected empty assignee list, got %v", task.Assignees)
	}
	if task.ColumnID != "col-1" {
		t.Errorf("expected columnId col-1, got %q", task.ColumnID)
	}
	if task.CreatedAt.IsZero() || task.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be stamped")
	}
}

func TestNewTask_PrototypeWins(t *testing.T) {
	task := NewTask("col-1", Task{
		Title:    "Ship it",
		Status:   "working",
		Priority: PriorityHigh,
	})

	if task.Title != "Ship it" {
		t.Errorf("expected prototype title, got %q", task.Title)
	}
	if task.Status != "working" {
		t.Errorf("expected prototype status, got %q", task.Status)
	}
	if task.Priority != PriorityHigh {
		t.Errorf("expected prototype priority, got %q", task.Priority)
	}
}

func TestNewTask_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewTask("", Task{}).ID
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestNewGroup_StartsExpandedAndEmpty(t *testing.T) {
	g := NewGroup("Sprint 1")

	if !g.IsExpanded {
		t.Error("expected new group to start expanded")
	}
	if g.TaskIDs == nil || len(g.TaskIDs) != 0 {
		t.Errorf("expected empty task id list, got %v", g.TaskIDs)
	}
}

func TestNewBoard_DefaultColumns(t *testing.T) {
	b := NewBoard("Roadmap", "")

	if len(b.Columns) != 5 {
		t.Fatalf("expected 5 default columns, got %d", len(b.Columns))
	}
	wantTitles := []string{"Title", "Status", "Priority", "Assignee", "Due Date"}
	for i, c := range b.Columns {
		if c.Title != wantTitles[i] {
			t.Errorf("column %d: expected %q, got %q", i, wantTitles[i], c.Title)
		}
		if c.Order != i {
			t.Errorf("column %q: expected order %d, got %d", c.Title, i, c.Order)
		}
		if c.BoardID != b.ID {
			t.Errorf("column %q: boardId not set", c.Title)
		}
	}
	if b.ViewType != ViewList {
		t.Errorf("expected list view, got %q", b.ViewType)
	}
}

func TestUpdateBoard_DoesNotMutateInput(t *testing.T) {
	b := NewBoard("Board", "")
	ws := NewWorkspace("WS", LocalUser())
	ws.Boards = append(ws.Boards, b)
	in := []Workspace{ws}

	out := UpdateBoard(in, b.ID, func(b Board) Board {
		b.Title = "Renamed"
		return b
	})

	if in[0].Boards[0].Title != "Board" {
		t.Error("input slice was mutated")
	}
	if out[0].Boards[0].Title != "Renamed" {
		t.Errorf("expected renamed board in output, got %q", out[0].Boards[0].Title)
	}
}

func TestUpdateBoard_UnknownIDReturnsEqualTree(t *testing.T) {
	ws := NewWorkspace("WS", LocalUser())
	ws.Boards = append(ws.Boards, NewBoard("Board", ""))
	in := []Workspace{ws}

	called := false
	out := UpdateBoard(in, "nope", func(b Board) Board {
		called = true
		return b
	})

	if called {
		t.Error("update fn should not run for an unknown board")
	}
	if len(out) != 1 || out[0].Boards[0].Title != "Board" {
		t.Error("tree should be unchanged")
	}
}

func TestFindBoard(t *testing.T) {
	ws := NewWorkspace("WS", LocalUser())
	b := NewBoard("Board", "")
	ws.Boards = append(ws.Boards, b)
	workspaces := []Workspace{ws}

	gotWS, gotB := FindBoard(workspaces, b.ID)
	if gotWS == nil || gotB == nil {
		t.Fatal("expected to find board")
	}
	if gotWS.ID != ws.ID || gotB.ID != b.ID {
		t.Error("found wrong workspace or board")
	}

	if _, missing := FindBoard(workspaces, "nope"); missing != nil {
		t.Error("expected nil for unknown board")
	}
}

func TestRemoveTaskRef_ScrubsEverywhere(t *testing.T) {
	b := NewBoard("Board", "")
	g := NewGroup("G")
	g.TaskIDs = []string{"t1", "t2"}
	b.Groups = []Group{g}
	b.UngroupedTaskIDs = []string{"t3"}

	b = RemoveTaskRef(b, "t1")
	if len(b.Groups[0].TaskIDs) != 1 || b.Groups[0].TaskIDs[0] != "t2" {
		t.Errorf("expected t1 scrubbed from group, got %v", b.Groups[0].TaskIDs)
	}

	b = RemoveTaskRef(b, "t3")
	if len(b.UngroupedTaskIDs) != 0 {
		t.Errorf("expected t3 scrubbed from ungrouped, got %v", b.UngroupedTaskIDs)
	}
}

func TestClone_IsDeep(t *testing.T) {
	doc := SeedDocument(LocalUser())
	doc.Workspaces[0].Boards[0].UngroupedTaskIDs = []string{"t1"}

	clone := doc.Clone()
	clone.Workspaces[0].Name = "changed"
	clone.Workspaces[0].Boards[0].UngroupedTaskIDs[0] = "changed"
	clone.StatusConfigs[0].Name = "changed"

	if doc.Workspaces[0].Name == "changed" {
		t.Error("workspace name shared with clone")
	}
	if doc.Workspaces[0].Boards[0].UngroupedTaskIDs[0] == "changed" {
		t.Error("ungrouped slice shared with clone")
	}
	if doc.StatusConfigs[0].Name == "changed" {
		t.Error("status configs shared with clone")
	}
}

func TestSeedDocument(t *testing.T) {
	doc := SeedDocument(LocalUser())

	if len(doc.Workspaces) != 1 {
		t.Fatalf("expected 1 workspace, got %d", len(doc.Workspaces))
	}
	ws := doc.Workspaces[0]
	if ws.Name != "My Workspace" {
		t.Errorf("expected 'My Workspace', got %q", ws.Name)
	}
	if len(ws.Boards) != 1 || ws.Boards[0].Title != "Getting Started" {
		t.Fatalf("expected one 'Getting Started' board, got %v", ws.Boards)
	}
	if doc.CurrentWorkspaceID != ws.ID {
		t.Error("current workspace not set to seed workspace")
	}
	if doc.CurrentBoardID != ws.Boards[0].ID {
		t.Error("current board not set to seed board")
	}
	if len(doc.StatusConfigs) != 4 {
		t.Fatalf("expected 4 default statuses, got %d", len(doc.StatusConfigs))
	}
	if doc.StatusConfigs[0].Name != "todo" || doc.StatusConfigs[3].Name != "done" {
		t.Errorf("unexpected palette order: %v", doc.StatusConfigs)
	}
	if len(doc.Statuses) != 4 || doc.Statuses[1] != "working" {
		t.Errorf("legacy status names out of sync: %v", doc.Statuses)
	}
}

func TestPatch_ApplyOnlySetFields(t *testing.T) {
	task := NewTask("col", Task{Title: "Original", Description: "keep me"})

	patched := TaskPatch{Title: Ptr("Changed")}.Apply(task)
	if patched.Title != "Changed" {
		t.Errorf("expected patched title, got %q", patched.Title)
	}
	if patched.Description != "keep me" {
		t.Errorf("unset field was clobbered: %q", patched.Description)
	}
	if task.Title != "Original" {
		t.Error("Apply mutated its input")
	}
}
