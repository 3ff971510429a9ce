package store

import (
	"errors"
	"reflect"
	"testing"

	"github.com/taskhub/taskhub/internal/model"
	"github.com/taskhub/taskhub/internal/persist"
)

// testStore creates a memory-backed store seeded with the starter document.
func testStore(t *testing.T) *Store {
	t.Helper()
	s := New(persist.NewMemory(), nil)
	t.Cleanup(func() { s.Close() })
	return s
}

// seedBoard returns the seeded "Getting Started" board.
func seedBoard(t *testing.T, s *Store) model.Board {
	t.Helper()
	b := s.CurrentBoard()
	if b == nil {
		t.Fatal("expected a seeded current board")
	}
	return *b
}

// refCount counts how many times a task id appears across the board's
// ungrouped list and all group lists. Must always be exactly 1 for a live
// task and 0 for a deleted one.
func refCount(b model.Board, taskID string) int {
	n := 0
	for _, id := range b.UngroupedTaskIDs {
		if id == taskID {
			n++
		}
	}
	for _, g := range b.Groups {
		for _, id := range g.TaskIDs {
			if id == taskID {
				n++
			}
		}
	}
	return n
}

// --- Seeding and loading ---

func TestNew_SeedsEmptyAdapter(t *testing.T) {
	s := testStore(t)

	doc := s.Snapshot()
	if len(doc.Workspaces) != 1 || doc.Workspaces[0].Name != "My Workspace" {
		t.Fatalf("expected seeded workspace, got %+v", doc.Workspaces)
	}
	if doc.CurrentWorkspaceID == "" || doc.CurrentBoardID == "" {
		t.Error("seed should set current workspace and board")
	}
	if len(doc.StatusConfigs) != 4 {
		t.Errorf("expected default palette, got %v", doc.StatusConfigs)
	}
}

func TestNew_PersistsSeedImmediately(t *testing.T) {
	mem := persist.NewMemory()
	s := New(mem, nil)
	seedID := s.Snapshot().CurrentBoardID
	s.Close()

	// A second open against the same adapter must see the same ids, not a
	// fresh reseed.
	s2 := New(mem, nil)
	defer s2.Close()
	if got := s2.Snapshot().CurrentBoardID; got != seedID {
		t.Errorf("seed ids not stable across reopen: got %q, want %q", got, seedID)
	}
}

func TestNew_ReloadsPersistedState(t *testing.T) {
	mem := persist.NewMemory()
	s := New(mem, nil)
	b := s.CurrentBoard()
	task, _ := s.CreateTask(b.ID, "", model.Task{Title: "Survives restart"})
	s.Close()

	s2 := New(mem, nil)
	defer s2.Close()

	b2 := s2.CurrentBoard()
	if b2 == nil || len(b2.Tasks) != 1 {
		t.Fatalf("expected 1 task after reload, got %+v", b2)
	}
	if b2.Tasks[0].ID != task.ID || b2.Tasks[0].Title != "Survives restart" {
		t.Errorf("task lost in reload: %+v", b2.Tasks[0])
	}
}

func TestNew_VersionMismatchReseeds(t *testing.T) {
	mem := persist.NewMemory()
	mem.Save([]byte(`{"state":{},"version":99}`))

	s := New(mem, nil)
	defer s.Close()

	doc := s.Snapshot()
	if len(doc.Workspaces) != 1 || doc.Workspaces[0].Name != "My Workspace" {
		t.Fatalf("expected reseeded document, got %+v", doc.Workspaces)
	}
}

func TestNew_CorruptSnapshotReseeds(t *testing.T) {
	mem := persist.NewMemory()
	mem.Save([]byte("not json at all"))

	s := New(mem, nil)
	defer s.Close()

	if len(s.Snapshot().Workspaces) != 1 {
		t.Fatal("expected reseeded document after corrupt snapshot")
	}
}

func TestMutations_SurviveSaveFailure(t *testing.T) {
	mem := persist.NewMemory()
	mem.SaveErr = errors.New("disk full")

	s := New(mem, nil)
	defer s.Close()

	b := seedBoard(t, s)
	task, ok := s.CreateTask(b.ID, "", model.Task{Title: "Still here"})
	if !ok {
		t.Fatal("CreateTask failed")
	}

	// The write failed, but the session state is authoritative.
	got := seedBoard(t, s)
	if len(got.Tasks) != 1 || got.Tasks[0].ID != task.ID {
		t.Errorf("in-memory state lost after failed save: %+v", got.Tasks)
	}
}

func TestSnapshot_IsIsolated(t *testing.T) {
	s := testStore(t)

	snap := s.Snapshot()
	snap.Workspaces[0].Name = "mutated"

	if s.Snapshot().Workspaces[0].Name == "mutated" {
		t.Error("snapshot mutation leaked into the store")
	}
}

// --- Tasks ---

func TestCreateTask_DefaultsAndUngrouped(t *testing.T) {
	s := testStore(t)
	b := seedBoard(t, s)

	task, ok := s.CreateTask(b.ID, "", model.Task{})
	if !ok {
		t.Fatal("CreateTask failed")
	}
	if task.Title != "New Task" || task.Status != "todo" || task.Priority != model.PriorityMedium {
		t.Errorf("defaults not applied: %+v", task)
	}

	got := seedBoard(t, s)
	if refCount(got, task.ID) != 1 {
		t.Fatalf("task id must appear exactly once, got %d", refCount(got, task.ID))
	}
	if len(got.UngroupedTaskIDs) != 1 || got.UngroupedTaskIDs[0] != task.ID {
		t.Errorf("new task must start ungrouped, got %v", got.UngroupedTaskIDs)
	}
}

func TestCreateTask_UnknownBoard(t *testing.T) {
	s := testStore(t)

	if _, ok := s.CreateTask("nope", "", model.Task{}); ok {
		t.Fatal("expected CreateTask to fail for unknown board")
	}
}

func TestUpdateTask(t *testing.T) {
	s := testStore(t)
	b := seedBoard(t, s)
	task, _ := s.CreateTask(b.ID, "", model.Task{Title: "Before"})

	s.UpdateTask(task.ID, model.TaskPatch{
		Title:  model.Ptr("After"),
		Status: model.Ptr("working"),
	})

	got := seedBoard(t, s)
	if got.Tasks[0].Title != "After" || got.Tasks[0].Status != "working" {
		t.Errorf("patch not applied: %+v", got.Tasks[0])
	}
	if got.Tasks[0].UpdatedAt.Before(task.UpdatedAt) {
		t.Error("updatedAt went backwards")
	}
}

func TestUpdateTask_UnknownIDIsNoOp(t *testing.T) {
	s := testStore(t)
	before := s.Snapshot()

	s.UpdateTask("nope", model.TaskPatch{Title: model.Ptr("x")})

	if !reflect.DeepEqual(before, s.Snapshot()) {
		t.Error("unknown-id update must leave the document untouched")
	}
}

func TestDeleteTask_ScrubsReferences(t *testing.T) {
	s := testStore(t)
	b := seedBoard(t, s)
	task, _ := s.CreateTask(b.ID, "", model.Task{})
	g, _ := s.CreateGroup(b.ID, "G")
	s.MoveTaskToGroup(b.ID, task.ID, g.ID)

	s.DeleteTask(task.ID)

	got := seedBoard(t, s)
	if len(got.Tasks) != 0 {
		t.Fatalf("task not deleted: %+v", got.Tasks)
	}
	if refCount(got, task.ID) != 0 {
		t.Error("dangling task reference after delete")
	}
}

func TestDeleteTask_UnknownIDIsNoOp(t *testing.T) {
	s := testStore(t)
	before := s.Snapshot()

	s.DeleteTask("nope")

	if !reflect.DeepEqual(before, s.Snapshot()) {
		t.Error("unknown-id delete must leave the document untouched")
	}
}

func TestMoveTaskToColumn(t *testing.T) {
	s := testStore(t)
	b := seedBoard(t, s)
	task, _ := s.CreateTask(b.ID, b.Columns[0].ID, model.Task{})

	s.MoveTaskToColumn(task.ID, b.Columns[1].ID)

	got := seedBoard(t, s)
	if got.Tasks[0].ColumnID != b.Columns[1].ID {
		t.Errorf("expected column %q, got %q", b.Columns[1].ID, got.Tasks[0].ColumnID)
	}
}

// --- Groups and membership ---

func TestMoveTaskToGroup(t *testing.T) {
	s := testStore(t)
	b := seedBoard(t, s)
	task, _ := s.CreateTask(b.ID, "", model.Task{})
	g, _ := s.CreateGroup(b.ID, "Sprint")

	s.MoveTaskToGroup(b.ID, task.ID, g.ID)

	got := seedBoard(t, s)
	if refCount(got, task.ID) != 1 {
		t.Fatalf("task id must appear exactly once, got %d", refCount(got, task.ID))
	}
	if len(got.Groups[0].TaskIDs) != 1 || got.Groups[0].TaskIDs[0] != task.ID {
		t.Errorf("task not in group: %v", got.Groups[0].TaskIDs)
	}
	if len(got.UngroupedTaskIDs) != 0 {
		t.Errorf("task still ungrouped: %v", got.UngroupedTaskIDs)
	}
}

func TestMoveTaskToGroup_BackToUngrouped(t *testing.T) {
	s := testStore(t)
	b := seedBoard(t, s)
	task, _ := s.CreateTask(b.ID, "", model.Task{})
	g, _ := s.CreateGroup(b.ID, "Sprint")
	s.MoveTaskToGroup(b.ID, task.ID, g.ID)

	s.MoveTaskToGroup(b.ID, task.ID, "")

	got := seedBoard(t, s)
	if len(got.UngroupedTaskIDs) != 1 || got.UngroupedTaskIDs[0] != task.ID {
		t.Errorf("task not back in ungrouped: %v", got.UngroupedTaskIDs)
	}
	if len(got.Groups[0].TaskIDs) != 0 {
		t.Errorf("task still in group: %v", got.Groups[0].TaskIDs)
	}
}

func TestMoveTaskToGroup_UnknownTargetIsNoOp(t *testing.T) {
	s := testStore(t)
	b := seedBoard(t, s)
	task, _ := s.CreateTask(b.ID, "", model.Task{})
	before := s.Snapshot()

	s.MoveTaskToGroup(b.ID, task.ID, "nope")

	if !reflect.DeepEqual(before, s.Snapshot()) {
		t.Error("move to unknown group must be a no-op")
	}
}

func TestMoveTaskToGroup_ForeignTaskIsNoOp(t *testing.T) {
	s := testStore(t)
	ws := s.CurrentWorkspace()
	other, _ := s.CreateBoard(ws.ID, "Other", "")
	task, _ := s.CreateTask(other.ID, "", model.Task{})
	home := seedBoard(t, s)
	g, _ := s.CreateGroup(home.ID, "G")

	// The task lives on a different board; nothing may change.
	s.SetCurrentBoard(home.ID)
	before := s.Snapshot()
	s.MoveTaskToGroup(home.ID, task.ID, g.ID)

	if !reflect.DeepEqual(before, s.Snapshot()) {
		t.Error("moving a foreign task must be a no-op")
	}
}

func TestDeleteGroup_DrainsTasksToUngrouped(t *testing.T) {
	s := testStore(t)
	b := seedBoard(t, s)
	t1, _ := s.CreateTask(b.ID, "", model.Task{Title: "one"})
	t2, _ := s.CreateTask(b.ID, "", model.Task{Title: "two"})
	g, _ := s.CreateGroup(b.ID, "Doomed")
	s.MoveTaskToGroup(b.ID, t1.ID, g.ID)
	s.MoveTaskToGroup(b.ID, t2.ID, g.ID)

	s.DeleteGroup(b.ID, g.ID)

	got := seedBoard(t, s)
	if len(got.Groups) != 0 {
		t.Fatalf("group not deleted: %+v", got.Groups)
	}
	if len(got.Tasks) != 2 {
		t.Fatalf("tasks must survive group deletion, got %d", len(got.Tasks))
	}
	if refCount(got, t1.ID) != 1 || refCount(got, t2.ID) != 1 {
		t.Error("drained tasks must be referenced exactly once")
	}
	if len(got.UngroupedTaskIDs) != 2 {
		t.Errorf("expected both tasks ungrouped, got %v", got.UngroupedTaskIDs)
	}
}

func TestToggleGroupExpanded(t *testing.T) {
	s := testStore(t)
	b := seedBoard(t, s)
	g, _ := s.CreateGroup(b.ID, "G")
	if !g.IsExpanded {
		t.Fatal("new group should start expanded")
	}

	s.ToggleGroupExpanded(b.ID, g.ID)
	got := seedBoard(t, s)
	if got.Groups[0].IsExpanded {
		t.Error("expected collapsed after first toggle")
	}
	// Presentation state only; updatedAt stays put.
	if !got.Groups[0].UpdatedAt.Equal(g.UpdatedAt) {
		t.Error("toggle must not stamp updatedAt")
	}

	s.ToggleGroupExpanded(b.ID, g.ID)
	if !seedBoard(t, s).Groups[0].IsExpanded {
		t.Error("expected expanded after second toggle")
	}
}

// --- Columns ---

func TestAddColumn_AppendsAfterMaxOrder(t *testing.T) {
	s := testStore(t)
	b := seedBoard(t, s)

	col, ok := s.AddColumn(b.ID, "Estimate", model.ColumnText)
	if !ok {
		t.Fatal("AddColumn failed")
	}
	if col.Order != 5 {
		t.Errorf("expected order 5 after the defaults, got %d", col.Order)
	}
}

func TestUpdateColumn(t *testing.T) {
	s := testStore(t)
	b := seedBoard(t, s)

	s.UpdateColumn(b.Columns[0].ID, model.ColumnPatch{Title: model.Ptr("Name")})

	got := seedBoard(t, s)
	if got.Columns[0].Title != "Name" {
		t.Errorf("expected renamed column, got %q", got.Columns[0].Title)
	}
}

func TestDeleteColumn_CascadesTasks(t *testing.T) {
	s := testStore(t)
	b := seedBoard(t, s)
	colID := b.Columns[0].ID
	inCol, _ := s.CreateTask(b.ID, colID, model.Task{Title: "doomed"})
	elsewhere, _ := s.CreateTask(b.ID, b.Columns[1].ID, model.Task{Title: "safe"})
	g, _ := s.CreateGroup(b.ID, "G")
	s.MoveTaskToGroup(b.ID, inCol.ID, g.ID)

	s.DeleteColumn(colID)

	got := seedBoard(t, s)
	if len(got.Columns) != 4 {
		t.Fatalf("expected 4 columns, got %d", len(got.Columns))
	}
	if len(got.Tasks) != 1 || got.Tasks[0].ID != elsewhere.ID {
		t.Fatalf("expected only the safe task to survive, got %+v", got.Tasks)
	}
	if refCount(got, inCol.ID) != 0 {
		t.Error("deleted task left a dangling reference")
	}

	// The cascaded task is gone from the index too.
	s.UpdateTask(inCol.ID, model.TaskPatch{Title: model.Ptr("zombie")})
	if len(seedBoard(t, s).Tasks) != 1 {
		t.Error("update of cascaded task must be a no-op")
	}
}

// --- Statuses ---

func TestAddStatus(t *testing.T) {
	s := testStore(t)

	if !s.AddStatus("review", "#A855F7") {
		t.Fatal("AddStatus failed")
	}
	if s.AddStatus("review", "#000000") {
		t.Error("duplicate name must be refused")
	}
	if s.AddStatus("", "#000000") {
		t.Error("empty name must be refused")
	}

	doc := s.Snapshot()
	if len(doc.StatusConfigs) != 5 {
		t.Fatalf("expected 5 configs, got %d", len(doc.StatusConfigs))
	}
	if doc.Statuses[4] != "review" {
		t.Errorf("legacy name list out of sync: %v", doc.Statuses)
	}
}

func TestRenameStatus_CascadesToTasksAndSubtasks(t *testing.T) {
	s := testStore(t)
	b := seedBoard(t, s)
	task, _ := s.CreateTask(b.ID, "", model.Task{Status: "todo"})
	sub := model.NewSubtask("check")
	s.UpdateTask(task.ID, model.TaskPatch{Subtasks: model.Ptr([]model.Subtask{sub})})
	other, _ := s.CreateTask(b.ID, "", model.Task{Status: "done"})

	if !s.RenameStatus("todo", "backlog", "#111111") {
		t.Fatal("RenameStatus failed")
	}

	got := seedBoard(t, s)
	for _, tk := range got.Tasks {
		switch tk.ID {
		case task.ID:
			if tk.Status != "backlog" {
				t.Errorf("task status not cascaded: %q", tk.Status)
			}
			if len(tk.Subtasks) != 1 || tk.Subtasks[0].Status != "backlog" {
				t.Errorf("subtask status not cascaded: %+v", tk.Subtasks)
			}
		case other.ID:
			if tk.Status != "done" {
				t.Errorf("unrelated status rewritten: %q", tk.Status)
			}
		}
	}

	doc := s.Snapshot()
	if doc.StatusConfigs[0].Name != "backlog" || doc.StatusConfigs[0].Color != "#111111" {
		t.Errorf("config not renamed: %+v", doc.StatusConfigs[0])
	}
	if doc.Statuses[0] != "backlog" {
		t.Errorf("legacy name list out of sync: %v", doc.Statuses)
	}
}

func TestRenameStatus_Refusals(t *testing.T) {
	s := testStore(t)

	if s.RenameStatus("todo", "done", "#000000") {
		t.Error("rename onto an existing different name must be refused")
	}
	if s.RenameStatus("ghost", "new", "#000000") {
		t.Error("rename of a missing status must be refused")
	}
	if s.RenameStatus("todo", "", "#000000") {
		t.Error("rename to empty must be refused")
	}
	// Color-only change keeps the name.
	if !s.RenameStatus("todo", "todo", "#123456") {
		t.Error("color-only rename must be allowed")
	}
	if got := s.StatusColor("todo"); got != "#123456" {
		t.Errorf("expected recolored status, got %q", got)
	}
}

func TestDeleteStatus_LeavesTaskValues(t *testing.T) {
	s := testStore(t)
	b := seedBoard(t, s)
	task, _ := s.CreateTask(b.ID, "", model.Task{Status: "stuck"})

	s.DeleteStatus("stuck")

	if got := seedBoard(t, s).Tasks[0]; got.Status != "stuck" {
		t.Errorf("task status must survive palette deletion, got %q", got.Status)
	}
	if task.ID == "" {
		t.Fatal("sanity")
	}
	// Orphaned names render with the fallback color.
	if got := s.StatusColor("stuck"); got != model.DefaultGray {
		t.Errorf("expected default gray for orphaned status, got %q", got)
	}
}

func TestReorderStatuses(t *testing.T) {
	s := testStore(t)
	configs := s.StatusConfigs()
	reversed := make([]model.StatusConfig, 0, len(configs))
	for i := len(configs) - 1; i >= 0; i-- {
		reversed = append(reversed, configs[i])
	}

	s.ReorderStatuses(reversed)

	got := s.StatusConfigs()
	if got[0].Name != "done" || got[len(got)-1].Name != "todo" {
		t.Errorf("palette not reordered: %v", got)
	}
	if s.Snapshot().Statuses[0] != "done" {
		t.Error("legacy name list out of sync after reorder")
	}
}

// --- Workspaces and boards ---

func TestCreateWorkspace_BecomesCurrent(t *testing.T) {
	s := testStore(t)

	ws := s.CreateWorkspace("Side Project")
	if ws.ID == "" || ws.Name != "Side Project" {
		t.Fatalf("bad workspace: %+v", ws)
	}
	if len(ws.Members) != 1 {
		t.Errorf("expected creator as sole member, got %v", ws.Members)
	}
	if s.Snapshot().CurrentWorkspaceID != ws.ID {
		t.Error("new workspace should become current")
	}
}

func TestDeleteWorkspace_ClearsCurrentPointer(t *testing.T) {
	s := testStore(t)
	wsID := s.Snapshot().CurrentWorkspaceID

	s.DeleteWorkspace(wsID)

	doc := s.Snapshot()
	if len(doc.Workspaces) != 0 {
		t.Fatalf("workspace not deleted: %+v", doc.Workspaces)
	}
	if doc.CurrentWorkspaceID != "" {
		t.Error("current-workspace pointer not cleared")
	}
	if s.CurrentBoard() != nil {
		t.Error("current board must resolve to nil without its workspace")
	}
}

func TestSetCurrentWorkspace_UnknownIDIsNoOp(t *testing.T) {
	s := testStore(t)
	before := s.Snapshot()

	s.SetCurrentWorkspace("nope")

	if !reflect.DeepEqual(before, s.Snapshot()) {
		t.Error("unknown workspace id must be a no-op")
	}
}

func TestCreateBoard_BecomesCurrent(t *testing.T) {
	s := testStore(t)
	ws := s.CurrentWorkspace()

	b, ok := s.CreateBoard(ws.ID, "Roadmap", "plans")
	if !ok {
		t.Fatal("CreateBoard failed")
	}
	if len(b.Columns) != 5 {
		t.Errorf("expected default columns, got %d", len(b.Columns))
	}
	if s.Snapshot().CurrentBoardID != b.ID {
		t.Error("new board should become current")
	}
}

func TestDeleteBoard_ClearsCurrentPointer(t *testing.T) {
	s := testStore(t)
	b := seedBoard(t, s)

	s.DeleteBoard(b.ID)

	doc := s.Snapshot()
	if doc.CurrentBoardID != "" {
		t.Error("current-board pointer not cleared")
	}
	if len(doc.Workspaces[0].Boards) != 0 {
		t.Error("board not removed")
	}
}

func TestSetBoardViewType(t *testing.T) {
	s := testStore(t)
	b := seedBoard(t, s)

	s.SetBoardViewType(b.ID, model.ViewKanban)

	if got := seedBoard(t, s).ViewType; got != model.ViewKanban {
		t.Errorf("board view type not set: %q", got)
	}
	if s.BoardViewType() != model.ViewKanban {
		t.Error("process-wide view type not set")
	}
}

// --- Users ---

func TestSetCurrentUser(t *testing.T) {
	s := testStore(t)
	u := model.User{ID: "u1", Name: "Dana", Email: "dana@example.com", Role: model.RoleAdmin}

	s.SetCurrentUser(&u)
	got := s.CurrentUser()
	if got == nil || got.ID != "u1" {
		t.Fatalf("current user not set: %+v", got)
	}

	// New workspaces are owned by the signed-in user.
	ws := s.CreateWorkspace("Dana's")
	if len(ws.Members) != 1 || ws.Members[0].ID != "u1" {
		t.Errorf("workspace owner should be the current user, got %v", ws.Members)
	}

	s.SetCurrentUser(nil)
	if s.CurrentUser() != nil {
		t.Error("sign-out must clear the current user")
	}
}

func TestAddAndRemoveWorkspaceMembers(t *testing.T) {
	s := testStore(t)
	wsID := s.Snapshot().CurrentWorkspaceID
	u := model.User{ID: "u2", Name: "Sam", Role: model.RoleMember}

	s.AddUserToWorkspace(wsID, u)
	ws := s.CurrentWorkspace()
	if len(ws.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(ws.Members))
	}

	// Adding again with the same id replaces, not duplicates.
	u.Name = "Sam Renamed"
	s.AddUserToWorkspace(wsID, u)
	ws = s.CurrentWorkspace()
	if len(ws.Members) != 2 {
		t.Fatalf("re-add duplicated the member: %v", ws.Members)
	}

	s.RemoveUserFromWorkspace(wsID, "u2")
	if len(s.CurrentWorkspace().Members) != 1 {
		t.Error("member not removed")
	}
}
