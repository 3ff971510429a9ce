package cli

import (
	"fmt"
	"strings"

	"github.com/taskhub/taskhub/internal/model"
	"github.com/taskhub/taskhub/internal/store"
)

// Entity ids are uuids; typing them out is hostile. Commands accept an id
// prefix or an exact (case-insensitive) title and resolve it against the
// current document, failing on ambiguity.

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func matches(id, name, arg string) bool {
	return strings.HasPrefix(id, arg) || strings.EqualFold(name, arg)
}

func resolveWorkspaceID(s *store.Store, arg string) (string, error) {
	doc := s.Snapshot()
	var found []string
	for _, ws := range doc.Workspaces {
		if matches(ws.ID, ws.Name, arg) {
			found = append(found, ws.ID)
		}
	}
	return pickOne(found, "workspace", arg)
}

func resolveBoardID(s *store.Store, arg string) (string, error) {
	doc := s.Snapshot()
	var found []string
	for _, ws := range doc.Workspaces {
		for _, b := range ws.Boards {
			if matches(b.ID, b.Title, arg) {
				found = append(found, b.ID)
			}
		}
	}
	return pickOne(found, "board", arg)
}

func resolveTaskID(s *store.Store, arg string) (string, error) {
	doc := s.Snapshot()
	var found []string
	for _, ws := range doc.Workspaces {
		for _, b := range ws.Boards {
			for _, t := range b.Tasks {
				if matches(t.ID, t.Title, arg) {
					found = append(found, t.ID)
				}
			}
		}
	}
	return pickOne(found, "task", arg)
}

func resolveGroupID(b *model.Board, arg string) (string, error) {
	var found []string
	for _, g := range b.Groups {
		if matches(g.ID, g.Title, arg) {
			found = append(found, g.ID)
		}
	}
	return pickOne(found, "group", arg)
}

func resolveColumnID(b *model.Board, arg string) (string, error) {
	var found []string
	for _, c := range b.Columns {
		if matches(c.ID, c.Title, arg) {
			found = append(found, c.ID)
		}
	}
	return pickOne(found, "column", arg)
}

func pickOne(ids []string, kind, arg string) (string, error) {
	switch len(ids) {
	case 1:
		return ids[0], nil
	case 0:
		return "", fmt.Errorf("no %s matches %q", kind, arg)
	default:
		return "", fmt.Errorf("%q is ambiguous: %d %ss match", arg, len(ids), kind)
	}
}

// currentBoard returns the current board or a helpful error.
func currentBoard(s *store.Store) (*model.Board, error) {
	b := s.CurrentBoard()
	if b == nil {
		return nil, fmt.Errorf("no current board. Run: taskhub board use <board>")
	}
	return b, nil
}

// boardArg resolves an optional --board flag, defaulting to the current
// board.
func boardArg(s *store.Store, flag string) (*model.Board, error) {
	if flag == "" {
		return currentBoard(s)
	}
	id, err := resolveBoardID(s, flag)
	if err != nil {
		return nil, err
	}
	b := s.BoardByID(id)
	if b == nil {
		return nil, fmt.Errorf("no board matches %q", flag)
	}
	return b, nil
}
