// Package store holds the workspace document and the full mutation surface
// over it. A Store is an explicit context object: construct one with an
// injected persistence adapter and pass it to consumers. Every mutation
// computes a new document from the old one, so callers never observe a
// half-updated tree; writes to durable storage are best-effort and never
// surfaced to the mutating caller.
package store

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/taskhub/taskhub/internal/model"
	"github.com/taskhub/taskhub/internal/persist"
)

// Store owns the in-memory document. All methods are safe for concurrent
// use; the mutex serializes mutations the way a single-threaded event loop
// would.
type Store struct {
	mu  sync.Mutex
	doc model.Document

	// boardOf maps task and column ids to their owning board, so id-only
	// operations resolve the board in O(1) instead of scanning every board.
	boardOf map[string]string

	saver   *saver
	adapter persist.Adapter
	log     *zap.Logger
}

// New builds a store from the adapter's persisted snapshot. A missing,
// unreadable or version-mismatched snapshot falls back to the seed document
// (logged, never fatal). A nil adapter yields a memory-only store.
func New(adapter persist.Adapter, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{
		adapter: adapter,
		log:     log,
	}

	doc, seeded := s.loadOrSeed()
	s.doc = doc
	s.rebuildIndex()

	if adapter != nil {
		s.saver = newSaver(adapter, log)
		if seeded {
			// Write the seed straight away so ids survive the first run.
			s.persistLocked()
		}
	}
	return s
}

func (s *Store) loadOrSeed() (model.Document, bool) {
	if s.adapter == nil {
		return model.SeedDocument(model.LocalUser()), true
	}
	data, err := s.adapter.Load()
	if errors.Is(err, persist.ErrNotFound) {
		s.log.Info("no snapshot found, seeding initial state")
		return model.SeedDocument(model.LocalUser()), true
	}
	if err != nil {
		s.log.Warn("snapshot load failed, seeding initial state", zap.Error(err))
		return model.SeedDocument(model.LocalUser()), true
	}
	doc, err := persist.Decode(data)
	if err != nil {
		s.log.Warn("snapshot unusable, seeding initial state", zap.Error(err))
		return model.SeedDocument(model.LocalUser()), true
	}
	return doc, false
}

// Close flushes pending persistence writes and releases the adapter.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saver != nil {
		s.saver.stop()
		s.saver = nil
	}
	if s.adapter != nil {
		err := s.adapter.Close()
		s.adapter = nil
		return err
	}
	return nil
}

// persistLocked hands the current document to the background saver.
// Callers hold s.mu.
func (s *Store) persistLocked() {
	if s.saver == nil {
		return
	}
	s.saver.enqueue(s.doc.Clone())
}

// rebuildIndex recomputes the id→board map from scratch. Used after load;
// mutations maintain the map incrementally.
func (s *Store) rebuildIndex() {
	s.boardOf = make(map[string]string)
	for _, ws := range s.doc.Workspaces {
		for _, b := range ws.Boards {
			s.indexBoard(b)
		}
	}
}

func (s *Store) indexBoard(b model.Board) {
	for _, c := range b.Columns {
		s.boardOf[c.ID] = b.ID
	}
	for _, t := range b.Tasks {
		s.boardOf[t.ID] = b.ID
	}
}

func (s *Store) unindexBoard(b model.Board) {
	for _, c := range b.Columns {
		delete(s.boardOf, c.ID)
	}
	for _, t := range b.Tasks {
		delete(s.boardOf, t.ID)
	}
}

// Snapshot returns a deep copy of the current document.
func (s *Store) Snapshot() model.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// CurrentWorkspace returns a copy of the current workspace, or nil when no
// workspace is selected.
func (s *Store) CurrentWorkspace() *model.Workspace {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc.CurrentWorkspaceID == "" {
		return nil
	}
	for _, ws := range s.doc.Workspaces {
		if ws.ID == s.doc.CurrentWorkspaceID {
			out := ws.Clone()
			return &out
		}
	}
	return nil
}

// CurrentBoard returns a copy of the current board within the current
// workspace, or nil when either pointer is unset or stale.
func (s *Store) CurrentBoard() *model.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc.CurrentWorkspaceID == "" || s.doc.CurrentBoardID == "" {
		return nil
	}
	for _, ws := range s.doc.Workspaces {
		if ws.ID != s.doc.CurrentWorkspaceID {
			continue
		}
		for _, b := range ws.Boards {
			if b.ID == s.doc.CurrentBoardID {
				out := b.Clone()
				return &out
			}
		}
	}
	return nil
}

// BoardByID returns a copy of the board with the given id, or nil.
func (s *Store) BoardByID(id string) *model.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, b := model.FindBoard(s.doc.Workspaces, id); b != nil {
		out := b.Clone()
		return &out
	}
	return nil
}

// CurrentUser returns a copy of the process-current user, or nil.
func (s *Store) CurrentUser() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc.CurrentUser == nil {
		return nil
	}
	u := *s.doc.CurrentUser
	return &u
}
