package store

import (
	"go.uber.org/zap"

	"github.com/taskhub/taskhub/internal/model"
	"github.com/taskhub/taskhub/internal/persist"
)

// saver serializes documents and writes them through the adapter on its own
// goroutine. Writes are fire-and-forget: a failed write is logged and the
// in-memory document stays authoritative for the session. Rapid mutation
// bursts coalesce — only the newest pending document is written.
type saver struct {
	adapter persist.Adapter
	log     *zap.Logger
	ch      chan model.Document
	done    chan struct{}
}

func newSaver(adapter persist.Adapter, log *zap.Logger) *saver {
	s := &saver{
		adapter: adapter,
		log:     log,
		ch:      make(chan model.Document, 1),
		done:    make(chan struct{}),
	}
	go s.loop()
	return s
}

// enqueue hands a document to the writer goroutine, replacing any write
// still pending. Never blocks the mutating caller.
func (s *saver) enqueue(doc model.Document) {
	for {
		select {
		case s.ch <- doc:
			return
		default:
			// Channel full: drop the stale pending snapshot and retry.
			select {
			case <-s.ch:
			default:
			}
		}
	}
}

func (s *saver) loop() {
	defer close(s.done)
	for doc := range s.ch {
		data, err := persist.Encode(doc)
		if err != nil {
			s.log.Warn("snapshot encode failed", zap.Error(err))
			continue
		}
		if err := s.adapter.Save(data); err != nil {
			s.log.Warn("snapshot write failed", zap.Error(err))
		}
	}
}

// stop drains pending writes and waits for the goroutine to exit.
func (s *saver) stop() {
	close(s.ch)
	<-s.done
}
