// Package state persists play history across sessions.
package state

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite" // SQLite driver
)

const saveDebounce = 500 * time.Millisecond

type Manager struct {
	db        *sql.DB
	log       *zap.Logger
	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   *Play
}

// Open opens (creating if needed) the history database at path. log may be
// nil.
func Open(path string, log *zap.Logger) (*Manager, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Manager{db: db, log: log}, nil
}

// Close flushes a pending play and closes the database.
func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	m.saveMu.Unlock()

	m.flush()
	return m.db.Close()
}

// RecordPlay schedules p to be saved. Plays recorded in quick succession
// (skipping through items) collapse into the last one.
func (m *Manager) RecordPlay(p Play) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending = &p
	if m.saveTimer == nil {
		m.saveTimer = time.AfterFunc(saveDebounce, m.flush)
		return
	}
	m.saveTimer.Reset(saveDebounce)
}

// flush saves the pending play, if any. It holds saveMu through the write
// so Close cannot close the database under a timer-driven flush. A failed
// save is logged and the play is dropped.
func (m *Manager) flush() {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	if m.pending == nil {
		return
	}
	p := *m.pending
	m.pending = nil
	if err := savePlay(m.db, p); err != nil {
		m.log.Warn("save play",
			zap.String("source", p.Source),
			zap.String("url", p.URL),
			zap.Error(err))
	}
}

// Last returns the last item played from source, or nil if none was.
func (m *Manager) Last(source string) (*SourceState, error) {
	return getSource(m.db, source)
}

// Recent returns up to limit sources, most recently played first.
func (m *Manager) Recent(limit int) ([]SourceState, error) {
	return recentSources(m.db, limit)
}
