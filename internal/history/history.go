// Package history keeps the bounded, timestamped activity log shown on the
// status page together with the time of the last successful API call.
package history

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/preston-bernstein/goal-light/internal/logging"
	"github.com/preston-bernstein/goal-light/internal/timeutil"
)

const defaultSize = 200

// Entry is one history line.
type Entry struct {
	At      time.Time `json:"at"`
	Message string    `json:"message"`
}

// Snapshot is the persisted form of the log.
type Snapshot struct {
	Entries  []Entry   `json:"entries"`
	LastCall time.Time `json:"lastCall,omitempty"`
}

// Store persists snapshots between restarts.
type Store interface {
	Load() (Snapshot, error)
	Save(Snapshot) error
}

// Config wires a Log.
type Config struct {
	Size    int
	Clock   clockwork.Clock
	Stamper timeutil.Stamper
	Store   Store
	Logger  *slog.Logger
}

// Log is a ring buffer of entries: once full, the oldest entry is dropped for
// every new one. Safe for concurrent use.
type Log struct {
	mu       sync.RWMutex
	entries  []Entry
	size     int
	lastCall time.Time

	clock   clockwork.Clock
	stamper timeutil.Stamper
	store   Store
	logger  *slog.Logger
}

// New builds an empty log.
func New(cfg Config) *Log {
	if cfg.Size <= 0 {
		cfg.Size = defaultSize
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	return &Log{
		entries: make([]Entry, 0, cfg.Size),
		size:    cfg.Size,
		clock:   cfg.Clock,
		stamper: cfg.Stamper,
		store:   cfg.Store,
		logger:  cfg.Logger,
	}
}

// Restore loads the persisted snapshot, keeping only the newest entries that fit.
func (l *Log) Restore() error {
	if l.store == nil {
		return nil
	}
	snap, err := l.store.Load()
	if err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	entries := snap.Entries
	if len(entries) > l.size {
		entries = entries[len(entries)-l.size:]
	}
	l.entries = append(l.entries[:0], entries...)
	l.lastCall = snap.LastCall
	return nil
}

// Add appends a message stamped with the current time.
func (l *Log) Add(msg string) {
	l.mu.Lock()
	if len(l.entries) >= l.size {
		copy(l.entries, l.entries[1:])
		l.entries = l.entries[:len(l.entries)-1]
	}
	l.entries = append(l.entries, Entry{At: l.clock.Now(), Message: msg})
	snap := l.snapshotLocked()
	l.mu.Unlock()

	l.persist(snap)
}

// MarkCall records a successful upstream call at the current time.
func (l *Log) MarkCall() {
	l.mu.Lock()
	l.lastCall = l.clock.Now()
	l.mu.Unlock()
}

// LastCall returns the time of the last successful upstream call.
func (l *Log) LastCall() time.Time {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lastCall
}

// Entries returns a copy of the entries, oldest first.
func (l *Log) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Lines renders the entries as "<stamp>: <message>", oldest first.
func (l *Log) Lines() []string {
	entries := l.Entries()
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = l.stamper.Format(e.At) + ": " + e.Message
	}
	return lines
}

// FormatTime renders t with the log's locale stamper; zero times render empty.
func (l *Log) FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return l.stamper.Format(t)
}

// Flush persists the current state, including the last call time.
func (l *Log) Flush() error {
	if l.store == nil {
		return nil
	}
	l.mu.RLock()
	snap := l.snapshotLocked()
	l.mu.RUnlock()
	return l.store.Save(snap)
}

func (l *Log) snapshotLocked() Snapshot {
	entries := make([]Entry, len(l.entries))
	copy(entries, l.entries)
	return Snapshot{Entries: entries, LastCall: l.lastCall}
}

func (l *Log) persist(snap Snapshot) {
	if l.store == nil {
		return
	}
	if err := l.store.Save(snap); err != nil {
		logging.Warn(l.logger, "history persist failed", "error", err)
	}
}
