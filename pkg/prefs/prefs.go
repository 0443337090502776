// Package prefs persists a grid's layout preferences (column visibility,
// sizing, order, frozen set and density) as a JSON snapshot keyed by a
// caller-supplied name. Reads tolerate missing or corrupt files by
// falling back to defaults; writes are debounced so a burst of changes
// (a resize drag) lands on disk once.
package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tabledeck/tabledeck-cli/pkg/grid"
)

// DefaultDebounce is the quiescence window before a snapshot is written.
const DefaultDebounce = 500 * time.Millisecond

// Snapshot is the persisted subset of the grid view state. Unknown keys
// in a stored file are ignored and missing keys default, so the layout
// is forward compatible.
type Snapshot struct {
	ColumnVisibility map[string]bool `json:"columnVisibility,omitempty"`
	ColumnSizing     map[string]int  `json:"columnSizing,omitempty"`
	ColumnOrder      []string        `json:"columnOrder,omitempty"`
	FrozenColumns    []string        `json:"frozenColumns,omitempty"`
	Density          string          `json:"density,omitempty"`
}

// Capture extracts the persisted subset from a view state. Session-only
// state (selection, filters, sorting, grouping, editing) is never
// captured.
func Capture(s *grid.ViewState) Snapshot {
	snap := Snapshot{
		Density: string(s.Density),
	}
	if len(s.Visibility) > 0 {
		snap.ColumnVisibility = make(map[string]bool, len(s.Visibility))
		for id, v := range s.Visibility {
			snap.ColumnVisibility[id] = v
		}
	}
	if len(s.Sizing) > 0 {
		snap.ColumnSizing = make(map[string]int, len(s.Sizing))
		for id, w := range s.Sizing {
			snap.ColumnSizing[id] = w
		}
	}
	if len(s.Order) > 0 {
		snap.ColumnOrder = append([]string(nil), s.Order...)
	}
	for _, id := range s.Order {
		if s.Frozen[id] {
			snap.FrozenColumns = append(snap.FrozenColumns, id)
		}
	}
	return snap
}

// Apply hydrates a view state from a snapshot. Fields absent from the
// snapshot keep their current values.
func Apply(snap Snapshot, s *grid.ViewState) {
	for id, v := range snap.ColumnVisibility {
		s.Visibility[id] = v
	}
	for id, w := range snap.ColumnSizing {
		s.Sizing[id] = w
	}
	if len(snap.ColumnOrder) > 0 {
		s.Order = append([]string(nil), snap.ColumnOrder...)
	}
	for _, id := range snap.FrozenColumns {
		s.Frozen[id] = true
	}
	if snap.Density != "" {
		s.SetDensity(grid.Density(snap.Density))
	}
}

// Store reads and debounced-writes snapshots for one grid instance. A
// store with an empty key is a no-op: Load finds nothing and Put does
// not schedule writes. Each grid owns its own Store, so two grids with
// different keys never share a timer or a file.
type Store struct {
	dir   string
	key   string
	delay time.Duration
	logf  func(format string, args ...any)

	mu      sync.Mutex
	timer   *time.Timer
	pending *Snapshot
	closed  bool
}

// Option configures a Store.
type Option func(*Store)

// WithDebounce overrides the write quiescence window.
func WithDebounce(d time.Duration) Option {
	return func(s *Store) { s.delay = d }
}

// WithLogger overrides where persistence diagnostics go.
func WithLogger(logf func(format string, args ...any)) Option {
	return func(s *Store) { s.logf = logf }
}

// NewStore creates a store writing <dir>/<key>.json. An empty key
// disables persistence entirely.
func NewStore(dir, key string, opts ...Option) *Store {
	s := &Store{
		dir:   dir,
		key:   key,
		delay: DefaultDebounce,
		logf: func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enabled reports whether this store persists anything.
func (s *Store) Enabled() bool { return s.key != "" }

func (s *Store) path() string {
	return filepath.Join(s.dir, s.key+".json")
}

// Load reads the stored snapshot. ok is false when persistence is
// disabled, no snapshot exists, or the file cannot be parsed; the caller
// proceeds with defaults in every one of those cases.
func (s *Store) Load() (Snapshot, bool) {
	if !s.Enabled() {
		return Snapshot{}, false
	}
	data, err := os.ReadFile(s.path())
	if err != nil {
		if !os.IsNotExist(err) {
			s.logf("prefs: read %s: %v", s.path(), err)
		}
		return Snapshot{}, false
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.logf("prefs: corrupt snapshot %s, starting fresh: %v", s.path(), err)
		return Snapshot{}, false
	}
	return snap, true
}

// Put schedules a debounced write of the snapshot. Each call replaces
// any pending snapshot and restarts the quiescence timer, so rapid
// bursts coalesce into one write.
func (s *Store) Put(snap Snapshot) {
	if !s.Enabled() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.pending = &snap
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, s.Flush)
}

// Flush writes any pending snapshot immediately. Called by the debounce
// timer and synchronously on unmount.
func (s *Store) Flush() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	snap := s.pending
	s.pending = nil
	s.mu.Unlock()

	if snap == nil {
		return
	}
	if err := s.write(*snap); err != nil {
		s.logf("prefs: write %s: %v", s.path(), err)
	}
}

// Close flushes pending state and stops accepting writes.
func (s *Store) Close() {
	s.Flush()
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

func (s *Store) write(snap Snapshot) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create prefs directory: %w", err)
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := os.WriteFile(s.path(), data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}
