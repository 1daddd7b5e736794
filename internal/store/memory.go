// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// A lightweight session layer for games in progress; nothing survives a
// restart, which is all a turn-based game without history needs.
//
// Characteristics:
//   - Stores *game.Game objects keyed by ID in a map guarded by an RWMutex.
//   - Each game has its own mutex: one turn runs at a time per game, while
//     turns of different games proceed independently.
//   - Entries remember when they were last touched so idle games can be pruned.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/hangman/apps/go-server/internal/game"
)

// ErrNotFound is returned for unknown game IDs.
var ErrNotFound = errors.New("store: game not found")

// Store defines the session interface for games.
type Store interface {
	// Save adds or replaces a game.
	Save(ctx context.Context, g *game.Game) error

	// Get returns a snapshot of the game.
	Get(ctx context.Context, id string) (game.View, error)

	// Update runs fn with exclusive access to the game. The error from fn
	// is returned unchanged.
	Update(ctx context.Context, id string, fn func(g *game.Game) error) error

	// Delete removes a game. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// Prune removes games not touched since before and returns how many
	// were removed.
	Prune(ctx context.Context, before time.Time) int
}

// entry pairs a game with the lock that serializes its turns.
type entry struct {
	mu      sync.Mutex
	g       *game.Game
	touched time.Time
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex      // guards games map
	games map[string]*entry // keyed by Game.ID
	now   func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]*entry), now: time.Now}
}

func (m *memory) Save(ctx context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = &entry{g: g, touched: m.now()}
	return nil
}

func (m *memory) lookup(id string) (*entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.games[id]; ok {
		return e, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Get(ctx context.Context, id string) (game.View, error) {
	e, err := m.lookup(id)
	if err != nil {
		return game.View{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.g.View(), nil
}

func (m *memory) Update(ctx context.Context, id string, fn func(g *game.Game) error) error {
	e, err := m.lookup(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	e.touched = m.now()
	return fn(e.g)
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
	return nil
}

// Prune scans a copy of the map and takes the write lock only to delete.
func (m *memory) Prune(ctx context.Context, before time.Time) int {
	m.mu.RLock()
	entries := make(map[string]*entry, len(m.games))
	for id, e := range m.games {
		entries[id] = e
	}
	m.mu.RUnlock()

	var idle []string
	for id, e := range entries {
		if e.idleSince(before) {
			idle = append(idle, id)
		}
	}
	if len(idle) == 0 {
		return 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, id := range idle {
		e, ok := m.games[id]
		// Replaced or touched since the scan.
		if !ok || e != entries[id] || !e.idleSince(before) {
			continue
		}
		delete(m.games, id)
		n++
	}
	return n
}

// idleSince reports whether the entry was last touched before t. An entry
// whose lock is held is in use and never idle; it does not wait for the lock.
func (e *entry) idleSince(t time.Time) bool {
	if !e.mu.TryLock() {
		return false
	}
	defer e.mu.Unlock()
	return e.touched.Before(t)
}
