package memory

import (
	"context"
	"sync"

	"hazardplan/internal/app/ports"
	"hazardplan/internal/domain/actor"
)

type Store struct {
	mu      sync.RWMutex
	actors  map[string]actor.State
	records map[string][]ports.PlanRecord
}

func NewStore() *Store {
	return &Store{
		actors:  make(map[string]actor.State),
		records: make(map[string][]ports.PlanRecord),
	}
}

func (s *Store) SeedState(state actor.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actors[state.ActorID] = state
}

type txKeyType struct{}

var txKey = txKeyType{}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey).(bool)
	return v
}

// read and write take the store lock unless the caller already holds it
// through RunInTx.
func (s *Store) read(ctx context.Context, fn func()) {
	if !inTx(ctx) {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	fn()
}

func (s *Store) write(ctx context.Context, fn func()) {
	if !inTx(ctx) {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	fn()
}
