package memory

import (
	"context"
	"maps"
)

// TxManager serializes transactions on the store lock and restores the store
// when fn fails.
type TxManager struct {
	store *Store
}

func NewTxManager(store *Store) TxManager {
	return TxManager{store: store}
}

func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	actors := maps.Clone(s.actors)
	records := maps.Clone(s.records)
	if err := fn(context.WithValue(ctx, txKey, true)); err != nil {
		s.actors = actors
		s.records = records
		return err
	}
	return nil
}
