package memory

import (
	"context"

	"hazardplan/internal/app/ports"
	"hazardplan/internal/domain/actor"
)

type ActorStateRepo struct {
	store *Store
}

func NewActorStateRepo(store *Store) ActorStateRepo {
	return ActorStateRepo{store: store}
}

func (r ActorStateRepo) GetByActorID(ctx context.Context, actorID string) (actor.State, error) {
	var (
		state actor.State
		ok    bool
	)
	r.store.read(ctx, func() {
		state, ok = r.store.actors[actorID]
	})
	if !ok {
		return actor.State{}, ports.ErrNotFound
	}
	return state, nil
}

func (r ActorStateRepo) SaveWithVersion(ctx context.Context, state actor.State, expectedVersion int64) error {
	var err error
	r.store.write(ctx, func() {
		current, ok := r.store.actors[state.ActorID]
		switch {
		case !ok && expectedVersion != 0:
			err = ports.ErrConflict
		case ok && current.Version != expectedVersion:
			err = ports.ErrConflict
		default:
			r.store.actors[state.ActorID] = state
		}
	})
	return err
}
