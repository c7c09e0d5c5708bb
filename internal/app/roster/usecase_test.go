package roster

import (
	"context"
	"errors"
	"testing"
	"time"

	"hazardplan/internal/adapter/repo/memory"
	"hazardplan/internal/app/ports"
	"hazardplan/internal/domain/actor"
	"hazardplan/internal/domain/hazard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUseCase_RegisterThenGet(t *testing.T) {
	now := time.Unix(1700000000, 0)
	uc := UseCase{
		StateRepo: memory.NewActorStateRepo(memory.NewStore()),
		Now:       func() time.Time { return now },
	}
	res := hazard.Snapshot{Energy: 299, MaxEnergy: 299, Reserve: 100, MaxReserve: 200}

	created, err := uc.Register(context.Background(), RegisterRequest{ActorID: "samus", Resources: res})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.State.Version)
	assert.Equal(t, now, created.State.UpdatedAt)

	got, err := uc.Get(context.Background(), GetRequest{ActorID: "samus"})
	require.NoError(t, err)
	assert.Equal(t, created.State, got.State)
}

func TestUseCase_RegisterGeneratesID(t *testing.T) {
	uc := UseCase{
		StateRepo: memory.NewActorStateRepo(memory.NewStore()),
		NewID:     func() string { return "generated" },
	}

	created, err := uc.Register(context.Background(), RegisterRequest{Resources: hazard.Snapshot{Energy: 99, MaxEnergy: 99}})
	require.NoError(t, err)
	assert.Equal(t, "generated", created.State.ActorID)
}

func TestUseCase_RegisterTwiceConflicts(t *testing.T) {
	uc := UseCase{StateRepo: memory.NewActorStateRepo(memory.NewStore())}
	req := RegisterRequest{ActorID: "samus", Resources: hazard.Snapshot{Energy: 99, MaxEnergy: 99}}

	_, err := uc.Register(context.Background(), req)
	require.NoError(t, err)
	_, err = uc.Register(context.Background(), req)
	assert.ErrorIs(t, err, ports.ErrConflict)
}

func TestUseCase_RegisterRejectsBrokenSnapshot(t *testing.T) {
	uc := UseCase{}

	_, err := uc.Register(context.Background(), RegisterRequest{ActorID: "samus", Resources: hazard.Snapshot{Energy: 120, MaxEnergy: 99}})
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.ErrorIs(t, err, hazard.ErrInvalidSnapshot)
}

func TestUseCase_Get(t *testing.T) {
	wantErr := errors.New("state repo down")
	for _, tc := range []struct {
		name string
		repo ports.ActorStateRepository
		id   string
		want error
	}{
		{name: "empty id", id: " ", want: ErrInvalidRequest},
		{name: "missing", repo: memory.NewActorStateRepo(memory.NewStore()), id: "ridley", want: ports.ErrNotFound},
		{name: "repo error", repo: failingStateRepo{err: wantErr}, id: "samus", want: wantErr},
	} {
		t.Run(tc.name, func(t *testing.T) {
			uc := UseCase{StateRepo: tc.repo}
			_, err := uc.Get(context.Background(), GetRequest{ActorID: tc.id})
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

type failingStateRepo struct {
	err error
}

func (r failingStateRepo) GetByActorID(context.Context, string) (actor.State, error) {
	return actor.State{}, r.err
}

func (r failingStateRepo) SaveWithVersion(context.Context, actor.State, int64) error {
	return r.err
}
