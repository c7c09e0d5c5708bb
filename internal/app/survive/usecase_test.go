package survive

import (
	"context"
	"errors"
	"testing"
	"time"

	"hazardplan/internal/adapter/metrics/inmemory"
	"hazardplan/internal/adapter/repo/memory"
	"hazardplan/internal/app/ports"
	"hazardplan/internal/app/shared/planrun"
	"hazardplan/internal/domain/actor"
	"hazardplan/internal/domain/hazard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Unix(1700000000, 0).UTC()

type fixture struct {
	uc      UseCase
	store   *memory.Store
	records memory.PlanRecordRepo
	metrics *inmemory.Recorder
}

func newFixture(t *testing.T, seed actor.State) fixture {
	t.Helper()
	planner, err := hazard.NewPlanner(hazard.DefaultConfig(), hazard.DefaultRules())
	require.NoError(t, err)

	store := memory.NewStore()
	store.SeedState(seed)
	records := memory.NewPlanRecordRepo(store)
	metrics := inmemory.NewRecorder()
	return fixture{
		uc: UseCase{
			TxManager: memory.NewTxManager(store),
			StateRepo: memory.NewActorStateRepo(store),
			Records:   records,
			Planner:   planner,
			Metrics:   metrics,
			Now:       func() time.Time { return fixedNow },
			NewID:     func() string { return "rec-1" },
		},
		store:   store,
		records: records,
		metrics: metrics,
	}
}

func punctual(damage, hits int) planrun.Hazard {
	return planrun.Hazard{Type: ports.HazardPunctual, Punctual: hazard.PunctualHazard{DamagePerHit: damage, Hits: hits}}
}

func TestUseCase_SurvivableAppliesDelta(t *testing.T) {
	f := newFixture(t, actor.State{ActorID: "samus", Resources: hazard.Snapshot{Energy: 99, MaxEnergy: 99}, Version: 1})

	resp, err := f.uc.Execute(context.Background(), Request{ActorID: "samus", Hazard: punctual(25, 1)})
	require.NoError(t, err)
	assert.True(t, resp.Plan.Survivable)
	assert.Equal(t, 74, resp.State.Resources.Energy)
	assert.Equal(t, int64(2), resp.State.Version)
	assert.Equal(t, fixedNow, resp.State.UpdatedAt)
	assert.Equal(t, "rec-1", resp.RecordID)

	stored, err := memory.NewActorStateRepo(f.store).GetByActorID(context.Background(), "samus")
	require.NoError(t, err)
	assert.Equal(t, resp.State, stored)

	records, err := f.records.ListByActorID(context.Background(), "samus", ports.RecordFilter{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 99, records[0].Before.Energy)
	assert.Equal(t, 74, records[0].After.Energy)
	assert.Equal(t, 25, records[0].Params["damage_per_hit"])
	assert.Equal(t, uint64(1), f.metrics.Snapshot().PlanSurvivable)
}

func TestUseCase_UnsurvivableKeepsStateButRecords(t *testing.T) {
	seed := actor.State{ActorID: "samus", Resources: hazard.Snapshot{Energy: 99, MaxEnergy: 99}, Version: 3}
	f := newFixture(t, seed)

	resp, err := f.uc.Execute(context.Background(), Request{ActorID: "samus", Hazard: punctual(99, 1)})
	require.NoError(t, err)
	assert.False(t, resp.Plan.Survivable)
	assert.Equal(t, seed, resp.State)

	records, err := f.records.ListByActorID(context.Background(), "samus", ports.RecordFilter{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, records[0].Survivable)
	assert.Equal(t, records[0].Before, records[0].After)
	assert.Equal(t, uint64(1), f.metrics.Snapshot().PlanUnsurvivable)
}

func TestUseCase_RejectsEmptyActorID(t *testing.T) {
	uc := UseCase{}
	_, err := uc.Execute(context.Background(), Request{ActorID: "  "})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestUseCase_UnknownActor(t *testing.T) {
	f := newFixture(t, actor.State{ActorID: "samus", Resources: hazard.Snapshot{Energy: 99, MaxEnergy: 99}})

	_, err := f.uc.Execute(context.Background(), Request{ActorID: "ridley", Hazard: punctual(10, 1)})
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestUseCase_InvalidHazardRollsBack(t *testing.T) {
	f := newFixture(t, actor.State{ActorID: "samus", Resources: hazard.Snapshot{Energy: 99, MaxEnergy: 99}, Version: 1})

	_, err := f.uc.Execute(context.Background(), Request{ActorID: "samus", Hazard: punctual(-1, 1)})
	assert.ErrorIs(t, err, hazard.ErrInvalidHazard)
	assert.Equal(t, uint64(1), f.metrics.Snapshot().PlanInvalid)

	_, err = f.records.ListByActorID(context.Background(), "samus", ports.RecordFilter{})
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestUseCase_ConflictIsCounted(t *testing.T) {
	f := newFixture(t, actor.State{ActorID: "samus", Resources: hazard.Snapshot{Energy: 99, MaxEnergy: 99}, Version: 1})
	f.uc.StateRepo = conflictingStateRepo{ActorStateRepository: f.uc.StateRepo}

	_, err := f.uc.Execute(context.Background(), Request{ActorID: "samus", Hazard: punctual(25, 1)})
	assert.ErrorIs(t, err, ports.ErrConflict)
	assert.Equal(t, uint64(1), f.metrics.Snapshot().PlanConflict)
	assert.Zero(t, f.metrics.Snapshot().PlanSurvivable)

	_, err = f.records.ListByActorID(context.Background(), "samus", ports.RecordFilter{})
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestUseCase_PropagatesRecordError(t *testing.T) {
	f := newFixture(t, actor.State{ActorID: "samus", Resources: hazard.Snapshot{Energy: 99, MaxEnergy: 99}, Version: 1})
	wantErr := errors.New("records down")
	f.uc.Records = failingRecords{err: wantErr}

	_, err := f.uc.Execute(context.Background(), Request{ActorID: "samus", Hazard: punctual(25, 1)})
	assert.ErrorIs(t, err, wantErr)

	stored, err := memory.NewActorStateRepo(f.store).GetByActorID(context.Background(), "samus")
	require.NoError(t, err)
	assert.Equal(t, 99, stored.Resources.Energy)
}

type conflictingStateRepo struct {
	ports.ActorStateRepository
}

func (conflictingStateRepo) SaveWithVersion(context.Context, actor.State, int64) error {
	return ports.ErrConflict
}

type failingRecords struct {
	err error
}

func (r failingRecords) Append(context.Context, ports.PlanRecord) error {
	return r.err
}

func (r failingRecords) ListByActorID(context.Context, string, ports.RecordFilter) ([]ports.PlanRecord, error) {
	return nil, r.err
}

var _ ports.PlanRecordRepository = failingRecords{}
