package ports

import (
	"context"
	"time"

	"hazardplan/internal/domain/actor"
	"hazardplan/internal/domain/hazard"
)

type HazardType string

const (
	HazardPunctual   HazardType = "punctual"
	HazardContinuous HazardType = "continuous"
)

// PlanRecord is the audit trail of one planned hazard. Before and After are
// equal when the plan was not survivable.
type PlanRecord struct {
	ID         string          `json:"id"`
	ActorID    string          `json:"actor_id"`
	HazardType HazardType      `json:"hazard_type"`
	HazardKind string          `json:"hazard_kind,omitempty"`
	Params     map[string]any  `json:"params"`
	Survivable bool            `json:"survivable"`
	Strategy   hazard.Strategy `json:"strategy"`
	Delta      hazard.Ledger   `json:"delta,omitempty"`
	Before     hazard.Snapshot `json:"before"`
	After      hazard.Snapshot `json:"after"`
	PlannedAt  time.Time       `json:"planned_at"`
}

type ActorStateRepository interface {
	GetByActorID(ctx context.Context, actorID string) (actor.State, error)
	SaveWithVersion(ctx context.Context, state actor.State, expectedVersion int64) error
}

// RecordFilter narrows a listing to records planned in [From, Before). A zero
// bound leaves that side open and a zero Limit lists every match.
type RecordFilter struct {
	From   time.Time
	Before time.Time
	Limit  int
}

func (f RecordFilter) Contains(plannedAt time.Time) bool {
	if !f.From.IsZero() && plannedAt.Before(f.From) {
		return false
	}
	return f.Before.IsZero() || plannedAt.Before(f.Before)
}

func (f RecordFilter) Windowed() bool {
	return !f.From.IsZero() || !f.Before.IsZero()
}

type PlanRecordRepository interface {
	Append(ctx context.Context, record PlanRecord) error
	// ListByActorID returns matching records newest first. It fails with
	// ErrNotFound only when the actor has no records at all.
	ListByActorID(ctx context.Context, actorID string, filter RecordFilter) ([]PlanRecord, error)
}

type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
