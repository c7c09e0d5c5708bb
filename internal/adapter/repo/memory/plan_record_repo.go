package memory

import (
	"context"

	"hazardplan/internal/app/ports"
)

type PlanRecordRepo struct {
	store *Store
}

func NewPlanRecordRepo(store *Store) PlanRecordRepo {
	return PlanRecordRepo{store: store}
}

func (r PlanRecordRepo) Append(ctx context.Context, record ports.PlanRecord) error {
	r.store.write(ctx, func() {
		r.store.records[record.ActorID] = append(r.store.records[record.ActorID], record)
	})
	return nil
}

// ListByActorID returns the newest records first. Records are kept in append
// order, which is planning order.
func (r PlanRecordRepo) ListByActorID(ctx context.Context, actorID string, filter ports.RecordFilter) ([]ports.PlanRecord, error) {
	var out []ports.PlanRecord
	known := false
	r.store.read(ctx, func() {
		records := r.store.records[actorID]
		known = len(records) > 0
		out = make([]ports.PlanRecord, 0, len(records))
		for i := len(records) - 1; i >= 0; i-- {
			if !filter.Contains(records[i].PlannedAt) {
				continue
			}
			out = append(out, records[i])
			if filter.Limit > 0 && len(out) == filter.Limit {
				break
			}
		}
	})
	if !known {
		return nil, ports.ErrNotFound
	}
	return out, nil
}
