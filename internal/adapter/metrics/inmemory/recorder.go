package inmemory

import (
	"maps"
	"sync"

	"hazardplan/internal/domain/hazard"
)

type Snapshot struct {
	PlanTotal        uint64            `json:"plan_total"`
	PlanSurvivable   uint64            `json:"plan_survivable"`
	PlanUnsurvivable uint64            `json:"plan_unsurvivable"`
	PlanInvalid      uint64            `json:"plan_invalid"`
	PlanConflict     uint64            `json:"plan_conflict"`
	ByStrategy       map[string]uint64 `json:"by_strategy"`
}

type Recorder struct {
	mu           sync.Mutex
	survivable   uint64
	unsurvivable uint64
	invalid      uint64
	conflict     uint64
	byStrategy   map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byStrategy: map[string]uint64{},
	}
}

func (r *Recorder) RecordPlan(plan hazard.Plan) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if plan.Survivable {
		r.survivable++
	} else {
		r.unsurvivable++
	}
	r.byStrategy[string(plan.Strategy)]++
}

func (r *Recorder) RecordInvalid() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invalid++
}

func (r *Recorder) RecordConflict() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflict++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	return Snapshot{
		PlanTotal:        r.survivable + r.unsurvivable + r.invalid + r.conflict,
		PlanSurvivable:   r.survivable,
		PlanUnsurvivable: r.unsurvivable,
		PlanInvalid:      r.invalid,
		PlanConflict:     r.conflict,
		ByStrategy:       maps.Clone(r.byStrategy),
	}
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
