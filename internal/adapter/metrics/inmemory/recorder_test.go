package inmemory

import (
	"testing"

	"hazardplan/internal/domain/hazard"
)

func TestRecorderSnapshot(t *testing.T) {
	r := NewRecorder()
	r.RecordPlan(hazard.Plan{Survivable: true, Strategy: hazard.StrategyRegularOnly})
	r.RecordPlan(hazard.Plan{Survivable: true, Strategy: hazard.StrategyPauseSpam})
	r.RecordPlan(hazard.Plan{Strategy: hazard.StrategyUnsurvivable})
	r.RecordConflict()
	r.RecordInvalid()

	s := r.Snapshot()
	if s.PlanTotal != 5 {
		t.Fatalf("expected total 5, got %d", s.PlanTotal)
	}
	if s.PlanSurvivable != 2 {
		t.Fatalf("expected survivable 2, got %d", s.PlanSurvivable)
	}
	if s.PlanUnsurvivable != 1 {
		t.Fatalf("expected unsurvivable 1, got %d", s.PlanUnsurvivable)
	}
	if s.PlanConflict != 1 || s.PlanInvalid != 1 {
		t.Fatalf("expected conflict 1 and invalid 1, got %d and %d", s.PlanConflict, s.PlanInvalid)
	}
	if s.ByStrategy[string(hazard.StrategyPauseSpam)] != 1 {
		t.Fatalf("expected pause_spam count 1")
	}
	if s.ByStrategy[string(hazard.StrategyUnsurvivable)] != 1 {
		t.Fatalf("expected unsurvivable strategy count 1")
	}
}

func TestRecorderSnapshotIsACopy(t *testing.T) {
	r := NewRecorder()
	r.RecordPlan(hazard.Plan{Survivable: true, Strategy: hazard.StrategyFree})

	s := r.Snapshot()
	s.ByStrategy[string(hazard.StrategyFree)] = 42
	if got := r.Snapshot().ByStrategy[string(hazard.StrategyFree)]; got != 1 {
		t.Fatalf("expected recorder to keep 1, got %d", got)
	}
}
