package ports

import "hazardplan/internal/domain/hazard"

type PlanMetrics interface {
	RecordPlan(plan hazard.Plan)
	RecordInvalid()
	RecordConflict()
}
