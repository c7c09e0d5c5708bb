package history

import (
	"hazardplan/internal/app/ports"
	"hazardplan/internal/domain/hazard"
)

type Request struct {
	ActorID     string
	Limit       int
	PlannedFrom int64
	PlannedTo   int64
}

type Response struct {
	Records []ports.PlanRecord `json:"records"`
	Latest  *hazard.Snapshot   `json:"latest,omitempty"`
}
