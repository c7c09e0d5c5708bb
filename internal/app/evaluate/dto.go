package evaluate

import (
	"hazardplan/internal/app/shared/planrun"
	"hazardplan/internal/domain/hazard"
)

type Request struct {
	Snapshot hazard.Snapshot
	Hazard   planrun.Hazard
}

type Response struct {
	Plan  hazard.Plan      `json:"plan"`
	After *hazard.Snapshot `json:"after,omitempty"`
}
