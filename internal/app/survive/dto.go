package survive

import (
	"hazardplan/internal/app/shared/planrun"
	"hazardplan/internal/domain/actor"
	"hazardplan/internal/domain/hazard"
)

type Request struct {
	ActorID string
	Hazard  planrun.Hazard
}

type Response struct {
	Plan     hazard.Plan `json:"plan"`
	State    actor.State `json:"state"`
	RecordID string      `json:"record_id"`
}
