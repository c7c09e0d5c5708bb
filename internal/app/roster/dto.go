package roster

import (
	"hazardplan/internal/domain/actor"
	"hazardplan/internal/domain/hazard"
)

type RegisterRequest struct {
	ActorID   string          `json:"actor_id"`
	Resources hazard.Snapshot `json:"resources"`
}

type GetRequest struct {
	ActorID string
}

type Response struct {
	State actor.State `json:"state"`
}
