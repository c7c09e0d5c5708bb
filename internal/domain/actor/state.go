package actor

import (
	"errors"
	"fmt"
	"time"

	"hazardplan/internal/domain/hazard"
)

var ErrDeltaOutOfRange = errors.New("delta leaves resources out of range")

// State is an actor's live resource pool. Plans are applied to it only when
// they are survivable.
type State struct {
	ActorID   string          `json:"actor_id"`
	Resources hazard.Snapshot `json:"resources"`
	Version   int64           `json:"version"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Apply returns the state after delta. The result must still satisfy the
// snapshot invariants; a delta that breaks them is rejected whole.
func (s State) Apply(delta hazard.Ledger, now time.Time) (State, error) {
	next := s
	next.Resources = s.Resources.Apply(delta)
	if err := next.Resources.Validate(); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrDeltaOutOfRange, err)
	}
	next.Version++
	next.UpdatedAt = now
	return next, nil
}
