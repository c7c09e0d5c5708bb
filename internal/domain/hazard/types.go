package hazard

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidSnapshot = errors.New("invalid snapshot")
	ErrInvalidHazard   = errors.New("invalid hazard")
	ErrInvalidConfig   = errors.New("invalid planner config")
)

// Snapshot is the read-only view of the actor's energy at the moment a hazard
// is planned.
type Snapshot struct {
	Energy     int `json:"energy"`
	MaxEnergy  int `json:"max_energy"`
	Reserve    int `json:"reserve"`
	MaxReserve int `json:"max_reserve"`
}

func (s Snapshot) Validate() error {
	switch {
	case s.Energy < 0:
		return fmt.Errorf("%w: energy %d is negative", ErrInvalidSnapshot, s.Energy)
	case s.Reserve < 0:
		return fmt.Errorf("%w: reserve %d is negative", ErrInvalidSnapshot, s.Reserve)
	case s.Energy > s.MaxEnergy:
		return fmt.Errorf("%w: energy %d above max %d", ErrInvalidSnapshot, s.Energy, s.MaxEnergy)
	case s.Reserve > s.MaxReserve:
		return fmt.Errorf("%w: reserve %d above max %d", ErrInvalidSnapshot, s.Reserve, s.MaxReserve)
	}
	return nil
}

// Apply returns the snapshot after a plan delta has been applied.
func (s Snapshot) Apply(delta Ledger) Snapshot {
	next := s
	next.Energy += delta.Get(RegularEnergy)
	next.Reserve += delta.Get(ReserveEnergy)
	return next
}

// PunctualHazard is one or more discrete hits of the same damage.
type PunctualHazard struct {
	DamagePerHit         int  `json:"damage_per_hit"`
	Hits                 int  `json:"hits"`
	CanActBeforeFirstHit bool `json:"can_act_before_first_hit"`
}

func (h PunctualHazard) Validate() error {
	switch {
	case h.DamagePerHit < 0:
		return fmt.Errorf("%w: damage per hit %d is negative", ErrInvalidHazard, h.DamagePerHit)
	case h.Hits < 0:
		return fmt.Errorf("%w: hit count %d is negative", ErrInvalidHazard, h.Hits)
	}
	return nil
}

// ContinuousHazard drains DamagePerFrame for TotalFrames. The last ExcessFrames
// are optional: they are paid only when energy allows.
type ContinuousHazard struct {
	DamagePerFrame float64 `json:"damage_per_frame"`
	TotalFrames    int     `json:"total_frames"`
	ExcessFrames   int     `json:"excess_frames"`
	EnergyFloor    int     `json:"energy_floor"`
	Interrupting   bool    `json:"interrupting"`
	CanActBefore   bool    `json:"can_act_before"`
}

func (h ContinuousHazard) Validate(snapshot Snapshot) error {
	switch {
	case math.IsNaN(h.DamagePerFrame) || math.IsInf(h.DamagePerFrame, 0) || h.DamagePerFrame < 0:
		return fmt.Errorf("%w: damage per frame %v", ErrInvalidHazard, h.DamagePerFrame)
	case h.TotalFrames < 0:
		return fmt.Errorf("%w: total frames %d is negative", ErrInvalidHazard, h.TotalFrames)
	case h.ExcessFrames < 0:
		return fmt.Errorf("%w: excess frames %d is negative", ErrInvalidHazard, h.ExcessFrames)
	case h.ExcessFrames > h.TotalFrames:
		return fmt.Errorf("%w: excess frames %d exceed total %d", ErrInvalidHazard, h.ExcessFrames, h.TotalFrames)
	case h.EnergyFloor < 0 || h.EnergyFloor > snapshot.MaxEnergy:
		return fmt.Errorf("%w: energy floor %d outside [0, %d]", ErrInvalidHazard, h.EnergyFloor, snapshot.MaxEnergy)
	}
	return nil
}

// RequiredCost is the energy the non-optional frames cost, truncated.
func (h ContinuousHazard) RequiredCost() int {
	return int(float64(h.TotalFrames-h.ExcessFrames) * h.DamagePerFrame)
}

// ExcessCost is the energy the optional frames cost, truncated.
func (h ContinuousHazard) ExcessCost() int {
	return int(float64(h.ExcessFrames) * h.DamagePerFrame)
}

// Strategy names the branch a plan settled on.
type Strategy string

const (
	StrategyFree         Strategy = "free"
	StrategyRegularOnly  Strategy = "regular_only"
	StrategyHitByHit     Strategy = "hit_by_hit"
	StrategyManualRefill Strategy = "manual_refill"
	StrategyDrainBefore  Strategy = "drain_before"
	StrategyAutoRefill   Strategy = "auto_refill"
	StrategyPauseSpam    Strategy = "pause_spam"
	StrategySinglePause  Strategy = "single_pause"
	StrategyUnsurvivable Strategy = "unsurvivable"
)

// Plan is the outcome of planning one hazard. Delta is nil unless Survivable.
type Plan struct {
	Survivable bool     `json:"survivable"`
	Delta      Ledger   `json:"delta,omitempty"`
	Strategy   Strategy `json:"strategy"`
}

func freePlan() Plan {
	return Plan{Survivable: true, Delta: NewLedger(), Strategy: StrategyFree}
}

func unsurvivable() Plan {
	return Plan{Strategy: StrategyUnsurvivable}
}
