package hazard

import (
	"math"
	"sort"
)

// Planner decides whether a hazard is survivable and at what cost. It holds
// only immutable configuration and is safe for concurrent use.
type Planner struct {
	cfg   Config
	rules Rules
}

func NewPlanner(cfg Config, rules Rules) (Planner, error) {
	if err := cfg.Validate(); err != nil {
		return Planner{}, err
	}
	if err := rules.Validate(); err != nil {
		return Planner{}, err
	}
	return Planner{cfg: cfg, rules: rules}, nil
}

func (p Planner) Config() Config {
	return p.cfg
}

func (p Planner) Rules() Rules {
	return p.rules
}

// PlanPunctual plans a run of identical hits. The actor must keep at least one
// energy after the last hit.
func (p Planner) PlanPunctual(snapshot Snapshot, h PunctualHazard) (Plan, error) {
	if err := snapshot.Validate(); err != nil {
		return Plan{}, err
	}
	if err := h.Validate(); err != nil {
		return Plan{}, err
	}
	if h.Hits == 0 || h.DamagePerHit == 0 {
		return freePlan(), nil
	}

	total := h.DamagePerHit * h.Hits
	s := newPlanState(p.cfg, p.rules, snapshot, total, 0, punctualFloor)
	if s.energy > total {
		s.strategy = StrategyRegularOnly
		return s.finish(), nil
	}

	s.strategy = StrategyHitByHit
	for i := 0; i < h.Hits; i++ {
		if s.energy > h.DamagePerHit {
			s.consumeEnergy(h.DamagePerHit)
			continue
		}
		if s.reserve == 0 {
			return unsurvivable(), nil
		}

		mayAct := p.cfg.MayTapReservesMidHazard
		if i == 0 {
			mayAct = h.CanActBeforeFirstHit
		}
		if mayAct {
			// One refill sized for every hit still to come.
			shortfall := h.DamagePerHit*(h.Hits-i) + punctualFloor - s.energy
			if shortfall <= s.reserve && s.energy+shortfall <= s.maxEnergy {
				s.convertReserve(shortfall)
				s.strategy = StrategyManualRefill
			}
		}

		s.takeHit(h.DamagePerHit)
		if s.energy == 0 {
			return unsurvivable(), nil
		}
	}
	return s.plan(), nil
}

// PlanContinuous plans a per-frame drain of fixed length.
func (p Planner) PlanContinuous(snapshot Snapshot, h ContinuousHazard) (Plan, error) {
	if err := snapshot.Validate(); err != nil {
		return Plan{}, err
	}
	if err := h.Validate(snapshot); err != nil {
		return Plan{}, err
	}
	if h.DamagePerFrame == 0 || h.TotalFrames == 0 {
		return freePlan(), nil
	}

	required := h.RequiredCost()
	s := newPlanState(p.cfg, p.rules, snapshot, required, h.ExcessCost(), h.EnergyFloor)
	if s.energy >= required+s.floor {
		s.strategy = StrategyRegularOnly
		return s.finish(), nil
	}
	if s.energy+s.reserve < required+s.floor {
		return unsurvivable(), nil
	}

	if h.CanActBefore {
		if !p.cfg.MayUsePartialReserves {
			return p.planAllOrNothing(s, h), nil
		}
		s.strategy = StrategyManualRefill
		s.useReservesTargeting(s.remaining + s.floor)
	}

	if s.covered() || s.reserve == 0 {
		return s.finish(), nil
	}
	return p.planMidHazard(s, h), nil
}

// planAllOrNothing handles an actor that can only empty its reserves in one
// go. Draining them now is weighed against keeping them for a pause and, when
// the hazard lets energy reach zero, for the automatic refill. The surviving
// option that wastes the least wins, earlier options on a tie.
func (p Planner) planAllOrNothing(s *planState, h ContinuousHazard) Plan {
	options := []func(*planState) Plan{
		func(c *planState) Plan {
			c.strategy = StrategyDrainBefore
			c.useAllReserves()
			return c.finish()
		},
		func(c *planState) Plan {
			return p.planMidHazard(c, h)
		},
	}
	if !h.Interrupting {
		options = append(options, (*planState).finishWithAutoRefill)
	}

	best, bestWasted := unsurvivable(), 0
	for _, option := range options {
		trial := s.clone()
		plan := option(trial)
		if plan.Survivable && (!best.Survivable || trial.wasted < bestWasted) {
			best, bestWasted = plan, trial.wasted
		}
	}
	return best
}

func (p Planner) planMidHazard(s *planState, h ContinuousHazard) Plan {
	if !p.cfg.MayTapReservesMidHazard {
		if h.Interrupting {
			return unsurvivable()
		}
		return s.finishWithAutoRefill()
	}

	if p.pauseSpamSustainable(s, h.DamagePerFrame) {
		s.strategy = StrategyPauseSpam
		s.useReservesTowardProgress(s.remaining + s.floor - s.energy)
		s.wasteReserves(p.cfg.ManualRefillSlackEnergy)
		return s.finish()
	}

	s.strategy = StrategySinglePause
	frames, ok := p.pauseWindow(s, h)
	if !ok {
		if h.Interrupting {
			return unsurvivable()
		}
		return s.finishWithAutoRefill()
	}
	s.consumeEnergy(min(drainedOver(frames, h.DamagePerFrame), s.remaining))
	s.useReservesTargeting(s.remaining + s.floor)
	if !s.covered() && s.reserve > 0 && !h.Interrupting {
		return s.finishWithAutoRefill()
	}
	return s.finish()
}

// pauseSpamSustainable reports whether refilling on every pause outpaces the
// damage taken across one pause cycle.
func (p Planner) pauseSpamSustainable(s *planState, damagePerFrame float64) bool {
	cycle := p.rules.PauseUnpauseFrames + p.rules.PauseFadeOutFrames + p.cfg.PauseSpamSlackFrames
	cycleDamage := int(math.Ceil(float64(cycle) * damagePerFrame))
	headroom := s.maxEnergy - p.cfg.ManualRefillSlackEnergy - s.floor
	return cycleDamage < headroom
}

// pauseWindow returns how many hazard frames pass before a single pause
// refills. The pause is delayed until the refill no longer overflows, but
// never past the last frame that still leaves the timing slack before the
// floor. ok is false when even the earliest pause lands too late.
func (p Planner) pauseWindow(s *planState, h ContinuousHazard) (int, bool) {
	earliest := p.rules.PauseFadeOutFrames
	if !h.CanActBefore {
		earliest += p.cfg.PauseSpamSlackFrames
	}
	latest := safeFrames(s.energy-s.floor, h.DamagePerFrame, h.TotalFrames) - p.cfg.PauseTimingSlackFrames
	if earliest > latest {
		return 0, false
	}
	return min(max(earliest, p.overflowFreeFrames(s, h)), latest), true
}

func (p Planner) overflowFreeFrames(s *planState, h ContinuousHazard) int {
	overflow := s.energy + s.reserve - s.maxEnergy
	if overflow <= 0 {
		return 0
	}
	return framesToDrain(overflow, h.DamagePerFrame, h.TotalFrames) + p.cfg.PauseTimingSlackFrames
}

func drainedOver(frames int, damagePerFrame float64) int {
	return int(float64(frames) * damagePerFrame)
}

// framesToDrain is the fewest frames, up to limit, that drain at least
// amount. It returns limit+1 when the hazard is too short.
func framesToDrain(amount int, damagePerFrame float64, limit int) int {
	return sort.Search(limit+1, func(f int) bool {
		return drainedOver(f, damagePerFrame) >= amount
	})
}

// safeFrames is the most frames, up to limit, that drain no more than budget.
func safeFrames(budget int, damagePerFrame float64, limit int) int {
	return sort.Search(limit+1, func(f int) bool {
		return drainedOver(f, damagePerFrame) > budget
	}) - 1
}
