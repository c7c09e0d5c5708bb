package hazard

// planState is the working copy one planning call mutates. It is never shared
// between calls.
type planState struct {
	cfg   Config
	rules Rules

	energy    int
	reserve   int
	maxEnergy int

	remaining int
	excess    int
	floor     int

	variation Ledger
	strategy  Strategy
	wasted    int
}

func newPlanState(cfg Config, rules Rules, snapshot Snapshot, minCost, excess, floor int) *planState {
	return &planState{
		cfg:       cfg,
		rules:     rules,
		energy:    snapshot.Energy,
		reserve:   snapshot.Reserve,
		maxEnergy: snapshot.MaxEnergy,
		remaining: minCost,
		excess:    excess,
		floor:     floor,
		variation: NewLedger(),
	}
}

// consumeEnergy pays n from regular energy. Callers only pass amounts they
// have already proven available.
func (s *planState) consumeEnergy(n int) {
	s.energy -= n
	s.variation.Reduce(RegularEnergy, n)
	s.remaining -= n
}

// takeHit absorbs one hit. Reaching zero energy triggers the automatic
// refill, and a refill that outlasts the invulnerability window lets the same
// source hit a second time. The second hit does not count as progress.
func (s *planState) takeHit(damage int) {
	lost := min(damage, s.energy)
	s.energy -= lost
	s.variation.Reduce(RegularEnergy, lost)
	s.remaining -= damage
	if s.energy > 0 {
		return
	}

	atTrigger := s.reserve
	s.useAllReserves()
	iframesLeft := max(0, s.rules.HitIFrames-atTrigger/s.rules.ReserveRefillPerFrame)
	if iframesLeft < s.cfg.DoubleHitIFrames {
		second := min(damage, s.energy)
		s.energy -= second
		s.variation.Reduce(RegularEnergy, second)
	}
}

// useReservesTargeting refills manually toward target regular energy. A manual
// refill cannot be stopped on an exact value, so it either drains fully when
// that fits under the maximum and overshoots by no more than the slack, or
// stops slack above the target. When the maximum leaves no room for the slack
// the refill stops at the maximum and the rest stays in reserve.
func (s *planState) useReservesTargeting(target int) {
	target = min(target, s.maxEnergy)
	need := target - s.energy
	if need <= 0 || s.reserve == 0 {
		return
	}
	stop := min(target+s.cfg.ManualRefillSlackEnergy, s.maxEnergy)
	s.convertReserve(min(s.reserve, stop-s.energy))
}

// useReservesTowardProgress pays up to n of the remaining cost straight from
// reserves.
func (s *planState) useReservesTowardProgress(n int) {
	k := min(n, s.reserve)
	if k <= 0 {
		return
	}
	s.reserve -= k
	s.variation.Reduce(ReserveEnergy, k)
	s.remaining -= k
}

// useAllReserves empties the reserve into regular energy. Whatever does not
// fit under the maximum is lost.
func (s *planState) useAllReserves() {
	if s.reserve == 0 {
		return
	}
	s.convertReserve(min(s.reserve, max(0, s.maxEnergy-s.energy)))
	s.wasteReserves(s.reserve)
}

func (s *planState) wasteReserves(n int) {
	k := min(n, s.reserve)
	if k <= 0 {
		return
	}
	s.reserve -= k
	s.wasted += k
	s.variation.Reduce(ReserveEnergy, k)
}

func (s *planState) convertReserve(n int) {
	s.reserve -= n
	s.energy += n
	s.variation.ConvertReserve(n)
}

// settle pays what is left, optional excess included, from regular energy
// without going under the floor.
func (s *planState) settle() bool {
	if use := min(s.energy-s.floor, s.remaining+s.excess); use > 0 {
		s.consumeEnergy(use)
	}
	return s.remaining <= 0 && s.energy >= s.floor
}

// clone copies the state so an alternative can be tried without touching the
// original.
func (s *planState) clone() *planState {
	c := *s
	c.variation = s.variation.Clone()
	return &c
}

func (s *planState) covered() bool {
	return s.energy >= s.remaining+s.floor
}

func (s *planState) plan() Plan {
	return Plan{Survivable: true, Delta: s.variation.Compact(), Strategy: s.strategy}
}

func (s *planState) finish() Plan {
	if !s.settle() {
		return unsurvivable()
	}
	return s.plan()
}

// finishWithAutoRefill lets energy run down to zero so the automatic refill
// fires, then pays the rest from the refilled energy.
func (s *planState) finishWithAutoRefill() Plan {
	s.strategy = StrategyAutoRefill
	s.consumeEnergy(min(s.energy, max(0, s.remaining)))
	if s.energy == 0 {
		s.useAllReserves()
	}
	return s.finish()
}
