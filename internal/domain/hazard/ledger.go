package hazard

type Resource string

const (
	RegularEnergy Resource = "regular_energy"
	ReserveEnergy Resource = "reserve_energy"
)

// Ledger maps a resource to a signed amount. Plans use it as a delta that the
// caller applies to its own resource state.
type Ledger map[Resource]int

func NewLedger() Ledger {
	return Ledger{}
}

func (l Ledger) Get(r Resource) int {
	return l[r]
}

func (l Ledger) Add(r Resource, n int) {
	l[r] += n
}

func (l Ledger) Reduce(r Resource, n int) {
	l[r] -= n
}

// ConvertReserve moves n from reserve energy into regular energy as one step.
func (l Ledger) ConvertReserve(n int) {
	l[ReserveEnergy] -= n
	l[RegularEnergy] += n
}

func (l Ledger) Total() int {
	total := 0
	for _, v := range l {
		total += v
	}
	return total
}

// Compact returns a copy without zero entries.
func (l Ledger) Compact() Ledger {
	out := make(Ledger, len(l))
	for k, v := range l {
		if v != 0 {
			out[k] = v
		}
	}
	return out
}

func (l Ledger) Clone() Ledger {
	out := make(Ledger, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}
