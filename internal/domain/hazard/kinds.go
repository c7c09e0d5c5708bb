package hazard

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

var ErrUnknownKind = errors.New("unknown hazard kind")

// maxSuggestDistance bounds how far a typo may be from a known kind name
// before no suggestion is offered.
const maxSuggestDistance = 3

// Kind is a named family of hazards. Interrupting kinds end the moment energy
// reaches the floor; the others keep draining past it.
type Kind struct {
	Interrupting bool `yaml:"interrupting" json:"interrupting"`
}

func DefaultKinds() map[string]Kind {
	return map[string]Kind{
		"heat":              {Interrupting: false},
		"lava":              {Interrupting: false},
		"acid":              {Interrupting: false},
		"electricity":       {Interrupting: false},
		"spike":             {Interrupting: false},
		"thorn":             {Interrupting: false},
		"spark_shinecharge": {Interrupting: true},
		"crystal_flash":     {Interrupting: true},
		"grapple_jump":      {Interrupting: true},
		"enemy_hit":         {Interrupting: false},
	}
}

// Kind looks up a hazard kind by name, case-insensitively.
func (r Rules) Kind(name string) (Kind, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if k, ok := r.Kinds[key]; ok {
		return k, nil
	}
	if s := r.suggestKind(key); s != "" {
		return Kind{}, fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownKind, name, s)
	}
	return Kind{}, fmt.Errorf("%w %q", ErrUnknownKind, name)
}

func (r Rules) KindNames() []string {
	names := make([]string, 0, len(r.Kinds))
	for name := range r.Kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r Rules) suggestKind(key string) string {
	best := ""
	bestDist := maxSuggestDistance + 1
	for _, name := range r.KindNames() {
		d := levenshtein.ComputeDistance(key, name)
		if d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}
