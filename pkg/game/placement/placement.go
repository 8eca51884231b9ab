// Package placement decides which sides get doors and which object slots are
// filled. Every decision draws from the supplied stream, so identical
// streams yield identical layouts. Counts saturate instead of failing.
package placement

import (
	"strings"

	"github.com/zyedidia/generic/mapset"

	"roomgen/pkg/engine/geom"
	"roomgen/pkg/engine/rng"
)

// Mode selects a selection policy
type Mode int

// Placement modes
const (
	Manual      Mode = iota // everything configured
	ManualCount             // exactly N, randomly chosen
	AutoTotal               // random N within [min, max]
	AutoChance              // each candidate independently
	AutoPairs2              // door-only: N sides, opposite pair first
)

var modeNames = map[Mode]string{
	Manual:      "manual",
	ManualCount: "manual_count",
	AutoTotal:   "auto_total",
	AutoChance:  "auto_chance",
	AutoPairs2:  "auto_pairs2",
}

// String returns the configuration name of the mode
func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return "manual"
}

// ParseMode parses a mode name case-insensitively.
// The second return is false for unknown names, which map to Manual.
func ParseMode(s string) (Mode, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Manual, true
	}
	for m, name := range modeNames {
		if name == s {
			return m, true
		}
	}
	return Manual, false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampChance(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// PickN draws count distinct elements of pool without replacement.
// count is clamped to [0, len(pool)]; pool itself is left untouched.
func PickN[T any](r *rng.Rand, pool []T, count int) []T {
	left := make([]T, len(pool))
	copy(left, pool)
	want := clamp(count, 0, len(left))

	out := make([]T, 0, want)
	for len(out) < want && len(left) > 0 {
		i := r.NextInt(0, len(left)-1)
		out = append(out, left[i])
		left = append(left[:i], left[i+1:]...)
	}
	return out
}

// uniqSides drops repeated sides, keeping first occurrence order
func uniqSides(sides []geom.Side) []geom.Side {
	seen := mapset.New[geom.Side]()
	out := make([]geom.Side, 0, len(sides))
	for _, s := range sides {
		if seen.Has(s) {
			continue
		}
		seen.Put(s)
		out = append(out, s)
	}
	return out
}

var oppositePairs = [][2]geom.Side{
	{geom.North, geom.South},
	{geom.East, geom.West},
}

// PickSides chooses up to count distinct sides from candidates.
// With preferOpposites and at least two wanted, a full opposite pair is
// seated first when one is available; the rest are drawn uniformly.
func PickSides(r *rng.Rand, candidates []geom.Side, count int, preferOpposites bool) []geom.Side {
	want := clamp(count, 0, len(candidates))
	cset := uniqSides(candidates)
	present := mapset.New[geom.Side]()
	for _, s := range cset {
		present.Put(s)
	}

	res := make([]geom.Side, 0, want)
	taken := mapset.New[geom.Side]()
	if preferOpposites && want >= 2 {
		var avail [][2]geom.Side
		for _, p := range oppositePairs {
			if present.Has(p[0]) && present.Has(p[1]) {
				avail = append(avail, p)
			}
		}
		if len(avail) > 0 {
			p := avail[r.NextInt(0, len(avail)-1)]
			res = append(res, p[0], p[1])
			taken.Put(p[0])
			taken.Put(p[1])
		}
	}

	remaining := make([]geom.Side, 0, len(cset))
	for _, s := range cset {
		if !taken.Has(s) {
			remaining = append(remaining, s)
		}
	}
	for len(res) < want && len(remaining) > 0 {
		i := r.NextInt(0, len(remaining)-1)
		res = append(res, remaining[i])
		remaining = append(remaining[:i], remaining[i+1:]...)
	}
	return res
}

// DoorRules configure door selection
type DoorRules struct {
	Mode             Mode
	AutoCount        int
	PreferOpposites  bool
	Chance           float64
	Min              int
	Max              int
	ManualCount      int
	EnsureAtLeastOne bool
}

func setOf(sides []geom.Side) mapset.Set[geom.Side] {
	set := mapset.New[geom.Side]()
	for _, s := range sides {
		set.Put(s)
	}
	return set
}

// SelectDoors returns the sides that receive a door.
// withAnchor lists sides carrying a door anchor and is used by Manual;
// candidates is the pool for every other mode.
func SelectDoors(r *rng.Rand, rules DoorRules, withAnchor, candidates []geom.Side) mapset.Set[geom.Side] {
	n := len(candidates)

	switch rules.Mode {
	case ManualCount:
		picked := PickSides(r, candidates, clamp(rules.ManualCount, 0, n), rules.PreferOpposites)
		set := setOf(picked)
		if rules.EnsureAtLeastOne && len(picked) == 0 {
			if s, ok := rng.Pick(r, candidates); ok {
				set.Put(s)
			}
		}
		return set

	case AutoPairs2:
		count := max(1, min(rules.AutoCount, n))
		return setOf(PickSides(r, candidates, count, rules.PreferOpposites))

	case AutoTotal:
		lo := max(1, min(rules.Min, n))
		hi := max(lo, min(rules.Max, n))
		count := r.NextInt(lo, hi)
		return setOf(PickSides(r, candidates, count, rules.PreferOpposites))

	case AutoChance:
		p := clampChance(rules.Chance)
		set := mapset.New[geom.Side]()
		for _, s := range candidates {
			if r.NextBool(p) {
				set.Put(s)
			}
		}
		if rules.EnsureAtLeastOne && set.Size() == 0 {
			if s, ok := rng.Pick(r, candidates); ok {
				set.Put(s)
			}
		}
		return set

	default:
		return setOf(withAnchor)
	}
}

// ObjectRules configure object slot selection
type ObjectRules struct {
	Mode             Mode
	ManualCount      int
	Min              int
	Max              int // <= 0 means the whole pool
	Chance           float64
	EnsureAtLeastOne bool
}

// SelectObjects returns the chosen slots. Manual (and the door-only
// AutoPairs2) keep every slot in order; other modes return draw order.
func SelectObjects[T any](r *rng.Rand, rules ObjectRules, slots []T) []T {
	n := len(slots)
	if n == 0 {
		return nil
	}

	var chosen []T
	switch rules.Mode {
	case ManualCount:
		chosen = PickN(r, slots, clamp(rules.ManualCount, 0, n))

	case AutoTotal:
		lo := clamp(rules.Min, 0, n)
		hiCap := rules.Max
		if hiCap <= 0 {
			hiCap = n
		}
		hi := max(lo, min(hiCap, n))
		chosen = PickN(r, slots, r.NextInt(lo, hi))

	case AutoChance:
		p := clampChance(rules.Chance)
		for _, s := range slots {
			if r.NextBool(p) {
				chosen = append(chosen, s)
			}
		}

	default:
		out := make([]T, n)
		copy(out, slots)
		return out
	}

	if rules.EnsureAtLeastOne && len(chosen) == 0 {
		chosen = PickN(r, slots, 1)
	}
	return chosen
}
