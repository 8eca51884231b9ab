// Package variant picks which asset of a role gets spawned
package variant

import (
	"roomgen/pkg/engine/host"
	"roomgen/pkg/engine/rng"
)

// Role is the asset palette of one structural role: a base asset plus up
// to three alternates.
type Role struct {
	Base        host.Asset    `json:"base"`
	Variants    [3]host.Asset `json:"variants"`
	UseVariants bool          `json:"useVariants"`
	// ForcedIndex 1..3 selects that alternate when UseVariants is off.
	// 0 (or anything out of range) means the base asset.
	ForcedIndex int `json:"forcedIndex"`
}

// Present reports whether any asset of the role is set
func (r Role) Present() bool {
	if r.Base != "" {
		return true
	}
	for _, a := range r.Variants {
		if a != "" {
			return true
		}
	}
	return false
}

// Pick returns one asset. With useVariants off it is the base; otherwise it
// is uniform over the present members of {base, alts...}. The pool is
// drawn from once when non-empty.
func Pick(r *rng.Rand, useVariants bool, base host.Asset, alts ...host.Asset) (host.Asset, bool) {
	pool := make([]host.Asset, 0, 1+len(alts))
	if base != "" {
		pool = append(pool, base)
	}
	if useVariants {
		for _, a := range alts {
			if a != "" {
				pool = append(pool, a)
			}
		}
	}
	return rng.Pick(r, pool)
}

// PickRole applies Pick to a role, honouring ForcedIndex when variants are off
func PickRole(r *rng.Rand, role Role) (host.Asset, bool) {
	if !role.UseVariants && role.ForcedIndex >= 1 && role.ForcedIndex <= len(role.Variants) {
		if a := role.Variants[role.ForcedIndex-1]; a != "" {
			return a, true
		}
	}
	return Pick(r, role.UseVariants, role.Base, role.Variants[:]...)
}

// Pillar picks a pillar asset. Pillars spawn whenever any asset is set, so
// an empty pick falls back to the first present of V1, V2, V3 and base.
func Pillar(r *rng.Rand, role Role) (host.Asset, bool) {
	if a, ok := PickRole(r, role); ok {
		return a, true
	}
	for _, a := range role.Variants {
		if a != "" {
			return a, true
		}
	}
	if role.Base != "" {
		return role.Base, true
	}
	return "", false
}
