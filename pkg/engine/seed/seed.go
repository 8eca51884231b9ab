// Package seed builds the textual seeds used to initialise random streams.
// One generation pass derives a master seed plus suffixed variants for
// categories that need their own, independent stream.
package seed

import (
	"strconv"
	"strings"
)

// DefaultBase is used when neither an explicit seed nor a base is configured
const DefaultBase = "RAG-Seed"

// Category suffixes for substreams
const (
	SuffixNone     = ""
	SuffixPillars  = "|pillars"
	SuffixPillars2 = "|pillars2"
	SuffixObjects  = "|objects"
)

// Mode controls how reproducible derived seeds are
type Mode int

// Seed modes
const (
	Manual      Mode = iota // same inputs, same seed
	PerEntity               // stable per owning entity
	PerGenerate             // fresh seed on every pass
)

// String returns the configuration name of the mode
func (m Mode) String() string {
	switch m {
	case PerEntity:
		return "per_entity"
	case PerGenerate:
		return "per_generate"
	default:
		return "manual"
	}
}

// ParseMode parses a mode name case-insensitively.
// The second return is false for unknown names, which map to Manual.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "manual":
		return Manual, true
	case "per_entity":
		return PerEntity, true
	case "per_generate":
		return PerGenerate, true
	default:
		return Manual, false
	}
}

// Source supplies the non-deterministic component of PerGenerate seeds.
// *math/rand.Rand satisfies it.
type Source interface {
	Int63() int64
}

// Params are the configured inputs to seed derivation
type Params struct {
	Seed     string // explicit seed, wins when non-empty
	Base     string // fallback when Seed is empty
	Salt     string // optional, differentiates instances sharing a seed
	Mode     Mode
	EntityID string // owning entity, used by PerEntity
}

// base returns the first non-empty of Seed, Base and DefaultBase
func (p Params) base() string {
	if p.Seed != "" {
		return p.Seed
	}
	if p.Base != "" {
		return p.Base
	}
	return DefaultBase
}

func (p Params) salt() string {
	if p.Salt == "" {
		return ""
	}
	return "|" + p.Salt
}

// Deriver produces the seeds of one generation pass.
// For PerGenerate the run value is drawn once, so every category of the
// pass shares it while the next pass gets a new one.
type Deriver struct {
	params Params
	run    int64
}

// NewDeriver fixes the per-pass state. src is only consulted in PerGenerate
// mode; a nil src then yields run value 0.
func NewDeriver(params Params, src Source) *Deriver {
	d := &Deriver{params: params}
	if params.Mode == PerGenerate && src != nil {
		d.run = src.Int63() % 0x7fffffff
	}
	return d
}

// Seed returns the seed for the given category suffix
func (d *Deriver) Seed(suffix string) string {
	var b strings.Builder
	b.WriteString(d.params.base())
	b.WriteString(d.params.salt())
	switch d.params.Mode {
	case PerEntity:
		b.WriteString("|EID:")
		b.WriteString(d.params.EntityID)
	case PerGenerate:
		b.WriteString("|RUN:")
		b.WriteString(strconv.FormatInt(d.run, 10))
	}
	b.WriteString(suffix)
	return b.String()
}

// Derive is a one-shot helper for deterministic modes
func Derive(params Params, suffix string) string {
	return NewDeriver(params, nil).Seed(suffix)
}
