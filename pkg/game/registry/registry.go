// Package registry tracks what one generation pass has spawned so it can be
// torn down later. Doors are kept in a sub-list with enough state to
// respawn them elsewhere.
package registry

import (
	"github.com/zyedidia/generic/mapset"

	"roomgen/pkg/engine/geom"
	"roomgen/pkg/engine/host"
)

// Category labels the structural role of an entry
type Category string

// Categories
const (
	Floor    Category = "floor"
	Pillar   Category = "pillar"
	WallFull Category = "wall"
	WallDoor Category = "door_wall"
	Door     Category = "door"
	Ceiling  Category = "ceiling"
	Object   Category = "object"
)

// Categories returns every category in spawn order
func Categories() []Category {
	return []Category{Floor, Pillar, WallFull, WallDoor, Door, Ceiling, Object}
}

// Entry is one spawned element with its unhidden transform
type Entry struct {
	Handle   host.Handle
	Category Category
	Asset    host.Asset
	Position geom.Vec3
	Yaw      float64
	Scale    geom.Vec3
	Door     bool
	Tag      string // side or corner name, slot number
}

// Registry holds the live entries of a pass. Not safe for concurrent use.
type Registry struct {
	entries []*Entry
	doors   []*Entry
	live    mapset.Set[host.Handle]
	hidden  bool
}

// New creates an empty registry
func New() *Registry {
	return &Registry{live: mapset.New[host.Handle]()}
}

// Add records an entry and returns the stored copy
func (r *Registry) Add(e Entry) *Entry {
	stored := &e
	r.entries = append(r.entries, stored)
	r.live.Put(e.Handle)
	return stored
}

// AddDoor records a door entry, also listing it among the doors
func (r *Registry) AddDoor(e Entry) *Entry {
	e.Door = true
	stored := r.Add(e)
	r.doors = append(r.doors, stored)
	return stored
}

// Entries returns all entries in spawn order
func (r *Registry) Entries() []*Entry {
	return r.entries
}

// Doors returns the door entries in spawn order
func (r *Registry) Doors() []*Entry {
	return r.doors
}

// Len returns the number of live handles
func (r *Registry) Len() int {
	return r.live.Size()
}

// Has reports whether h is live in the registry
func (r *Registry) Has(h host.Handle) bool {
	return r.live.Has(h)
}

// Replace swaps the handle of an entry in place. The old handle is forgotten;
// the caller is responsible for having unloaded it.
func (r *Registry) Replace(e *Entry, h host.Handle) {
	r.live.Remove(e.Handle)
	e.Handle = h
	r.live.Put(h)
}

// Remove drops the entry holding h from both lists. It reports whether h
// was live.
func (r *Registry) Remove(h host.Handle) bool {
	if !r.live.Has(h) {
		return false
	}
	r.live.Remove(h)
	r.entries = without(r.entries, h)
	r.doors = without(r.doors, h)
	return true
}

// without returns a new slice so callers ranging over the old one are unaffected
func without(list []*Entry, h host.Handle) []*Entry {
	out := make([]*Entry, 0, len(list))
	for _, e := range list {
		if e.Handle != h {
			out = append(out, e)
		}
	}
	return out
}

// Clear unloads every live handle exactly once, then empties the registry
// and resets the hidden state
func (r *Registry) Clear(unload func(host.Handle)) {
	for _, e := range r.entries {
		if !r.live.Has(e.Handle) {
			continue
		}
		r.live.Remove(e.Handle)
		if unload != nil {
			unload(e.Handle)
		}
	}
	r.entries = nil
	r.doors = nil
	r.live = mapset.New[host.Handle]()
	r.hidden = false
}

// DoorsHidden reports whether doors are currently lowered
func (r *Registry) DoorsHidden() bool {
	return r.hidden
}

// SetDoorsHidden records the door state
func (r *Registry) SetDoorsHidden(hidden bool) {
	r.hidden = hidden
}

// CountByCategory tallies entries per category
func (r *Registry) CountByCategory() map[Category]int {
	counts := make(map[Category]int)
	for _, e := range r.entries {
		counts[e.Category]++
	}
	return counts
}
