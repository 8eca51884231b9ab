// Package scene is an in-memory Host: it stores anchors and spawned
// entities so the generator can run without an engine attached.
package scene

import (
	"errors"
	"sort"

	"github.com/zyedidia/generic/mapset"

	"roomgen/pkg/engine/geom"
	"roomgen/pkg/engine/host"
)

// Sentinel errors
var (
	ErrUnknownHandle = errors.New("unknown handle")
	ErrRejected      = errors.New("asset rejected")
)

// Entity is a live spawned instance
type Entity struct {
	Handle   host.Handle
	Asset    host.Asset
	Position geom.Vec3
	Yaw      float64
	Scale    geom.Vec3
}

// World represents a scene with encapsulated anchor and entity storage
type World struct {
	anchors  map[host.AnchorID]geom.Transform
	entities map[host.Handle]*Entity
	rejected mapset.Set[host.Asset]
	requests []host.SpawnRequest
	unloads  []host.Handle
	next     host.Handle

	// Deferred holds spawn callbacks instead of calling them inline.
	// Flush delivers them.
	Deferred bool
	pending  []func()
}

// NewWorld creates an empty world
func NewWorld() *World {
	return &World{
		anchors:  make(map[host.AnchorID]geom.Transform),
		entities: make(map[host.Handle]*Entity),
		rejected: mapset.New[host.Asset](),
	}
}

// SetAnchor places or moves an anchor
func (w *World) SetAnchor(id host.AnchorID, t geom.Transform) {
	w.anchors[id] = t
}

// RemoveAnchor deletes an anchor
func (w *World) RemoveAnchor(id host.AnchorID) {
	delete(w.anchors, id)
}

// Anchor returns the transform of an anchor
func (w *World) Anchor(id host.AnchorID) (geom.Transform, bool) {
	if id == "" {
		return geom.Transform{}, false
	}
	t, ok := w.anchors[id]
	return t, ok
}

// Reject makes every later spawn of asset fail
func (w *World) Reject(asset host.Asset) {
	w.rejected.Put(asset)
}

// Spawn records the request and creates the entity unless the asset is rejected.
// A handle is issued either way, as a real host would before knowing the outcome.
func (w *World) Spawn(req host.SpawnRequest, done func(error)) host.Handle {
	w.next++
	h := w.next
	w.requests = append(w.requests, req)

	var err error
	if w.rejected.Has(req.Asset) {
		err = ErrRejected
	} else {
		w.entities[h] = &Entity{
			Handle:   h,
			Asset:    req.Asset,
			Position: req.Position,
			Yaw:      req.Yaw,
			Scale:    req.Scale,
		}
	}

	if done != nil {
		if w.Deferred {
			w.pending = append(w.pending, func() { done(err) })
		} else {
			done(err)
		}
	}
	return h
}

// Flush delivers deferred spawn callbacks in request order
func (w *World) Flush() {
	pending := w.pending
	w.pending = nil
	for _, f := range pending {
		f()
	}
}

// Unload removes an entity
func (w *World) Unload(h host.Handle) error {
	w.unloads = append(w.unloads, h)
	if _, ok := w.entities[h]; !ok {
		return ErrUnknownHandle
	}
	delete(w.entities, h)
	return nil
}

// Entity returns the live entity for a handle, or nil
func (w *World) Entity(h host.Handle) *Entity {
	return w.entities[h]
}

// Len returns the number of live entities
func (w *World) Len() int {
	return len(w.entities)
}

// ForEachEntity calls fn for every live entity in handle order
func (w *World) ForEachEntity(fn func(e *Entity)) {
	handles := make([]host.Handle, 0, len(w.entities))
	for h := range w.entities {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })
	for _, h := range handles {
		fn(w.entities[h])
	}
}

// Requests returns every spawn request received, in order
func (w *World) Requests() []host.SpawnRequest {
	return w.requests
}

// Unloads returns every handle passed to Unload, in order
func (w *World) Unloads() []host.Handle {
	return w.unloads
}

// ResetLog forgets recorded requests and unloads, keeping the scene
func (w *World) ResetLog() {
	w.requests = nil
	w.unloads = nil
}
