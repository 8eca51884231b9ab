// Package host defines the world the generator spawns into.
// It is the only surface the generator uses to create, move and destroy
// things, and to read anchor transforms.
package host

import "roomgen/pkg/engine/geom"

// Asset identifies a spawnable template. Empty means absent.
type Asset string

// AnchorID names a placed reference point. Empty means absent.
type AnchorID string

// Handle identifies one spawned instance
type Handle uint64

// SpawnRequest describes a single instance to create
type SpawnRequest struct {
	Asset    Asset
	Position geom.Vec3
	Rotation geom.Quat
	Yaw      float64
	Scale    geom.Vec3
}

// Host is implemented by whatever owns the live scene.
//
// Spawn returns a handle immediately; done, when non-nil, is called once the
// outcome is known and may run after Spawn returns. Unload removes a live
// instance. Anchor resolves an anchor to its current transform.
type Host interface {
	Spawn(req SpawnRequest, done func(error)) Handle
	Unload(h Handle) error
	Anchor(id AnchorID) (geom.Transform, bool)
}
