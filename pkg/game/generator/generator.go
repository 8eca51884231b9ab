// Package generator builds a room from anchors and asset palettes.
//
// A pass clears whatever the previous pass spawned, derives its seeds and
// then spawns, in a fixed order: floors, corner pillars, walls with their
// doors, optional ceilings and decorative objects. Identical configuration
// and anchors reproduce the identical room under the deterministic seed
// modes.
package generator

import (
	"log"
	"math/rand"
	"time"

	"roomgen/pkg/engine/geom"
	"roomgen/pkg/engine/host"
	"roomgen/pkg/engine/seed"
	"roomgen/pkg/game/config"
	"roomgen/pkg/game/registry"
	"roomgen/pkg/game/signals"
)

// Option configures a Generator
type Option func(*Generator)

// WithLogger sets the logger used for warnings and debug output
func WithLogger(l *log.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}

// WithSeedSource sets the randomness behind per_generate seeds
func WithSeedSource(src seed.Source) Option {
	return func(g *Generator) {
		g.src = src
	}
}

// Generator owns one room. It is not safe for concurrent use; route
// triggers through a signals.Bus when they can arrive concurrently.
type Generator struct {
	cfg  config.Config
	host host.Host
	reg  *registry.Registry
	log  *log.Logger
	src  seed.Source

	lastSeed string
}

// New creates a generator. cfg is copied.
func New(cfg config.Config, h host.Host, opts ...Option) *Generator {
	g := &Generator{
		cfg:  cfg.Clone(),
		host: h,
		reg:  registry.New(),
		log:  log.New(log.Writer(), "[roomgen] ", log.Flags()),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.src == nil {
		g.src = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return g
}

// Config returns a copy of the configuration
func (g *Generator) Config() config.Config {
	return g.cfg.Clone()
}

// Start generates once if the configuration asks for it
func (g *Generator) Start() {
	if g.cfg.AutoGenerateOnStart {
		g.Generate()
	}
}

// Handle dispatches a signal
func (g *Generator) Handle(s signals.Signal) {
	switch s {
	case signals.Generate:
		g.Generate()
	case signals.Clear:
		g.ClearAll()
	case signals.DoorsDown:
		g.DoorsDown()
	case signals.DoorsUp:
		g.DoorsUp()
	case signals.DoorsToggle:
		g.DoorsToggle()
	default:
		g.debugf("ignoring signal %v", s)
	}
}

// ClearAll unloads everything spawned and resets door state.
// Unload errors are ignored.
func (g *Generator) ClearAll() {
	g.reg.Clear(func(h host.Handle) {
		_ = g.host.Unload(h)
	})
}

// Entries returns the live entries of the current pass
func (g *Generator) Entries() []*registry.Entry {
	return g.reg.Entries()
}

// Doors returns the door entries of the current pass
func (g *Generator) Doors() []*registry.Entry {
	return g.reg.Doors()
}

// Counts tallies the current entries per category
func (g *Generator) Counts() map[registry.Category]int {
	return g.reg.CountByCategory()
}

// DoorsHidden reports whether doors are lowered
func (g *Generator) DoorsHidden() bool {
	return g.reg.DoorsHidden()
}

// IsOpen reports whether the room's passages are open, which is the case
// while its doors are lowered
func (g *Generator) IsOpen() bool {
	return g.reg.DoorsHidden()
}

// Transform locates the room as a door source: the room anchor, else the
// floor anchor, else the origin
func (g *Generator) Transform() geom.Transform {
	if t, ok := g.anchor(g.cfg.Anchors.Room); ok {
		return t
	}
	t, _ := g.anchor(g.cfg.Anchors.Floor)
	return t
}

// LastSeed returns the master seed of the most recent pass
func (g *Generator) LastSeed() string {
	return g.lastSeed
}

func (g *Generator) debugf(format string, args ...any) {
	if g.cfg.Debug {
		g.log.Printf("debug: "+format, args...)
	}
}

// anchor resolves id, treating an empty id as absent
func (g *Generator) anchor(id host.AnchorID) (geom.Transform, bool) {
	if id == "" {
		return geom.Transform{}, false
	}
	return g.host.Anchor(id)
}

// floorY is the floor anchor height, else the room anchor height, else 0
func (g *Generator) floorY() float64 {
	if t, ok := g.anchor(g.cfg.Anchors.Floor); ok {
		return t.Position.Y
	}
	if t, ok := g.anchor(g.cfg.Anchors.Room); ok {
		return t.Position.Y
	}
	return 0
}

// spawn issues the request and records the entry. A spawn the host rejects
// leaves no entry.
func (g *Generator) spawn(e registry.Entry) *registry.Entry {
	h, ok := g.request(e.Asset, e.Position, e.Yaw, e.Scale)
	if !ok {
		return nil
	}
	e.Handle = h
	g.debugf("%s %s %s at (%.3f, %.3f, %.3f) yaw %.1f", e.Category, e.Tag, e.Asset,
		e.Position.X, e.Position.Y, e.Position.Z, e.Yaw)
	if e.Door {
		return g.reg.AddDoor(e)
	}
	return g.reg.Add(e)
}

// request spawns one instance. It reports false when the host failed the
// spawn before returning; a later failure drops the entry from the registry.
func (g *Generator) request(asset host.Asset, pos geom.Vec3, yaw float64, scale geom.Vec3) (host.Handle, bool) {
	req := host.SpawnRequest{
		Asset:    asset,
		Position: pos,
		Rotation: geom.FromYaw(yaw),
		Yaw:      yaw,
		Scale:    scale,
	}
	var h host.Handle
	inline, failed := true, false
	h = g.host.Spawn(req, func(err error) {
		if err == nil {
			return
		}
		g.log.Printf("warning: spawn of %s failed: %v", asset, err)
		if inline {
			failed = true
			return
		}
		g.reg.Remove(h)
	})
	inline = false
	return h, !failed
}
