package main

import (
	"log"
	"os"

	"roomgen/pkg/engine/host"
	"roomgen/pkg/engine/scene"
	"roomgen/pkg/game/config"
	"roomgen/pkg/game/corridor"
	"roomgen/pkg/game/generator"
	"roomgen/pkg/game/signals"
)

// app wires one room, its corridor ends and the signal bus onto an
// in-memory scene
type app struct {
	world     *scene.World
	gen       *generator.Generator
	corridors []*corridor.Anchor
	bridge    *corridor.Bridge
	bus       *signals.Bus
	log       *log.Logger
	debug     bool

	linkErrs []corridor.Result // failed links of the last sync
}

func newApp(f *config.File, opts ...generator.Option) *app {
	a := &app{
		world: scene.NewWorld(),
		log:   log.New(os.Stderr, "[roomgen] ", log.LstdFlags),
		debug: f.Room.Debug,
	}
	for _, id := range f.AnchorNames() {
		a.world.SetAnchor(id, f.Anchors[id])
	}

	a.gen = generator.New(f.Room, a.world, append([]generator.Option{generator.WithLogger(a.log)}, opts...)...)

	doors := corridor.NewRegistry()
	doors.Register(f.DoorName, a.gen)
	a.bridge = corridor.NewBridge(doors, a.world)
	for _, cfg := range f.Corridors {
		c := corridor.NewAnchor(cfg, a.world, a.log)
		a.corridors = append(a.corridors, c)
		a.bridge.AddAnchor(c)
	}
	for _, l := range f.Links {
		if l.Door == "" {
			l.Door = f.DoorName
		}
		a.bridge.Link(l)
	}

	a.bus = signals.NewBus(a)
	return a
}

// start runs the start-up generation and spawns the corridor ends
func (a *app) start() {
	a.gen.Start()
	for _, c := range a.corridors {
		c.Start()
	}
	a.sync()
}

// Handle runs a signal on the room and brings the corridors in step
func (a *app) Handle(s signals.Signal) {
	a.gen.Handle(s)
	a.sync()
}

func (a *app) sync() {
	a.linkErrs = a.linkErrs[:0]
	for _, r := range a.bridge.Check() {
		if r.Err == "" {
			continue
		}
		a.linkErrs = append(a.linkErrs, r)
		if a.debug {
			a.log.Printf("debug: link %s -> %q: %s", r.Link.Door, r.Link.Anchor, r.Err)
		}
	}
}

// corridorAssets returns the mesh each corridor end shows, by name
func (a *app) corridorAssets() map[string]host.Asset {
	out := make(map[string]host.Asset, len(a.corridors))
	for _, c := range a.corridors {
		if asset, _, ok := c.Current(); ok {
			out[c.Name()] = asset
		}
	}
	return out
}
