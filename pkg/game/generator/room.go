package generator

import (
	"math"
	"strconv"

	"roomgen/pkg/engine/geom"
	"roomgen/pkg/engine/host"
	"roomgen/pkg/engine/rng"
	"roomgen/pkg/engine/seed"
	"roomgen/pkg/game/config"
	"roomgen/pkg/game/placement"
	"roomgen/pkg/game/registry"
	"roomgen/pkg/game/variant"
)

// Generate replaces the current room with a freshly generated one
func (g *Generator) Generate() {
	g.ClearAll()

	d := seed.NewDeriver(g.cfg.SeedParams(), g.src)
	g.lastSeed = d.Seed(seed.SuffixNone)
	r := rng.New(g.lastSeed)
	a := g.cfg.Anchors

	g.genFloor(r, a.Floor, "floor")
	g.genFloor(r, a.Floor2, "floor2")

	pr := rng.New(d.Seed(seed.SuffixPillars))
	g.genPillar(pr, a.Pillars.NE, "NE")
	g.genPillar(pr, a.Pillars.SE, "SE")
	g.genPillar(pr, a.Pillars.SW, "SW")
	g.genPillar(pr, a.Pillars.NW, "NW")

	pr2 := rng.New(d.Seed(seed.SuffixPillars2))
	g.genPillar(pr2, a.Pillars2.NE, "NE2")
	g.genPillar(pr2, a.Pillars2.NW, "NW2")

	g.genWallSet(r, geom.AllSides(), a.Walls, a.Doors, "")
	g.genWallSet(r, []geom.Side{geom.East, geom.West}, a.Walls2, a.Doors2, "2")

	if g.cfg.SpawnCeiling {
		g.genCeiling(r, a.Ceiling, a.Floor, "ceiling")
		g.genCeiling(r, a.Ceiling2, a.Floor2, "ceiling2")
	} else {
		g.debugf("ceiling disabled")
	}

	g.genObjects(rng.New(d.Seed(seed.SuffixObjects)))
}

func (g *Generator) genFloor(r *rng.Rand, id host.AnchorID, tag string) {
	t, ok := g.anchor(id)
	if !ok {
		g.debugf("%s: no anchor", tag)
		return
	}
	pos := t.Position
	if g.cfg.SnapAnchorsToFloorY {
		pos = geom.SnapY(pos, g.floorY())
	}
	asset, ok := variant.PickRole(r, g.cfg.Floor)
	if !ok {
		g.debugf("%s: no asset", tag)
		return
	}
	g.spawn(registry.Entry{
		Category: registry.Floor,
		Asset:    asset,
		Position: pos,
		Scale:    config.Or(g.cfg.Scales.Floor),
		Tag:      tag,
	})
}

func (g *Generator) genPillar(r *rng.Rand, id host.AnchorID, tag string) {
	t, ok := g.anchor(id)
	if !ok {
		g.debugf("pillar %s: no anchor", tag)
		return
	}
	y := t.Position.Y
	if g.cfg.PillarUseFloorY {
		y = g.floorY()
	}
	yaw := 0.0
	if g.cfg.PillarYawFromAnchor {
		yaw = t.Yaw
	}
	pos := geom.ApplyPivot(geom.SnapY(t.Position, y), g.cfg.Pivots.Pillar, yaw)

	asset, ok := variant.Pillar(r, g.cfg.Pillar)
	if !ok {
		g.debugf("pillar %s: no asset", tag)
		return
	}
	g.spawn(registry.Entry{
		Category: registry.Pillar,
		Asset:    asset,
		Position: pos,
		Yaw:      yaw,
		Scale:    config.Or(g.cfg.Scales.Pillar),
		Tag:      tag,
	})
}

// genWallSet places the walls of one set and decides which carry doors.
// Door candidates are the walls with a door anchor when the set has any
// door anchor at all, otherwise every wall.
func (g *Generator) genWallSet(r *rng.Rand, sides []geom.Side, walls, doors config.Sides, set string) {
	var available, withDoor []geom.Side
	for _, s := range sides {
		if _, ok := g.anchor(walls.Get(s)); ok {
			available = append(available, s)
		} else {
			g.debugf("wall %s%s: no anchor", s, set)
		}
		if _, ok := g.anchor(doors.Get(s)); ok {
			withDoor = append(withDoor, s)
		}
	}

	candidates := available
	if len(withDoor) > 0 {
		candidates = nil
		for _, s := range available {
			if _, ok := g.anchor(doors.Get(s)); ok {
				candidates = append(candidates, s)
			}
		}
	}

	want := placement.SelectDoors(r, g.cfg.Doors.Policy(), withDoor, candidates)
	for _, s := range available {
		g.genWall(r, s, walls.Get(s), doors.Get(s), want.Has(s), s.String()+set)
	}
}

func (g *Generator) genWall(r *rng.Rand, side geom.Side, wallID, doorID host.AnchorID, wantDoor bool, tag string) {
	wt, ok := g.anchor(wallID)
	if !ok {
		return
	}
	yBase := wt.Position.Y
	if g.cfg.SnapAnchorsToFloorY {
		yBase = g.floorY()
	}
	yaw := geom.SideYaw(side, g.cfg.WallMeshAlongX)
	inset := geom.InwardNormal(side).Scale(g.cfg.WallHalfThickness)
	p := geom.SnapY(wt.Position, yBase).Add(inset)

	role, pivot, scale, cat := g.cfg.WallFull, g.cfg.Pivots.WallFull, g.cfg.Scales.WallFull, registry.WallFull
	if wantDoor {
		role, pivot, scale, cat = g.cfg.WallDoor, g.cfg.Pivots.WallDoor, g.cfg.Scales.WallDoor, registry.WallDoor
	}
	if asset, ok := variant.PickRole(r, role); ok {
		g.spawn(registry.Entry{
			Category: cat,
			Asset:    asset,
			Position: geom.ApplyPivot(p, pivot, yaw),
			Yaw:      yaw,
			Scale:    config.Or(scale),
			Tag:      tag,
		})
	} else {
		g.debugf("%s %s: no asset", cat, tag)
	}

	if !wantDoor || !g.cfg.Door.Present() {
		return
	}

	base := wt.Position
	if dt, ok := g.anchor(doorID); ok {
		base = dt.Position
	}
	pd := geom.SnapY(base, yBase).Add(inset)
	asset, ok := variant.PickRole(r, g.cfg.Door)
	if !ok {
		g.debugf("door %s: no asset", tag)
		return
	}
	g.spawn(registry.Entry{
		Category: registry.Door,
		Asset:    asset,
		Position: geom.ApplyPivot(pd, g.cfg.Pivots.Door, yaw),
		Yaw:      yaw,
		Scale:    config.Or(g.cfg.Scales.Door),
		Door:     true,
		Tag:      tag,
	})
}

// genCeiling uses the ceiling anchor, falling back to the matching floor anchor
func (g *Generator) genCeiling(r *rng.Rand, id, fallback host.AnchorID, tag string) {
	t, ok := g.anchor(id)
	if !ok {
		t, ok = g.anchor(fallback)
	}
	if !ok {
		g.debugf("%s: no anchor", tag)
		return
	}
	y := t.Position.Y
	if g.cfg.CeilingUseFloorY {
		y = g.floorY()
	}
	yaw := 0.0
	if g.cfg.CeilingYawFromAnchor {
		yaw = t.Yaw
	}
	pos := geom.ApplyPivot(geom.SnapY(t.Position, y), g.cfg.Pivots.Ceiling, yaw)

	asset, ok := variant.PickRole(r, g.cfg.Ceiling)
	if !ok {
		g.debugf("%s: no asset", tag)
		return
	}
	g.spawn(registry.Entry{
		Category: registry.Ceiling,
		Asset:    asset,
		Position: pos,
		Yaw:      yaw,
		Scale:    config.Or(g.cfg.Scales.Ceiling),
		Tag:      tag,
	})
}

// objectSlot is an eligible slot with its resolved anchor
type objectSlot struct {
	index  int
	slot   config.ObjectSlot
	anchor geom.Transform
}

func (g *Generator) eligibleSlots() []objectSlot {
	var out []objectSlot
	for i, s := range g.cfg.Slots {
		if i >= config.MaxObjectSlots {
			break
		}
		if !s.Eligible() {
			continue
		}
		t, ok := g.anchor(s.Anchor)
		if !ok {
			g.debugf("object %d: anchor %q not found", i+1, s.Anchor)
			continue
		}
		out = append(out, objectSlot{index: i + 1, slot: s, anchor: t})
	}
	return out
}

func (g *Generator) genObjects(r *rng.Rand) {
	chosen := placement.SelectObjects(r, g.cfg.Objects.Policy(), g.eligibleSlots())
	if len(chosen) == 0 {
		g.debugf("objects: none selected")
		return
	}

	if g.cfg.Objects.ShuffleAnchors {
		anchors := make([]geom.Transform, len(chosen))
		for i, c := range chosen {
			anchors[i] = c.anchor
		}
		rng.Shuffle(r, anchors)
		for i := range chosen {
			chosen[i].anchor = anchors[i]
		}
	}

	pivot := g.cfg.Pivots.Object
	for _, c := range chosen {
		s, a := c.slot, c.anchor

		yBase := a.Position.Y
		if g.cfg.SnapAnchorsToFloorY || s.SnapToFloor {
			yBase = g.floorY()
		}

		yaw := 0.0
		if g.cfg.ObjectYawFromAnchor {
			yaw = a.Yaw
		}
		if s.RandomYaw {
			yaw = math.Floor(r.Next() * 360)
		}

		off := geom.RotateOffset2D(pivot.X, pivot.Z, yaw)

		var jitter geom.Vec3
		if radius := math.Max(0, s.RandomRadius); s.UseRandom && radius > 0 {
			u := r.Next()
			v := r.Next()
			jx, jz := geom.DiskJitter(radius, u, v)
			jitter = geom.RotateOffset2D(jx, jz, yaw)
		}

		pos := geom.Vec3{
			X: a.Position.X + off.X + jitter.X,
			Y: yBase + pivot.Y + s.FloorYOffset,
			Z: a.Position.Z + off.Z + jitter.Z,
		}
		g.spawn(registry.Entry{
			Category: registry.Object,
			Asset:    s.Asset,
			Position: pos,
			Yaw:      yaw,
			Scale:    config.Or(s.Scale),
			Tag:      objectTag(c.index),
		})
	}
}

func objectTag(i int) string {
	return "obj" + strconv.Itoa(i)
}
