package generator

import "roomgen/pkg/game/registry"

// SetDoorsHidden lowers (true) or raises (false) every door of the current
// pass. Each door is unloaded and respawned at its base position, or
// DoorHideDepth below it. Nothing happens if the state is unchanged.
func (g *Generator) SetDoorsHidden(hidden bool) {
	if g.reg.DoorsHidden() == hidden {
		return
	}
	for _, e := range g.reg.Doors() {
		g.respawnDoor(e, hidden)
	}
	g.reg.SetDoorsHidden(hidden)
}

func (g *Generator) respawnDoor(e *registry.Entry, hidden bool) {
	_ = g.host.Unload(e.Handle)
	pos := e.Position
	if hidden {
		pos.Y -= g.cfg.HideDepth()
	}
	h, ok := g.request(e.Asset, pos, e.Yaw, e.Scale)
	if !ok {
		g.reg.Remove(e.Handle)
		return
	}
	g.reg.Replace(e, h)
}

// DoorsDown hides the doors
func (g *Generator) DoorsDown() {
	g.SetDoorsHidden(true)
}

// DoorsUp shows the doors
func (g *Generator) DoorsUp() {
	g.SetDoorsHidden(false)
}

// DoorsToggle flips the door state
func (g *Generator) DoorsToggle() {
	g.SetDoorsHidden(!g.reg.DoorsHidden())
}
