package ebiten

import (
	"fmt"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/leonelquinteros/gotext"

	"roomgen/pkg/engine/geom"
	"roomgen/pkg/engine/host"
	engineinput "roomgen/pkg/engine/input"
	"roomgen/pkg/engine/scene"
	"roomgen/pkg/game/registry"
	"roomgen/pkg/game/renderer"
	"roomgen/pkg/game/signals"
)

// Locator returns the live state of a spawned handle
type Locator interface {
	Entity(h host.Handle) *scene.Entity
}

// keyCodes maps Ebiten keys to input codes, in the order they are polled
var keyCodes = []struct {
	key  ebiten.Key
	code string
}{
	{ebiten.KeyG, "g"},
	{ebiten.KeyC, "c"},
	{ebiten.KeyD, "d"},
	{ebiten.KeyU, "u"},
	{ebiten.KeyT, "t"},
	{ebiten.KeySpace, "space"},
	{ebiten.KeyEnter, "enter"},
	{ebiten.KeyQ, "q"},
	{ebiten.KeyEscape, "escape"},
}

// pressedCodes returns, in poll order, the codes of the keys for which pressed is true
func pressedCodes(pressed func(ebiten.Key) bool) []string {
	var out []string
	for _, k := range keyCodes {
		if pressed(k.key) {
			out = append(out, k.code)
		}
	}
	return out
}

// marker is an entry projected to screen space
type marker struct {
	x, y     float32
	size     float32
	yaw      float64
	category registry.Category
}

// Preview is an ebiten.Game showing the room from above. Signals go out
// through send, normally a signals.Bus.
type Preview struct {
	view  renderer.View
	world Locator
	send  func(signals.Signal)

	width  int
	height int

	windowOpenedLogged bool
}

// New creates a preview
func New(view renderer.View, world Locator, send func(signals.Signal)) *Preview {
	return &Preview{
		view:   view,
		world:  world,
		send:   send,
		width:  defaultWidth,
		height: defaultHeight,
	}
}

// Run opens the window and blocks until it is closed
func (p *Preview) Run(title string) error {
	ebiten.SetWindowSize(p.width, p.height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(p); err != nil && err != ebiten.Termination {
		return err
	}
	return nil
}

// Update handles input (Ebiten interface)
func (p *Preview) Update() error {
	if !p.windowOpenedLogged {
		p.windowOpenedLogged = true
		w, h := ebiten.WindowSize()
		log.Printf("Preview window opened (%dx%d)", w, h)
	}

	for _, code := range pressedCodes(inpututil.IsKeyJustPressed) {
		if p.dispatch(code) {
			return ebiten.Termination
		}
	}
	return nil
}

// dispatch sends the signal bound to code and reports whether it asked to quit
func (p *Preview) dispatch(code string) bool {
	act := engineinput.MapToAction(engineinput.RawInput{Device: engineinput.DeviceKeyboard, Code: code})
	if act == engineinput.ActionQuit {
		return true
	}
	if s, ok := signals.ForAction(act); ok && p.send != nil {
		p.send(s)
	}
	return false
}

// Draw renders the room (Ebiten interface)
func (p *Preview) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	b := screen.Bounds()
	w, h := float32(b.Dx()), float32(b.Dy())
	vector.DrawFilledRect(screen, 0, h/2, w, 1, colorGrid, false)
	vector.DrawFilledRect(screen, w/2, 0, 1, h, colorGrid, false)

	for _, m := range p.markers(b.Dx(), b.Dy()) {
		clr := categoryColors[m.category]
		half := m.size / 2
		if m.category == registry.Ceiling {
			vector.StrokeRect(screen, m.x-half, m.y-half, m.size, m.size, 1, clr, false)
			continue
		}
		vector.DrawFilledRect(screen, m.x-half, m.y-half, m.size, m.size, clr, false)
		if m.category != registry.Floor {
			dx, dy := yawDir(m.yaw)
			vector.StrokeLine(screen, m.x, m.y, m.x+dx*yawTick, m.y+dy*yawTick, 1, colorYaw, true)
		}
	}

	p.drawHUD(screen)
}

func (p *Preview) drawHUD(screen *ebiten.Image) {
	seed := p.view.LastSeed()
	if seed == "" {
		seed = "-"
	}
	doors := gotext.Get("DOORS_UP")
	if p.view.DoorsHidden() {
		doors = gotext.Get("DOORS_DOWN")
	}
	lines := []string{
		fmt.Sprintf("%s %s", gotext.Get("PLAN_SEED"), seed),
		fmt.Sprintf("%s %s  %s %d", gotext.Get("PLAN_DOORS"), doors, gotext.Get("PLAN_TOTAL"), len(p.view.Entries())),
		gotext.Get("PREVIEW_KEYS"),
	}
	for i, l := range lines[:hudLines] {
		ebitenutil.DebugPrintAt(screen, l, 8, 8+i*16)
	}
}

// Layout returns the logical screen size (Ebiten interface)
func (p *Preview) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		p.width, p.height = outsideWidth, outsideHeight
	}
	return p.width, p.height
}

// markers projects every entry onto a w x h screen, floors first
func (p *Preview) markers(w, h int) []marker {
	entries := p.view.Entries()
	positions := make([]geom.Vec3, len(entries))
	yaws := make([]float64, len(entries))
	for i, e := range entries {
		positions[i], yaws[i] = e.Position, e.Yaw
		if p.world == nil {
			continue
		}
		if live := p.world.Entity(e.Handle); live != nil {
			positions[i], yaws[i] = live.Position, live.Yaw
		}
	}

	proj := fit(positions, w, h)
	out := make([]marker, 0, len(entries))
	for _, c := range registry.Categories() {
		for i, e := range entries {
			if e.Category != c {
				continue
			}
			x, y := proj.apply(positions[i])
			out = append(out, marker{x: x, y: y, size: categorySizes[c], yaw: yaws[i], category: c})
		}
	}
	return out
}

// projection maps world X/Z to screen pixels, +Z pointing up
type projection struct {
	scale  float64
	cx, cz float64
	sx, sy float64
}

func (pr projection) apply(v geom.Vec3) (float32, float32) {
	return float32(pr.sx + (v.X-pr.cx)*pr.scale), float32(pr.sy - (v.Z-pr.cz)*pr.scale)
}

// fit centres the bounding box of points on a w x h screen
func fit(points []geom.Vec3, w, h int) projection {
	pr := projection{scale: 1, sx: float64(w) / 2, sy: float64(h) / 2}
	if len(points) == 0 {
		return pr
	}
	minX, maxX := points[0].X, points[0].X
	minZ, maxZ := points[0].Z, points[0].Z
	for _, v := range points[1:] {
		minX, maxX = math.Min(minX, v.X), math.Max(maxX, v.X)
		minZ, maxZ = math.Min(minZ, v.Z), math.Max(maxZ, v.Z)
	}
	pr.cx, pr.cz = (minX+maxX)/2, (minZ+maxZ)/2

	spanX, spanZ := maxX-minX, maxZ-minZ
	availX, availY := float64(w-2*margin), float64(h-2*margin)
	switch {
	case spanX == 0 && spanZ == 0:
		pr.scale = 1
	case spanX == 0:
		pr.scale = availY / spanZ
	case spanZ == 0:
		pr.scale = availX / spanX
	default:
		pr.scale = math.Min(availX/spanX, availY/spanZ)
	}
	if pr.scale <= 0 {
		pr.scale = 1
	}
	return pr
}

// yawDir is the screen direction of a yaw in degrees, yaw 0 facing up
func yawDir(yaw float64) (float32, float32) {
	v := geom.RotateOffset2D(0, 1, yaw)
	return float32(v.X), float32(-v.Z)
}
