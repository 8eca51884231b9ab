package ebiten

import (
	"math"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"roomgen/pkg/engine/geom"
	"roomgen/pkg/engine/host"
	"roomgen/pkg/engine/scene"
	"roomgen/pkg/game/registry"
	"roomgen/pkg/game/signals"
)

type fakeView struct {
	entries []*registry.Entry
}

func (v fakeView) LastSeed() string           { return "s" }
func (v fakeView) Entries() []*registry.Entry { return v.entries }
func (v fakeView) DoorsHidden() bool          { return false }

func (v fakeView) Counts() map[registry.Category]int { return nil }

func TestFit(t *testing.T) {
	pr := fit([]geom.Vec3{{X: -4, Z: -4}, {X: 4, Z: 4}}, 800, 600)
	if pr.scale != 63 {
		t.Fatalf("scale = %v, want 63", pr.scale)
	}
	x, y := pr.apply(geom.Vec3{X: 4, Z: 4})
	if x != 652 || y != 48 {
		t.Errorf("apply = (%v, %v), want (652, 48)", x, y)
	}
	x, y = pr.apply(geom.Vec3{})
	if x != 400 || y != 300 {
		t.Errorf("centre = (%v, %v), want (400, 300)", x, y)
	}
}

func TestFit_Degenerate(t *testing.T) {
	if pr := fit(nil, 800, 600); pr.scale != 1 {
		t.Errorf("empty scale = %v, want 1", pr.scale)
	}
	if pr := fit([]geom.Vec3{{X: 2}, {X: 2}}, 800, 600); pr.scale != 1 {
		t.Errorf("single point scale = %v, want 1", pr.scale)
	}
	if pr := fit([]geom.Vec3{{X: 0}, {X: 8}}, 800, 600); pr.scale != 88 {
		t.Errorf("line scale = %v, want 88", pr.scale)
	}
}

func TestMarkers_UseLivePositionAndFloorFirst(t *testing.T) {
	w := scene.NewWorld()
	door := w.Spawn(host.SpawnRequest{Asset: "door", Position: geom.Vec3{X: 4, Y: -3, Z: 4}}, nil)
	floor := w.Spawn(host.SpawnRequest{Asset: "floor"}, nil)

	v := fakeView{entries: []*registry.Entry{
		{Handle: door, Category: registry.Door, Position: geom.Vec3{X: -4, Z: -4}},
		{Handle: floor, Category: registry.Floor, Position: geom.Vec3{X: -4, Z: -4}},
	}}
	p := New(v, w, nil)
	ms := p.markers(800, 600)
	if len(ms) != 2 {
		t.Fatalf("markers = %d, want 2", len(ms))
	}
	if ms[0].category != registry.Floor || ms[1].category != registry.Door {
		t.Errorf("draw order = %v, %v; want floor first", ms[0].category, ms[1].category)
	}
	if ms[1].x != 652 || ms[1].y != 48 {
		t.Errorf("door drawn at (%v, %v), want live position (652, 48)", ms[1].x, ms[1].y)
	}
}

func TestDispatch(t *testing.T) {
	var got []signals.Signal
	p := New(fakeView{}, nil, func(s signals.Signal) { got = append(got, s) })

	if p.dispatch("g") || p.dispatch("t") || p.dispatch("x") {
		t.Fatal("non-quit key asked to quit")
	}
	if !p.dispatch("escape") {
		t.Error("escape did not quit")
	}
	if len(got) != 2 || got[0] != signals.Generate || got[1] != signals.DoorsToggle {
		t.Errorf("sent = %v, want [generate doors_toggle]", got)
	}
}

func TestPressedCodes_FixedOrder(t *testing.T) {
	down := map[ebiten.Key]bool{ebiten.KeyEscape: true, ebiten.KeyT: true, ebiten.KeyG: true}
	for i := 0; i < 20; i++ {
		got := strings.Join(pressedCodes(func(k ebiten.Key) bool { return down[k] }), ",")
		if got != "g,t,escape" {
			t.Fatalf("pressedCodes = %q, want g,t,escape", got)
		}
	}
}

func TestYawDir(t *testing.T) {
	dx, dy := yawDir(0)
	if math.Abs(float64(dx)) > 1e-6 || math.Abs(float64(dy)+1) > 1e-6 {
		t.Errorf("yawDir(0) = (%v, %v), want (0, -1)", dx, dy)
	}
}

func TestLayout(t *testing.T) {
	p := New(fakeView{}, nil, nil)
	if w, h := p.Layout(0, 0); w != defaultWidth || h != defaultHeight {
		t.Errorf("Layout(0, 0) = %d x %d", w, h)
	}
	if w, h := p.Layout(1024, 768); w != 1024 || h != 768 {
		t.Errorf("Layout(1024, 768) = %d x %d", w, h)
	}
}
