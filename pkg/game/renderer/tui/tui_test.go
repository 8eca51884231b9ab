package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gookit/color"

	"roomgen/pkg/engine/geom"
	"roomgen/pkg/engine/host"
	"roomgen/pkg/game/registry"
	"roomgen/pkg/game/renderer"
)

type fakeView struct {
	seed    string
	entries []*registry.Entry
	hidden  bool
}

func (v fakeView) LastSeed() string           { return v.seed }
func (v fakeView) Entries() []*registry.Entry { return v.entries }
func (v fakeView) DoorsHidden() bool          { return v.hidden }

func (v fakeView) Counts() map[registry.Category]int {
	counts := make(map[registry.Category]int)
	for _, e := range v.entries {
		counts[e.Category]++
	}
	return counts
}

func render(t *testing.T, v renderer.View, width int) string {
	t.Helper()
	var buf bytes.Buffer
	r := New(&buf, width)
	r.Init()
	r.RenderPlan(v)
	return color.ClearCode(buf.String())
}

func TestRenderPlan(t *testing.T) {
	v := fakeView{
		seed: "Room-1",
		entries: []*registry.Entry{
			{Category: registry.Floor, Asset: "floor_a", Tag: "floor", Position: geom.Vec3{Y: 1}},
			{Category: registry.Door, Asset: "door_a", Tag: "N", Position: geom.Vec3{Z: 4.9}, Yaw: 90},
		},
	}
	out := render(t, v, 100)
	for _, want := range []string{"Room-1", "floor_a", "door_a", "(0.00, 0.00, 4.90)", "90.0", "floor 1", "door 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("plan missing %q:\n%s", want, out)
		}
	}
}

func TestRenderPlan_Empty(t *testing.T) {
	out := render(t, fakeView{}, 80)
	if !strings.Contains(out, " -\n") {
		t.Errorf("empty plan should show a placeholder seed:\n%s", out)
	}
}

func TestRenderPlan_TruncatesLongAssets(t *testing.T) {
	long := strings.Repeat("x", 200)
	v := fakeView{entries: []*registry.Entry{{Category: registry.Object, Asset: host.Asset(long), Tag: "obj1"}}}
	out := render(t, v, 80)
	if strings.Contains(out, long) {
		t.Error("long asset was not truncated")
	}
	if !strings.Contains(out, "x~") {
		t.Errorf("truncation marker missing:\n%s", out)
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"abc", 5, "abc"},
		{"abcdef", 4, "abc~"},
		{"abc", 1, "~"},
		{"abc", 0, "abc"},
		{"ééé", 2, "é~"},
	}
	for _, tt := range tests {
		if got := fit(tt.in, tt.n); got != tt.want {
			t.Errorf("fit(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestRenderHelp_ShowsShortestKey(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, 80)
	r.Init()
	r.RenderHelp()
	out := color.ClearCode(buf.String())
	for _, want := range []string{"g Generate", "t Toggle Doors", "q Quit"} {
		if !strings.Contains(out, want) {
			t.Errorf("help missing %q: %s", want, out)
		}
	}
}
