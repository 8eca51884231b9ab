package devtools

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"roomgen/pkg/engine/geom"
	"roomgen/pkg/game/registry"
)

type fakePlan struct {
	entries []*registry.Entry
}

func (p fakePlan) LastSeed() string  { return "Room-1" }
func (p fakePlan) DoorsHidden() bool { return true }

func (p fakePlan) Entries() []*registry.Entry { return p.entries }

func (p fakePlan) Counts() map[registry.Category]int {
	counts := make(map[registry.Category]int)
	for _, e := range p.entries {
		counts[e.Category]++
	}
	return counts
}

func samplePlan() fakePlan {
	return fakePlan{entries: []*registry.Entry{
		{Handle: 1, Category: registry.Floor, Asset: "floor_a", Tag: "floor", Position: geom.Vec3{X: 0.5, Z: 0.5}, Scale: geom.One},
		{Handle: 2, Category: registry.Ceiling, Asset: "ceil", Tag: "ceiling", Position: geom.Vec3{X: 0.5, Y: 4, Z: 0.5}, Scale: geom.One},
		{Handle: 3, Category: registry.Door, Asset: "door_a", Tag: "N", Position: geom.Vec3{X: 0.5, Z: 2.5}, Yaw: 90, Scale: geom.One},
		{Handle: 4, Category: registry.WallDoor, Asset: "dwall", Tag: "N", Position: geom.Vec3{X: 0.5, Z: 2.5}, Yaw: 90, Scale: geom.One},
		{Handle: 5, Category: registry.Pillar, Asset: "pillar", Tag: "NE", Position: geom.Vec3{X: 1.5, Z: 2.5}, Scale: geom.One},
	}}
}

func TestWritePlan(t *testing.T) {
	var buf bytes.Buffer
	WritePlan(&buf, samplePlan())
	out := buf.String()

	for _, want := range []string{
		`seed: "Room-1"`,
		"doors_hidden: true",
		"entries: 5",
		"floor: 1",
		"object: 0",
		`handle: 3 category: door tag: N asset: "door_a" pos: 0.500,0.000,2.500 yaw: 90.0`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q", want)
		}
	}
}

func TestWritePlanGrid(t *testing.T) {
	var buf bytes.Buffer
	writePlanGrid(&buf, samplePlan().entries)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	want := []string{"DP", "  ", ". ", "origin_cell: x=0 z=0 (bottom left)"}
	if len(lines) != len(want) {
		t.Fatalf("grid lines = %q", lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestWritePlanGrid_Empty(t *testing.T) {
	var buf bytes.Buffer
	writePlanGrid(&buf, nil)
	if strings.TrimSpace(buf.String()) != "(empty)" {
		t.Errorf("empty grid = %q", buf.String())
	}
}

func TestWritePlanGrid_TooLarge(t *testing.T) {
	far := []*registry.Entry{
		{Category: registry.Floor, Position: geom.Vec3{}},
		{Category: registry.Pillar, Position: geom.Vec3{X: 40000, Z: 25000}},
	}
	var buf bytes.Buffer
	writePlanGrid(&buf, far)
	out := strings.TrimSpace(buf.String())
	if !strings.HasPrefix(out, "(map omitted") || strings.Contains(out, "\n") {
		t.Errorf("oversized grid = %q, want a single omitted line", out)
	}
}

func TestDumpPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.txt")
	got, err := DumpPlan(path, samplePlan())
	if err != nil {
		t.Fatalf("DumpPlan: %v", err)
	}
	if got != path {
		t.Errorf("path = %q, want %q", got, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "=== ROOM PLAN DUMP ===") {
		t.Errorf("unexpected dump header: %q", string(data[:20]))
	}
}

func TestDumpPlan_BadDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "plan.txt")
	if _, err := DumpPlan(path, samplePlan()); err == nil {
		t.Error("DumpPlan into a missing directory succeeded")
	}
}
