// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"roomgen/pkg/game/registry"
	"roomgen/pkg/game/renderer"
)

// DefaultDumpFilename is used when DumpPlan gets an empty path
const DefaultDumpFilename = "plan.txt"

// maxGridSide caps the map at this many cells per axis
const maxGridSide = 256

// categorySymbol is the single-character map symbol of a category
func categorySymbol(c registry.Category) rune {
	switch c {
	case registry.Floor:
		return '.'
	case registry.Pillar:
		return 'P'
	case registry.WallFull:
		return '#'
	case registry.WallDoor:
		return 'W'
	case registry.Door:
		return 'D'
	case registry.Ceiling:
		return '^'
	case registry.Object:
		return 'o'
	default:
		return '?'
	}
}

// categoryRank orders symbols sharing a map cell; higher wins
func categoryRank(c registry.Category) int {
	for i, cat := range registry.Categories() {
		if cat == c {
			return i
		}
	}
	return -1
}

// writePlanGrid draws entries top-down on a 1m grid, +Z up, X to the right.
// When several entries fall in one cell the later category wins, except
// ceilings which never hide what is below them.
func writePlanGrid(w io.Writer, entries []*registry.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "(empty)")
		return
	}
	minX, maxX := math.Inf(1), math.Inf(-1)
	minZ, maxZ := math.Inf(1), math.Inf(-1)
	for _, e := range entries {
		minX, maxX = math.Min(minX, e.Position.X), math.Max(maxX, e.Position.X)
		minZ, maxZ = math.Min(minZ, e.Position.Z), math.Max(maxZ, e.Position.Z)
	}
	spanX := math.Floor(maxX) - math.Floor(minX) + 1
	spanZ := math.Floor(maxZ) - math.Floor(minZ) + 1
	if !(spanX <= maxGridSide && spanZ <= maxGridSide) {
		fmt.Fprintf(w, "(map omitted: extent %.0fx%.0f m exceeds %d cells per side)\n", spanX, spanZ, maxGridSide)
		return
	}
	x0, z0 := int(math.Floor(minX)), int(math.Floor(minZ))
	cols, rows := int(spanX), int(spanZ)

	grid := make([][]rune, rows)
	rank := make([][]int, rows)
	for r := range grid {
		grid[r] = make([]rune, cols)
		rank[r] = make([]int, cols)
		for c := range grid[r] {
			grid[r][c] = ' '
			rank[r][c] = -1
		}
	}
	for _, e := range entries {
		c := int(math.Floor(e.Position.X)) - x0
		r := rows - 1 - (int(math.Floor(e.Position.Z)) - z0)
		k := categoryRank(e.Category)
		if e.Category == registry.Ceiling && rank[r][c] >= 0 {
			continue
		}
		if k >= rank[r][c] {
			grid[r][c] = categorySymbol(e.Category)
			rank[r][c] = k
		}
	}
	for _, row := range grid {
		fmt.Fprintln(w, string(row))
	}
	fmt.Fprintf(w, "origin_cell: x=%d z=%d (bottom left)\n", x0, z0)
}

// WritePlan writes a dump of the current room: metadata, counts per
// category, a top-down map and one line per entry.
func WritePlan(w io.Writer, p renderer.View) {
	entries := p.Entries()
	counts := p.Counts()

	fmt.Fprintln(w, "=== ROOM PLAN DUMP ===")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "--- Metadata ---")
	fmt.Fprintf(w, "seed: %q\n", p.LastSeed())
	fmt.Fprintf(w, "doors_hidden: %v\n", p.DoorsHidden())
	fmt.Fprintf(w, "entries: %d\n", len(entries))
	fmt.Fprintln(w, "coordinate_system: x,y,z metres, yaw degrees about +Y")
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Counts ---")
	for _, c := range registry.Categories() {
		fmt.Fprintf(w, "%s: %d\n", c, counts[c])
	}
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Legend (map symbols) ---")
	fmt.Fprintln(w, ". = floor  P = pillar  # = wall  W = door wall  D = door  ^ = ceiling only  o = object")
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Map (top-down, 1m cells) ---")
	writePlanGrid(w, entries)
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Entries (spawn order) ---")
	for _, e := range entries {
		fmt.Fprintf(w, "  handle: %d category: %s tag: %s asset: %q pos: %.3f,%.3f,%.3f yaw: %.1f scale: %.3f,%.3f,%.3f\n",
			e.Handle, e.Category, e.Tag, e.Asset,
			e.Position.X, e.Position.Y, e.Position.Z, e.Yaw,
			e.Scale.X, e.Scale.Y, e.Scale.Z)
	}
}

// DumpPlan writes the plan to path, or plan.txt when path is empty, and
// returns the absolute path written.
func DumpPlan(path string, p renderer.View) (string, error) {
	if path == "" {
		path = DefaultDumpFilename
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to create plan dump: %w", err)
	}
	defer f.Close()

	WritePlan(f, p)
	return absPath, nil
}
