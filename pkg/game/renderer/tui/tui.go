// Package tui renders the current room plan as a coloured terminal table.
package tui

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"roomgen/pkg/engine/input"
	"roomgen/pkg/engine/terminal"
	"roomgen/pkg/game/registry"
	"roomgen/pkg/game/renderer"
)

// Fixed column widths; the asset column takes what is left
const (
	colCategory = 10
	colTag      = 8
	colPosition = 26
	colYaw      = 7
	minAsset    = 12
)

var _ renderer.Renderer = (*TUIRenderer)(nil)

// TUIRenderer is the terminal renderer
type TUIRenderer struct {
	out   io.Writer
	width int

	colorHeader color.Style
	colorSubtle color.Style
	colorAction color.Style
	colorDenied color.Style
	colorOpen   color.Style
	colorClosed color.Style

	categories map[registry.Category]color.Style
}

// New creates a renderer writing to out. A width of 0 uses the terminal width.
func New(out io.Writer, width int) *TUIRenderer {
	return &TUIRenderer{out: out, width: width}
}

// Init sets up the colour styles
func (t *TUIRenderer) Init() {
	t.colorHeader = color.Style{color.FgCyan, color.OpBold}
	t.colorSubtle = color.Style{color.FgGray}
	t.colorAction = color.Style{color.FgMagenta, color.OpBold}
	t.colorDenied = color.Style{color.FgRed, color.OpBold}
	t.colorOpen = color.Style{color.FgGreen}
	t.colorClosed = color.Style{color.FgYellow, color.OpBold}

	t.categories = map[registry.Category]color.Style{
		registry.Floor:    {color.FgGray},
		registry.Pillar:   {color.FgBlue},
		registry.WallFull: {color.FgWhite},
		registry.WallDoor: {color.FgCyan},
		registry.Door:     {color.FgYellow, color.OpBold},
		registry.Ceiling:  {color.FgGray, color.OpBold},
		registry.Object:   {color.FgMagenta},
	}
}

// Clear clears the terminal screen
func (t *TUIRenderer) Clear() {
	c := exec.Command("clear")
	c.Stdout = os.Stdout
	c.Run()
}

// Width returns the table width in use
func (t *TUIRenderer) Width() int {
	if t.width > 0 {
		return t.width
	}
	return terminal.GetWidth()
}

// ShowMessage prints a status line
func (t *TUIRenderer) ShowMessage(msg string) {
	fmt.Fprintln(t.out, t.colorAction.Sprint(msg))
}

// ShowError prints an error line
func (t *TUIRenderer) ShowError(msg string) {
	fmt.Fprintln(t.out, t.colorDenied.Sprint(msg))
}

// RenderPlan prints the seed, door state, one row per entry and the
// per-category totals
func (t *TUIRenderer) RenderPlan(v renderer.View) {
	width := t.Width()
	assetW := max(minAsset, width-colCategory-colTag-colPosition-colYaw-4)

	seed := v.LastSeed()
	if seed == "" {
		seed = "-"
	}
	fmt.Fprintln(t.out, t.colorHeader.Sprintf("%s %s", gotext.Get("PLAN_SEED"), seed))

	doors := t.colorClosed.Sprint(gotext.Get("DOORS_UP"))
	if v.DoorsHidden() {
		doors = t.colorOpen.Sprint(gotext.Get("DOORS_DOWN"))
	}
	fmt.Fprintf(t.out, "%s %s\n", t.colorSubtle.Sprint(gotext.Get("PLAN_DOORS")), doors)
	fmt.Fprintln(t.out)

	header := fmt.Sprintf("%-*s %-*s %-*s %*s %*s",
		colCategory, gotext.Get("COL_CATEGORY"),
		colTag, gotext.Get("COL_TAG"),
		assetW, gotext.Get("COL_ASSET"),
		colPosition, gotext.Get("COL_POSITION"),
		colYaw, gotext.Get("COL_YAW"))
	fmt.Fprintln(t.out, t.colorHeader.Sprint(fit(header, width)))
	fmt.Fprintln(t.out, t.colorSubtle.Sprint(strings.Repeat("-", min(width, len(header)))))

	entries := v.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(t.out, t.colorSubtle.Sprint(gotext.Get("PLAN_EMPTY")))
	}
	for _, e := range entries {
		style, ok := t.categories[e.Category]
		if !ok {
			style = t.colorSubtle
		}
		pos := fmt.Sprintf("(%.2f, %.2f, %.2f)", e.Position.X, e.Position.Y, e.Position.Z)
		row := fmt.Sprintf("%-*s %-*s %-*s %*s %*.1f",
			colCategory, fit(string(e.Category), colCategory),
			colTag, fit(e.Tag, colTag),
			assetW, fit(string(e.Asset), assetW),
			colPosition, pos,
			colYaw, e.Yaw)
		fmt.Fprintln(t.out, style.Sprint(row))
	}

	fmt.Fprintln(t.out)
	counts := v.Counts()
	var parts []string
	for _, c := range registry.Categories() {
		if n := counts[c]; n > 0 {
			parts = append(parts, t.categories[c].Sprintf("%s %d", c, n))
		}
	}
	total := 0
	for _, n := range counts {
		total += n
	}
	fmt.Fprintf(t.out, "%s %d  %s\n", t.colorSubtle.Sprint(gotext.Get("PLAN_TOTAL")), total, strings.Join(parts, "  "))
}

// RenderHelp lists the interactive key bindings
func (t *TUIRenderer) RenderHelp() {
	byAction := input.GetBindingsByAction()
	actions := []input.Action{
		input.ActionGenerate, input.ActionClear, input.ActionDoorsDown,
		input.ActionDoorsUp, input.ActionDoorsToggle, input.ActionQuit,
	}
	var parts []string
	for _, a := range actions {
		codes := byAction[a]
		if len(codes) == 0 {
			continue
		}
		key := codes[0]
		for _, c := range codes[1:] {
			if len(c) < len(key) {
				key = c
			}
		}
		parts = append(parts, fmt.Sprintf("%s %s", t.colorAction.Sprint(key), input.ActionName(a)))
	}
	fmt.Fprintln(t.out, strings.Join(parts, t.colorSubtle.Sprint(" | ")))
}

// fit truncates s to n runes, marking the cut with '~'
func fit(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "~"
	}
	return string(r[:n-1]) + "~"
}
