// Package renderer holds what the room front ends share: the read-only
// view of a room and the contract of a text renderer.
package renderer

import "roomgen/pkg/game/registry"

// View is the room state a front end reads. *generator.Generator
// implements it.
type View interface {
	LastSeed() string
	Entries() []*registry.Entry
	Counts() map[registry.Category]int
	DoorsHidden() bool
}

// Renderer defines the interface for text rendering backends
type Renderer interface {
	// Init initializes the renderer (colors, etc.)
	Init()

	// Clear clears the display
	Clear()

	// RenderPlan renders the current room plan
	RenderPlan(v View)

	// ShowMessage displays a message to the user
	ShowMessage(msg string)

	// ShowError displays an error to the user
	ShowError(msg string)
}
