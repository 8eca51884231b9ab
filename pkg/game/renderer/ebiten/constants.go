// Package ebiten draws a top-down preview of the generated room.
package ebiten

import (
	"image/color"

	"roomgen/pkg/game/registry"
)

// Colour palette, one colour per category
var (
	colorBackground = color.RGBA{26, 26, 46, 255}
	colorGrid       = color.RGBA{40, 40, 64, 255}
	colorText       = color.RGBA{200, 210, 245, 255}
	colorYaw        = color.RGBA{255, 255, 255, 200}

	categoryColors = map[registry.Category]color.RGBA{
		registry.Floor:    {70, 70, 90, 255},
		registry.Pillar:   {100, 150, 255, 255},
		registry.WallFull: {180, 180, 200, 255},
		registry.WallDoor: {120, 200, 200, 255},
		registry.Door:     {255, 255, 0, 255},
		registry.Ceiling:  {160, 160, 180, 160},
		registry.Object:   {255, 150, 255, 255},
	}

	// categorySizes is the marker edge in pixels
	categorySizes = map[registry.Category]float32{
		registry.Floor:    28,
		registry.Pillar:   8,
		registry.WallFull: 12,
		registry.WallDoor: 12,
		registry.Door:     8,
		registry.Ceiling:  32,
		registry.Object:   6,
	}
)

const (
	defaultWidth  = 800
	defaultHeight = 600
	margin        = 48
	hudLines      = 3
	yawTick       = 14
)
