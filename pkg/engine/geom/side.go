package geom

import (
	"fmt"
	"strings"
)

// Side represents a cardinal wall direction
type Side int

// Side constants
const (
	North Side = iota
	East
	South
	West
)

// AllSides returns all sides in generation order
func AllSides() []Side {
	return []Side{North, East, South, West}
}

// String returns the short name of a side
func (s Side) String() string {
	switch s {
	case North:
		return "N"
	case East:
		return "E"
	case South:
		return "S"
	case West:
		return "W"
	default:
		return "?"
	}
}

// ParseSide parses "N", "north", "E", ... case-insensitively
func ParseSide(v string) (Side, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "n", "north":
		return North, true
	case "e", "east":
		return East, true
	case "s", "south":
		return South, true
	case "w", "west":
		return West, true
	default:
		return North, false
	}
}

// MarshalText encodes the side as its letter
func (s Side) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("invalid side %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText accepts anything ParseSide does
func (s *Side) UnmarshalText(b []byte) error {
	v, ok := ParseSide(string(b))
	if !ok {
		return fmt.Errorf("unknown side %q", string(b))
	}
	*s = v
	return nil
}

// IsValid returns true if the side is a valid cardinal side
func (s Side) IsValid() bool {
	return s >= North && s <= West
}

// Opposite returns the opposite side
func (s Side) Opposite() Side {
	switch s {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return s
	}
}

// baseYaw is the wall yaw before mesh alignment
func (s Side) baseYaw() float64 {
	switch s {
	case East:
		return 90
	case South:
		return 180
	case West:
		return 270
	default:
		return 0
	}
}

// SideYaw returns the wall yaw in degrees for a side.
// Meshes that run along Z by default get an extra 90 degrees.
func SideYaw(s Side, meshAlongX bool) float64 {
	offset := 90.0
	if meshAlongX {
		offset = 0
	}
	return NormalizeYaw(s.baseYaw() + offset)
}

// InwardNormal returns the unit vector pointing from the wall into the room
func InwardNormal(s Side) Vec3 {
	switch s {
	case North:
		return Vec3{0, 0, -1}
	case South:
		return Vec3{0, 0, 1}
	case East:
		return Vec3{-1, 0, 0}
	default:
		return Vec3{1, 0, 0}
	}
}
