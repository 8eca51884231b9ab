// Package config holds the room configuration and loads it from JSON.
// A Config is read-only once handed to a generator.
package config

import (
	"errors"
	"fmt"

	"roomgen/pkg/engine/geom"
	"roomgen/pkg/engine/host"
	"roomgen/pkg/engine/seed"
	"roomgen/pkg/game/placement"
	"roomgen/pkg/game/variant"
)

// MaxObjectSlots is the number of object slots a room supports
const MaxObjectSlots = 8

// ErrUnknownMode is returned by Validate for unrecognised mode names
var ErrUnknownMode = errors.New("unknown mode")

// RoleAssets is the asset palette of one role
type RoleAssets = variant.Role

// Sides holds one anchor per wall side
type Sides struct {
	N host.AnchorID `json:"n"`
	E host.AnchorID `json:"e"`
	S host.AnchorID `json:"s"`
	W host.AnchorID `json:"w"`
}

// Get returns the anchor for a side
func (s Sides) Get(side geom.Side) host.AnchorID {
	switch side {
	case geom.North:
		return s.N
	case geom.East:
		return s.E
	case geom.South:
		return s.S
	case geom.West:
		return s.W
	}
	return ""
}

// Corners holds pillar corner anchors
type Corners struct {
	NE host.AnchorID `json:"ne"`
	SE host.AnchorID `json:"se"`
	SW host.AnchorID `json:"sw"`
	NW host.AnchorID `json:"nw"`
}

// Anchors names every anchor a room can use
type Anchors struct {
	// Room is the owning entity; its Y is the floor height when Floor is absent
	Room     host.AnchorID `json:"room"`
	Floor    host.AnchorID `json:"floor"`
	Floor2   host.AnchorID `json:"floor2"`
	Ceiling  host.AnchorID `json:"ceiling"`
	Ceiling2 host.AnchorID `json:"ceiling2"`
	Walls    Sides         `json:"walls"`
	Doors    Sides         `json:"doors"`
	Walls2   Sides         `json:"walls2"` // only E and W are used
	Doors2   Sides         `json:"doors2"` // only E and W are used
	Pillars  Corners       `json:"pillars"`
	Pillars2 Corners       `json:"pillars2"` // only NE and NW are used
}

// ObjectSlot is one optional decorative object
type ObjectSlot struct {
	Asset        host.Asset    `json:"asset"`
	Anchor       host.AnchorID `json:"anchor"`
	Enabled      *bool         `json:"enabled,omitempty"` // nil means enabled
	Scale        *geom.Vec3    `json:"scale,omitempty"`
	UseRandom    bool          `json:"useRandom"`
	RandomRadius float64       `json:"randomRadius"`
	RandomYaw    bool          `json:"randomYaw"`
	SnapToFloor  bool          `json:"snapToFloor"`
	FloorYOffset float64       `json:"floorYOffset"`
}

// IsEnabled reports the slot toggle
func (s ObjectSlot) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// Eligible reports whether the slot can spawn
func (s ObjectSlot) Eligible() bool {
	return s.IsEnabled() && s.Asset != "" && s.Anchor != ""
}

// DoorRules configure door placement
type DoorRules struct {
	Mode             string  `json:"mode"`
	AutoCount        int     `json:"autoCount"`
	PreferOpposites  bool    `json:"preferOpposites"`
	Chance           float64 `json:"chance"`
	Min              int     `json:"min"`
	Max              int     `json:"max"`
	ManualCount      int     `json:"manualCount"`
	EnsureAtLeastOne bool    `json:"ensureAtLeastOne"`
}

// Policy converts the rules for the placement engine
func (d DoorRules) Policy() placement.DoorRules {
	mode, _ := placement.ParseMode(d.Mode)
	return placement.DoorRules{
		Mode:             mode,
		AutoCount:        d.AutoCount,
		PreferOpposites:  d.PreferOpposites,
		Chance:           d.Chance,
		Min:              d.Min,
		Max:              d.Max,
		ManualCount:      d.ManualCount,
		EnsureAtLeastOne: d.EnsureAtLeastOne,
	}
}

// ObjectRules configure object placement
type ObjectRules struct {
	Mode             string  `json:"mode"`
	ManualCount      int     `json:"manualCount"`
	Min              int     `json:"min"`
	Max              int     `json:"max"`
	Chance           float64 `json:"chance"`
	EnsureAtLeastOne bool    `json:"ensureAtLeastOne"`
	ShuffleAnchors   bool    `json:"shuffleAnchors"`
}

// Policy converts the rules for the placement engine
func (o ObjectRules) Policy() placement.ObjectRules {
	mode, _ := placement.ParseMode(o.Mode)
	return placement.ObjectRules{
		Mode:             mode,
		ManualCount:      o.ManualCount,
		Min:              o.Min,
		Max:              o.Max,
		Chance:           o.Chance,
		EnsureAtLeastOne: o.EnsureAtLeastOne,
	}
}

// Pivots are per-role offsets. X/Z rotate with the element yaw, Y is added as is.
type Pivots struct {
	WallFull geom.Vec3 `json:"wallFull"`
	WallDoor geom.Vec3 `json:"wallDoor"`
	Door     geom.Vec3 `json:"door"`
	Ceiling  geom.Vec3 `json:"ceiling"`
	Pillar   geom.Vec3 `json:"pillar"`
	Object   geom.Vec3 `json:"object"`
}

// Scales are per-role spawn scales; nil means unit scale
type Scales struct {
	Floor    *geom.Vec3 `json:"floor,omitempty"`
	WallFull *geom.Vec3 `json:"wallFull,omitempty"`
	WallDoor *geom.Vec3 `json:"wallDoor,omitempty"`
	Door     *geom.Vec3 `json:"door,omitempty"`
	Ceiling  *geom.Vec3 `json:"ceiling,omitempty"`
	Pillar   *geom.Vec3 `json:"pillar,omitempty"`
}

// Or returns *v, or geom.One when v is nil
func Or(v *geom.Vec3) geom.Vec3 {
	if v == nil {
		return geom.One
	}
	return *v
}

// Config is the full room configuration
type Config struct {
	Seed                string `json:"seed"`
	SeedMode            string `json:"seedMode"`
	SeedBase            string `json:"seedBase"`
	SeedSalt            string `json:"seedSalt"`
	EntityID            string `json:"entityId"` // identity used by per_entity seeding
	AutoGenerateOnStart bool   `json:"autoGenerateOnStart"`

	Doors   DoorRules   `json:"doors"`
	Objects ObjectRules `json:"objects"`

	Floor    RoleAssets `json:"floor"`
	WallFull RoleAssets `json:"wallFull"`
	WallDoor RoleAssets `json:"wallDoor"`
	Door     RoleAssets `json:"door"`
	Ceiling  RoleAssets `json:"ceiling"`
	Pillar   RoleAssets `json:"pillar"`

	Anchors Anchors      `json:"anchors"`
	Slots   []ObjectSlot `json:"slots"`

	SpawnCeiling         bool `json:"spawnCeiling"`
	CeilingUseFloorY     bool `json:"ceilingUseFloorY"`
	CeilingYawFromAnchor bool `json:"ceilingYawFromAnchor"`

	WallMeshAlongX    bool    `json:"wallMeshAlongX"`
	WallHalfThickness float64 `json:"wallHalfThickness"`
	DoorHideDepth     float64 `json:"doorHideDepth"`

	PillarUseFloorY     bool `json:"pillarUseFloorY"`
	PillarYawFromAnchor bool `json:"pillarYawFromAnchor"`
	ObjectYawFromAnchor bool `json:"objectYawFromAnchor"`

	Pivots Pivots `json:"pivots"`
	Scales Scales `json:"scales"`

	SnapAnchorsToFloorY bool `json:"snapAnchorsToFloorY"`
	Debug               bool `json:"debug"`
}

// Clone returns a deep copy: slots and every scale or toggle a pointer
// refers to are duplicated
func (c Config) Clone() Config {
	c.Scales = Scales{
		Floor:    cloneVec(c.Scales.Floor),
		WallFull: cloneVec(c.Scales.WallFull),
		WallDoor: cloneVec(c.Scales.WallDoor),
		Door:     cloneVec(c.Scales.Door),
		Ceiling:  cloneVec(c.Scales.Ceiling),
		Pillar:   cloneVec(c.Scales.Pillar),
	}
	if c.Slots != nil {
		slots := make([]ObjectSlot, len(c.Slots))
		for i, s := range c.Slots {
			s.Scale = cloneVec(s.Scale)
			if s.Enabled != nil {
				on := *s.Enabled
				s.Enabled = &on
			}
			slots[i] = s
		}
		c.Slots = slots
	}
	return c
}

func cloneVec(v *geom.Vec3) *geom.Vec3 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

// Default returns the stock configuration
func Default() Config {
	return Config{
		Seed:                seed.DefaultBase,
		SeedMode:            seed.Manual.String(),
		SeedBase:            seed.DefaultBase,
		AutoGenerateOnStart: true,
		Doors: DoorRules{
			Mode:             placement.Manual.String(),
			AutoCount:        2,
			PreferOpposites:  true,
			Chance:           0.5,
			Min:              1,
			Max:              4,
			ManualCount:      1,
			EnsureAtLeastOne: true,
		},
		Objects: ObjectRules{
			Mode:        placement.Manual.String(),
			ManualCount: 1,
			Min:         0,
			Max:         4,
			Chance:      0.7,
		},
		Floor:                RoleAssets{UseVariants: true},
		WallFull:             RoleAssets{UseVariants: true},
		WallDoor:             RoleAssets{UseVariants: true},
		Door:                 RoleAssets{UseVariants: true},
		Ceiling:              RoleAssets{UseVariants: true},
		Pillar:               RoleAssets{UseVariants: false},
		CeilingYawFromAnchor: true,
		WallHalfThickness:    0.10,
		DoorHideDepth:        1.0,
		PillarYawFromAnchor:  true,
		ObjectYawFromAnchor:  true,
		SnapAnchorsToFloorY:  true,
	}
}

// SeedParams returns the inputs for seed derivation
func (c *Config) SeedParams() seed.Params {
	mode, _ := seed.ParseMode(c.SeedMode)
	return seed.Params{
		Seed:     c.Seed,
		Base:     c.SeedBase,
		Salt:     c.SeedSalt,
		Mode:     mode,
		EntityID: c.EntityID,
	}
}

// HideDepth returns the door hide depth, never negative
func (c *Config) HideDepth() float64 {
	if c.DoorHideDepth < 0 {
		return 0
	}
	return c.DoorHideDepth
}

// Validate checks mode names and slot count
func (c *Config) Validate() error {
	if _, ok := seed.ParseMode(c.SeedMode); !ok {
		return fmt.Errorf("seedMode %q: %w", c.SeedMode, ErrUnknownMode)
	}
	if _, ok := placement.ParseMode(c.Doors.Mode); !ok {
		return fmt.Errorf("doors.mode %q: %w", c.Doors.Mode, ErrUnknownMode)
	}
	if _, ok := placement.ParseMode(c.Objects.Mode); !ok {
		return fmt.Errorf("objects.mode %q: %w", c.Objects.Mode, ErrUnknownMode)
	}
	if len(c.Slots) > MaxObjectSlots {
		return fmt.Errorf("%d object slots configured, at most %d supported", len(c.Slots), MaxObjectSlots)
	}
	return nil
}
