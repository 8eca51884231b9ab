// Package corridor swaps a corridor end between its open and closed mesh and
// keeps that state in step with a door.
package corridor

import (
	"encoding/json"
	"log"
	"os"
	"strings"

	"roomgen/pkg/engine/geom"
	"roomgen/pkg/engine/host"
)

// Variant index hashing constants
const (
	primeX      = 73856093
	primeY      = 19349663
	primeDir    = 83492791
	closedSalt  = 0xB5297A4D
	refreshMult = 2654435761
)

// RandomMode controls how the variant index moves between refreshes
type RandomMode int

// Random modes
const (
	Deterministic RandomMode = iota // fixed per grid cell and direction
	PerRefresh                      // changes on every refresh
)

// ParseRandomMode parses "deterministic" or "per_refresh"; anything else is Deterministic
func ParseRandomMode(s string) RandomMode {
	if strings.EqualFold(strings.TrimSpace(s), "per_refresh") {
		return PerRefresh
	}
	return Deterministic
}

// String returns the configuration name of the mode
func (m RandomMode) String() string {
	if m == PerRefresh {
		return "per_refresh"
	}
	return "deterministic"
}

// Config describes one corridor end
type Config struct {
	Name   string        `json:"name"`
	Anchor host.AnchorID `json:"anchor"`
	GridX  int           `json:"gridX"`
	GridY  int           `json:"gridY"`
	Dir    geom.Side     `json:"dir"`

	Open bool `json:"open"` // initial state

	OpenVariants   [3]host.Asset `json:"openVariants"`
	ClosedVariants [3]host.Asset `json:"closedVariants"`
	ClosedCap      host.Asset    `json:"closedCap"` // used when no closed variant is set

	RandomizeOpen    bool   `json:"randomizeOpen"`
	ForceOpenIndex   int    `json:"forceOpenIndex"`
	OpenMode         string `json:"openMode"`
	RandomizeClosed  bool   `json:"randomizeClosed"`
	ForceClosedIndex int    `json:"forceClosedIndex"`
	ClosedMode       string `json:"closedMode"`

	SpawnOnStart bool `json:"spawnOnStart"`
	Debug        bool `json:"debug"`
}

// DefaultConfig returns a corridor end with randomized variants
func DefaultConfig() Config {
	return Config{
		RandomizeOpen:    true,
		ForceOpenIndex:   1,
		RandomizeClosed:  true,
		ForceClosedIndex: 1,
		SpawnOnStart:     true,
	}
}

// UnmarshalJSON decodes over DefaultConfig so omitted keys keep their defaults
func (c *Config) UnmarshalJSON(b []byte) error {
	type plain Config
	p := plain(DefaultConfig())
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*c = Config(p)
	return nil
}

// Anchor spawns the open or closed mesh at a corridor end.
// Refreshes never overlap: one requested while a spawn is outstanding is
// coalesced and runs when that spawn completes.
type Anchor struct {
	cfg  Config
	host host.Host
	log  *log.Logger

	open    bool
	handle  host.Handle
	asset   host.Asset
	spawned bool
	busy    bool
	pending bool
	tick    int
}

// NewAnchor creates a corridor end. A nil logger logs to stderr.
func NewAnchor(cfg Config, h host.Host, logger *log.Logger) *Anchor {
	if logger == nil {
		logger = log.New(os.Stderr, "[corridor] ", log.LstdFlags)
	}
	return &Anchor{cfg: cfg, host: h, log: logger, open: cfg.Open}
}

// Name returns the configured name
func (a *Anchor) Name() string {
	return a.cfg.Name
}

// Start spawns the initial mesh if configured to
func (a *Anchor) Start() {
	if a.cfg.SpawnOnStart {
		a.Refresh()
	}
}

// IsOpen reports the current state
func (a *Anchor) IsOpen() bool {
	return a.open
}

// SetOpen changes the state, refreshing only when it differs
func (a *Anchor) SetOpen(open bool) {
	if open == a.open {
		return
	}
	a.open = open
	a.Refresh()
}

// Current returns the spawned asset and handle, if any
func (a *Anchor) Current() (host.Asset, host.Handle, bool) {
	return a.asset, a.handle, a.spawned
}

// Refreshes returns how many refreshes have run
func (a *Anchor) Refreshes() int {
	return a.tick
}

// Refresh replaces the spawned mesh with the one matching the current state
func (a *Anchor) Refresh() {
	if a.busy {
		a.pending = true
		return
	}
	a.busy = true
	a.pending = false
	a.tick++

	a.Despawn()

	asset, ok := a.pick()
	if !ok {
		if a.cfg.Debug {
			a.log.Printf("%s: no asset for open=%v", a.cfg.Name, a.open)
		}
		a.finish()
		return
	}

	t, _ := a.host.Anchor(a.cfg.Anchor)
	req := host.SpawnRequest{
		Asset:    asset,
		Position: t.Position,
		Rotation: geom.FromYaw(t.Yaw),
		Yaw:      t.Yaw,
		Scale:    geom.One,
	}
	a.asset = asset
	a.spawned = true

	// a callback delivered inside Spawn finishes only once the handle is stored
	inline, completed := true, false
	a.handle = a.host.Spawn(req, func(err error) {
		if err != nil && a.cfg.Debug {
			a.log.Printf("%s: spawn of %s failed: %v", a.cfg.Name, asset, err)
		}
		if inline {
			completed = true
			return
		}
		a.finish()
	})
	inline = false
	if completed {
		a.finish()
	}
}

func (a *Anchor) finish() {
	a.busy = false
	if a.pending {
		a.Refresh()
	}
}

// Despawn removes the current mesh, ignoring unload errors
func (a *Anchor) Despawn() {
	if !a.spawned {
		return
	}
	_ = a.host.Unload(a.handle)
	a.spawned = false
	a.asset = ""
	a.handle = 0
}

func (a *Anchor) pick() (host.Asset, bool) {
	if a.open {
		return a.pickFrom(a.cfg.OpenVariants, a.cfg.RandomizeOpen, a.cfg.ForceOpenIndex, ParseRandomMode(a.cfg.OpenMode), 0)
	}
	if asset, ok := a.pickFrom(a.cfg.ClosedVariants, a.cfg.RandomizeClosed, a.cfg.ForceClosedIndex, ParseRandomMode(a.cfg.ClosedMode), closedSalt); ok {
		return asset, true
	}
	if a.cfg.ClosedCap != "" {
		return a.cfg.ClosedCap, true
	}
	return "", false
}

func (a *Anchor) pickFrom(variants [3]host.Asset, randomize bool, forced int, mode RandomMode, salt uint32) (host.Asset, bool) {
	var list []host.Asset
	for _, v := range variants {
		if v != "" {
			list = append(list, v)
		}
	}
	if len(list) == 0 {
		return "", false
	}
	if !randomize {
		i := max(1, min(3, forced)) - 1
		if i < len(list) {
			return list[i], true
		}
		return list[0], true
	}
	idx := VariantIndex(a.cfg.GridX, a.cfg.GridY, a.cfg.Dir, salt, mode, a.tick)
	return list[idx%uint32(len(list))], true
}

// VariantIndex hashes a grid cell and direction into a variant seed.
// PerRefresh additionally mixes in the refresh counter.
func VariantIndex(gx, gy int, dir geom.Side, salt uint32, mode RandomMode, tick int) uint32 {
	h := uint32(int64(gx)*primeX) ^ uint32(int64(gy)*primeY) ^ uint32(int64(dir)*primeDir)
	h ^= salt
	if mode == PerRefresh {
		h ^= uint32(uint64(tick+1) * refreshMult)
	}
	return h
}
