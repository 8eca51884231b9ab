package corridor

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/zyedidia/generic/mapset"

	"roomgen/pkg/engine/geom"
	"roomgen/pkg/engine/host"
)

// HasOpenState is anything that can report whether its door is open
type HasOpenState interface {
	IsOpen() bool
}

// Locatable door sources expose their transform for directional anchor search
type Locatable interface {
	Transform() geom.Transform
}

// Registry holds named door sources
type Registry struct {
	doors map[string]HasOpenState
	names mapset.Set[string]
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		doors: make(map[string]HasOpenState),
		names: mapset.New[string](),
	}
}

// Register adds or replaces a door source
func (r *Registry) Register(name string, d HasOpenState) {
	r.doors[name] = d
	r.names.Put(name)
}

// Unregister removes a door source
func (r *Registry) Unregister(name string) {
	delete(r.doors, name)
	r.names.Remove(name)
}

// Lookup returns a door source by name
func (r *Registry) Lookup(name string) (HasOpenState, bool) {
	if !r.names.Has(name) {
		return nil, false
	}
	return r.doors[name], true
}

// Len returns the number of registered doors
func (r *Registry) Len() int {
	return r.names.Size()
}

// Mode decides what a link reports to its anchor
type Mode int

// Link modes
const (
	OpenState Mode = iota // follow the door's open state
	Presence              // a door exists, so the corridor is open
)

// ParseMode parses "OPEN_STATE" or "PRESENCE" case-insensitively
func ParseMode(s string) (Mode, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "OPEN_STATE":
		return OpenState, true
	case "PRESENCE":
		return Presence, true
	}
	return OpenState, false
}

// String returns the configuration name of the mode
func (m Mode) String() string {
	if m == Presence {
		return "PRESENCE"
	}
	return "OPEN_STATE"
}

// MarshalText encodes the mode by name
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText accepts anything ParseMode does
func (m *Mode) UnmarshalText(b []byte) error {
	v, ok := ParseMode(string(b))
	if !ok {
		return fmt.Errorf("unknown link mode %q", string(b))
	}
	*m = v
	return nil
}

// Search configures the anchor lookup used when a link names no anchor
type Search struct {
	MaxDistance float64 `json:"maxDistance"` // default 8
	MaxAngleDeg float64 `json:"maxAngleDeg"` // default 30
	Directional bool    `json:"directional"` // score by alignment with the door's forward, else by distance
	NameFilter  string  `json:"nameFilter"`  // substring an anchor name must contain, case-insensitive
}

// DefaultSearch matches the stock bridge search
func DefaultSearch() Search {
	return Search{MaxDistance: 8, MaxAngleDeg: 30, Directional: true, NameFilter: ""}
}

// Link ties a door to a corridor anchor
type Link struct {
	Door   string `json:"door"`
	Anchor string `json:"anchor"` // empty: search near the door
	Mode   Mode   `json:"mode"`
	Search Search `json:"search"`
}

// UnmarshalJSON decodes over DefaultSearch so a link without "search" keys
// keeps the directional lookup
func (l *Link) UnmarshalJSON(b []byte) error {
	type plain Link
	p := plain{Search: DefaultSearch()}
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*l = Link(p)
	return nil
}

// Result is the outcome of applying one link
type Result struct {
	Link   Link
	Anchor string
	Open   bool
	Err    string // "door not found" or "anchor not found"; empty on success
}

// Bridge applies door state to corridor anchors. Call Check from the
// host's tick.
type Bridge struct {
	doors   *Registry
	host    host.Host
	anchors map[string]*Anchor
	links   []Link
}

// NewBridge creates a bridge over a door registry. h resolves anchor
// positions for searches and may be nil when every link names its anchor.
func NewBridge(doors *Registry, h host.Host) *Bridge {
	return &Bridge{doors: doors, host: h, anchors: make(map[string]*Anchor)}
}

// AddAnchor makes a corridor anchor addressable by its name
func (b *Bridge) AddAnchor(a *Anchor) {
	b.anchors[a.Name()] = a
}

// Link adds a door to anchor link
func (b *Bridge) Link(l Link) {
	b.links = append(b.links, l)
}

// Check applies each link once and reports the outcome per link
func (b *Bridge) Check() []Result {
	results := make([]Result, 0, len(b.links))
	for _, l := range b.links {
		res := Result{Link: l}
		door, ok := b.doors.Lookup(l.Door)
		if !ok {
			res.Err = "door not found"
			results = append(results, res)
			continue
		}
		a := b.resolve(l, door)
		if a == nil {
			res.Err = "anchor not found"
			results = append(results, res)
			continue
		}
		open := true
		if l.Mode == OpenState {
			open = door.IsOpen()
		}
		a.SetOpen(open)
		res.Anchor = a.Name()
		res.Open = open
		results = append(results, res)
	}
	return results
}

func (b *Bridge) resolve(l Link, door HasOpenState) *Anchor {
	if l.Anchor != "" {
		return b.anchors[l.Anchor]
	}
	loc, ok := door.(Locatable)
	if !ok || b.host == nil {
		return nil
	}
	return b.nearest(loc.Transform(), l.Search)
}

// nearest picks the best anchor around a door transform
func (b *Bridge) nearest(from geom.Transform, s Search) *Anchor {
	maxD := s.MaxDistance
	if maxD <= 0 {
		maxD = 8
	}
	angle := s.MaxAngleDeg
	if angle <= 0 {
		angle = 30
	}
	cosMax := math.Cos(angle * math.Pi / 180)
	fwd := geom.RotateOffset2D(0, 1, from.Yaw)
	filter := strings.ToLower(s.NameFilter)

	names := make([]string, 0, len(b.anchors))
	for name := range b.anchors {
		names = append(names, name)
	}
	sort.Strings(names)

	var best *Anchor
	bestScore := math.Inf(-1)
	for _, name := range names {
		if filter != "" && !strings.Contains(strings.ToLower(name), filter) {
			continue
		}
		a := b.anchors[name]
		t, ok := b.host.Anchor(a.cfg.Anchor)
		if !ok {
			continue
		}
		v := t.Position.Sub(from.Position)
		dist := math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
		if dist <= 0 || dist > maxD {
			continue
		}
		var score float64
		if s.Directional {
			dot := (fwd.X*v.X + fwd.Y*v.Y + fwd.Z*v.Z) / dist
			if dot < cosMax {
				continue
			}
			score = dot
		} else {
			score = -dist
		}
		if score > bestScore {
			best, bestScore = a, score
		}
	}
	return best
}
