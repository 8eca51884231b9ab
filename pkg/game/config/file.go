package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"roomgen/pkg/engine/geom"
	"roomgen/pkg/engine/host"
	"roomgen/pkg/game/corridor"
)

// DefaultDoorName is the name the room registers under as a door source
const DefaultDoorName = "room"

// ErrUnknownCorridor is returned for a link naming a corridor the file
// does not define
var ErrUnknownCorridor = errors.New("unknown corridor")

// File is the on-disk form: the room configuration, the anchor transforms
// the in-memory scene is built from and the corridor ends that follow the
// room's doors
type File struct {
	Room      Config                           `json:"room"`
	Anchors   map[host.AnchorID]geom.Transform `json:"anchors"`
	DoorName  string                           `json:"doorName"`
	Corridors []corridor.Config                `json:"corridors"`
	Links     []corridor.Link                  `json:"links"`
}

// Parse decodes a room file over Default() and validates it
func Parse(data []byte) (*File, error) {
	f := &File{Room: Default(), DoorName: DefaultDoorName}
	if err := json.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("failed to parse room JSON: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("invalid room: %w", err)
	}
	return f, nil
}

// Validate checks the room and that every link names a defined corridor
func (f *File) Validate() error {
	if err := f.Room.Validate(); err != nil {
		return err
	}
	names := make(map[string]bool, len(f.Corridors))
	for i, c := range f.Corridors {
		if c.Name == "" {
			return fmt.Errorf("corridor %d: missing name", i+1)
		}
		names[c.Name] = true
	}
	for i, l := range f.Links {
		if l.Anchor != "" && !names[l.Anchor] {
			return fmt.Errorf("link %d: %q: %w", i+1, l.Anchor, ErrUnknownCorridor)
		}
	}
	return nil
}

// Load reads and parses a room file
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read room file: %w", err)
	}
	return Parse(data)
}

// AnchorNames returns the anchor names of the file in sorted order
func (f *File) AnchorNames() []host.AnchorID {
	names := make([]host.AnchorID, 0, len(f.Anchors))
	for id := range f.Anchors {
		names = append(names, id)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
