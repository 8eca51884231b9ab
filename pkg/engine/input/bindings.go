package input

import "sort"

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DeviceTerminal
)

// Action represents a high-level intent of the operator.
type Action int

const (
	ActionNone Action = iota

	ActionGenerate
	ActionClear
	ActionDoorsDown
	ActionDoorsUp
	ActionDoorsToggle
	ActionQuit
)

// RawInput is an event emitted directly from an input device.
// Code is a device-specific identifier (e.g. "g", "escape").
type RawInput struct {
	Device Device
	Code   string
}

// bindings maps raw codes to actions. Multiple codes may point to the same Action.
var bindings = map[string]Action{
	"g":     ActionGenerate,
	"enter": ActionGenerate,
	"c":     ActionClear,
	"d":     ActionDoorsDown,
	"u":     ActionDoorsUp,
	"t":     ActionDoorsToggle,
	"space": ActionDoorsToggle,

	"q":      ActionQuit,
	"escape": ActionQuit,
	"ctrl_c": ActionQuit,
}

// MapToAction applies the current bindings to a raw input
func MapToAction(ev RawInput) Action {
	if act, ok := bindings[ev.Code]; ok {
		return act
	}
	return ActionNone
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	switch a {
	case ActionGenerate:
		return "Generate"
	case ActionClear:
		return "Clear"
	case ActionDoorsDown:
		return "Doors Down"
	case ActionDoorsUp:
		return "Doors Up"
	case ActionDoorsToggle:
		return "Toggle Doors"
	case ActionQuit:
		return "Quit"
	default:
		return "None"
	}
}

// GetBindingsByAction returns the current bindings grouped by action,
// codes sorted within each action.
func GetBindingsByAction() map[Action][]string {
	result := make(map[Action][]string)
	for code, act := range bindings {
		result[act] = append(result[act], code)
	}
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}

// SetSingleBinding replaces all bindings for the given action with a single
// code. The quit bindings "escape" and "ctrl_c" cannot be removed.
func SetSingleBinding(action Action, code string) {
	for c, a := range bindings {
		if c == "escape" || c == "ctrl_c" {
			continue
		}
		if a == action {
			delete(bindings, c)
		}
	}
	if code != "" && code != "escape" && code != "ctrl_c" {
		bindings[code] = action
	}
}
