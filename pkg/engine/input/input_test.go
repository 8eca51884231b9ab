package input

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestKeyReader_ReadKey(t *testing.T) {
	k := NewKeyReader(strings.NewReader("G\x1b[Ad \r\x01\x1b[Zq\x03"))
	want := []string{"g", "arrow_up", "d", "space", "enter", "q", "ctrl_c"}
	for i, w := range want {
		ev, err := k.ReadKey()
		if err != nil {
			t.Fatalf("key %d: %v", i, err)
		}
		if ev.Code != w || ev.Device != DeviceTerminal {
			t.Errorf("key %d = %+v, want %q", i, ev, w)
		}
	}
	if _, err := k.ReadKey(); !errors.Is(err, io.EOF) {
		t.Errorf("ReadKey at end = %v, want EOF", err)
	}
}

func TestKeyReader_LoneEscape(t *testing.T) {
	k := NewKeyReader(strings.NewReader("\x1b"))
	ev, err := k.ReadKey()
	if err != nil || ev.Code != "escape" {
		t.Errorf("ReadKey = (%+v, %v), want escape", ev, err)
	}
}

func TestMapToAction(t *testing.T) {
	tests := []struct {
		code string
		want Action
	}{
		{"g", ActionGenerate},
		{"c", ActionClear},
		{"d", ActionDoorsDown},
		{"u", ActionDoorsUp},
		{"t", ActionDoorsToggle},
		{"escape", ActionQuit},
		{"x", ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := MapToAction(RawInput{Code: tt.code}); got != tt.want {
				t.Errorf("MapToAction(%q) = %v, want %v", tt.code, ActionName(got), ActionName(tt.want))
			}
		})
	}
}

func TestSetSingleBinding(t *testing.T) {
	saved := make(map[string]Action, len(bindings))
	for k, v := range bindings {
		saved[k] = v
	}
	defer func() { bindings = saved }()

	SetSingleBinding(ActionGenerate, "r")
	if MapToAction(RawInput{Code: "g"}) != ActionNone {
		t.Error("old binding survived")
	}
	if MapToAction(RawInput{Code: "r"}) != ActionGenerate {
		t.Error("new binding missing")
	}

	SetSingleBinding(ActionQuit, "x")
	if MapToAction(RawInput{Code: "escape"}) != ActionQuit {
		t.Error("escape binding was removed")
	}
	if got := GetBindingsByAction()[ActionQuit]; strings.Join(got, ",") != "ctrl_c,escape,x" {
		t.Errorf("quit bindings = %v", got)
	}
}
