package scene

import (
	"errors"
	"testing"

	"roomgen/pkg/engine/geom"
	"roomgen/pkg/engine/host"
)

func TestWorld_SpawnAndUnload(t *testing.T) {
	w := NewWorld()
	var got error = errors.New("not called")
	h := w.Spawn(host.SpawnRequest{Asset: "crate", Position: geom.Vec3{X: 1}}, func(err error) { got = err })

	if got != nil {
		t.Fatalf("spawn callback err = %v, want nil", got)
	}
	if e := w.Entity(h); e == nil || e.Asset != "crate" {
		t.Fatalf("Entity(%d) = %+v, want crate", h, e)
	}
	if err := w.Unload(h); err != nil {
		t.Errorf("Unload = %v, want nil", err)
	}
	if err := w.Unload(h); !errors.Is(err, ErrUnknownHandle) {
		t.Errorf("second Unload = %v, want ErrUnknownHandle", err)
	}
	if w.Len() != 0 {
		t.Errorf("Len = %d, want 0", w.Len())
	}
}

func TestWorld_Reject(t *testing.T) {
	w := NewWorld()
	w.Reject("bad")

	var got error
	h := w.Spawn(host.SpawnRequest{Asset: "bad"}, func(err error) { got = err })
	if !errors.Is(got, ErrRejected) {
		t.Errorf("callback err = %v, want ErrRejected", got)
	}
	if h == 0 {
		t.Error("rejected spawn returned zero handle")
	}
	if w.Entity(h) != nil {
		t.Error("rejected spawn created an entity")
	}
	if len(w.Requests()) != 1 {
		t.Errorf("Requests = %d, want 1", len(w.Requests()))
	}
}

func TestWorld_Deferred(t *testing.T) {
	w := NewWorld()
	w.Deferred = true
	called := 0
	w.Spawn(host.SpawnRequest{Asset: "a"}, func(error) { called++ })
	if called != 0 {
		t.Fatalf("callback ran before Flush")
	}
	w.Flush()
	if called != 1 {
		t.Errorf("callback ran %d times, want 1", called)
	}
}

func TestWorld_Anchor(t *testing.T) {
	w := NewWorld()
	w.SetAnchor("floor", geom.Transform{Position: geom.Vec3{Y: 2}, Yaw: 45})

	if tr, ok := w.Anchor("floor"); !ok || tr.Yaw != 45 {
		t.Errorf("Anchor(floor) = (%+v, %v)", tr, ok)
	}
	if _, ok := w.Anchor(""); ok {
		t.Error("Anchor(\"\") ok = true, want false")
	}
	w.RemoveAnchor("floor")
	if _, ok := w.Anchor("floor"); ok {
		t.Error("removed anchor still resolves")
	}
}

func TestWorld_ForEachEntityOrdered(t *testing.T) {
	w := NewWorld()
	for _, a := range []host.Asset{"a", "b", "c"} {
		w.Spawn(host.SpawnRequest{Asset: a}, nil)
	}
	var order []host.Asset
	w.ForEachEntity(func(e *Entity) { order = append(order, e.Asset) })
	if len(order) != 3 || order[0] != "a" || order[2] != "c" {
		t.Errorf("ForEachEntity order = %v, want [a b c]", order)
	}
}
