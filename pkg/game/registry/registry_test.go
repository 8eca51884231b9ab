package registry

import (
	"testing"

	"roomgen/pkg/engine/host"
)

func TestRegistry_AddAndDoors(t *testing.T) {
	r := New()
	r.Add(Entry{Handle: 1, Category: Floor})
	d := r.AddDoor(Entry{Handle: 2, Category: Door})

	if r.Len() != 2 {
		t.Errorf("Len = %d, want 2", r.Len())
	}
	if len(r.Doors()) != 1 || r.Doors()[0] != d {
		t.Errorf("Doors = %v, want the added door", r.Doors())
	}
	if !d.Door {
		t.Error("AddDoor did not mark the entry as a door")
	}
	if !r.Has(1) || !r.Has(2) || r.Has(3) {
		t.Error("Has reports wrong membership")
	}
}

func TestRegistry_ReplaceKeepsSlot(t *testing.T) {
	r := New()
	r.Add(Entry{Handle: 1, Category: WallDoor})
	d := r.AddDoor(Entry{Handle: 2, Category: Door})

	r.Replace(d, 10)
	if r.Has(2) || !r.Has(10) {
		t.Error("Replace did not swap membership")
	}
	if r.Entries()[1].Handle != 10 || r.Doors()[0].Handle != 10 {
		t.Error("Replace did not update the entry in place")
	}
	if r.Len() != 2 {
		t.Errorf("Len = %d, want 2", r.Len())
	}
}

func TestRegistry_ClearUnloadsEachOnce(t *testing.T) {
	r := New()
	for h := host.Handle(1); h <= 4; h++ {
		r.Add(Entry{Handle: h})
	}
	d := r.AddDoor(Entry{Handle: 5})
	r.Replace(d, 6)
	r.SetDoorsHidden(true)

	calls := map[host.Handle]int{}
	r.Clear(func(h host.Handle) { calls[h]++ })

	for _, h := range []host.Handle{1, 2, 3, 4, 6} {
		if calls[h] != 1 {
			t.Errorf("handle %d unloaded %d times, want 1", h, calls[h])
		}
	}
	if calls[5] != 0 {
		t.Error("replaced handle was unloaded again")
	}
	if r.Len() != 0 || len(r.Entries()) != 0 || len(r.Doors()) != 0 {
		t.Error("Clear left entries behind")
	}
	if r.DoorsHidden() {
		t.Error("Clear did not reset hidden state")
	}

	r.Clear(func(h host.Handle) { t.Errorf("empty Clear unloaded %d", h) })
}

func TestRegistry_CountByCategory(t *testing.T) {
	r := New()
	r.Add(Entry{Handle: 1, Category: WallFull})
	r.Add(Entry{Handle: 2, Category: WallFull})
	r.AddDoor(Entry{Handle: 3, Category: Door})

	counts := r.CountByCategory()
	if counts[WallFull] != 2 || counts[Door] != 1 {
		t.Errorf("CountByCategory = %v", counts)
	}
}

func TestRegistry_Remove(t *testing.T) {
	r := New()
	r.Add(Entry{Handle: 1, Category: Floor})
	r.AddDoor(Entry{Handle: 2, Category: Door})
	doors := r.Doors()

	if !r.Remove(2) {
		t.Fatal("Remove(2) = false, want true")
	}
	if r.Remove(2) || r.Remove(7) {
		t.Error("Remove reported a handle that is not live")
	}
	if r.Len() != 1 || len(r.Entries()) != 1 || len(r.Doors()) != 0 {
		t.Errorf("after Remove: len=%d entries=%d doors=%d", r.Len(), len(r.Entries()), len(r.Doors()))
	}
	if r.CountByCategory()[Door] != 0 {
		t.Error("removed door still counted")
	}
	if len(doors) != 1 {
		t.Error("Remove changed a slice returned earlier")
	}
}
