package ecs

import "testing"

func TestArenaHandleLifecycle(t *testing.T) {
	a := NewArena[int](4)

	h, ok := a.Add(7)
	if !ok {
		t.Fatal("Expected add to succeed")
	}
	if v, ok := a.Get(h); !ok || v != 7 {
		t.Errorf("Expected 7, got %d (ok=%v)", v, ok)
	}

	if v, ok := a.Remove(h); !ok || v != 7 {
		t.Errorf("Expected remove to return 7, got %d (ok=%v)", v, ok)
	}
	if _, ok := a.Get(h); ok {
		t.Error("Expected removed handle to be stale")
	}
	if _, ok := a.Remove(h); ok {
		t.Error("Expected second remove to fail")
	}

	h2, ok := a.Add(9)
	if !ok {
		t.Fatal("Expected re-add to succeed")
	}
	if h2.Index() != h.Index() {
		t.Errorf("Expected freed index %d to be reused, got %d", h.Index(), h2.Index())
	}
	if h2.Generation() == h.Generation() || h2.Generation() == 0 {
		t.Errorf("Expected fresh non-zero generation, old=%d new=%d", h.Generation(), h2.Generation())
	}
	if _, ok := a.Get(h); ok {
		t.Error("Expected old handle to stay invalid after slot reuse")
	}
	if v, _ := a.Get(h2); v != 9 {
		t.Errorf("Expected 9, got %d", v)
	}
}

func TestArenaNoneAndOutOfRange(t *testing.T) {
	a := NewArena[string](2)
	if _, ok := a.Get(None); ok {
		t.Error("Expected None to never resolve")
	}
	if _, ok := a.Ref(NewHandle(1000, 1)); ok {
		t.Error("Expected out-of-range index to resolve to absent")
	}
	if _, ok := a.Remove(NewHandle(1, 0)); ok {
		t.Error("Expected generation 0 handle to be rejected")
	}
	if a.Len() != 0 {
		t.Errorf("Expected empty arena, got %d", a.Len())
	}
}

func TestArenaFull(t *testing.T) {
	const n = 8
	a := NewArena[int](n)
	handles := make([]Handle, 0, n)
	for i := 0; i < n; i++ {
		h, ok := a.Add(i * 10)
		if !ok {
			t.Fatalf("Expected add %d to succeed", i)
		}
		handles = append(handles, h)
	}
	if _, ok := a.Add(999); ok {
		t.Fatal("Expected add into full arena to fail")
	}
	if a.Len() != n || a.Free() != 0 {
		t.Errorf("Expected len=%d free=0, got len=%d free=%d", n, a.Len(), a.Free())
	}
	for i, h := range handles {
		if v, ok := a.Get(h); !ok || v != i*10 {
			t.Errorf("Slot %d: expected %d, got %d (ok=%v)", i, i*10, v, ok)
		}
	}
}

func TestArenaPrefersLowestFreeIndex(t *testing.T) {
	a := NewArena[int](5)
	var hs []Handle
	for i := 0; i < 5; i++ {
		h, _ := a.Add(i)
		hs = append(hs, h)
	}
	a.Remove(hs[3])
	a.Remove(hs[1])

	h, ok := a.Add(100)
	if !ok || h.Index() != 1 {
		t.Fatalf("Expected index 1, got %d (ok=%v)", h.Index(), ok)
	}
	h, ok = a.Add(200)
	if !ok || h.Index() != 3 {
		t.Fatalf("Expected index 3, got %d (ok=%v)", h.Index(), ok)
	}
	if _, ok := a.Add(300); ok {
		t.Error("Expected arena to be full again")
	}
}

func TestArenaIterationOrder(t *testing.T) {
	a := NewArena[int](6)
	var hs []Handle
	for i := 0; i < 6; i++ {
		h, _ := a.Add(i)
		hs = append(hs, h)
	}
	a.Remove(hs[0])
	a.Remove(hs[4])

	for pass := 0; pass < 2; pass++ {
		var got []int
		last := -1
		for h, v := range a.All() {
			if int(h.Index()) <= last {
				t.Errorf("Expected ascending indices, %d after %d", h.Index(), last)
			}
			last = int(h.Index())
			if stored, ok := a.Get(h); !ok || stored != v {
				t.Errorf("Expected yielded handle %s to resolve to %d", h, v)
			}
			got = append(got, v)
		}
		if len(got) != a.Len() {
			t.Fatalf("Pass %d: expected %d entries, got %d", pass, a.Len(), len(got))
		}
		want := []int{1, 2, 3, 5}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("Pass %d: expected %v, got %v", pass, want, got)
				break
			}
		}
	}
}

func TestArenaEachMutates(t *testing.T) {
	a := NewArena[int](3)
	h0, _ := a.Add(1)
	h1, _ := a.Add(2)
	a.Each(func(_ Handle, v *int) { *v *= 10 })

	if v, _ := a.Get(h0); v != 10 {
		t.Errorf("Expected 10, got %d", v)
	}
	if v, _ := a.Get(h1); v != 20 {
		t.Errorf("Expected 20, got %d", v)
	}
	if p, ok := a.Ref(h1); !ok {
		t.Error("Expected Ref to resolve")
	} else {
		*p = 5
	}
	if v, _ := a.Get(h1); v != 5 {
		t.Errorf("Expected 5 after Ref write, got %d", v)
	}
}

func TestArenaIterationSurvivesRemoval(t *testing.T) {
	a := NewArena[int](5)
	for i := 0; i < 3; i++ {
		a.Add(i)
	}

	visited := 0
	for h := range a.All() {
		if _, ok := a.Remove(h); !ok {
			t.Errorf("Expected yielded handle %s to remove", h)
		}
		visited++
	}
	if visited != 3 || a.Len() != 0 {
		t.Errorf("Expected all 3 visited and removed, got visited=%d live=%d", visited, a.Len())
	}

	for i := 0; i < 4; i++ {
		a.Add(i * 10)
	}
	var seen []int
	a.Each(func(h Handle, v *int) {
		seen = append(seen, *v)
		if *v == 0 {
			// remove an entry ahead of the cursor
			a.Remove(NewHandle(h.Index()+2, a.slots[h.Index()+2].gen))
		}
	})
	want := []int{0, 10, 30}
	if len(seen) != len(want) {
		t.Fatalf("Expected %v, got %v", want, seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, seen)
			break
		}
	}
}

func TestArenaGenerationWrapsToOne(t *testing.T) {
	a := NewArena[int](1)
	a.slots[0].issued = 0xFFFF

	h, ok := a.Add(1)
	if !ok {
		t.Fatal("Expected add to succeed")
	}
	if h.Generation() != 1 {
		t.Errorf("Expected generation to wrap to 1, got %d", h.Generation())
	}
}

func TestArenaRandomOpsKeepInvariants(t *testing.T) {
	a := NewArena[int](16)
	live := map[Handle]int{}
	var dead []Handle

	// deterministic LCG so the sequence is reproducible
	seed := uint32(12345)
	next := func() uint32 {
		seed = seed*1664525 + 1013904223
		return seed >> 8
	}

	for step := 0; step < 2000; step++ {
		if next()%3 != 0 {
			h, ok := a.Add(step)
			if ok {
				live[h] = step
			} else if len(live) != a.Cap() {
				t.Fatalf("Add failed with %d live of %d", len(live), a.Cap())
			}
		} else if len(live) > 0 {
			for h := range live {
				if _, ok := a.Remove(h); !ok {
					t.Fatalf("Expected live handle %s to remove", h)
				}
				delete(live, h)
				dead = append(dead, h)
				break
			}
		}

		if a.Len() != len(live) {
			t.Fatalf("Expected len %d, got %d", len(live), a.Len())
		}
		for h, v := range live {
			if got, ok := a.Get(h); !ok || got != v {
				t.Fatalf("Expected %s -> %d, got %d (ok=%v)", h, v, got, ok)
			}
		}
		if a.frontier < a.Cap() && a.slots[a.frontier].gen != 0 {
			t.Fatalf("Frontier %d points at a live slot", a.frontier)
		}
		for i := 0; i < a.frontier; i++ {
			if a.slots[i].gen == 0 {
				t.Fatalf("Free slot %d below frontier %d", i, a.frontier)
			}
		}
	}
	for _, h := range dead {
		if a.Contains(h) {
			t.Fatalf("Expected removed handle %s to stay invalid", h)
		}
	}
}
