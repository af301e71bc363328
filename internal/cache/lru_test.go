package cache

import (
	"sync"
	"testing"
)

func TestNew(t *testing.T) {
	c := New[string, int](100)
	if c.Capacity() != 100 {
		t.Errorf("expected capacity 100, got %d", c.Capacity())
	}
	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d entries", c.Len())
	}
	if got := New[string, int](0).Capacity(); got != DefaultCapacity {
		t.Errorf("New(0).Capacity() = %d, want %d", got, DefaultCapacity)
	}
}

func TestGetSet(t *testing.T) {
	c := New[string, int](10)
	c.Set("key1", 42)

	val, ok := c.Get("key1")
	if !ok || val != 42 {
		t.Errorf("Get(key1) = %d, %v; want 42, true", val, ok)
	}
	if _, ok := c.Get("nonexistent"); ok {
		t.Error("expected nonexistent key to not exist")
	}

	c.Set("key1", 7)
	if val, _ := c.Get("key1"); val != 7 {
		t.Errorf("updated value = %d, want 7", val)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d after update, want 1", c.Len())
	}
}

func TestGetOrCreate(t *testing.T) {
	c := New[string, int](10)
	created := 0
	create := func() int {
		created++
		return 100
	}

	for i := 0; i < 3; i++ {
		if val := c.GetOrCreate("key1", create); val != 100 {
			t.Errorf("GetOrCreate = %d, want 100", val)
		}
	}
	if created != 1 {
		t.Errorf("create called %d times, want 1", created)
	}

	st := c.Stats()
	if st.Hits != 2 || st.Misses != 1 {
		t.Errorf("stats = %+v, want 2 hits and 1 miss", st)
	}
	if got := st.HitRate(); got < 0.66 || got > 0.67 {
		t.Errorf("HitRate() = %v", got)
	}
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[int, string](3)
	c.Set(1, "a")
	c.Set(2, "b")
	c.Set(3, "c")

	// Touch 1 so that 2 becomes the oldest.
	c.Get(1)
	c.Set(4, "d")

	if _, ok := c.Get(2); ok {
		t.Error("key 2 should have been evicted")
	}
	for _, k := range []int{1, 3, 4} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("key %d should still be cached", k)
		}
	}
	if st := c.Stats(); st.Evictions != 1 || st.Len != 3 {
		t.Errorf("stats = %+v, want 1 eviction and 3 entries", st)
	}
}

func TestClear(t *testing.T) {
	c := New[int, int](4)
	for i := 0; i < 4; i++ {
		c.Set(i, i)
	}
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d", c.Len())
	}
	c.Set(9, 9)
	if v, ok := c.Get(9); !ok || v != 9 {
		t.Error("cache unusable after Clear")
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New[int, int](16)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				k := (g*31 + i) % 64
				if v := c.GetOrCreate(k, func() int { return k * 2 }); v != k*2 {
					t.Errorf("GetOrCreate(%d) = %d", k, v)
					return
				}
			}
		}(g)
	}
	wg.Wait()
	if c.Len() > c.Capacity() {
		t.Errorf("Len() = %d exceeds capacity %d", c.Len(), c.Capacity())
	}
}
