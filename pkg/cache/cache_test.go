package cache

import (
	"testing"
	"time"
)

// fakeClock lets tests step time forward deterministically
type fakeClock struct {
	t time.Time
}

func (f *fakeClock) now() time.Time { return f.t }

func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestCache[T any](ttl time.Duration) (*Cache[T], *fakeClock) {
	c := New[T](ttl)
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	c.now = clock.now
	return c, clock
}

func TestCacheSetGet(t *testing.T) {
	c, _ := newTestCache[string](time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Error("expected miss for unknown key")
	}

	c.Set("greeting", "hello")
	v, ok := c.Get("greeting")
	if !ok || v != "hello" {
		t.Errorf("expected hit with %q, got %q (hit=%v)", "hello", v, ok)
	}
}

func TestCacheExpiry(t *testing.T) {
	c, clock := newTestCache[int](time.Minute)

	c.Set("n", 7)
	clock.advance(59 * time.Second)
	if _, ok := c.Get("n"); !ok {
		t.Error("entry expired before its TTL")
	}

	clock.advance(2 * time.Second)
	if _, ok := c.Get("n"); ok {
		t.Error("entry survived past its TTL")
	}

	// Expired entries are removed on access.
	if c.Len() != 0 {
		t.Errorf("expected 0 entries after expired read, got %d", c.Len())
	}
}

func TestCacheSetTTLOverridesDefault(t *testing.T) {
	c, clock := newTestCache[int](time.Minute)

	c.SetTTL("short", 1, time.Second)
	c.Set("long", 2)

	clock.advance(2 * time.Second)
	if _, ok := c.Get("short"); ok {
		t.Error("short-TTL entry should be gone")
	}
	if _, ok := c.Get("long"); !ok {
		t.Error("default-TTL entry should still be live")
	}
}

func TestCacheDeleteAndClear(t *testing.T) {
	c, _ := newTestCache[string](time.Minute)

	c.Set("a", "1")
	c.Set("b", "2")

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Error("deleted entry still present")
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("unrelated entry was removed")
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("expected empty cache after Clear, got %d entries", c.Len())
	}
}

func TestCachePrune(t *testing.T) {
	c, clock := newTestCache[int](time.Minute)

	c.SetTTL("a", 1, time.Second)
	c.SetTTL("b", 2, time.Second)
	c.Set("c", 3)

	clock.advance(2 * time.Second)

	if dropped := c.Prune(); dropped != 2 {
		t.Errorf("expected 2 pruned entries, got %d", dropped)
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 remaining entry, got %d", c.Len())
	}
}

func TestCacheOverwrite(t *testing.T) {
	c, clock := newTestCache[int](time.Minute)

	c.SetTTL("n", 1, time.Second)
	clock.advance(30 * time.Second)

	// Overwriting refreshes both value and expiry.
	c.Set("n", 2)
	clock.advance(45 * time.Second)

	v, ok := c.Get("n")
	if !ok || v != 2 {
		t.Errorf("expected refreshed entry with value 2, got %d (hit=%v)", v, ok)
	}
}
