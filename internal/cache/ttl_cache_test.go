package cache

import (
	"testing"
	"time"
)

func frozenCache[V any](t *testing.T) (*TTLCache[string, V], *time.Time) {
	t.Helper()
	c := NewTTLCache[string, V]()
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	return c, &now
}

func TestTTLCacheSetGet(t *testing.T) {
	c, _ := frozenCache[int](t)
	c.Set("a", 1, time.Minute)

	value, ok := c.Get("a")
	if !ok || value != 1 {
		t.Fatalf("expected hit with 1, got %v %v", value, ok)
	}
}

func TestTTLCacheExpiry(t *testing.T) {
	c, now := frozenCache[int](t)
	c.Set("short", 1, time.Minute)
	c.Set("forever", 2, 0)

	*now = now.Add(2 * time.Minute)

	if value, ok := c.Get("short"); ok {
		t.Fatalf("expected expired entry, got %v", value)
	}
	if _, ok := c.Get("forever"); !ok {
		t.Fatalf("expected entry without expiry to survive")
	}
}

func TestTTLCacheDelete(t *testing.T) {
	c, _ := frozenCache[string](t)
	c.Set("token", "user", time.Minute)
	c.Delete("token")
	if _, ok := c.Get("token"); ok {
		t.Fatalf("expected miss after delete")
	}
}

func TestTTLCachePurge(t *testing.T) {
	c, now := frozenCache[int](t)
	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Hour)
	c.Set("c", 3, 0)

	*now = now.Add(30 * time.Minute)

	if removed := c.Purge(); removed != 1 {
		t.Fatalf("expected 1 entry purged, got %d", removed)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 entries left, got %d", c.Len())
	}
	if _, ok := c.Get("b"); !ok {
		t.Fatalf("expected live entry to survive purge")
	}
}

func TestNilCacheIsSafe(t *testing.T) {
	var c *TTLCache[string, int]
	c.Set("a", 1, time.Minute)
	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Fatalf("expected nil cache to always miss")
	}
	if c.Purge() != 0 || c.Len() != 0 {
		t.Fatalf("expected nil cache to report empty")
	}
}
