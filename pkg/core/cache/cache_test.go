package cache

import (
	"errors"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	c := New(Config{MaxItems: 100, TTL: time.Minute})
	defer c.Close()

	if c.Size() != 0 {
		t.Errorf("expected empty cache, got size %d", c.Size())
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	c := New(Config{})
	defer c.Close()

	if c.maxItems != 10000 {
		t.Errorf("expected default maxItems 10000, got %d", c.maxItems)
	}
	if c.ttl != 5*time.Minute {
		t.Errorf("expected default TTL 5m, got %v", c.ttl)
	}
}

func TestSetGet(t *testing.T) {
	c := New(DefaultConfig())
	defer c.Close()

	c.Set("key", "value")

	val, ok := c.Get("key")
	if !ok {
		t.Fatal("expected key to be present")
	}
	if val != "value" {
		t.Errorf("expected 'value', got %v", val)
	}
}

func TestGetMissing(t *testing.T) {
	c := New(DefaultConfig())
	defer c.Close()

	if _, ok := c.Get("missing"); ok {
		t.Error("expected missing key to report not found")
	}
}

func TestExpiration(t *testing.T) {
	c := New(DefaultConfig())
	defer c.Close()

	c.SetWithTTL("short", "value", 10*time.Millisecond)

	if _, ok := c.Get("short"); !ok {
		t.Fatal("expected entry before expiration")
	}

	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("short"); ok {
		t.Error("expected entry to expire")
	}
}

func TestZeroTTLNeverExpires(t *testing.T) {
	c := New(DefaultConfig())
	defer c.Close()

	c.SetWithTTL("forever", "value", 0)

	entry := &Entry{Value: "value"}
	if entry.IsExpired() {
		t.Error("entry with zero expiration should never expire")
	}

	if _, ok := c.Get("forever"); !ok {
		t.Error("expected zero-TTL entry to be present")
	}
}

func TestDelete(t *testing.T) {
	c := New(DefaultConfig())
	defer c.Close()

	c.Set("key", "value")
	c.Delete("key")

	if _, ok := c.Get("key"); ok {
		t.Error("expected key to be deleted")
	}
}

func TestClear(t *testing.T) {
	c := New(DefaultConfig())
	defer c.Close()

	c.Set("a", 1)
	c.Set("b", 2)
	c.Clear()

	if c.Size() != 0 {
		t.Errorf("expected empty cache after Clear, got size %d", c.Size())
	}
}

func TestEviction(t *testing.T) {
	c := New(Config{MaxItems: 2, TTL: time.Minute})
	defer c.Close()

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	if c.Size() > 2 {
		t.Errorf("expected at most 2 items after eviction, got %d", c.Size())
	}
}

func TestStats(t *testing.T) {
	c := New(DefaultConfig())
	defer c.Close()

	c.Set("key", "value")
	c.Get("key")     // hit
	c.Get("missing") // miss

	hits, misses, rate := c.Stats()
	if hits != 1 {
		t.Errorf("expected 1 hit, got %d", hits)
	}
	if misses != 1 {
		t.Errorf("expected 1 miss, got %d", misses)
	}
	if rate != 50.0 {
		t.Errorf("expected 50%% hit rate, got %f", rate)
	}
}

func TestGetOrSet(t *testing.T) {
	c := New(DefaultConfig())
	defer c.Close()

	calls := 0
	fn := func() (interface{}, error) {
		calls++
		return "computed", nil
	}

	val, err := c.GetOrSet("key", fn)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if val != "computed" {
		t.Errorf("expected 'computed', got %v", val)
	}

	// Second call should hit the cache
	val, err = c.GetOrSet("key", fn)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if val != "computed" {
		t.Errorf("expected 'computed', got %v", val)
	}
	if calls != 1 {
		t.Errorf("expected fn to be called once, got %d", calls)
	}
}

func TestGetOrSetError(t *testing.T) {
	c := New(DefaultConfig())
	defer c.Close()

	wantErr := errors.New("compute failed")
	_, err := c.GetOrSet("key", func() (interface{}, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("expected compute error, got %v", err)
	}

	// Failed computations must not be cached
	if _, ok := c.Get("key"); ok {
		t.Error("expected failed computation to not be cached")
	}
}

func TestClose(t *testing.T) {
	c := New(DefaultConfig())
	c.Close()
	c.Close() // Must be idempotent

	// Cache remains usable after Close, only cleanup stops
	c.Set("key", "value")
	if _, ok := c.Get("key"); !ok {
		t.Error("expected cache to remain usable after Close")
	}
}

func TestSourceKey(t *testing.T) {
	key1 := SourceKey("set x = 1")
	key2 := SourceKey("set x = 1")
	key3 := SourceKey("set x = 2")

	if key1 != key2 {
		t.Error("expected identical sources to produce identical keys")
	}
	if key1 == key3 {
		t.Error("expected different sources to produce different keys")
	}
}

func TestProgramCache(t *testing.T) {
	pc := NewProgramCache(DefaultProgramConfig())
	defer pc.Close()

	source := "set x = 1\nprint(x)"

	if _, ok := pc.GetProgram(source); ok {
		t.Error("expected empty cache miss")
	}

	pc.SetProgram(source, "parsed")

	val, ok := pc.GetProgram(source)
	if !ok {
		t.Fatal("expected cached program")
	}
	if val != "parsed" {
		t.Errorf("expected 'parsed', got %v", val)
	}

	pc.Invalidate(source)
	if _, ok := pc.GetProgram(source); ok {
		t.Error("expected program to be invalidated")
	}
}

func TestProgramCacheStats(t *testing.T) {
	pc := NewProgramCache(DefaultProgramConfig())
	defer pc.Close()

	pc.SetProgram("set x = 1", "parsed")
	pc.GetProgram("set x = 1")
	pc.GetProgram("set y = 2")

	stats := pc.Stats()
	if stats["program_cache_size"] != 1 {
		t.Errorf("expected cache size 1, got %v", stats["program_cache_size"])
	}
	if stats["program_hits"] != int64(1) {
		t.Errorf("expected 1 hit, got %v", stats["program_hits"])
	}
	if stats["program_misses"] != int64(1) {
		t.Errorf("expected 1 miss, got %v", stats["program_misses"])
	}
}

func TestGlobalProgramCache(t *testing.T) {
	first := GetProgramCache()
	second := GetProgramCache()

	if first != second {
		t.Error("expected global program cache to be a singleton")
	}
}

func BenchmarkCacheGet(b *testing.B) {
	c := New(DefaultConfig())
	defer c.Close()
	c.Set("key", "value")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get("key")
	}
}

func BenchmarkCacheSet(b *testing.B) {
	c := New(DefaultConfig())
	defer c.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Set("key", "value")
	}
}

func BenchmarkSourceKey(b *testing.B) {
	source := "set x = 10\nset y = 20\nprint(x + y)"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		SourceKey(source)
	}
}
