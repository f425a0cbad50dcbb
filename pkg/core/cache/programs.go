package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// ProgramCache is a specialized cache for parsed programs
type ProgramCache struct {
	cache      *Cache
	programTTL time.Duration
}

// ProgramConfig holds configuration for the program cache
type ProgramConfig struct {
	ProgramTTL  time.Duration // TTL for parsed programs (default: 1 hour)
	MaxPrograms int           // Max cached programs (default: 1000)
}

// DefaultProgramConfig returns default program cache configuration
func DefaultProgramConfig() ProgramConfig {
	return ProgramConfig{
		ProgramTTL:  1 * time.Hour,
		MaxPrograms: 1000,
	}
}

// NewProgramCache creates a new program cache
func NewProgramCache(cfg ProgramConfig) *ProgramCache {
	if cfg.ProgramTTL <= 0 {
		cfg.ProgramTTL = 1 * time.Hour
	}
	if cfg.MaxPrograms <= 0 {
		cfg.MaxPrograms = 1000
	}

	return &ProgramCache{
		cache: New(Config{
			MaxItems: cfg.MaxPrograms,
			TTL:      cfg.ProgramTTL,
		}),
		programTTL: cfg.ProgramTTL,
	}
}

// SourceKey generates a cache key for a source text
func SourceKey(source string) string {
	hash := sha256.Sum256([]byte(source))
	return "program:" + hex.EncodeToString(hash[:16]) // Use first 16 bytes
}

// GetProgram retrieves a cached parse result for a source text
func (c *ProgramCache) GetProgram(source string) (interface{}, bool) {
	return c.cache.Get(SourceKey(source))
}

// SetProgram caches a parse result for a source text
func (c *ProgramCache) SetProgram(source string, program interface{}) {
	c.cache.SetWithTTL(SourceKey(source), program, c.programTTL)
}

// Invalidate removes the cached parse result for a source text
func (c *ProgramCache) Invalidate(source string) {
	c.cache.Delete(SourceKey(source))
}

// Stats returns cache statistics
func (c *ProgramCache) Stats() map[string]interface{} {
	hits, misses, rate := c.cache.Stats()

	return map[string]interface{}{
		"program_cache_size": c.cache.Size(),
		"program_hits":       hits,
		"program_misses":     misses,
		"program_hit_rate":   rate,
	}
}

// Clear clears the program cache
func (c *ProgramCache) Clear() {
	c.cache.Clear()
}

// Close stops the underlying cache's cleanup goroutine
func (c *ProgramCache) Close() {
	c.cache.Close()
}

// Global program cache singleton
var (
	globalProgramCache     *ProgramCache
	globalProgramCacheOnce sync.Once
)

// GetProgramCache returns the global program cache
func GetProgramCache() *ProgramCache {
	globalProgramCacheOnce.Do(func() {
		globalProgramCache = NewProgramCache(DefaultProgramConfig())
	})
	return globalProgramCache
}
