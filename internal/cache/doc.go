// Package cache provides a small generic LRU cache.
//
//	c := cache.New[string, []byte](32)
//	c.Set(src, spirv)
//	spirv, ok := c.Get(src)
//
// The compiled SPIR-V of every draw program is kept here, keyed by its
// WGSL source, so identical programs compile once per process.
package cache
