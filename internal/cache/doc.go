// Package cache provides a generic LRU cache with hit statistics.
//
//	runs := cache.New[string, int](256)
//	runs.Set("key", 42)
//	v, ok := runs.Get("key")
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
