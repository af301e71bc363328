// Package cache provides the LRU cache used to keep decoded glyph outlines.
//
//	c := cache.New[text.GlyphID, outline](512)
//	v := c.GetOrCreate(gid, func() outline { return decode(gid) })
//
// LRU is safe for concurrent use and must not be copied after creation.
package cache
