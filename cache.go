package redraw

import "fmt"

// Cache is a SpriteCache that memoizes the sprites produced by a loader.
// Each key is loaded at most once until it is invalidated. Loader errors are
// not cached. Not safe for concurrent use.
type Cache struct {
	load    CacheFunc
	sprites map[string]Sprite

	// OnEvict, if set, is called with each sprite dropped by Put, Invalidate
	// or Clear. EbitenSurface.ForgetSprite releases the uploaded textures.
	OnEvict func(key string, s Sprite)

	hits, misses int
}

// NewCache creates a Cache backed by load.
func NewCache(load CacheFunc) *Cache {
	return &Cache{
		load:    load,
		sprites: make(map[string]Sprite),
	}
}

// Decode implements SpriteCache.
func (c *Cache) Decode(key string, a *Actor) (Sprite, error) {
	if s, ok := c.sprites[key]; ok {
		c.hits++
		return s, nil
	}
	c.misses++
	if c.load == nil {
		return nil, fmt.Errorf("redraw: cache has no loader for %q", key)
	}
	s, err := c.load(key, a)
	if err != nil {
		return nil, err
	}
	c.sprites[key] = s
	return s, nil
}

// Put stores s under key, replacing any cached sprite.
func (c *Cache) Put(key string, s Sprite) {
	if old, ok := c.sprites[key]; ok {
		c.evict(key, old)
	}
	c.sprites[key] = s
}

// Invalidate drops key so the next Decode loads it again.
func (c *Cache) Invalidate(key string) {
	if old, ok := c.sprites[key]; ok {
		delete(c.sprites, key)
		c.evict(key, old)
	}
}

// Clear drops every cached sprite.
func (c *Cache) Clear() {
	for key, s := range c.sprites {
		delete(c.sprites, key)
		c.evict(key, s)
	}
}

func (c *Cache) evict(key string, s Sprite) {
	if c.OnEvict != nil {
		c.OnEvict(key, s)
	}
}

// Len returns the number of cached sprites.
func (c *Cache) Len() int {
	return len(c.sprites)
}

// Stats returns the hit and miss counts since creation.
func (c *Cache) Stats() (hits, misses int) {
	return c.hits, c.misses
}

// ClassKey is a KeyFunc that keys actors by Class.
func ClassKey(a *Actor) (string, error) {
	if a.Class == "" {
		return "", fmt.Errorf("%w: %q", ErrNoClass, a.Name)
	}
	return a.Class, nil
}

// SizedClassKey is a KeyFunc that keys actors by Class and sprite size, for
// loaders that render each size separately.
func SizedClassKey(a *Actor) (string, error) {
	class, err := ClassKey(a)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s@%gx%g", class, a.SpriteWidth, a.SpriteHeight), nil
}
