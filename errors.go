package redraw

import (
	"errors"
	"fmt"
)

// ConfigError reports a missing or invalid engine setting. It is returned by
// New, SetFramerateSkip, SetBounds and ResetSurfaces.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("redraw: invalid config %s: %s", e.Field, e.Reason)
}

var (
	// ErrUnrecognizedSprite is returned when a SpriteCache yields a value that
	// is not one of the Sprite variants (including a nil Sprite).
	ErrUnrecognizedSprite = errors.New("redraw: unrecognized sprite shape")

	// ErrSurfaceMismatch is returned by DrawSurface when the source surface
	// belongs to a different backend.
	ErrSurfaceMismatch = errors.New("redraw: surface backends differ")

	// ErrRegionNotFound is returned by Atlas lookups for unknown keys.
	ErrRegionNotFound = errors.New("redraw: atlas region not found")

	// ErrNoClass is returned by ClassKey for actors without a Class.
	ErrNoClass = errors.New("redraw: actor has no class")
)

func missing(field string) *ConfigError {
	return &ConfigError{Field: field, Reason: "required"}
}
