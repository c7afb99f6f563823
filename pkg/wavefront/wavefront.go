// Package wavefront provides a minimal Wavefront OBJ/MTL loader that expands
// indexed faces into flat per-corner vertex streams ready for indexed draws.
package wavefront

import (
	"errors"
	"fmt"
)

// Parser errors.
var (
	ErrMalformedFormat    = errors.New("malformed wavefront data")
	ErrUnresolvedMaterial = errors.New("unresolved material")
	ErrInvalidEntity      = errors.New("invalid entity")
)

// DefaultMaterialName tags the implicit component that collects faces
// declared before the first usemtl.
const DefaultMaterialName = "Default"

// DefaultImagePrefix is prepended to texture file names found in map_Kd.
const DefaultImagePrefix = "images/"

// malformed builds an ErrMalformedFormat error pointing at a 1-based line.
func malformed(line int, format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrMalformedFormat, line, fmt.Sprintf(format, args...))
}
