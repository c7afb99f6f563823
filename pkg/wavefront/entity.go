package wavefront

import (
	"fmt"
	"slices"

	"github.com/chewxy/math32"
)

// Bounds is an axis-aligned bounding box in model space.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Size returns the extent of the box along each axis.
func (b Bounds) Size() [3]float32 {
	return [3]float32{b.Max[0] - b.Min[0], b.Max[1] - b.Min[1], b.Max[2] - b.Min[2]}
}

// Center returns the midpoint of the box.
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// Entity is an immutable renderable model: an identity index stream over
// three parallel flattened attribute streams, split into material components.
// Slices returned by the accessors are shared and must not be modified.
type Entity struct {
	indices    []uint32
	positions  []float32
	texCoords  []float32
	normals    []float32
	components []Component
	bounds     Bounds
}

// NewEntity validates the stream shapes and component ranges and packages
// copies of them into an Entity. The caller keeps ownership of its slices.
func NewEntity(indices []uint32, positions, texCoords, normals []float32, components []Component) (*Entity, error) {
	if len(positions)%3 != 0 {
		return nil, fmt.Errorf("%w: %d position floats is not a multiple of 3", ErrInvalidEntity, len(positions))
	}
	corners := len(positions) / 3
	if len(indices) != corners {
		return nil, fmt.Errorf("%w: %d indices for %d corners", ErrInvalidEntity, len(indices), corners)
	}
	if len(texCoords) != corners*2 {
		return nil, fmt.Errorf("%w: %d texcoord floats for %d corners", ErrInvalidEntity, len(texCoords), corners)
	}
	if len(normals) != corners*3 {
		return nil, fmt.Errorf("%w: %d normal floats for %d corners", ErrInvalidEntity, len(normals), corners)
	}
	for i, c := range components {
		if c.Start < 0 || c.Count < 0 || c.Count%3 != 0 || c.End() > len(indices) {
			return nil, fmt.Errorf("%w: component %d (%s) range [%d, %d) outside [0, %d)",
				ErrInvalidEntity, i, c.MaterialName, c.Start, c.End(), len(indices))
		}
	}

	return &Entity{
		indices:    slices.Clone(indices),
		positions:  slices.Clone(positions),
		texCoords:  slices.Clone(texCoords),
		normals:    slices.Clone(normals),
		components: slices.Clone(components),
		bounds:     computeBounds(positions),
	}, nil
}

// Indices returns the index stream (0..N-1).
func (e *Entity) Indices() []uint32 { return e.indices }

// Positions returns the flattened positions, 3 floats per corner.
func (e *Entity) Positions() []float32 { return e.positions }

// TexCoords returns the flattened V-flipped texture coordinates, 2 floats per corner.
func (e *Entity) TexCoords() []float32 { return e.texCoords }

// Normals returns the flattened normals, 3 floats per corner.
func (e *Entity) Normals() []float32 { return e.normals }

// Components returns the material components in file order.
func (e *Entity) Components() []Component { return e.components }

// VertexCount returns the number of expanded corners.
func (e *Entity) VertexCount() int { return len(e.indices) }

// Bounds returns the model-space bounding box of the positions.
func (e *Entity) Bounds() Bounds { return e.bounds }

func computeBounds(positions []float32) Bounds {
	if len(positions) < 3 {
		return Bounds{}
	}
	b := Bounds{
		Min: [3]float32{math32.Inf(1), math32.Inf(1), math32.Inf(1)},
		Max: [3]float32{math32.Inf(-1), math32.Inf(-1), math32.Inf(-1)},
	}
	for i := 0; i+2 < len(positions); i += 3 {
		for axis := 0; axis < 3; axis++ {
			b.Min[axis] = math32.Min(b.Min[axis], positions[i+axis])
			b.Max[axis] = math32.Max(b.Max[axis], positions[i+axis])
		}
	}
	return b
}
