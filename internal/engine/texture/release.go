package texture

import "github.com/Faultbox/stockbars/pkg/wavefront"

// releaser is a material texture that owns GPU memory.
type releaser interface {
	Release()
}

// ReleaseEntity frees the GPU textures referenced by e's materials. A texture
// shared by several components is released once. It returns the number of
// textures released. Must be called on the thread that owns the GL context.
func ReleaseEntity(e *wavefront.Entity) int {
	if e == nil {
		return 0
	}
	seen := make(map[releaser]struct{})
	for _, c := range e.Components() {
		if c.Material == nil || c.Material.Texture == nil {
			continue
		}
		r, ok := c.Material.Texture.(releaser)
		if !ok {
			continue
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		r.Release()
	}
	return len(seen)
}
