package wavefront

import (
	"path"
	"strconv"
	"strings"
)

// DefaultColor is the diffuse color of a material without a Kd line.
var DefaultColor = [3]float32{0.5, 0.5, 0.5}

// Texture is a handle returned by a TextureLoader. The image behind it may
// still be loading when the handle is stored on a material.
type Texture interface {
	Path() string
}

// TextureLoader starts loading the image at path and returns its handle.
type TextureLoader interface {
	LoadTexture(path string) Texture
}

// Material is a named diffuse material from an MTL file.
type Material struct {
	Name        string
	Color       [3]float32
	TexturePath string
	Texture     Texture // nil when no loader was supplied or no map_Kd was given
}

// MaterialOptions configures texture handling in ParseMaterials.
type MaterialOptions struct {
	ImagePrefix string        // joined with the base name of map_Kd paths
	Textures    TextureLoader // optional
}

// ParseMaterials parses MTL text into materials keyed by name.
//
// Lines are split on single spaces, unlike OBJ lines which accept any
// whitespace run. Kd or map_Kd before the first newmtl is an error.
func ParseMaterials(text string, opts MaterialOptions) (map[string]*Material, error) {
	prefix := opts.ImagePrefix
	if prefix == "" {
		prefix = DefaultImagePrefix
	}

	materials := make(map[string]*Material)
	var current *Material

	for i, line := range strings.Split(text, "\n") {
		lineNo := i + 1
		keyword, data, _ := strings.Cut(strings.TrimRight(line, "\r"), " ")
		fields := strings.Split(data, " ")

		switch keyword {
		case "newmtl":
			if data == "" {
				return nil, malformed(lineNo, "newmtl without a name")
			}
			current = &Material{Name: fields[0], Color: DefaultColor}
			materials[current.Name] = current

		case "Kd":
			if current == nil {
				return nil, malformed(lineNo, "Kd before any newmtl")
			}
			if len(fields) < 3 {
				return nil, malformed(lineNo, "Kd needs 3 values, got %d", len(fields))
			}
			for c := 0; c < 3; c++ {
				f, err := strconv.ParseFloat(fields[c], 32)
				if err != nil {
					return nil, malformed(lineNo, "Kd: bad number %q", fields[c])
				}
				current.Color[c] = float32(f)
			}

		case "map_Kd":
			if current == nil {
				return nil, malformed(lineNo, "map_Kd before any newmtl")
			}
			if data == "" {
				return nil, malformed(lineNo, "map_Kd without a path")
			}
			// Exporters write absolute or Windows paths; only the file name is kept.
			name := path.Base(strings.ReplaceAll(fields[0], "\\", "/"))
			current.TexturePath = path.Join(prefix, name)
			if opts.Textures != nil {
				current.Texture = opts.Textures.LoadTexture(current.TexturePath)
			}
		}
	}

	return materials, nil
}
