package wavefront

import (
	"strconv"
	"strings"
)

// ParseOptions controls how strictly faces are validated.
type ParseOptions struct {
	// AllowMissingAttributes accepts corners without a texcoord or normal
	// index ("1", "1//1", "1/1"). Missing attributes are emitted as zeros.
	AllowMissingAttributes bool
}

// Component is a contiguous run of triangle corners sharing one material.
type Component struct {
	MaterialName string
	Material     *Material // nil until materials are resolved
	Start        int       // offset into the index stream
	Count        int       // number of indices, always a multiple of 3
}

// End returns the index one past the component's last corner.
func (c Component) End() int {
	return c.Start + c.Count
}

// OBJ holds the flattened output of a single OBJ scan.
type OBJ struct {
	MaterialLib string

	Indices    []uint32
	Positions  []float32 // 3 per corner
	TexCoords  []float32 // 2 per corner, V already flipped
	Normals    []float32 // 3 per corner
	Components []Component
}

// Entity packages the scan result into an immutable Entity. Later changes to
// o do not reach the returned Entity.
func (o *OBJ) Entity() (*Entity, error) {
	return NewEntity(o.Indices, o.Positions, o.TexCoords, o.Normals, o.Components)
}

// objParser is the private accumulator of one scan.
type objParser struct {
	opts ParseOptions

	positions [][3]float32
	texCoords [][2]float32
	normals   [][3]float32

	out     *OBJ
	current int // index of the active component in out.Components
}

// ParseOBJ scans OBJ text and expands every triangle corner into the flat
// attribute streams. Faces must be triangulated.
func ParseOBJ(text string, opts ParseOptions) (*OBJ, error) {
	p := &objParser{
		opts: opts,
		out: &OBJ{
			Components: []Component{{MaterialName: DefaultMaterialName}},
		},
	}

	for i, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if err := p.directive(i+1, fields[0], fields[1:]); err != nil {
			return nil, err
		}
	}

	// Drop runs that never received a face: the implicit leading component
	// when a material is declared first, and back-to-back usemtl lines.
	kept := p.out.Components[:0]
	for _, c := range p.out.Components {
		if c.Count > 0 {
			kept = append(kept, c)
		}
	}
	p.out.Components = kept

	return p.out, nil
}

func (p *objParser) directive(line int, keyword string, data []string) error {
	switch keyword {
	case "v":
		v, err := parseFloats(line, keyword, data, 3)
		if err != nil {
			return err
		}
		p.positions = append(p.positions, [3]float32{v[0], v[1], v[2]})

	case "vt":
		// Stored raw; the V flip happens when a corner is emitted.
		v, err := parseFloats(line, keyword, data, 2)
		if err != nil {
			return err
		}
		p.texCoords = append(p.texCoords, [2]float32{v[0], v[1]})

	case "vn":
		v, err := parseFloats(line, keyword, data, 3)
		if err != nil {
			return err
		}
		p.normals = append(p.normals, [3]float32{v[0], v[1], v[2]})

	case "mtllib":
		if len(data) == 0 {
			return malformed(line, "mtllib without a file name")
		}
		p.out.MaterialLib = data[0]

	case "usemtl":
		if len(data) == 0 {
			return malformed(line, "usemtl without a material name")
		}
		p.out.Components = append(p.out.Components, Component{
			MaterialName: data[0],
			Start:        len(p.out.Indices),
		})
		p.current = len(p.out.Components) - 1

	case "f":
		if len(data) != 3 {
			return malformed(line, "face has %d corners, only triangles are supported", len(data))
		}
		for _, corner := range data {
			if err := p.corner(line, corner); err != nil {
				return err
			}
		}
		p.out.Components[p.current].Count += 3
	}

	// Anything else (comments, o, g, s, ...) is ignored.
	return nil
}

// corner resolves one "v/vt/vn" reference and appends it to every stream.
func (p *objParser) corner(line int, ref string) error {
	parts := strings.Split(ref, "/")
	if len(parts) > 3 {
		return malformed(line, "corner %q has more than three indices", ref)
	}

	pi, err := resolveIndex(line, ref, parts[0], len(p.positions))
	if err != nil {
		return err
	}
	pos := p.positions[pi]

	var uv [2]float32
	if len(parts) > 1 && parts[1] != "" {
		ti, err := resolveIndex(line, ref, parts[1], len(p.texCoords))
		if err != nil {
			return err
		}
		uv = p.texCoords[ti]
	} else if !p.opts.AllowMissingAttributes {
		return malformed(line, "corner %q has no texture coordinate index", ref)
	}

	var n [3]float32
	if len(parts) > 2 && parts[2] != "" {
		ni, err := resolveIndex(line, ref, parts[2], len(p.normals))
		if err != nil {
			return err
		}
		n = p.normals[ni]
	} else if !p.opts.AllowMissingAttributes {
		return malformed(line, "corner %q has no normal index", ref)
	}

	p.out.Positions = append(p.out.Positions, pos[0], pos[1], pos[2])
	p.out.TexCoords = append(p.out.TexCoords, uv[0], 1-uv[1])
	p.out.Normals = append(p.out.Normals, n[0], n[1], n[2])
	p.out.Indices = append(p.out.Indices, uint32(len(p.out.Indices)))
	return nil
}

// resolveIndex converts a 1-based OBJ index into a 0-based pool index.
func resolveIndex(line int, ref, field string, poolLen int) (int, error) {
	idx, err := strconv.Atoi(field)
	if err != nil {
		return 0, malformed(line, "corner %q: bad index %q", ref, field)
	}
	if idx < 1 || idx > poolLen {
		return 0, malformed(line, "corner %q: index %d out of range [1, %d]", ref, idx, poolLen)
	}
	return idx - 1, nil
}

// parseFloats reads the first n fields as float32 values. Extra fields
// (such as an optional w component) are ignored.
func parseFloats(line int, keyword string, data []string, n int) ([]float32, error) {
	if len(data) < n {
		return nil, malformed(line, "%s needs %d values, got %d", keyword, n, len(data))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(data[i], 32)
		if err != nil {
			return nil, malformed(line, "%s: bad number %q", keyword, data[i])
		}
		out[i] = float32(f)
	}
	return out, nil
}
