package wavefront

import (
	"errors"
	"math"
	"strings"
	"testing"
)

const triangleOBJ = "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0 0\nvt 1 0\nvt 0 1\nvn 0 0 1\nf 1/1/1 2/2/1 3/3/1\n"

// unitBarOBJ is a unit cube centered on the origin with two materials.
const unitBarOBJ = `# bar
mtllib bar.mtl
o Bar
v -0.5 -0.5  0.5
v  0.5 -0.5  0.5
v  0.5  0.5  0.5
v -0.5  0.5  0.5
v -0.5 -0.5 -0.5
v  0.5 -0.5 -0.5
v  0.5  0.5 -0.5
v -0.5  0.5 -0.5
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
vn 0 0 -1
vn 0 1 0
usemtl Side
s off
f 1/1/1 2/2/1 3/3/1
f 1/1/1 3/3/1 4/4/1
f 6/1/2 5/2/2 8/3/2
f 6/1/2 8/3/2 7/4/2
usemtl Top
f 4/1/3 3/2/3 7/3/3
f 4/1/3 7/3/3 8/4/3
`

func TestParseOBJ_Triangle(t *testing.T) {
	obj, err := ParseOBJ(triangleOBJ, ParseOptions{})
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	if len(obj.Components) != 1 {
		t.Fatalf("expected 1 component, got %d", len(obj.Components))
	}
	if c := obj.Components[0]; c.MaterialName != DefaultMaterialName || c.Start != 0 || c.Count != 3 {
		t.Errorf("unexpected component %+v", c)
	}

	if len(obj.Positions) != 9 {
		t.Errorf("expected 3 flattened vertices (9 floats), got %d floats", len(obj.Positions))
	}

	wantIdx := []uint32{0, 1, 2}
	if len(obj.Indices) != len(wantIdx) {
		t.Fatalf("expected indices %v, got %v", wantIdx, obj.Indices)
	}
	for i := range wantIdx {
		if obj.Indices[i] != wantIdx[i] {
			t.Errorf("index %d: expected %d, got %d", i, wantIdx[i], obj.Indices[i])
		}
	}

	wantV := []float32{1, 1, 0}
	for i, v := range wantV {
		if got := obj.TexCoords[i*2+1]; got != v {
			t.Errorf("corner %d: expected V %v, got %v", i, v, got)
		}
	}

	for i := 0; i < 3; i++ {
		n := obj.Normals[i*3 : i*3+3]
		if n[0] != 0 || n[1] != 0 || n[2] != 1 {
			t.Errorf("corner %d: expected normal (0,0,1), got %v", i, n)
		}
	}
}

func TestParseOBJ_Components(t *testing.T) {
	obj, err := ParseOBJ(unitBarOBJ, ParseOptions{})
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	if obj.MaterialLib != "bar.mtl" {
		t.Errorf("expected mtllib bar.mtl, got %q", obj.MaterialLib)
	}

	want := []Component{
		{MaterialName: "Side", Start: 0, Count: 12},
		{MaterialName: "Top", Start: 12, Count: 6},
	}
	if len(obj.Components) != len(want) {
		t.Fatalf("expected %d components, got %+v", len(want), obj.Components)
	}

	sum, next := 0, 0
	for i, c := range obj.Components {
		if c.MaterialName != want[i].MaterialName || c.Start != want[i].Start || c.Count != want[i].Count {
			t.Errorf("component %d: expected %+v, got %+v", i, want[i], c)
		}
		if c.Start != next {
			t.Errorf("component %d: starts at %d, expected contiguous start %d", i, c.Start, next)
		}
		next = c.End()
		sum += c.Count
	}
	if sum != len(obj.Indices) {
		t.Errorf("component counts sum to %d, index stream has %d", sum, len(obj.Indices))
	}
}

func TestParseOBJ_IndexStreamShape(t *testing.T) {
	for name, text := range map[string]string{"triangle": triangleOBJ, "bar": unitBarOBJ} {
		obj, err := ParseOBJ(text, ParseOptions{})
		if err != nil {
			t.Fatalf("%s: ParseOBJ failed: %v", name, err)
		}
		if len(obj.Indices)%3 != 0 {
			t.Errorf("%s: index count %d is not a multiple of 3", name, len(obj.Indices))
		}
		if len(obj.Indices) != len(obj.Positions)/3 {
			t.Errorf("%s: %d indices for %d positions", name, len(obj.Indices), len(obj.Positions)/3)
		}
		for i, idx := range obj.Indices {
			if idx != uint32(i) {
				t.Errorf("%s: index %d is %d, expected identity", name, i, idx)
				break
			}
		}
	}
}

func TestParseOBJ_EmptyMaterialRuns(t *testing.T) {
	text := "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0 0\nvn 0 0 1\nusemtl A\nusemtl B\nf 1/1/1 2/1/1 3/1/1\n"

	obj, err := ParseOBJ(text, ParseOptions{})
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if len(obj.Components) != 1 {
		t.Fatalf("expected only the B component, got %+v", obj.Components)
	}
	if obj.Components[0].MaterialName != "B" || obj.Components[0].Count != 3 {
		t.Errorf("unexpected component %+v", obj.Components[0])
	}
}

func TestParseOBJ_DefaultComponentKeptWhenFacesComeFirst(t *testing.T) {
	text := triangleOBJ + "usemtl Red\nf 3/3/1 2/2/1 1/1/1\n"

	obj, err := ParseOBJ(text, ParseOptions{})
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if len(obj.Components) != 2 {
		t.Fatalf("expected 2 components, got %+v", obj.Components)
	}
	if obj.Components[0].MaterialName != DefaultMaterialName {
		t.Errorf("expected leading default component, got %q", obj.Components[0].MaterialName)
	}
	if obj.Components[1].Start != 3 || obj.Components[1].Count != 3 {
		t.Errorf("unexpected second component %+v", obj.Components[1])
	}
}

func TestParseOBJ_VFlip(t *testing.T) {
	text := "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0.25 0.2\nvt 0.5 0.7\nvt 0.75 0.9\nvn 0 0 1\nf 1/3/1 2/1/1 3/2/1\n"
	raw := []float32{0.9, 0.2, 0.7} // original V of vt 3, 1, 2

	obj, err := ParseOBJ(text, ParseOptions{})
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	for i, v := range raw {
		stored := obj.TexCoords[i*2+1]
		if math.Abs(float64(stored-(1-v))) > 1e-6 {
			t.Errorf("corner %d: expected V %v, got %v", i, 1-v, stored)
		}
		if back := 1 - stored; math.Abs(float64(back-v)) > 1e-6 {
			t.Errorf("corner %d: flipping twice gave %v, expected %v", i, back, v)
		}
	}
}

func TestParseOBJ_ToleratesWhitespace(t *testing.T) {
	text := "  v\t0 0   0\r\nv 1  0 0\r\nv 0 1 0\r\nvt 0 0\r\nvn 0 0 1\r\n\r\nf   1/1/1\t2/1/1  3/1/1  \r\n"

	obj, err := ParseOBJ(text, ParseOptions{})
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if len(obj.Indices) != 3 {
		t.Errorf("expected 3 indices, got %d", len(obj.Indices))
	}
}

func TestParseOBJ_IgnoresUnknownDirectives(t *testing.T) {
	text := "# comment\no Thing\ng group\ns 1\nvp 0.5\n" + triangleOBJ + "l 1 2\n"

	obj, err := ParseOBJ(text, ParseOptions{})
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if len(obj.Indices) != 3 {
		t.Errorf("expected 3 indices, got %d", len(obj.Indices))
	}
}

func TestParseOBJ_MissingAttributes(t *testing.T) {
	text := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"

	if _, err := ParseOBJ(text, ParseOptions{}); !errors.Is(err, ErrMalformedFormat) {
		t.Errorf("expected ErrMalformedFormat for position-only face, got %v", err)
	}

	obj, err := ParseOBJ(text, ParseOptions{AllowMissingAttributes: true})
	if err != nil {
		t.Fatalf("ParseOBJ with AllowMissingAttributes failed: %v", err)
	}
	if len(obj.TexCoords) != 6 || len(obj.Normals) != 9 {
		t.Errorf("expected zero-filled attributes, got %d texcoords, %d normals", len(obj.TexCoords), len(obj.Normals))
	}
	if obj.TexCoords[1] != 1 {
		t.Errorf("expected flipped default V of 1, got %v", obj.TexCoords[1])
	}
}

func TestParseOBJ_Malformed(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"texcoord out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0 0\nvn 0 0 1\nf 1/1/1 2/2/1 3/1/1\n", "line 6"},
		{"position out of range", "v 0 0 0\nvt 0 0\nvn 0 0 1\nf 1/1/1 2/1/1 1/1/1\n", "out of range"},
		{"normal out of range", "v 0 0 0\nvt 0 0\nvn 0 0 1\nf 1/1/1 1/1/2 1/1/1\n", "out of range"},
		{"forward reference", "vt 0 0\nvn 0 0 1\nf 1/1/1 1/1/1 1/1/1\nv 0 0 0\n", "out of range"},
		{"zero index", "v 0 0 0\nvt 0 0\nvn 0 0 1\nf 0/1/1 1/1/1 1/1/1\n", "out of range"},
		{"negative index", "v 0 0 0\nvt 0 0\nvn 0 0 1\nf -1/1/1 1/1/1 1/1/1\n", "out of range"},
		{"quad", "v 0 0 0\nvt 0 0\nvn 0 0 1\nf 1/1/1 1/1/1 1/1/1 1/1/1\n", "4 corners"},
		{"line face", "v 0 0 0\nvt 0 0\nvn 0 0 1\nf 1/1/1 1/1/1\n", "2 corners"},
		{"bad number", "v 0 zero 0\n", "bad number"},
		{"short vertex", "v 0 0\n", "needs 3 values"},
		{"bad index", "v 0 0 0\nvt 0 0\nvn 0 0 1\nf a/1/1 1/1/1 1/1/1\n", "bad index"},
		{"usemtl without name", "usemtl\n", "usemtl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOBJ(tt.text, ParseOptions{})
			if !errors.Is(err, ErrMalformedFormat) {
				t.Fatalf("expected ErrMalformedFormat, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %q, got %q", tt.want, err.Error())
			}
		})
	}
}

func TestParseOBJ_NoFaces(t *testing.T) {
	obj, err := ParseOBJ("v 0 0 0\n", ParseOptions{})
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if len(obj.Components) != 0 || len(obj.Indices) != 0 {
		t.Errorf("expected empty output, got %d components and %d indices", len(obj.Components), len(obj.Indices))
	}
}
