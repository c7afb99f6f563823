package chart

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/stockbars/pkg/wavefront"
)

// DrawCommand is one instanced draw of the bar entity.
type DrawCommand struct {
	Model  mgl32.Mat4
	Normal mgl32.Mat3 // inverse transpose of Model's upper 3x3
	Color  Color
	Point  DataPoint
}

// Frame is everything the renderer needs for one frame.
type Frame struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Bars       []DrawCommand
	Skipped    int // points rejected by BarTransform
}

// FrameInput groups the read-only inputs of BuildFrame.
type FrameInput struct {
	Scene   Scene
	Entity  *wavefront.Entity // nil while the model is loading
	Points  []DataPoint       // nil or empty until data arrives
	Layout  Layout
	Palette Palette
	Aspect  float32
}

// BuildFrame turns a scene snapshot, the bar entity and the data points into
// draw commands. A missing entity or empty data produces a frame with no bars.
func BuildFrame(in FrameInput) Frame {
	f := Frame{
		View:       in.Scene.Camera.ViewMatrix(),
		Projection: in.Scene.Camera.ProjectionMatrix(in.Aspect),
	}
	if in.Entity == nil || len(in.Points) == 0 {
		return f
	}

	vmax := MaxValue(in.Points)
	bounds := in.Entity.Bounds()
	angle := in.Scene.BarAngle()

	f.Bars = make([]DrawCommand, 0, len(in.Points))
	for _, p := range in.Points {
		m, err := BarTransform(p, vmax, bounds, in.Layout, angle)
		if err != nil {
			f.Skipped++
			continue
		}
		f.Bars = append(f.Bars, DrawCommand{
			Model:  m,
			Normal: NormalMatrix(m, angle),
			Color:  in.Palette.For(p.Category),
			Point:  p,
		})
	}
	return f
}

// NormalMatrix returns the matrix that carries model-space normals of m into
// world space. A flat bar has no inverse; its normals only follow the
// rotation of angle degrees.
func NormalMatrix(m mgl32.Mat4, angle float32) mgl32.Mat3 {
	upper := m.Mat3()
	if mgl32.Abs(upper.Det()) < 1e-6 {
		return mgl32.Rotate3DY(mgl32.DegToRad(angle))
	}
	return upper.Inv().Transpose()
}
