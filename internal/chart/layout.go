package chart

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/stockbars/pkg/wavefront"
)

// ErrInvalidValue is returned for negative, NaN or infinite bar values.
// Clamping belongs to the data source, not to the transform.
var ErrInvalidValue = errors.New("invalid bar value")

// Layout holds the grid spacing of the chart.
type Layout struct {
	SpacingX float32 // between companies
	SpacingZ float32 // between months
}

// DefaultLayout returns the spacing used by the stock chart.
func DefaultLayout() Layout {
	return Layout{SpacingX: 5.0, SpacingZ: 3.0}
}

// ScaleFactor returns v / vmax, the Y scale of a bar.
// A zero value, or an all-zero dataset, gives a flat bar.
func ScaleFactor(v, vmax float32) (float32, error) {
	for _, x := range [2]float32{v, vmax} {
		if math32.IsNaN(x) || math32.IsInf(x, 0) || x < 0 {
			return 0, fmt.Errorf("%w: %v (max %v)", ErrInvalidValue, v, vmax)
		}
	}
	if v == 0 {
		return 0, nil
	}
	if vmax == 0 {
		return 0, fmt.Errorf("%w: %v exceeds a zero maximum", ErrInvalidValue, v)
	}
	return v / vmax, nil
}

// BarTransform returns the model matrix of the bar for p.
//
// The model is scaled on Y by v/vmax, rotated about Y by angle degrees,
// moved to its grid cell and lifted so that its lowest point (from bounds)
// sits on Y = 0. The result depends only on the arguments.
func BarTransform(p DataPoint, vmax float32, bounds wavefront.Bounds, layout Layout, angle float32) (mgl32.Mat4, error) {
	s, err := ScaleFactor(p.Value, vmax)
	if err != nil {
		return mgl32.Ident4(), err
	}

	lift := mgl32.Translate3D(0, -bounds.Min[1]*s, 0)
	cell := mgl32.Translate3D(float32(p.Category)*layout.SpacingX, 0, float32(p.Time)*layout.SpacingZ)

	m := lift.Mul4(cell)
	if angle != 0 {
		m = m.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(angle)))
	}
	return m.Mul4(mgl32.Scale3D(1, s, 1)), nil
}
