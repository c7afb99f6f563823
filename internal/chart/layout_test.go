package chart

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/stockbars/pkg/wavefront"
)

// unitBar is the bounding box of a unit cube centered on the origin.
var unitBar = wavefront.Bounds{Min: [3]float32{-0.5, -0.5, -0.5}, Max: [3]float32{0.5, 0.5, 0.5}}

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestScaleFactor(t *testing.T) {
	tests := []struct {
		v, vmax float32
		want    float32
		wantErr bool
	}{
		{150, 150, 1, false},
		{75, 150, 0.5, false},
		{0, 150, 0, false},
		{0, 0, 0, false},
		{10, 0, 0, true},
		{-1, 150, 0, true},
		{1, -150, 0, true},
		{float32(math.NaN()), 150, 0, true},
		{float32(math.Inf(1)), 150, 0, true},
	}

	for _, tt := range tests {
		got, err := ScaleFactor(tt.v, tt.vmax)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidValue) {
				t.Errorf("ScaleFactor(%v, %v): expected ErrInvalidValue, got %v", tt.v, tt.vmax, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ScaleFactor(%v, %v) failed: %v", tt.v, tt.vmax, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ScaleFactor(%v, %v): expected %v, got %v", tt.v, tt.vmax, tt.want, got)
		}
	}
}

func TestBarTransform_FullHeight(t *testing.T) {
	p := DataPoint{Category: 2, Time: 3, Value: 180}
	m, err := BarTransform(p, 180, unitBar, DefaultLayout(), 0)
	if err != nil {
		t.Fatalf("BarTransform failed: %v", err)
	}

	if m.At(1, 1) != 1 {
		t.Errorf("expected Y scale exactly 1, got %v", m.At(1, 1))
	}

	base := mgl32.TransformCoordinate(mgl32.Vec3{0, -0.5, 0}, m)
	if !near(base.X(), 10) || !near(base.Y(), 0) || !near(base.Z(), 9) {
		t.Errorf("expected base at (10, 0, 9), got %v", base)
	}
	top := mgl32.TransformCoordinate(mgl32.Vec3{0, 0.5, 0}, m)
	if !near(top.Y(), 1) {
		t.Errorf("expected top at Y=1, got %v", top.Y())
	}
}

func TestBarTransform_ZeroHeight(t *testing.T) {
	p := DataPoint{Category: 1, Time: 1, Value: 0}
	m, err := BarTransform(p, 200, unitBar, DefaultLayout(), 0)
	if err != nil {
		t.Fatalf("BarTransform failed: %v", err)
	}

	for _, y := range []float32{-0.5, 0.5} {
		v := mgl32.TransformCoordinate(mgl32.Vec3{0.5, y, 0.5}, m)
		if !near(v.Y(), 0) {
			t.Errorf("corner at model Y=%v: expected world Y=0, got %v", y, v.Y())
		}
	}
}

func TestBarTransform_BaseRestsOnGround(t *testing.T) {
	// A model whose base is at Y=0 already needs no lift.
	bounds := wavefront.Bounds{Min: [3]float32{-1, 0, -1}, Max: [3]float32{1, 2, 1}}
	m, err := BarTransform(DataPoint{Value: 50}, 100, bounds, DefaultLayout(), 0)
	if err != nil {
		t.Fatalf("BarTransform failed: %v", err)
	}
	if v := mgl32.TransformCoordinate(mgl32.Vec3{0, 0, 0}, m); !near(v.Y(), 0) {
		t.Errorf("expected base at Y=0, got %v", v.Y())
	}
	if v := mgl32.TransformCoordinate(mgl32.Vec3{0, 2, 0}, m); !near(v.Y(), 1) {
		t.Errorf("expected top at Y=1, got %v", v.Y())
	}
}

func TestBarTransform_RotationAboutCell(t *testing.T) {
	p := DataPoint{Category: 1, Time: 2, Value: 100}
	m, err := BarTransform(p, 100, unitBar, DefaultLayout(), 90)
	if err != nil {
		t.Fatalf("BarTransform failed: %v", err)
	}

	// The bar axis stays on the grid cell.
	axis := mgl32.TransformCoordinate(mgl32.Vec3{0, 0, 0}, m)
	if !near(axis.X(), 5) || !near(axis.Z(), 6) {
		t.Errorf("expected rotation about the cell (5, 6), got %v", axis)
	}

	// +X in model space turns to -Z after 90 degrees about Y.
	edge := mgl32.TransformCoordinate(mgl32.Vec3{0.5, 0, 0}, m)
	if !near(edge.X(), 5) || !near(edge.Z(), 5.5) {
		t.Errorf("expected rotated edge at (5, 5.5), got %v", edge)
	}

	// Base still on the ground.
	if base := mgl32.TransformCoordinate(mgl32.Vec3{0.5, -0.5, 0.5}, m); !near(base.Y(), 0) {
		t.Errorf("expected base at Y=0, got %v", base.Y())
	}
}

func TestBarTransform_Repeatable(t *testing.T) {
	p := DataPoint{Category: 3, Time: 4, Value: 42}
	first, err := BarTransform(p, 99, unitBar, DefaultLayout(), 33.5)
	if err != nil {
		t.Fatalf("BarTransform failed: %v", err)
	}
	for i := 0; i < 100; i++ {
		m, _ := BarTransform(p, 99, unitBar, DefaultLayout(), 33.5)
		if m != first {
			t.Fatalf("call %d returned a different matrix", i)
		}
	}
}

func TestBarTransform_RejectsNegative(t *testing.T) {
	_, err := BarTransform(DataPoint{Value: -5}, 100, unitBar, DefaultLayout(), 0)
	if !errors.Is(err, ErrInvalidValue) {
		t.Errorf("expected ErrInvalidValue, got %v", err)
	}
}
