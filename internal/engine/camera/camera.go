// Package camera provides the look-at camera used to view the chart.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Direction is a keyboard pan direction.
type Direction int

const (
	Forward  Direction = iota // -Z
	Backward                  // +Z
	Left                      // -X
	Right                     // +X
	Up                        // +Y, eye only
	Down                      // -Y, eye only
)

// Camera looks from Position at Target. It is a plain value so a frame can
// take a consistent copy of it.
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3

	Speed float32 // world units per key press
	FovY  float32 // degrees
	Near  float32
	Far   float32
}

// New creates a camera with the given eye and target and default lens settings.
func New(position, target mgl32.Vec3) Camera {
	return Camera{
		Position: position,
		Target:   target,
		Up:       mgl32.Vec3{0, 1, 0},
		Speed:    1.0,
		FovY:     45,
		Near:     0.1,
		Far:      500,
	}
}

// Move pans the camera one step. Horizontal moves shift eye and target
// together; vertical moves only raise or lower the eye.
func (c *Camera) Move(d Direction) {
	var delta mgl32.Vec3
	moveTarget := true

	switch d {
	case Forward:
		delta = mgl32.Vec3{0, 0, -c.Speed}
	case Backward:
		delta = mgl32.Vec3{0, 0, c.Speed}
	case Left:
		delta = mgl32.Vec3{-c.Speed, 0, 0}
	case Right:
		delta = mgl32.Vec3{c.Speed, 0, 0}
	case Up:
		delta = mgl32.Vec3{0, c.Speed, 0}
		moveTarget = false
	case Down:
		delta = mgl32.Vec3{0, -c.Speed, 0}
		moveTarget = false
	default:
		return
	}

	c.Position = c.Position.Add(delta)
	if moveTarget {
		c.Target = c.Target.Add(delta)
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// ProjectionMatrix returns a perspective projection for the given aspect ratio.
func (c Camera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), aspect, c.Near, c.Far)
}
