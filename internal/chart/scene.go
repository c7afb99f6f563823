package chart

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/stockbars/internal/engine/camera"
)

// Scene is the mutable view state: camera and bar rotation. Input handlers
// change it between frames; each frame renders from a copy.
type Scene struct {
	Camera   camera.Camera
	Angle    float32 // degrees
	Rotating bool
}

// NewScene creates a scene viewed through cam with rotation off.
func NewScene(cam camera.Camera) Scene {
	return Scene{Camera: cam}
}

// ToggleRotation starts or stops the bar rotation.
func (s *Scene) ToggleRotation() {
	s.Rotating = !s.Rotating
}

// Advance moves the rotation angle by step degrees if rotation is on.
func (s *Scene) Advance(step float32) {
	if !s.Rotating {
		return
	}
	s.Angle = math32.Mod(s.Angle+step, 360)
}

// BarAngle is the rotation applied to bars this frame. A paused rotation
// draws bars unrotated and resumes from the stored angle.
func (s Scene) BarAngle() float32 {
	if !s.Rotating {
		return 0
	}
	return s.Angle
}
