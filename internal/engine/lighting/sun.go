// Package lighting converts light settings into shader directions.
package lighting

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// SunDirection converts an azimuth (degrees around Y, 0 facing +Z) and an
// elevation (degrees above the horizon) into a unit vector pointing towards
// the light.
func SunDirection(azimuth, elevation float32) mgl32.Vec3 {
	az := mgl32.DegToRad(azimuth)
	el := mgl32.DegToRad(elevation)

	return mgl32.Vec3{
		math32.Cos(el) * math32.Sin(az),
		math32.Sin(el),
		math32.Cos(el) * math32.Cos(az),
	}
}
