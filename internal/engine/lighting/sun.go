package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/cuberoll/pkg/math"
)

// SunPosition places a light at distance from the origin given longitude
// (rotation around Y, degrees) and latitude (elevation from horizon, degrees).
// Longitude 0 lies on +Z.
func SunPosition(longitude, latitude, distance float32) math.Vec3 {
	sinLon, cosLon := math32.Sincos(math.Radians(longitude))
	sinLat, cosLat := math32.Sincos(math.Radians(latitude))

	// Spherical to Cartesian
	return math.Vec3{
		X: distance * cosLat * sinLon,
		Y: distance * sinLat,
		Z: distance * cosLat * cosLon,
	}
}
