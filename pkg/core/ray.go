package core

// Ray represents a ray with origin and direction
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a new ray
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point along the ray at parameter t
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// NewRayOffset creates a ray whose origin is nudged along the surface normal
// to avoid re-intersecting the surface it starts on.
func NewRayOffset(origin, direction, normal Vec3, epsilon float64) Ray {
	offset := normal.Multiply(epsilon)
	if direction.Dot(normal) < 0 {
		offset = offset.Negate()
	}
	return Ray{Origin: origin.Add(offset), Direction: direction}
}
