package geometry

import (
	"github.com/spectralpt/go-spectral-raytracer/pkg/core"
	"github.com/spectralpt/go-spectral-raytracer/pkg/material"
)

// Shape is a primitive that rays can intersect
type Shape interface {
	// Hit tests the ray against the shape within [tMin, tMax] and returns
	// the nearest intersection, or false
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)

	// BoundingBox returns the shape's axis-aligned bounds
	BoundingBox() core.AABB
}
