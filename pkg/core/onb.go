package core

import "math"

// ONB is an orthonormal basis built around a single unit normal.
// Local directions use the convention W = normal.
type ONB struct {
	U, V, W Vec3
}

// NewONB builds an orthonormal basis from a unit normal using the
// branchless construction of Duff et al.
func NewONB(normal Vec3) ONB {
	sign := math.Copysign(1.0, normal.Z)
	a := -1.0 / (sign + normal.Z)
	b := normal.X * normal.Y * a

	return ONB{
		U: NewVec3(1.0+sign*normal.X*normal.X*a, sign*b, -sign*normal.X),
		V: NewVec3(b, sign+normal.Y*normal.Y*a, -normal.Y),
		W: normal,
	}
}

// ToWorld transforms a local direction (x, y, z) into world space
func (o ONB) ToWorld(local Vec3) Vec3 {
	return o.U.Multiply(local.X).Add(o.V.Multiply(local.Y)).Add(o.W.Multiply(local.Z))
}

// ToLocal transforms a world-space direction into the basis
func (o ONB) ToLocal(world Vec3) Vec3 {
	return NewVec3(world.Dot(o.U), world.Dot(o.V), world.Dot(o.W))
}
