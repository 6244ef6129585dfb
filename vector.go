package guidance

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Vector2 is a planar vector. All operations return a new value.
type Vector2 r2.Vec

// Vec2 returns a Vector2 from its components.
func Vec2(x, y float64) Vector2 {
	return Vector2{x, y}
}

// Polar2 returns the vector of magnitude m along the angle θ (radians) from the x axis.
func Polar2(m, θ float64) Vector2 {
	s, c := math.Sincos(θ)
	return Vector2{m * c, m * s}
}

// Add returns a+b.
func (a Vector2) Add(b Vector2) Vector2 {
	return Vector2(r2.Add(r2.Vec(a), r2.Vec(b)))
}

// Sub returns a-b.
func (a Vector2) Sub(b Vector2) Vector2 {
	return Vector2(r2.Sub(r2.Vec(a), r2.Vec(b)))
}

// Scale returns s*a.
func (a Vector2) Scale(s float64) Vector2 {
	return Vector2(r2.Scale(s, r2.Vec(a)))
}

// Dot returns the inner product.
func (a Vector2) Dot(b Vector2) float64 {
	return r2.Dot(r2.Vec(a), r2.Vec(b))
}

// Cross returns the z component of the cross product of a and b embedded in 3-D.
func (a Vector2) Cross(b Vector2) float64 {
	return r2.Cross(r2.Vec(a), r2.Vec(b))
}

// Norm returns the magnitude.
func (a Vector2) Norm() float64 {
	return r2.Norm(r2.Vec(a))
}

// Unit returns the unit vector, or the zero vector if a is zero.
func (a Vector2) Unit() Vector2 {
	if a == (Vector2{}) {
		return a
	}
	return Vector2(r2.Unit(r2.Vec(a)))
}

// Angle returns atan2(y, x).
func (a Vector2) Angle() float64 {
	return math.Atan2(a.Y, a.X)
}

func (a Vector2) String() string {
	return fmt.Sprintf("(%.6g, %.6g)", a.X, a.Y)
}

// Vector3 is a spatial vector. All operations return a new value.
type Vector3 r3.Vec

// Vec3 returns a Vector3 from its components.
func Vec3(x, y, z float64) Vector3 {
	return Vector3{x, y, z}
}

// Add returns a+b.
func (a Vector3) Add(b Vector3) Vector3 {
	return Vector3(r3.Add(r3.Vec(a), r3.Vec(b)))
}

// Sub returns a-b.
func (a Vector3) Sub(b Vector3) Vector3 {
	return Vector3(r3.Sub(r3.Vec(a), r3.Vec(b)))
}

// Scale returns s*a.
func (a Vector3) Scale(s float64) Vector3 {
	return Vector3(r3.Scale(s, r3.Vec(a)))
}

// Dot returns the inner product.
func (a Vector3) Dot(b Vector3) float64 {
	return r3.Dot(r3.Vec(a), r3.Vec(b))
}

// Cross returns a x b (right hand rule).
func (a Vector3) Cross(b Vector3) Vector3 {
	return Vector3(r3.Cross(r3.Vec(a), r3.Vec(b)))
}

// Norm returns the magnitude.
func (a Vector3) Norm() float64 {
	return r3.Norm(r3.Vec(a))
}

// Unit returns the unit vector, or the zero vector if a is zero.
func (a Vector3) Unit() Vector3 {
	if a == (Vector3{}) {
		return a
	}
	return Vector3(r3.Unit(r3.Vec(a)))
}

// Slice returns the components as a new slice.
func (a Vector3) Slice() []float64 {
	return []float64{a.X, a.Y, a.Z}
}

// XY drops the z component.
func (a Vector3) XY() Vector2 {
	return Vector2{a.X, a.Y}
}

func (a Vector3) String() string {
	return fmt.Sprintf("(%.6g, %.6g, %.6g)", a.X, a.Y, a.Z)
}

// Vec3From returns the vector held in s[0:3].
func Vec3From(s []float64) Vector3 {
	return Vector3{s[0], s[1], s[2]}
}

// Vec2From returns the vector held in s[0:2].
func Vec2From(s []float64) Vector2 {
	return Vector2{s[0], s[1]}
}
