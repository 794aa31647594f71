// Package geom holds the coordinate abstractions exchanged with attribute values.
//
// The types here are deliberately thin: they carry coordinates and nothing else.
// Geometry algorithms live with the consumers of these values.
package geom

import "fmt"

// Tuple2D is anything exposing two coordinates.
type Tuple2D interface {
	XY() (x, y float64)
}

// Tuple3D is anything exposing three coordinates.
type Tuple3D interface {
	XYZ() (x, y, z float64)
}

// ============================================================
// Points
// ============================================================

// Point2D is a location in the plane.
type Point2D struct {
	X, Y float64
}

// Pt2 creates a Point2D.
func Pt2(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

// XY implements Tuple2D.
func (p Point2D) XY() (float64, float64) {
	return p.X, p.Y
}

func (p Point2D) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Point3D is a location in space.
type Point3D struct {
	X, Y, Z float64
}

// Pt3 creates a Point3D.
func Pt3(x, y, z float64) Point3D {
	return Point3D{X: x, Y: y, Z: z}
}

// XYZ implements Tuple3D.
func (p Point3D) XYZ() (float64, float64, float64) {
	return p.X, p.Y, p.Z
}

func (p Point3D) String() string {
	return fmt.Sprintf("(%g, %g, %g)", p.X, p.Y, p.Z)
}

// ============================================================
// Vectors
// ============================================================

// Vector2D is a displacement in the plane. It is a tuple but not a point.
type Vector2D struct {
	X, Y float64
}

// XY implements Tuple2D.
func (v Vector2D) XY() (float64, float64) {
	return v.X, v.Y
}

// Vector3D is a displacement in space. It is a tuple but not a point.
type Vector3D struct {
	X, Y, Z float64
}

// XYZ implements Tuple3D.
func (v Vector3D) XYZ() (float64, float64, float64) {
	return v.X, v.Y, v.Z
}

// ============================================================
// Conversions
// ============================================================

// ToPoint2D copies any 2D tuple into a Point2D.
func ToPoint2D(t Tuple2D) Point2D {
	x, y := t.XY()
	return Point2D{X: x, Y: y}
}

// ToPoint3D copies any 3D tuple into a Point3D.
func ToPoint3D(t Tuple3D) Point3D {
	x, y, z := t.XYZ()
	return Point3D{X: x, Y: y, Z: z}
}

// Project drops the z coordinate.
func Project(p Point3D) Point2D {
	return Point2D{X: p.X, Y: p.Y}
}

// Lift places a planar point at z=0.
func Lift(p Point2D) Point3D {
	return Point3D{X: p.X, Y: p.Y}
}
