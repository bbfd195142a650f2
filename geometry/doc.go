// Package geometry defines the 3D primitives used as query parameters by
// the spatial indexes and finders in this module:
//   - Point (a github.com/golang/geo r3.Vector) and single-precision Point3f
//   - Box, an axis-aligned bounding box built from r1.Interval axes
//   - Sphere
//   - Region, the sphere-or-box variant a search traverses
//   - BLOB encoding of points and point sets
package geometry
