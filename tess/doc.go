// Package tess converts paths and polygons into triangles.
//
// Tessellators do not own any output storage. They stream vertices and
// triangles into a geometry builder supplied by the caller, following a
// two-phase protocol:
//
//  1. BeginGeometry is called once before any vertex.
//  2. AddFillVertex or AddStrokeVertex is called for every vertex and
//     returns the identifier the builder assigned to it.
//  3. AddTriangle is called with three identifiers returned earlier.
//  4. EndGeometry is called once at the end and reports what was added.
//
// If the builder fails to accept a vertex, the tessellator calls
// AbortGeometry and returns the builder's error.
//
// # Orientation
//
// Geometry is expressed in a +Y up coordinate space. Every triangle reported
// through AddTriangle is counter-clockwise in that space.
//
// # Fill
//
// FillTessellator triangulates every subpath by ear clipping. Contours
// nested inside others become holes according to the fill rule and are
// bridged into their enclosing contour before clipping. Each input point
// produces exactly one vertex, so a convex polygon with N points yields N
// vertices and N-2 triangles.
//
// # Stroke
//
// StrokeTessellator emits one quad per segment, plus join geometry between
// consecutive segments and cap geometry at the ends of open subpaths:
//   - LineJoinMiter: sharp corner, beveled past the miter limit
//   - LineJoinMiterClip: sharp corner, clipped at the miter limit
//   - LineJoinRound: circular fan
//   - LineJoinBevel: single triangle across the corner
//
// Subpaths of zero length produce no geometry.
package tess
