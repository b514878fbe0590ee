// Package geom is a small geometric kernel that serializes points, NURBS
// curves, NURBS surfaces (trimmed or not) and meshes into 3dm class
// payloads. It implements the kernel interfaces of package scene and is
// what the command line tools write scenes with.
//
// Payload layouts follow the openNURBS class writers closely enough for
// readers that parse them, but the kernel is deliberately simple: trims
// are polylines in parameter space, and brep edges are straight segments
// between surface points.
package geom
