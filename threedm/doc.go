// Package threedm writes scenes as 3dm archives.
//
// An archive is a 32 byte start banner followed by a fixed sequence of
// chunk tables and an end-of-file mark:
//
//	start banner, comment block
//	properties, settings, bitmaps, texture mappings, materials,
//	linetypes, layers, groups, fonts, dimension styles, lights,
//	hatch patterns, instance definitions, objects, history records,
//	user data
//	end of file
//
// Only the properties, settings, layer and object tables carry records;
// the others are written as empty tables. Every table is fully built in
// memory before it is emitted, so the sink is only ever appended to and
// may be a pipe or a socket.
//
// # Usage
//
//	err := threedm.Write(w, scn,
//		threedm.WithFormatVersion(5),
//		threedm.WithUnits(threedm.DefaultUnits()),
//	)
//
// [Create] writes to a named file and removes it if the write fails.
//
// Objects that the scene cannot map to a record, or whose geometric payload
// is empty, are left out without error.
package threedm
