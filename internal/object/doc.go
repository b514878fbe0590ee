// Package object maps scene entities to 3dm object and layer records.
//
// An object record is a chunk table terminated by OBJECT_RECORD_END:
//
//	OBJECT_RECORD
//	  OBJECT_RECORD_TYPE        (short, object type code)
//	  OPENNURBS_CLASS
//	    OPENNURBS_CLASS_UUID    (class id)
//	    OPENNURBS_CLASS_DATA    (kernel payload)
//	    OPENNURBS_CLASS_END
//	  OBJECT_RECORD_ATTRIBUTES  (optional)
//	  OBJECT_RECORD_END
//
// The record variant is chosen once from the geometry kind; see [Select].
// Payload bytes come from the scene's geometric kernel and are wrapped
// unchanged. An entity with no variant, or whose payload is empty, maps to
// no record at all.
package object
