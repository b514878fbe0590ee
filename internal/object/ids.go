package object

import (
	"strconv"

	"github.com/google/uuid"
)

// ids derived from record indexes are name-based so that writing the same
// scene twice produces identical bytes.
var idSpace = uuid.MustParse("6B1A3E0C-5D2F-4E47-9B8E-3DA0C4F1E2A7")

func derivedID(kind string, index int) uuid.UUID {
	return uuid.NewSHA1(idSpace, []byte(kind+"/"+strconv.Itoa(index)))
}

// ObjectID returns id, or the identifier derived from the object index
// when id is zero.
func ObjectID(id uuid.UUID, index int) uuid.UUID {
	if id != uuid.Nil {
		return id
	}
	return derivedID("object", index)
}

// LayerID returns id, or the identifier derived from the layer index when
// id is zero.
func LayerID(id uuid.UUID, index int) uuid.UUID {
	if id != uuid.Nil {
		return id
	}
	return derivedID("layer", index)
}
