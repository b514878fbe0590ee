package model

import "errors"

var (
	ErrUnknownFormat = errors.New("unknown description format")
	ErrNoGeometry    = errors.New("object has no geometry")
	ErrManyGeometry  = errors.New("object has more than one geometry")
	ErrBadColor      = errors.New("invalid color")
	ErrBadLayer      = errors.New("layer index out of range")
	ErrBadFace       = errors.New("face must have 3 or 4 vertices")
	ErrBadPoint      = errors.New("point must have 2 or 3 coordinates")
)
