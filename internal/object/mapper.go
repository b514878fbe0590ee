package object

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/robert-malhotra/go-3dm/internal/binary"
	"github.com/robert-malhotra/go-3dm/internal/chunk"
	"github.com/robert-malhotra/go-3dm/scene"
)

// Map builds the object record for o, the index-th object of the scene.
// It returns nil and no error when o cannot be mapped or its payload is
// empty. Kernel and encoding errors are returned.
func Map(o scene.Object, index int, fc scene.FileContext) (*chunk.Chunk, error) {
	if o == nil {
		return nil, nil
	}
	g := o.Geometry()
	v, ok := Select(g)
	if !ok {
		return nil, nil
	}

	payload, err := v.marshal(g, fc)
	if err != nil {
		return nil, fmt.Errorf("object %d: %s payload: %w", index, v, err)
	}
	if len(payload) == 0 {
		return nil, nil
	}

	cfg := binary.Config{LengthSize: fc.LengthSize()}

	class, err := ClassRecord(v.ClassID(), payload, cfg)
	if err != nil {
		return nil, fmt.Errorf("object %d: %w", index, err)
	}
	typ, err := chunk.NewShort(chunk.TagObjectRecordType, v.ObjectType())
	if err != nil {
		return nil, err
	}

	record := chunk.NewTableWithEnd(chunk.TagObjectRecord, chunk.TagObjectRecordEnd)
	record.Add(typ)
	record.Add(class)

	if attrs := o.Attributes(); attrs != nil {
		a, err := AttributesRecord(attrs, index, cfg)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", index, err)
		}
		record.Add(a)
	}

	c, err := record.Chunk(cfg)
	if err != nil {
		return nil, fmt.Errorf("object %d: %w", index, err)
	}
	return c, nil
}

// ClassRecord wraps a class payload with its class identifier.
func ClassRecord(id uuid.UUID, payload []byte, cfg binary.Config) (*chunk.Chunk, error) {
	b, err := chunk.NewBuilder(chunk.TagClassUUID, cfg)
	if err != nil {
		return nil, err
	}
	if err := b.WriteUUID(id); err != nil {
		return nil, err
	}

	data, err := chunk.NewLong(chunk.TagClassData, payload)
	if err != nil {
		return nil, err
	}

	class := chunk.NewTableWithEnd(chunk.TagClass, chunk.TagClassEnd)
	class.Add(b.Chunk())
	class.Add(data)
	return class.Chunk(cfg)
}
