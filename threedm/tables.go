package threedm

import (
	"github.com/robert-malhotra/go-3dm/internal/chunk"
	"github.com/robert-malhotra/go-3dm/internal/object"
	"github.com/robert-malhotra/go-3dm/scene"
)

// unitsRecordVersion is the version field of the units record.
const unitsRecordVersion = 102

// section is one top-level table in write order.
type section struct {
	name  string
	build func() (*chunk.Chunk, error)
}

func (a *archive) sections() []section {
	empty := func(tag chunk.Tag) func() (*chunk.Chunk, error) {
		return func() (*chunk.Chunk, error) {
			return chunk.NewTable(tag).Chunk(a.cfg)
		}
	}
	return []section{
		{"properties", a.properties},
		{"settings", a.settings},
		{"bitmaps", empty(chunk.TagBitmapTable)},
		{"texture mappings", empty(chunk.TagTextureMappingTable)},
		{"materials", empty(chunk.TagMaterialTable)},
		{"linetypes", empty(chunk.TagLinetypeTable)},
		{"layers", a.layers},
		{"groups", empty(chunk.TagGroupTable)},
		{"fonts", empty(chunk.TagFontTable)},
		{"dimension styles", empty(chunk.TagDimStyleTable)},
		{"lights", empty(chunk.TagLightTable)},
		{"hatch patterns", empty(chunk.TagHatchPatternTable)},
		{"instance definitions", empty(chunk.TagInstanceDefinitionTable)},
		{"objects", a.objects},
		{"history records", empty(chunk.TagHistoryRecordTable)},
		{"user data", empty(chunk.TagUserTable)},
	}
}

func (a *archive) properties() (*chunk.Chunk, error) {
	t := chunk.NewTable(chunk.TagPropertiesTable)

	rev, err := chunk.NewShort(chunk.TagPropertiesOpenNURBSVersion, int64(a.fc.EncoderRevision))
	if err != nil {
		return nil, err
	}
	t.Add(rev)

	if app := a.opts.application; app != nil {
		b, err := chunk.NewBuilder(chunk.TagPropertiesApplication, a.cfg)
		if err != nil {
			return nil, err
		}
		if err := b.WriteChunkVersion(1, 0); err != nil {
			return nil, err
		}
		for _, s := range []string{app.Name, app.URL, app.Details} {
			if err := b.WriteString(s); err != nil {
				return nil, err
			}
		}
		t.Add(b.Chunk())
	}

	return t.Chunk(a.cfg)
}

func (a *archive) settings() (*chunk.Chunk, error) {
	t := chunk.NewTable(chunk.TagSettingsTable)

	if u := a.opts.units; u != nil {
		b, err := chunk.NewBuilder(chunk.TagSettingsUnitsAndTols, a.cfg)
		if err != nil {
			return nil, err
		}
		if err := b.WriteInt32(unitsRecordVersion); err != nil {
			return nil, err
		}
		if err := b.WriteInt32(int32(u.System)); err != nil {
			return nil, err
		}
		for _, v := range []float64{u.AbsoluteTolerance, u.AngleTolerance, u.RelativeTolerance} {
			if err := b.WriteFloat64(v); err != nil {
				return nil, err
			}
		}
		if err := b.WriteInt32(int32(u.DisplayMode)); err != nil {
			return nil, err
		}
		if err := b.WriteInt32(int32(u.Precision)); err != nil {
			return nil, err
		}
		if err := b.WriteFloat64(u.metersPerUnit()); err != nil {
			return nil, err
		}
		if err := b.WriteString(u.CustomName); err != nil {
			return nil, err
		}
		t.Add(b.Chunk())
	}

	return t.Chunk(a.cfg)
}

func (a *archive) layers() (*chunk.Chunk, error) {
	t := chunk.NewTable(chunk.TagLayerTable)
	for i := 0; i < a.scene.LayerCount(); i++ {
		c, err := object.LayerRecord(a.scene.Layer(i), i, a.fc)
		if err != nil {
			return nil, err
		}
		t.Add(c)
	}
	return t.Chunk(a.cfg)
}

func (a *archive) objects() (*chunk.Chunk, error) {
	t := chunk.NewTable(chunk.TagObjectTable)
	for i := 0; i < a.scene.ObjectCount(); i++ {
		o := a.scene.Object(i)
		c, err := object.Map(o, i, a.fc)
		if err != nil {
			return nil, err
		}
		if c == nil {
			a.skipped++
			a.log.Debug("object skipped", "index", i, "kind", kindOf(o))
			continue
		}
		t.Add(c)
	}
	a.written = t.Len()
	return t.Chunk(a.cfg)
}

func kindOf(o scene.Object) string {
	if o == nil {
		return "nil"
	}
	return o.Geometry().Kind.String()
}

// endOfFile returns the end mark. Its value is the size of the finished
// archive: the end of the ledger plus the mark's own tag, length slot and
// value. Every emit has already checked the ledger against the writer.
func (a *archive) endOfFile() (*chunk.Chunk, error) {
	ls := uint64(a.cfg.LengthSize)
	total := a.ledger.EOFAddr() + 4 + ls + ls

	b, err := chunk.NewBuilder(chunk.TagEndOfFile, a.cfg)
	if err != nil {
		return nil, err
	}
	if err := b.WriteLength(total); err != nil {
		return nil, err
	}
	return b.Chunk(), nil
}
