package chunk

import "fmt"

// Tag identifies a chunk. It is written as an unsigned 32-bit value; the
// end-of-table tag 0xFFFFFFFF is -1 when viewed as signed.
type Tag uint32

// Tag flag bits. The static encoding table agrees with them for every
// known tag, but the table is what the writer consults.
const (
	FlagShort Tag = 0x80000000
	FlagCRC   Tag = 0x00008000
)

// File level tags.
const (
	TagCommentBlock Tag = 0x00000001
	TagEndOfFile    Tag = 0x00007FFF
	TagEndOfTable   Tag = 0xFFFFFFFF
)

// Table tags, in the order tables appear in an archive.
const (
	TagPropertiesTable         Tag = 0x10000014
	TagSettingsTable           Tag = 0x10000015
	TagBitmapTable             Tag = 0x10000016
	TagTextureMappingTable     Tag = 0x10000025
	TagMaterialTable           Tag = 0x10000010
	TagLinetypeTable           Tag = 0x10000023
	TagLayerTable              Tag = 0x10000011
	TagGroupTable              Tag = 0x10000018
	TagFontTable               Tag = 0x10000019
	TagDimStyleTable           Tag = 0x10000020
	TagLightTable              Tag = 0x10000012
	TagHatchPatternTable       Tag = 0x10000022
	TagInstanceDefinitionTable Tag = 0x10000021
	TagObjectTable             Tag = 0x10000013
	TagHistoryRecordTable      Tag = 0x10000026
	TagUserTable               Tag = 0x10000017
)

// Record tags.
const (
	TagPropertiesOpenNURBSVersion Tag = 0xA0000026
	TagPropertiesApplication      Tag = 0x20008024
	TagPropertiesNotes            Tag = 0x20008022
	TagPropertiesRevisionHistory  Tag = 0x20008021
	TagSettingsUnitsAndTols       Tag = 0x20008031

	TagObjectRecord           Tag = 0x20008073
	TagObjectRecordType       Tag = 0x82000001
	TagObjectRecordAttributes Tag = 0x02008002
	TagObjectRecordEnd        Tag = 0x8200007F

	TagLayerRecord Tag = 0x20008050

	TagClass     Tag = 0x00027FFA
	TagClassUUID Tag = 0x0002FFFB
	TagClassData Tag = 0x0002FFFC
	TagClassEnd  Tag = 0x80027FFF

	TagAnonymous Tag = 0x40008000
)

// Encoding describes how a tag is laid out on disk.
type Encoding struct {
	Short bool // value in the length slot, no content
	CRC   bool // content followed by a CRC-32 trailer

	// Container tags hold nothing but nested chunks. Only the scanner
	// uses this.
	Container bool
}

type tagInfo struct {
	name string
	enc  Encoding
}

var (
	short     = Encoding{Short: true}
	plain     = Encoding{}
	checked   = Encoding{CRC: true}
	container = Encoding{Container: true}
	record    = Encoding{CRC: true, Container: true}
)

var tags = map[Tag]tagInfo{
	TagCommentBlock: {"COMMENTBLOCK", plain},
	TagEndOfFile:    {"ENDOFFILE", plain},
	TagEndOfTable:   {"ENDOFTABLE", short},

	TagPropertiesTable:         {"PROPERTIES_TABLE", container},
	TagSettingsTable:           {"SETTINGS_TABLE", container},
	TagBitmapTable:             {"BITMAP_TABLE", container},
	TagTextureMappingTable:     {"TEXTURE_MAPPING_TABLE", container},
	TagMaterialTable:           {"MATERIAL_TABLE", container},
	TagLinetypeTable:           {"LINETYPE_TABLE", container},
	TagLayerTable:              {"LAYER_TABLE", container},
	TagGroupTable:              {"GROUP_TABLE", container},
	TagFontTable:               {"FONT_TABLE", container},
	TagDimStyleTable:           {"DIMSTYLE_TABLE", container},
	TagLightTable:              {"LIGHT_TABLE", container},
	TagHatchPatternTable:       {"HATCHPATTERN_TABLE", container},
	TagInstanceDefinitionTable: {"INSTANCE_DEFINITION_TABLE", container},
	TagObjectTable:             {"OBJECT_TABLE", container},
	TagHistoryRecordTable:      {"HISTORYRECORD_TABLE", container},
	TagUserTable:               {"USER_TABLE", container},

	TagPropertiesOpenNURBSVersion: {"PROPERTIES_OPENNURBS_VERSION", short},
	TagPropertiesApplication:      {"PROPERTIES_APPLICATION", checked},
	TagPropertiesNotes:            {"PROPERTIES_NOTES", checked},
	TagPropertiesRevisionHistory:  {"PROPERTIES_REVISIONHISTORY", checked},
	TagSettingsUnitsAndTols:       {"SETTINGS_UNITSANDTOLS", checked},

	TagObjectRecord:           {"OBJECT_RECORD", record},
	TagObjectRecordType:       {"OBJECT_RECORD_TYPE", short},
	TagObjectRecordAttributes: {"OBJECT_RECORD_ATTRIBUTES", checked},
	TagObjectRecordEnd:        {"OBJECT_RECORD_END", short},

	TagLayerRecord: {"LAYER_RECORD", record},

	TagClass:     {"OPENNURBS_CLASS", container},
	TagClassUUID: {"OPENNURBS_CLASS_UUID", checked},
	TagClassData: {"OPENNURBS_CLASS_DATA", checked},
	TagClassEnd:  {"OPENNURBS_CLASS_END", short},

	TagAnonymous: {"ANONYMOUS_CHUNK", checked},
}

// Encoding returns the static encoding of t. The second result is false
// for tags outside the table.
func (t Tag) Encoding() (Encoding, bool) {
	info, ok := tags[t]
	return info.enc, ok
}

// flagEncoding derives an encoding from the flag bits alone. The scanner
// falls back to it for tags it does not know.
func (t Tag) flagEncoding() Encoding {
	if t&FlagShort != 0 {
		return short
	}
	return Encoding{CRC: t&FlagCRC != 0}
}

// String returns the tag name, or its hex value when unknown.
func (t Tag) String() string {
	if info, ok := tags[t]; ok {
		return info.name
	}
	return fmt.Sprintf("TAG(0x%08X)", uint32(t))
}
