package threedm

import (
	"log/slog"
	"math"

	"github.com/robert-malhotra/go-3dm/internal/logger"
)

// Archive defaults.
const (
	DefaultFormatVersion   = 4
	DefaultEncoderRevision = 201004095
)

// WriteOption configures a write.
type WriteOption func(*writeOptions)

type writeOptions struct {
	formatVersion   int
	encoderRevision int
	comment         *string
	application     *Application
	units           *Units
	log             logger.Logger
}

func defaultWriteOptions() *writeOptions {
	return &writeOptions{
		formatVersion:   DefaultFormatVersion,
		encoderRevision: DefaultEncoderRevision,
		log:             logger.Discard(),
	}
}

func (o *writeOptions) validate() error {
	if o.formatVersion < 1 || o.formatVersion > 5 {
		return ErrInvalidFormatVersion
	}
	if o.encoderRevision <= 0 {
		return ErrInvalidEncoderVersion
	}
	return nil
}

// WithFormatVersion sets the archive format version. Version 5 uses 8 byte
// chunk lengths, earlier versions 4 bytes.
func WithFormatVersion(v int) WriteOption {
	return func(o *writeOptions) {
		o.formatVersion = v
	}
}

// WithEncoderRevision sets the value written in the properties table.
func WithEncoderRevision(rev int) WriteOption {
	return func(o *writeOptions) {
		o.encoderRevision = rev
	}
}

// WithComment replaces the text of the comment block after the start
// banner.
func WithComment(text string) WriteOption {
	return func(o *writeOptions) {
		o.comment = &text
	}
}

// WithApplication adds an application record to the properties table.
func WithApplication(app Application) WriteOption {
	return func(o *writeOptions) {
		o.application = &app
	}
}

// WithUnits adds a units and tolerances record to the settings table.
func WithUnits(u Units) WriteOption {
	return func(o *writeOptions) {
		o.units = &u
	}
}

// WithLogger sets the logger that receives debug records about table spans
// and skipped objects. By default nothing is logged.
func WithLogger(l *slog.Logger) WriteOption {
	return WithLog(logger.Wrap(l))
}

// WithLog is WithLogger for a logger.Logger, as built by the command line
// tools. A nil logger discards everything.
func WithLog(l logger.Logger) WriteOption {
	return func(o *writeOptions) {
		if l == nil {
			l = logger.Discard()
		}
		o.log = l
	}
}

// Application describes the program that wrote the archive.
type Application struct {
	Name    string `yaml:"name" json:"name"`
	URL     string `yaml:"url" json:"url"`
	Details string `yaml:"details" json:"details"`
}

// UnitSystem is a length unit.
type UnitSystem int

// Unit systems.
const (
	UnitsNone        UnitSystem = 0
	UnitsMicrons     UnitSystem = 1
	UnitsMillimeters UnitSystem = 2
	UnitsCentimeters UnitSystem = 3
	UnitsMeters      UnitSystem = 4
	UnitsKilometers  UnitSystem = 5
	UnitsInches      UnitSystem = 8
	UnitsFeet        UnitSystem = 9
	UnitsCustom      UnitSystem = 11
)

var unitNames = map[string]UnitSystem{
	"none":        UnitsNone,
	"microns":     UnitsMicrons,
	"millimeters": UnitsMillimeters,
	"mm":          UnitsMillimeters,
	"centimeters": UnitsCentimeters,
	"cm":          UnitsCentimeters,
	"meters":      UnitsMeters,
	"m":           UnitsMeters,
	"kilometers":  UnitsKilometers,
	"km":          UnitsKilometers,
	"inches":      UnitsInches,
	"in":          UnitsInches,
	"feet":        UnitsFeet,
	"ft":          UnitsFeet,
	"custom":      UnitsCustom,
}

// ParseUnitSystem looks up a unit system by name or abbreviation.
func ParseUnitSystem(name string) (UnitSystem, bool) {
	u, ok := unitNames[name]
	return u, ok
}

// MetersPerUnit returns the length of one unit in meters, or 1 for
// UnitsNone and UnitsCustom.
func (u UnitSystem) MetersPerUnit() float64 {
	switch u {
	case UnitsMicrons:
		return 1e-6
	case UnitsMillimeters:
		return 1e-3
	case UnitsCentimeters:
		return 1e-2
	case UnitsKilometers:
		return 1e3
	case UnitsInches:
		return 0.0254
	case UnitsFeet:
		return 0.3048
	default:
		return 1
	}
}

// Units is the units and tolerances record of the settings table.
type Units struct {
	System            UnitSystem
	AbsoluteTolerance float64
	AngleTolerance    float64 // radians
	RelativeTolerance float64
	DisplayMode       int
	Precision         int

	// CustomName and CustomMetersPerUnit apply to UnitsCustom.
	CustomName          string
	CustomMetersPerUnit float64
}

// DefaultUnits returns millimeters with the usual modeling tolerances.
func DefaultUnits() Units {
	return Units{
		System:            UnitsMillimeters,
		AbsoluteTolerance: 0.001,
		AngleTolerance:    math.Pi / 180,
		RelativeTolerance: 0.01,
		Precision:         3,
	}
}

func (u Units) metersPerUnit() float64 {
	if u.System == UnitsCustom && u.CustomMetersPerUnit > 0 {
		return u.CustomMetersPerUnit
	}
	return u.System.MetersPerUnit()
}
