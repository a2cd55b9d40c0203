// SPDX-License-Identifier: MIT

package phase

import (
	"fmt"
	"math"
)

// Phase identifies a seismic phase. The zero value is Pn; NoPhase marks a
// missing or invalid identifier.
type Phase int

const (
	NoPhase Phase = -1 // no phase selected
	Pn      Phase = 0
	Sn      Phase = 1
	Pg      Phase = 2
	Lg      Phase = 3
)

// Phases lists every valid phase in identifier order.
var Phases = []Phase{Pn, Sn, Pg, Lg}

// String returns the canonical phase name used in table file names.
// Identifiers outside the table render as "Unknown".
func (p Phase) String() string {
	switch p {
	case Pn:
		return "Pn"
	case Sn:
		return "Sn"
	case Pg:
		return "Pg"
	case Lg:
		return "Lg"
	default:
		return "Unknown"
	}
}

// Valid reports whether p is one of the named phases.
func (p Phase) Valid() bool { return p >= Pn && p <= Lg }

// ParsePhase is the inverse of Phase.String.
func ParsePhase(name string) (Phase, error) {
	switch name {
	case "Pn":
		return Pn, nil
	case "Sn":
		return Sn, nil
	case "Pg":
		return Pg, nil
	case "Lg":
		return Lg, nil
	}
	return NoPhase, fmt.Errorf("ParsePhase(%q): %w", name, ErrUnknownPhase)
}

// Attribute identifies the measured quantity an uncertainty table describes.
type Attribute int

const (
	NoAttribute Attribute = -1 // no attribute selected
	TravelTime  Attribute = 0  // TT, seconds
	Slowness    Attribute = 1  // SH, horizontal slowness
	Azimuth     Attribute = 2  // AZ
)

// Attributes lists every valid attribute in identifier order.
var Attributes = []Attribute{TravelTime, Slowness, Azimuth}

// String returns the canonical short attribute name (TT, SH, AZ).
func (a Attribute) String() string {
	switch a {
	case TravelTime:
		return "TT"
	case Slowness:
		return "SH"
	case Azimuth:
		return "AZ"
	default:
		return "Unknown"
	}
}

// Valid reports whether a is one of the named attributes.
func (a Attribute) Valid() bool { return a >= TravelTime && a <= Azimuth }

// ParseAttribute is the inverse of Attribute.String.
func ParseAttribute(name string) (Attribute, error) {
	switch name {
	case "TT":
		return TravelTime, nil
	case "SH":
		return Slowness, nil
	case "AZ":
		return Azimuth, nil
	}
	return NoAttribute, fmt.Errorf("ParseAttribute(%q): %w", name, ErrUnknownAttribute)
}

// Unit returns the file/display unit of the attribute.
func (a Attribute) Unit() string {
	switch a {
	case TravelTime:
		return "sec"
	case Slowness:
		return "sec/deg"
	case Azimuth:
		return "deg"
	default:
		return ""
	}
}

// ToInternal is the factor that converts a value in file units (degrees,
// seconds per degree) into internal units (radians, seconds per radian).
// Travel time and unknown attributes convert with identity.
func (a Attribute) ToInternal() float64 {
	switch a {
	case Slowness:
		return 180 / math.Pi // s/deg -> s/rad
	case Azimuth:
		return math.Pi / 180 // deg -> rad
	default:
		return 1
	}
}

// ToFile is the reciprocal of ToInternal.
func (a Attribute) ToFile() float64 {
	switch a {
	case Slowness:
		return math.Pi / 180
	case Azimuth:
		return 180 / math.Pi
	default:
		return 1
	}
}

// Precision is the number of decimals used when writing values of this
// attribute as text: 4 for slowness, 3 otherwise.
func (a Attribute) Precision() int {
	if a == Slowness {
		return 4
	}
	return 3
}
