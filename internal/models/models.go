package models

import (
	"fmt"
	"time"
)

type DeviceType int

const (
	DeviceTypeUnknown DeviceType = iota
	DeviceTypeLight
	DeviceTypePlug
	DeviceTypeRemote
	DeviceTypeMotionSensor
)

func (t DeviceType) String() string {
	switch t {
	case DeviceTypeLight:
		return "light"
	case DeviceTypePlug:
		return "plug"
	case DeviceTypeRemote:
		return "remote"
	case DeviceTypeMotionSensor:
		return "motion sensor"
	default:
		return "unknown"
	}
}

// a device as enumerated by the gateway
type Device struct {
	InstanceID   int
	Name         string
	Type         DeviceType
	CreationDate time.Time

	// only set for lights
	Light *LightProperties
}

// the application's view of a light, kept up to date from change events
type Light struct {
	InstanceID int
	Name       string
	State      LightProperties
}

// LightProperties is a sparse set of light attributes, nil meaning "not set".
type LightProperties struct {
	On                *bool
	Brightness        *int
	ColourHex         *string
	Hue               *int
	Saturation        *int
	ColourX           *int
	ColourY           *int
	ColourTemperature *int
	// tenths of a second
	TransitionTime *int
}

type Field int

const (
	FieldOn Field = iota
	FieldBrightness
	FieldColourHex
	FieldHue
	FieldSaturation
	FieldColourX
	FieldColourY
	FieldColourTemperature
	FieldTransitionTime
)

var AllFields = []Field{
	FieldOn,
	FieldBrightness,
	FieldColourHex,
	FieldHue,
	FieldSaturation,
	FieldColourX,
	FieldColourY,
	FieldColourTemperature,
	FieldTransitionTime,
}

func (f Field) String() string {
	switch f {
	case FieldOn:
		return "on"
	case FieldBrightness:
		return "brightness"
	case FieldColourHex:
		return "colour hex"
	case FieldHue:
		return "hue"
	case FieldSaturation:
		return "saturation"
	case FieldColourX:
		return "colour x"
	case FieldColourY:
		return "colour y"
	case FieldColourTemperature:
		return "colour temperature"
	case FieldTransitionTime:
		return "transition time"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// ColourMode is one of the mutually exclusive ways of specifying a light's colour.
type ColourMode int

const (
	ColourModeNone ColourMode = iota
	ColourModeHex
	ColourModeHS
	ColourModeXY
	ColourModeTemperature
)

var ColourModes = []ColourMode{ColourModeHex, ColourModeHS, ColourModeXY, ColourModeTemperature}

func (f Field) ColourMode() ColourMode {
	switch f {
	case FieldColourHex:
		return ColourModeHex
	case FieldHue, FieldSaturation:
		return ColourModeHS
	case FieldColourX, FieldColourY:
		return ColourModeXY
	case FieldColourTemperature:
		return ColourModeTemperature
	default:
		return ColourModeNone
	}
}

func (m ColourMode) Fields() []Field {
	switch m {
	case ColourModeHex:
		return []Field{FieldColourHex}
	case ColourModeHS:
		return []Field{FieldHue, FieldSaturation}
	case ColourModeXY:
		return []Field{FieldColourX, FieldColourY}
	case ColourModeTemperature:
		return []Field{FieldColourTemperature}
	default:
		return nil
	}
}
