package models

import (
	"fmt"

	"github.com/samber/lo"
)

// Get returns the value of a field, or nil when it isn't set. Values are returned as
// bool, int or string, never as pointers.
func (p LightProperties) Get(field Field) any {
	switch field {
	case FieldOn:
		return deref(p.On)
	case FieldBrightness:
		return deref(p.Brightness)
	case FieldColourHex:
		return deref(p.ColourHex)
	case FieldHue:
		return deref(p.Hue)
	case FieldSaturation:
		return deref(p.Saturation)
	case FieldColourX:
		return deref(p.ColourX)
	case FieldColourY:
		return deref(p.ColourY)
	case FieldColourTemperature:
		return deref(p.ColourTemperature)
	case FieldTransitionTime:
		return deref(p.TransitionTime)
	}
	return nil
}

// Set sets a single field. A nil value clears the field.
func (p *LightProperties) Set(field Field, value any) error {
	if value == nil {
		p.Clear(field)
		return nil
	}

	switch field {
	case FieldOn:
		v, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%s expects a bool, got %T", field, value)
		}
		p.On = &v
	case FieldColourHex:
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("%s expects a string, got %T", field, value)
		}
		p.ColourHex = &v
	case FieldBrightness, FieldHue, FieldSaturation, FieldColourX, FieldColourY, FieldColourTemperature, FieldTransitionTime:
		v, ok := value.(int)
		if !ok {
			return fmt.Errorf("%s expects an int, got %T", field, value)
		}
		*p.intField(field) = &v
	default:
		return fmt.Errorf("unknown light field: %s", field)
	}
	return nil
}

func (p *LightProperties) Clear(field Field) {
	switch field {
	case FieldOn:
		p.On = nil
	case FieldColourHex:
		p.ColourHex = nil
	case FieldBrightness, FieldHue, FieldSaturation, FieldColourX, FieldColourY, FieldColourTemperature, FieldTransitionTime:
		*p.intField(field) = nil
	}
}

func (p *LightProperties) intField(field Field) **int {
	switch field {
	case FieldBrightness:
		return &p.Brightness
	case FieldHue:
		return &p.Hue
	case FieldSaturation:
		return &p.Saturation
	case FieldColourX:
		return &p.ColourX
	case FieldColourY:
		return &p.ColourY
	case FieldColourTemperature:
		return &p.ColourTemperature
	case FieldTransitionTime:
		return &p.TransitionTime
	}
	panic(fmt.Sprintf("%s is not an int field", field))
}

func (p LightProperties) IsSet(field Field) bool {
	return p.Get(field) != nil
}

func (p LightProperties) IsEmpty() bool {
	return !lo.SomeBy(AllFields, p.IsSet)
}

// Clone returns a copy sharing no pointers with p.
func (p LightProperties) Clone() LightProperties {
	return LightProperties{
		On:                clonePtr(p.On),
		Brightness:        clonePtr(p.Brightness),
		ColourHex:         clonePtr(p.ColourHex),
		Hue:               clonePtr(p.Hue),
		Saturation:        clonePtr(p.Saturation),
		ColourX:           clonePtr(p.ColourX),
		ColourY:           clonePtr(p.ColourY),
		ColourTemperature: clonePtr(p.ColourTemperature),
		TransitionTime:    clonePtr(p.TransitionTime),
	}
}

// ActiveColourModes lists the colour modes with at least one field set.
func (p LightProperties) ActiveColourModes() []ColourMode {
	return lo.Filter(ColourModes, func(m ColourMode, _ int) bool {
		return lo.SomeBy(m.Fields(), p.IsSet)
	})
}

func deref[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	return lo.ToPtr(*v)
}
