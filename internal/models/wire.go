package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/wheelibin/lumos/internal/constants"
)

var ErrNoLightList = errors.New("payload has no light list")

var fieldCodes = map[Field]string{
	FieldOn:                constants.AttrOnOff,
	FieldBrightness:        constants.AttrBrightness,
	FieldColourHex:         constants.AttrColourHex,
	FieldHue:               constants.AttrHue,
	FieldSaturation:        constants.AttrSaturation,
	FieldColourX:           constants.AttrColourX,
	FieldColourY:           constants.AttrColourY,
	FieldColourTemperature: constants.AttrColourTemperature,
	FieldTransitionTime:    constants.AttrTransitionTime,
}

// the gateway sends on/off as 0/1
type lightWire struct {
	On                *int    `json:"5850,omitempty"`
	Brightness        *int    `json:"5851,omitempty"`
	ColourHex         *string `json:"5706,omitempty"`
	Hue               *int    `json:"5707,omitempty"`
	Saturation        *int    `json:"5708,omitempty"`
	ColourX           *int    `json:"5709,omitempty"`
	ColourY           *int    `json:"5710,omitempty"`
	ColourTemperature *int    `json:"5711,omitempty"`
	TransitionTime    *int    `json:"5712,omitempty"`
}

func (p LightProperties) MarshalJSON() ([]byte, error) {
	w := lightWire{
		Brightness:        p.Brightness,
		ColourHex:         p.ColourHex,
		Hue:               p.Hue,
		Saturation:        p.Saturation,
		ColourX:           p.ColourX,
		ColourY:           p.ColourY,
		ColourTemperature: p.ColourTemperature,
		TransitionTime:    p.TransitionTime,
	}
	if p.On != nil {
		on := 0
		if *p.On {
			on = 1
		}
		w.On = &on
	}
	return json.Marshal(w)
}

func (p *LightProperties) UnmarshalJSON(b []byte) error {
	patch, err := decodeLightPatch(b)
	if err != nil {
		return err
	}
	*p = patch.Properties
	return nil
}

// LightPatch is a light payload as pushed by the gateway. Present records which
// attributes the payload carried, an attribute sent as null is present with a nil value.
type LightPatch struct {
	Properties LightProperties
	Present    map[Field]bool
}

func (l LightPatch) Has(field Field) bool {
	return l.Present[field]
}

// LightRequest builds the PUT body for a light.
func LightRequest(p LightProperties) ([]byte, error) {
	return json.Marshal(map[string][]LightProperties{
		constants.AttrLightList: {p},
	})
}

// DecodeLightPayload decodes the first entry of a device payload's light list.
func DecodeLightPayload(payload []byte) (LightPatch, error) {
	attrs := map[string]json.RawMessage{}
	if err := json.Unmarshal(payload, &attrs); err != nil {
		return LightPatch{}, fmt.Errorf("error parsing device payload: %w", err)
	}

	raw, found := attrs[constants.AttrLightList]
	if !found || isNull(raw) {
		return LightPatch{}, ErrNoLightList
	}

	lights := []json.RawMessage{}
	if err := json.Unmarshal(raw, &lights); err != nil {
		return LightPatch{}, fmt.Errorf("error parsing light list: %w", err)
	}
	if len(lights) == 0 {
		return LightPatch{}, ErrNoLightList
	}

	return decodeLightPatch(lights[0])
}

func decodeLightPatch(b []byte) (LightPatch, error) {
	attrs := map[string]json.RawMessage{}
	if err := json.Unmarshal(b, &attrs); err != nil {
		return LightPatch{}, fmt.Errorf("error parsing light attributes: %w", err)
	}

	patch := LightPatch{Present: map[Field]bool{}}
	for _, field := range AllFields {
		raw, found := attrs[fieldCodes[field]]
		if !found {
			continue
		}
		patch.Present[field] = true
		if isNull(raw) {
			continue
		}

		var err error
		switch field {
		case FieldOn:
			var on int
			if err = json.Unmarshal(raw, &on); err == nil {
				err = patch.Properties.Set(field, on != 0)
			}
		case FieldColourHex:
			var hex string
			if err = json.Unmarshal(raw, &hex); err == nil {
				err = patch.Properties.Set(field, hex)
			}
		default:
			var v int
			if err = json.Unmarshal(raw, &v); err == nil {
				err = patch.Properties.Set(field, v)
			}
		}
		if err != nil {
			return LightPatch{}, fmt.Errorf("error parsing %s: %w", field, err)
		}
	}

	return patch, nil
}

type deviceWire struct {
	InstanceID      int               `json:"9003"`
	Name            string            `json:"9001"`
	CreationDate    int64             `json:"9002"`
	ApplicationType *int              `json:"5750"`
	Lights          []LightProperties `json:"3311"`
}

// DecodeDevice decodes a full device description.
func DecodeDevice(payload []byte) (Device, error) {
	w := deviceWire{}
	if err := json.Unmarshal(payload, &w); err != nil {
		return Device{}, fmt.Errorf("error parsing device: %w", err)
	}

	d := Device{
		InstanceID:   w.InstanceID,
		Name:         w.Name,
		Type:         deviceTypeFor(w.ApplicationType, len(w.Lights) > 0),
		CreationDate: time.Unix(w.CreationDate, 0),
	}
	if len(w.Lights) > 0 {
		light := w.Lights[0]
		d.Light = &light
	}
	return d, nil
}

// DecodeInstanceIDs decodes the device enumeration, a JSON array of instance ids.
func DecodeInstanceIDs(payload []byte) ([]int, error) {
	ids := []int{}
	if err := json.Unmarshal(payload, &ids); err != nil {
		return nil, fmt.Errorf("error parsing device list: %w", err)
	}
	return ids, nil
}

func deviceTypeFor(applicationType *int, hasLights bool) DeviceType {
	if applicationType == nil {
		if hasLights {
			return DeviceTypeLight
		}
		return DeviceTypeUnknown
	}
	switch *applicationType {
	case 0:
		return DeviceTypeRemote
	case 2:
		return DeviceTypeLight
	case 3:
		return DeviceTypePlug
	case 4:
		return DeviceTypeMotionSensor
	default:
		return DeviceTypeUnknown
	}
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
