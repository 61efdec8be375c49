package events

import "fmt"

type Kind int

const (
	KindOnOffChanged Kind = iota
	KindBrightnessChanged
	KindHueChanged
	KindSaturationChanged
	KindColourXChanged
	KindColourYChanged
	KindColourTemperatureChanged
	KindDeviceAdded
	KindDeviceRemoved
)

func (k Kind) String() string {
	switch k {
	case KindOnOffChanged:
		return "on/off changed"
	case KindBrightnessChanged:
		return "brightness changed"
	case KindHueChanged:
		return "hue changed"
	case KindSaturationChanged:
		return "saturation changed"
	case KindColourXChanged:
		return "colour x changed"
	case KindColourYChanged:
		return "colour y changed"
	case KindColourTemperatureChanged:
		return "colour temperature changed"
	case KindDeviceAdded:
		return "device added"
	case KindDeviceRemoved:
		return "device removed"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// DeviceEvent describes one detected change. Old and New hold a bool (on/off), an int
// (every other light attribute) or nil when the attribute was unset. Added/removed events
// carry no values.
type DeviceEvent struct {
	Kind       Kind
	InstanceID int
	Old        any
	New        any
}

func (e DeviceEvent) String() string {
	switch e.Kind {
	case KindDeviceAdded, KindDeviceRemoved:
		return fmt.Sprintf("%d: %s", e.InstanceID, e.Kind)
	default:
		return fmt.Sprintf("%d: %s %v -> %v", e.InstanceID, e.Kind, e.Old, e.New)
	}
}
