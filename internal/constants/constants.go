package constants

import "time"

// gateway endpoints
const EndpointDevices = "15001"

// gateway attribute codes
const (
	AttrName            = "9001"
	AttrCreationDate    = "9002"
	AttrInstanceID      = "9003"
	AttrApplicationType = "5750"
	AttrLightList       = "3311"

	AttrOnOff             = "5850"
	AttrBrightness        = "5851"
	AttrColourHex         = "5706"
	AttrHue               = "5707"
	AttrSaturation        = "5708"
	AttrColourX           = "5709"
	AttrColourY           = "5710"
	AttrColourTemperature = "5711"
	AttrTransitionTime    = "5712"
)

// time to wait before diffing a pushed update, lets the device echo of our own write settle
const DefaultDebounceDelay = time.Second
const DefaultRequestTimeout = 10 * time.Second

// pushed updates waiting for the debounce delay, further pushes are dropped until there is room
const ObserverQueueSize = 16

const SSEEventError = "error"
