package observer

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"github.com/wheelibin/lumos/internal/constants"
	"github.com/wheelibin/lumos/internal/events"
	"github.com/wheelibin/lumos/internal/models"
)

type lightChange struct {
	field models.Field
	kind  events.Kind
}

// order events are raised in when one push changes several attributes
var lightChanges = []lightChange{
	{models.FieldOn, events.KindOnOffChanged},
	{models.FieldBrightness, events.KindBrightnessChanged},
	{models.FieldHue, events.KindHueChanged},
	{models.FieldSaturation, events.KindSaturationChanged},
	{models.FieldColourX, events.KindColourXChanged},
	{models.FieldColourY, events.KindColourYChanged},
	{models.FieldColourTemperature, events.KindColourTemperatureChanged},
}

// transition time is part of a request, not of the light's state
var snapshotFields = lo.Without(models.AllFields, models.FieldTransitionTime)

// LightObserver raises change events for one light.
type LightObserver struct {
	*Observer
	*events.Dispatcher

	InstanceID int
	logger     *log.Logger

	mu       sync.RWMutex
	snapshot models.LightProperties
}

func NewLightObserver(logger *log.Logger, client subscriber, instanceID int, initial models.LightProperties, delay time.Duration) *LightObserver {
	o := &LightObserver{
		Dispatcher: events.NewDispatcher(logger),
		InstanceID: instanceID,
		logger:     logger.With("light", instanceID),
		snapshot:   initial.Clone(),
	}
	endpoint := fmt.Sprintf("%s/%d", constants.EndpointDevices, instanceID)
	o.Observer = newObserver(o.logger, client, endpoint, delay, o.handlePayload)
	return o
}

// Snapshot returns a copy of the last known state.
func (o *LightObserver) Snapshot() models.LightProperties {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.snapshot.Clone()
}

func (o *LightObserver) handlePayload(payload []byte) {
	patch, err := models.DecodeLightPayload(payload)
	if err != nil {
		o.logger.Debug("Dropping payload", "err", err)
		return
	}

	changes := o.apply(patch)
	for _, e := range changes {
		o.Dispatch(e)
	}
}

// apply updates the snapshot with the attributes present in the patch and returns an
// event for each one that changed
func (o *LightObserver) apply(patch models.LightPatch) []events.DeviceEvent {
	o.mu.Lock()
	defer o.mu.Unlock()

	changes := lo.FilterMap(lightChanges, func(c lightChange, _ int) (events.DeviceEvent, bool) {
		if !patch.Has(c.field) {
			return events.DeviceEvent{}, false
		}
		old, current := o.snapshot.Get(c.field), patch.Properties.Get(c.field)
		if old == current {
			return events.DeviceEvent{}, false
		}
		return events.DeviceEvent{Kind: c.kind, InstanceID: o.InstanceID, Old: old, New: current}, true
	})

	for _, f := range snapshotFields {
		if patch.Has(f) {
			// values from a decoded patch always have the right type
			_ = o.snapshot.Set(f, patch.Properties.Get(f))
		}
	}

	return changes
}
