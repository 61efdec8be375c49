package events_test

import (
	"os"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/wheelibin/lumos/internal/events"
)

func newDispatcher() *events.Dispatcher {
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: log.FatalLevel})
	return events.NewDispatcher(logger)
}

func Test_Dispatch(t *testing.T) {

	t.Run("should call handlers in registration order", func(t *testing.T) {
		d := newDispatcher()
		calls := []string{}
		d.On(events.KindBrightnessChanged, func(events.DeviceEvent) { calls = append(calls, "first") })
		d.On(events.KindBrightnessChanged, func(events.DeviceEvent) { calls = append(calls, "second") })
		d.On(events.KindBrightnessChanged, func(events.DeviceEvent) { calls = append(calls, "third") })

		d.Dispatch(events.DeviceEvent{Kind: events.KindBrightnessChanged, Old: 1, New: 2})

		assert.Equal(t, []string{"first", "second", "third"}, calls)
	})

	t.Run("should only call handlers for the event kind", func(t *testing.T) {
		d := newDispatcher()
		hueCalls := 0
		d.On(events.KindHueChanged, func(events.DeviceEvent) { hueCalls++ })

		d.Dispatch(events.DeviceEvent{Kind: events.KindSaturationChanged})

		assert.Equal(t, 0, hueCalls)
	})

	t.Run("same handler registered twice: should be called twice", func(t *testing.T) {
		d := newDispatcher()
		calls := 0
		h := func(events.DeviceEvent) { calls++ }
		d.On(events.KindDeviceAdded, h)
		d.On(events.KindDeviceAdded, h)

		d.Dispatch(events.DeviceEvent{Kind: events.KindDeviceAdded})

		assert.Equal(t, 2, calls)
	})

	t.Run("handler panics: should still call the remaining handlers", func(t *testing.T) {
		d := newDispatcher()
		received := []events.DeviceEvent{}
		d.On(events.KindOnOffChanged, func(events.DeviceEvent) { panic("boom") })
		d.On(events.KindOnOffChanged, func(e events.DeviceEvent) { received = append(received, e) })

		evt := events.DeviceEvent{Kind: events.KindOnOffChanged, InstanceID: 65537, Old: false, New: true}
		assert.NotPanics(t, func() { d.Dispatch(evt) })

		assert.Equal(t, []events.DeviceEvent{evt}, received)
	})

	t.Run("no handlers: should do nothing", func(t *testing.T) {
		assert.NotPanics(t, func() { newDispatcher().Dispatch(events.DeviceEvent{Kind: events.KindDeviceRemoved}) })
	})
}

func Test_DeviceEvent(t *testing.T) {
	e := events.DeviceEvent{Kind: events.KindBrightnessChanged, InstanceID: 65537, Old: nil, New: 100}

	assert.Equal(t, "65537: brightness changed <nil> -> 100", e.String())
}
