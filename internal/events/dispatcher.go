package events

import (
	"sync"

	"github.com/charmbracelet/log"
)

type Handler func(DeviceEvent)

// Dispatcher calls the handlers registered for an event's kind, in registration order,
// on the goroutine that calls Dispatch.
type Dispatcher struct {
	logger *log.Logger

	mu       sync.RWMutex
	handlers map[Kind][]Handler
}

func NewDispatcher(logger *log.Logger) *Dispatcher {
	return &Dispatcher{logger: logger, handlers: map[Kind][]Handler{}}
}

// On registers a handler for a kind. Registering the same handler twice calls it twice.
func (d *Dispatcher) On(kind Kind, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[kind] = append(d.handlers[kind], handler)
}

// OnAll registers the same handler for several kinds.
func (d *Dispatcher) OnAll(kinds []Kind, handler Handler) {
	for _, k := range kinds {
		d.On(k, handler)
	}
}

func (d *Dispatcher) Dispatch(event DeviceEvent) {
	d.mu.RLock()
	handlers := d.handlers[event.Kind]
	d.mu.RUnlock()

	for i, handler := range handlers {
		d.call(i, handler, event)
	}
}

func (d *Dispatcher) call(index int, handler Handler, event DeviceEvent) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("event handler panicked", "kind", event.Kind, "instance", event.InstanceID, "handler", index, "panic", r)
		}
	}()
	handler(event)
}

var LightKinds = []Kind{
	KindOnOffChanged,
	KindBrightnessChanged,
	KindHueChanged,
	KindSaturationChanged,
	KindColourXChanged,
	KindColourYChanged,
	KindColourTemperatureChanged,
}
