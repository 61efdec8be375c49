package observer_test

import (
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wheelibin/lumos/internal/events"
	"github.com/wheelibin/lumos/internal/gateway"
	"github.com/wheelibin/lumos/internal/models"
	"github.com/wheelibin/lumos/internal/observer"
	"github.com/wheelibin/lumos/mocks"
)

const waitFor = 2 * time.Second
const tick = 5 * time.Millisecond

func testLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{Level: log.FatalLevel})
}

type recorder struct {
	mu     sync.Mutex
	events []events.DeviceEvent
}

func (r *recorder) add(e events.DeviceEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) all() []events.DeviceEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.DeviceEvent{}, r.events...)
}

func (r *recorder) kinds() []events.Kind {
	return lo.Map(r.all(), func(e events.DeviceEvent, _ int) events.Kind { return e.Kind })
}

// subscribes the mock and returns a func that pushes to the registered handler
func expectSubscribe(client *mocks.MockObserverSubscriber, endpoint string) func(string) {
	var handler func(gateway.Response)
	client.On("Subscribe", endpoint, mock.Anything).
		Run(func(args mock.Arguments) { handler = args.Get(1).(func(gateway.Response)) }).
		Return(gateway.NewSubscription(endpoint, func() {}), nil).
		Once()
	return func(payload string) {
		handler(gateway.Response{Success: true, Payload: []byte(payload)})
	}
}

func startLightObserver(t *testing.T, delay time.Duration) (*observer.LightObserver, func(string), *recorder) {
	t.Helper()
	client := mocks.NewMockObserverSubscriber(t)
	push := expectSubscribe(client, "15001/65537")
	initial := models.LightProperties{On: lo.ToPtr(true), Brightness: lo.ToPtr(50)}

	o := observer.NewLightObserver(testLogger(), client, 65537, initial, delay)
	rec := &recorder{}
	o.OnAll(events.LightKinds, rec.add)
	require.True(t, o.Start())
	t.Cleanup(func() { o.Stop() })

	return o, push, rec
}

func Test_LightObserver_Lifecycle(t *testing.T) {

	t.Run("starting twice: should only subscribe once", func(t *testing.T) {
		// arrange
		client := mocks.NewMockObserverSubscriber(t)
		expectSubscribe(client, "15001/65537")
		o := observer.NewLightObserver(testLogger(), client, 65537, models.LightProperties{}, 0)

		// act
		first := o.Start()
		second := o.Start()

		// assert
		assert.True(t, first)
		assert.False(t, second)
		assert.True(t, o.IsObserving())
		client.AssertNumberOfCalls(t, "Subscribe", 1)
		o.Stop()
	})

	t.Run("stop: should only succeed when observing", func(t *testing.T) {
		client := mocks.NewMockObserverSubscriber(t)
		o := observer.NewLightObserver(testLogger(), client, 65537, models.LightProperties{}, 0)

		assert.False(t, o.Stop())

		expectSubscribe(client, "15001/65537")
		require.True(t, o.Start())

		assert.True(t, o.Stop())
		assert.False(t, o.Stop())
		assert.False(t, o.IsObserving())
	})

	t.Run("should be restartable", func(t *testing.T) {
		client := mocks.NewMockObserverSubscriber(t)
		expectSubscribe(client, "15001/65537")
		expectSubscribe(client, "15001/65537")
		o := observer.NewLightObserver(testLogger(), client, 65537, models.LightProperties{}, 0)

		assert.True(t, o.Start())
		assert.True(t, o.Stop())
		assert.True(t, o.Start())
		assert.True(t, o.Stop())
	})

	t.Run("subscribe fails: should not be observing", func(t *testing.T) {
		client := mocks.NewMockObserverSubscriber(t)
		client.On("Subscribe", "15001/65537", mock.Anything).Return(nil, errors.New("no route to gateway"))
		o := observer.NewLightObserver(testLogger(), client, 65537, models.LightProperties{}, 0)

		assert.False(t, o.Start())
		assert.False(t, o.IsObserving())
		assert.False(t, o.Stop())
	})

	t.Run("stop: should drop updates still waiting", func(t *testing.T) {
		o, push, rec := startLightObserver(t, 200*time.Millisecond)

		push(`{"3311":[{"5851":100}]}`)
		o.Stop()
		time.Sleep(400 * time.Millisecond)

		assert.Empty(t, rec.all())
		assert.Equal(t, 50, *o.Snapshot().Brightness)
	})
}

func Test_LightObserver_Changes(t *testing.T) {

	t.Run("brightness change: should raise exactly one event", func(t *testing.T) {
		// arrange
		o, push, rec := startLightObserver(t, 0)

		// act
		push(`{"3311":[{"5850":1,"5851":100}]}`)

		// assert
		assert.Eventually(t, func() bool { return len(rec.all()) == 1 }, waitFor, tick)
		e := rec.all()[0]
		assert.Equal(t, events.KindBrightnessChanged, e.Kind)
		assert.Equal(t, 65537, e.InstanceID)
		assert.Equal(t, 50, e.Old)
		assert.Equal(t, 100, e.New)
		assert.Equal(t, 100, *o.Snapshot().Brightness)
	})

	t.Run("attribute missing from push: should leave it unchanged", func(t *testing.T) {
		o, push, rec := startLightObserver(t, 0)

		push(`{"3311":[{"5850":1}]}`)
		push(`{"3311":[{"5850":0}]}`)

		assert.Eventually(t, func() bool { return len(rec.all()) == 1 }, waitFor, tick)
		assert.Equal(t, []events.Kind{events.KindOnOffChanged}, rec.kinds())
		assert.Equal(t, 50, *o.Snapshot().Brightness)
	})

	t.Run("attribute pushed as null: should raise a change to nil", func(t *testing.T) {
		o, push, rec := startLightObserver(t, 0)

		push(`{"3311":[{"5851":null}]}`)

		assert.Eventually(t, func() bool { return len(rec.all()) == 1 }, waitFor, tick)
		e := rec.all()[0]
		assert.Equal(t, events.KindBrightnessChanged, e.Kind)
		assert.Equal(t, 50, e.Old)
		assert.Nil(t, e.New)
		assert.Nil(t, o.Snapshot().Brightness)
	})

	t.Run("several changes: should raise events in a fixed order", func(t *testing.T) {
		_, push, rec := startLightObserver(t, 0)

		push(`{"3311":[{"5711":370,"5709":30000,"5707":1000,"5851":10,"5850":0,"5710":26000,"5708":200}]}`)

		assert.Eventually(t, func() bool { return len(rec.all()) == 7 }, waitFor, tick)
		assert.Equal(t, []events.Kind{
			events.KindOnOffChanged,
			events.KindBrightnessChanged,
			events.KindHueChanged,
			events.KindSaturationChanged,
			events.KindColourXChanged,
			events.KindColourYChanged,
			events.KindColourTemperatureChanged,
		}, rec.kinds())
		assert.Equal(t, false, rec.all()[0].New)
		assert.Nil(t, rec.all()[2].Old)
	})

	t.Run("same value pushed again: should raise nothing", func(t *testing.T) {
		_, push, rec := startLightObserver(t, 0)

		push(`{"3311":[{"5851":50,"5850":1}]}`)
		push(`{"3311":[{"5851":51}]}`)

		assert.Eventually(t, func() bool { return len(rec.all()) == 1 }, waitFor, tick)
		assert.Equal(t, 51, rec.all()[0].New)
	})

	t.Run("colour hex: should update the snapshot without an event", func(t *testing.T) {
		o, push, rec := startLightObserver(t, 0)

		push(`{"3311":[{"5706":"f1e0b5"}]}`)
		push(`{"3311":[{"5850":0}]}`)

		assert.Eventually(t, func() bool { return len(rec.all()) == 1 }, waitFor, tick)
		assert.Equal(t, "f1e0b5", *o.Snapshot().ColourHex)
	})

	t.Run("malformed or failed pushes: should be dropped", func(t *testing.T) {
		client := mocks.NewMockObserverSubscriber(t)
		var handler func(gateway.Response)
		client.On("Subscribe", "15001/65537", mock.Anything).
			Run(func(args mock.Arguments) { handler = args.Get(1).(func(gateway.Response)) }).
			Return(gateway.NewSubscription("15001/65537", func() {}), nil)
		o := observer.NewLightObserver(testLogger(), client, 65537, models.LightProperties{Brightness: lo.ToPtr(50)}, 0)
		rec := &recorder{}
		o.OnAll(events.LightKinds, rec.add)
		require.True(t, o.Start())
		defer o.Stop()

		handler(gateway.Response{Success: true, Payload: []byte(`not json`)})
		handler(gateway.Response{Success: true, Payload: []byte(`{"9001":"Desk"}`)})
		handler(gateway.Response{Success: true, Payload: []byte(`{"3311":[]}`)})
		handler(gateway.Response{Success: false, Payload: []byte(`{"3311":[{"5851":1}]}`)})
		handler(gateway.Response{Success: true, Payload: []byte(`{"3311":[{"5851":2}]}`)})

		assert.Eventually(t, func() bool { return len(rec.all()) == 1 }, waitFor, tick)
		assert.Equal(t, 2, rec.all()[0].New)
		assert.True(t, o.IsObserving())
	})

	t.Run("debounce delay: should not process a push before the delay", func(t *testing.T) {
		_, push, rec := startLightObserver(t, 150*time.Millisecond)

		push(`{"3311":[{"5851":100}]}`)
		time.Sleep(50 * time.Millisecond)

		assert.Empty(t, rec.all())
		assert.Eventually(t, func() bool { return len(rec.all()) == 1 }, waitFor, tick)
	})

	t.Run("panicking handler: should not stop later handlers", func(t *testing.T) {
		o, push, rec := startLightObserver(t, 0)
		o.On(events.KindBrightnessChanged, func(events.DeviceEvent) { panic("boom") })
		late := &recorder{}
		o.On(events.KindBrightnessChanged, late.add)

		push(`{"3311":[{"5851":100}]}`)
		push(`{"3311":[{"5851":101}]}`)

		assert.Eventually(t, func() bool { return len(late.all()) == 2 }, waitFor, tick)
		assert.Len(t, rec.all(), 2)
	})
}
