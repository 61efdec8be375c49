package observer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wheelibin/lumos/internal/events"
	"github.com/wheelibin/lumos/internal/observer"
	"github.com/wheelibin/lumos/mocks"
)

func Test_GatewayObserver(t *testing.T) {

	t.Run("should raise added then removed events", func(t *testing.T) {
		// arrange
		client := mocks.NewMockObserverSubscriber(t)
		push := expectSubscribe(client, "15001")
		o := observer.NewGatewayObserver(testLogger(), client, []int{1, 2, 3}, 0)
		rec := &recorder{}
		o.On(events.KindDeviceAdded, rec.add)
		o.On(events.KindDeviceRemoved, rec.add)
		require.True(t, o.Start())
		defer o.Stop()

		// act
		push(`[3, 5, 1, 4]`)

		// assert
		assert.Eventually(t, func() bool { return len(rec.all()) == 3 }, waitFor, tick)
		assert.Equal(t, []events.DeviceEvent{
			{Kind: events.KindDeviceAdded, InstanceID: 5},
			{Kind: events.KindDeviceAdded, InstanceID: 4},
			{Kind: events.KindDeviceRemoved, InstanceID: 2},
		}, rec.all())
		assert.Equal(t, []int{3, 5, 1, 4}, o.InstanceIDs())
	})

	t.Run("malformed push: should keep the device list", func(t *testing.T) {
		client := mocks.NewMockObserverSubscriber(t)
		push := expectSubscribe(client, "15001")
		o := observer.NewGatewayObserver(testLogger(), client, []int{1, 2}, 0)
		rec := &recorder{}
		o.On(events.KindDeviceRemoved, rec.add)
		require.True(t, o.Start())
		defer o.Stop()

		push(`{"3311":[]}`)
		push(`[1]`)

		assert.Eventually(t, func() bool { return len(rec.all()) == 1 }, waitFor, tick)
		assert.Equal(t, 2, rec.all()[0].InstanceID)
	})
}
