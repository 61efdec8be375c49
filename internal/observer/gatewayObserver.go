package observer

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"github.com/wheelibin/lumos/internal/constants"
	"github.com/wheelibin/lumos/internal/events"
	"github.com/wheelibin/lumos/internal/models"
)

// GatewayObserver raises added and removed events as devices are paired and unpaired.
type GatewayObserver struct {
	*Observer
	*events.Dispatcher

	logger *log.Logger

	mu          sync.RWMutex
	instanceIDs []int
}

func NewGatewayObserver(logger *log.Logger, client subscriber, instanceIDs []int, delay time.Duration) *GatewayObserver {
	o := &GatewayObserver{
		Dispatcher:  events.NewDispatcher(logger),
		logger:      logger.With("endpoint", constants.EndpointDevices),
		instanceIDs: append([]int{}, instanceIDs...),
	}
	o.Observer = newObserver(o.logger, client, constants.EndpointDevices, delay, o.handlePayload)
	return o
}

// InstanceIDs returns the last known device list.
func (o *GatewayObserver) InstanceIDs() []int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return append([]int{}, o.instanceIDs...)
}

func (o *GatewayObserver) handlePayload(payload []byte) {
	ids, err := models.DecodeInstanceIDs(payload)
	if err != nil {
		o.logger.Debug("Dropping payload", "err", err)
		return
	}

	o.mu.Lock()
	removed, added := lo.Difference(o.instanceIDs, ids)
	o.instanceIDs = ids
	o.mu.Unlock()

	for _, id := range added {
		o.Dispatch(events.DeviceEvent{Kind: events.KindDeviceAdded, InstanceID: id})
	}
	for _, id := range removed {
		o.Dispatch(events.DeviceEvent{Kind: events.KindDeviceRemoved, InstanceID: id})
	}
}
