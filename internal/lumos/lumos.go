package lumos

import (
	"context"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"github.com/wheelibin/lumos/internal/config"
	"github.com/wheelibin/lumos/internal/events"
	"github.com/wheelibin/lumos/internal/gateway"
	"github.com/wheelibin/lumos/internal/lights"
	"github.com/wheelibin/lumos/internal/models"
	"github.com/wheelibin/lumos/internal/observer"
)

type gatewayClient interface {
	DiscoverDevices() ([]models.Device, error)
	GetDevice(instanceID int) (models.Device, error)
	PUT(path string, body []byte) ([]byte, error)
	Subscribe(endpoint string, handler func(gateway.Response)) (*gateway.Subscription, error)
}

type deviceRepo interface {
	Add(devices []models.Device) error
	AddPending(instanceID int) error
	MarkRemoved(instanceID int) error
	SetLightField(instanceID int, field models.Field, value any) error
	GetAllLights() ([]models.Light, error)
}

var kindFields = map[events.Kind]models.Field{
	events.KindOnOffChanged:             models.FieldOn,
	events.KindBrightnessChanged:        models.FieldBrightness,
	events.KindHueChanged:               models.FieldHue,
	events.KindSaturationChanged:        models.FieldSaturation,
	events.KindColourXChanged:           models.FieldColourX,
	events.KindColourYChanged:           models.FieldColourY,
	events.KindColourTemperatureChanged: models.FieldColourTemperature,
}

type trackedLight struct {
	light    *lights.Light
	observer *observer.LightObserver
}

// Lumos keeps an observer running for every light on the gateway, and for the gateway's
// device list, and records what they see.
type Lumos struct {
	logger *log.Logger
	cfg    config.Config
	client gatewayClient
	repo   deviceRepo

	mu              sync.RWMutex
	running         bool
	lights          map[int]trackedLight
	gatewayObserver *observer.GatewayObserver
	changeHandlers  []events.Handler
}

func NewLumos(logger *log.Logger, cfg config.Config, client gatewayClient, repo deviceRepo) *Lumos {
	return &Lumos{
		logger: logger,
		cfg:    cfg,
		client: client,
		repo:   repo,
		lights: map[int]trackedLight{},
	}
}

// Initialise reads the devices from the gateway and sets up their observers.
func (l *Lumos) Initialise() error {
	l.logger.Debug("Lumos.Initialise")

	devices, err := l.client.DiscoverDevices()
	if err != nil {
		return err
	}
	if err := l.repo.Add(devices); err != nil {
		return err
	}

	for _, d := range devices {
		if d.Type == models.DeviceTypeLight {
			l.track(d)
		}
	}
	l.logger.Info("Found lights", "total", len(l.lights), "devices", len(devices))

	ids := lo.Map(devices, func(d models.Device, _ int) int { return d.InstanceID })
	l.gatewayObserver = observer.NewGatewayObserver(l.logger, l.client, ids, l.cfg.DebounceDelay)
	l.gatewayObserver.On(events.KindDeviceAdded, l.handleDeviceAdded)
	l.gatewayObserver.On(events.KindDeviceRemoved, l.handleDeviceRemoved)

	return nil
}

// Run observes until the context is done.
func (l *Lumos) Run(ctx context.Context) {
	l.logger.Debug("Lumos.Run")

	l.mu.Lock()
	l.running = true
	l.gatewayObserver.Start()
	for _, t := range l.lights {
		t.observer.Start()
	}
	l.mu.Unlock()

	<-ctx.Done()
	l.logger.Info("Lumos.Run: stop signal received")

	l.mu.Lock()
	defer l.mu.Unlock()
	l.running = false
	l.gatewayObserver.Stop()
	for _, t := range l.lights {
		t.observer.Stop()
	}
}

// OnChange registers a handler called after every light change, addition or removal
// has been recorded.
func (l *Lumos) OnChange(handler events.Handler) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.changeHandlers = append(l.changeHandlers, handler)
}

// Lights returns the tracked lights ordered by name.
func (l *Lumos) Lights() []*lights.Light {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := lo.MapToSlice(l.lights, func(_ int, t trackedLight) *lights.Light { return t.light })
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name == result[j].Name {
			return result[i].InstanceID < result[j].InstanceID
		}
		return result[i].Name < result[j].Name
	})
	return result
}

func (l *Lumos) Light(instanceID int) (*lights.Light, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	t, found := l.lights[instanceID]
	return t.light, found
}

// LightStates returns the recorded state of every light still paired.
func (l *Lumos) LightStates() ([]models.Light, error) {
	return l.repo.GetAllLights()
}

func (l *Lumos) track(device models.Device) trackedLight {
	initial := models.LightProperties{}
	if device.Light != nil {
		initial = *device.Light
	}

	t := trackedLight{
		light:    lights.NewLight(l.logger, l.client, device),
		observer: observer.NewLightObserver(l.logger, l.client, device.InstanceID, initial, l.cfg.DebounceDelay),
	}
	t.observer.OnAll(events.LightKinds, func(e events.DeviceEvent) {
		l.handleLightChange(t, e)
	})
	l.lights[device.InstanceID] = t
	return t
}

func (l *Lumos) handleLightChange(t trackedLight, e events.DeviceEvent) {
	l.logger.Info("Light changed", "light", t.light.Name, "change", e.Kind, "from", e.Old, "to", e.New)

	if err := l.repo.SetLightField(e.InstanceID, kindFields[e.Kind], e.New); err != nil {
		l.logger.Error(err)
	}
	t.light.SetState(t.observer.Snapshot())
	l.notify(e)
}

func (l *Lumos) handleDeviceAdded(e events.DeviceEvent) {
	l.logger.Info("Device added", "id", e.InstanceID)

	if err := l.repo.AddPending(e.InstanceID); err != nil {
		l.logger.Error(err)
	}

	device, err := l.client.GetDevice(e.InstanceID)
	if err != nil {
		l.logger.Error("Error reading new device", "id", e.InstanceID, "err", err)
		l.notify(e)
		return
	}
	if err := l.repo.Add([]models.Device{device}); err != nil {
		l.logger.Error(err)
	}

	if device.Type == models.DeviceTypeLight {
		l.mu.Lock()
		if _, found := l.lights[device.InstanceID]; !found {
			t := l.track(device)
			if l.running {
				t.observer.Start()
			}
		}
		l.mu.Unlock()
	}
	l.notify(e)
}

func (l *Lumos) handleDeviceRemoved(e events.DeviceEvent) {
	l.logger.Info("Device removed", "id", e.InstanceID)

	if err := l.repo.MarkRemoved(e.InstanceID); err != nil {
		l.logger.Error(err)
	}

	l.mu.Lock()
	if t, found := l.lights[e.InstanceID]; found {
		t.observer.Stop()
		delete(l.lights, e.InstanceID)
	}
	l.mu.Unlock()

	l.notify(e)
}

func (l *Lumos) notify(e events.DeviceEvent) {
	l.mu.RLock()
	handlers := append([]events.Handler{}, l.changeHandlers...)
	l.mu.RUnlock()

	for _, h := range handlers {
		h(e)
	}
}
