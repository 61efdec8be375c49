package lights

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"github.com/wheelibin/lumos/internal/colour"
	"github.com/wheelibin/lumos/internal/models"
)

// Light controls a single light. Update* calls stage changes until ApplyUpdates, Set* calls
// are sent straight away and leave staged changes alone.
type Light struct {
	InstanceID int
	Name       string

	logger *log.Logger
	client gatewayClient
	queue  *UpdateQueue

	mu    sync.RWMutex
	state models.LightProperties
}

func NewLight(logger *log.Logger, client gatewayClient, device models.Device) *Light {
	l := &Light{
		InstanceID: device.InstanceID,
		Name:       device.Name,
		logger:     logger.With("light", device.Name),
		client:     client,
	}
	l.queue = NewUpdateQueue(l.logger, client, device.InstanceID)
	if device.Light != nil {
		l.state = device.Light.Clone()
	}
	return l
}

// State is the last known state of the light.
func (l *Light) State() models.LightProperties {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state.Clone()
}

func (l *Light) SetState(state models.LightProperties) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state = state.Clone()
}

// ColourRGB is the light's last known colour as RGB, from its hue and saturation, or from
// its xy colour when neither is known.
func (l *Light) ColourRGB() (colour.RGB, bool) {
	state := l.State()
	switch {
	case state.Hue != nil || state.Saturation != nil:
		return colour.HSToRGB(lo.FromPtr(state.Hue), lo.FromPtr(state.Saturation)), true
	case state.ColourX != nil && state.ColourY != nil:
		return colour.XY{X: *state.ColourX, Y: *state.ColourY}.RGB(), true
	default:
		return colour.RGB{}, false
	}
}

func (l *Light) Pending() models.LightProperties {
	return l.queue.Pending()
}

func (l *Light) UpdateOn(on bool) {
	l.stage(models.FieldOn, on)
}

func (l *Light) UpdateBrightness(brightness int) {
	l.stage(models.FieldBrightness, brightness)
}

func (l *Light) UpdateColourHex(hex string) {
	l.stage(models.FieldColourHex, hex)
}

func (l *Light) UpdateHue(hue int) {
	l.stage(models.FieldHue, hue)
}

func (l *Light) UpdateSaturation(saturation int) {
	l.stage(models.FieldSaturation, saturation)
}

func (l *Light) UpdateColourXY(x int, y int) {
	l.stage(models.FieldColourX, x)
	l.stage(models.FieldColourY, y)
}

func (l *Light) UpdateColour(xy colour.XY) {
	l.UpdateColourXY(xy.X, xy.Y)
}

func (l *Light) UpdateColourRGB(rgb colour.RGB) {
	l.UpdateColour(rgb.XY())
}

// UpdateColourHS stages an RGB colour as hue and saturation.
func (l *Light) UpdateColourHS(rgb colour.RGB) {
	hs := colour.RGBToHS(rgb)
	l.UpdateHue(hs.Hue)
	l.UpdateSaturation(hs.Saturation)
}

func (l *Light) UpdateColourTemperature(temperature int) {
	l.stage(models.FieldColourTemperature, temperature)
}

func (l *Light) UpdateTransitionTime(transitionTime int) {
	l.stage(models.FieldTransitionTime, transitionTime)
}

// ApplyUpdates sends the staged changes as one request.
func (l *Light) ApplyUpdates() bool {
	return l.queue.Flush()
}

func (l *Light) ApplyUpdatesWithTransition(transitionTime int) bool {
	return l.queue.FlushWithTransition(transitionTime)
}

func (l *Light) SetOn(on bool, transitionTime ...int) bool {
	return l.set(models.LightProperties{On: lo.ToPtr(on)}, transitionTime)
}

func (l *Light) SetBrightness(brightness int, transitionTime ...int) bool {
	return l.set(models.LightProperties{Brightness: lo.ToPtr(brightness)}, transitionTime)
}

func (l *Light) SetColourHex(hex string, transitionTime ...int) bool {
	return l.set(models.LightProperties{ColourHex: lo.ToPtr(hex)}, transitionTime)
}

func (l *Light) SetHue(hue int, transitionTime ...int) bool {
	return l.set(models.LightProperties{Hue: lo.ToPtr(hue)}, transitionTime)
}

func (l *Light) SetSaturation(saturation int, transitionTime ...int) bool {
	return l.set(models.LightProperties{Saturation: lo.ToPtr(saturation)}, transitionTime)
}

func (l *Light) SetColourXY(x int, y int, transitionTime ...int) bool {
	return l.set(models.LightProperties{ColourX: lo.ToPtr(x), ColourY: lo.ToPtr(y)}, transitionTime)
}

func (l *Light) SetColour(xy colour.XY, transitionTime ...int) bool {
	return l.SetColourXY(xy.X, xy.Y, transitionTime...)
}

func (l *Light) SetColourRGB(rgb colour.RGB, transitionTime ...int) bool {
	return l.SetColour(rgb.XY(), transitionTime...)
}

// SetColourHS sends an RGB colour as hue and saturation.
func (l *Light) SetColourHS(rgb colour.RGB, transitionTime ...int) bool {
	hs := colour.RGBToHS(rgb)
	return l.set(models.LightProperties{Hue: lo.ToPtr(hs.Hue), Saturation: lo.ToPtr(hs.Saturation)}, transitionTime)
}

func (l *Light) SetColourTemperature(temperature int, transitionTime ...int) bool {
	return l.set(models.LightProperties{ColourTemperature: lo.ToPtr(temperature)}, transitionTime)
}

func (l *Light) stage(field models.Field, value any) {
	if err := l.queue.Stage(field, value); err != nil {
		l.logger.Error(err)
	}
}

func (l *Light) set(props models.LightProperties, transitionTime []int) bool {
	if len(transitionTime) > 0 {
		props.TransitionTime = lo.ToPtr(max(transitionTime[0], 0))
	}
	return send(l.logger, l.client, l.InstanceID, props)
}
