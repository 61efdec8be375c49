package lights

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/wheelibin/lumos/internal/gateway"
	"github.com/wheelibin/lumos/internal/models"
)

type gatewayClient interface {
	PUT(path string, body []byte) ([]byte, error)
}

// UpdateQueue collects staged changes for one light and sends them as a single request.
type UpdateQueue struct {
	logger     *log.Logger
	client     gatewayClient
	instanceID int

	mu      sync.Mutex
	pending models.LightProperties
}

func NewUpdateQueue(logger *log.Logger, client gatewayClient, instanceID int) *UpdateQueue {
	return &UpdateQueue{logger: logger, client: client, instanceID: instanceID}
}

// Stage sets one pending field. Staging a colour field clears any pending fields of
// the other colour modes, hue and saturation (and x and y) are kept together.
func (q *UpdateQueue) Stage(field models.Field, value any) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	next := q.pending.Clone()
	if err := next.Set(field, value); err != nil {
		return err
	}
	if mode := field.ColourMode(); mode != models.ColourModeNone && value != nil {
		clearOtherColourModes(&next, mode)
	}
	q.pending = next
	return nil
}

// Pending returns a copy of the staged changes.
func (q *UpdateQueue) Pending() models.LightProperties {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pending.Clone()
}

// Flush sends the staged changes and empties the queue, whether or not the request succeeds.
func (q *UpdateQueue) Flush() bool {
	q.mu.Lock()
	pending := q.pending
	q.pending = models.LightProperties{}
	q.mu.Unlock()

	return send(q.logger, q.client, q.instanceID, pending)
}

// FlushWithTransition flushes with a transition time, negative times are sent as 0.
func (q *UpdateQueue) FlushWithTransition(transitionTime int) bool {
	if err := q.Stage(models.FieldTransitionTime, max(transitionTime, 0)); err != nil {
		q.logger.Error(err)
		return false
	}
	return q.Flush()
}

func clearOtherColourModes(p *models.LightProperties, keep models.ColourMode) {
	for _, mode := range models.ColourModes {
		if mode == keep {
			continue
		}
		for _, f := range mode.Fields() {
			p.Clear(f)
		}
	}
}

func send(logger *log.Logger, client gatewayClient, instanceID int, props models.LightProperties) bool {
	body, err := models.LightRequest(props)
	if err != nil {
		logger.Error("Error building light request", "light", instanceID, "err", err)
		return false
	}

	if _, err := client.PUT(gateway.DevicePath(instanceID), body); err != nil {
		logger.Error("Error updating light", "light", instanceID, "err", err)
		return false
	}

	logger.Debug("Updated light", "light", instanceID, "body", string(body))
	return true
}
