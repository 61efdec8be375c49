package publish

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/wheelibin/lumos/internal/config"
	"github.com/wheelibin/lumos/internal/events"
)

const (
	connectTimeout = 10 * time.Second
	publishTimeout = 5 * time.Second
)

type mqttClient interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) pahomqtt.Token
}

type change struct {
	Light  int    `json:"light"`
	Change string `json:"change"`
	Old    any    `json:"old"`
	New    any    `json:"new"`
}

// EventPublisher forwards device events to an MQTT broker as
// <prefix>/<instance id>/<change>, e.g. lumos/65537/brightness_changed.
type EventPublisher struct {
	logger *log.Logger
	client mqttClient
	prefix string
}

func NewEventPublisher(logger *log.Logger, client mqttClient, prefix string) *EventPublisher {
	return &EventPublisher{logger: logger, client: client, prefix: strings.TrimSuffix(prefix, "/")}
}

// Connect opens a connection to the configured broker.
func Connect(cfg config.MQTTConfig) (pahomqtt.Client, error) {
	opts := pahomqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(connectTimeout)

	client := pahomqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("error connecting to mqtt broker (%s): timed out", cfg.Broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("error connecting to mqtt broker (%s): %w", cfg.Broker, err)
	}
	return client, nil
}

func (p *EventPublisher) Topic(e events.DeviceEvent) string {
	return fmt.Sprintf("%s/%d/%s", p.prefix, e.InstanceID, slug(e.Kind))
}

// Publish sends one event, failures are logged.
func (p *EventPublisher) Publish(e events.DeviceEvent) {
	payload, err := json.Marshal(change{Light: e.InstanceID, Change: slug(e.Kind), Old: e.Old, New: e.New})
	if err != nil {
		p.logger.Error("Error encoding event", "event", e, "err", err)
		return
	}

	topic := p.Topic(e)
	token := p.client.Publish(topic, 1, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		p.logger.Warn("Timed out publishing event", "topic", topic)
		return
	}
	if err := token.Error(); err != nil {
		p.logger.Error("Error publishing event", "topic", topic, "err", err)
		return
	}
	p.logger.Debug("Published event", "topic", topic)
}

func slug(k events.Kind) string {
	return strings.NewReplacer(" ", "_", "/", "_").Replace(k.String())
}
