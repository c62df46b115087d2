package cloud

import (
	"context"
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
)

// MQTTSinkConfig configures the MQTT sink transport.
type MQTTSinkConfig struct {
	Broker   string
	ClientID string
	Username string
	Password string
	Topic    string
}

// MQTTSink publishes observation documents to a broker topic. Publish with
// QoS 1 is still fire-and-forget from the session's point of view: nothing
// downstream of the broker is confirmed.
type MQTTSink struct {
	client mqtt.Client
	topic  string
	logger *zap.Logger
}

func NewMQTTSink(cfg MQTTSinkConfig, logger *zap.Logger) (*MQTTSink, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}

	opts.SetAutoReconnect(true)
	opts.SetCleanSession(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	return &MQTTSink{
		client: client,
		topic:  cfg.Topic,
		logger: logger,
	}, nil
}

func (s *MQTTSink) Send(_ context.Context, payload ObservationPayload) error {
	buf, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode observation: %w", err)
	}

	token := s.client.Publish(s.topic, 1, false, buf)
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("failed to publish to topic %s: %w", s.topic, token.Error())
	}

	s.logger.Debug("observation published", zap.String("badge", payload.Badge))
	return nil
}

// Close disconnects from the broker.
func (s *MQTTSink) Close() {
	s.client.Disconnect(250)
}
