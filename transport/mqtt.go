package transport

import (
	"context"
	"errors"
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

// Connection constants for the MQTT transport.
const (
	// defaultConnectTimeout is the maximum time to wait for initial connection.
	defaultConnectTimeout = 10 * time.Second

	// defaultPublishTimeout is the maximum time to wait for publish acknowledgment.
	defaultPublishTimeout = 5 * time.Second

	// defaultDisconnectQuiesce is the time to wait for pending operations on disconnect.
	defaultDisconnectQuiesce = 1000 // milliseconds

	// defaultKeepAlive is the keepalive interval for the connection.
	defaultKeepAlive = 60 * time.Second

	// defaultTopic is the publish topic when none is configured.
	defaultTopic = "influxline/write"
)

// MQTTConfig configures the MQTT transport.
type MQTTConfig struct {
	// BrokerURL is the broker address (tcp://host:port or ssl://host:port).
	BrokerURL string

	// Topic is the topic payloads are published to. Default: "influxline/write".
	Topic string

	// ClientID identifies this client to the broker.
	// Default: "influxline-" plus a random suffix.
	ClientID string

	// Username and Password are optional broker credentials.
	Username string
	Password string

	// QoS is the publish quality of service level (0, 1 or 2).
	QoS byte
}

// MQTT publishes line protocol payloads to a broker topic.
//
// A bridge on the subscribing side (telegraf's mqtt_consumer, typically)
// forwards the payloads into the actual store. Queries are not supported.
//
// Thread Safety: all methods are safe for concurrent use.
type MQTT struct {
	client pahomqtt.Client
	topic  string
	qos    byte
}

// NewMQTT connects to the broker and returns a publishing transport.
//
// Parameters:
//   - cfg: Broker address, topic and credentials
//
// Returns:
//   - *MQTT: Connected transport ready for use
//   - error: If the config is invalid or the initial connection fails
func NewMQTT(cfg MQTTConfig) (*MQTT, error) {
	if cfg.BrokerURL == "" {
		return nil, errors.New("transport: mqtt broker url is required")
	}
	if cfg.QoS > 2 {
		return nil, fmt.Errorf("transport: invalid mqtt qos %d (must be 0, 1, or 2)", cfg.QoS)
	}
	topic := cfg.Topic
	if topic == "" {
		topic = defaultTopic
	}
	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "influxline-" + uuid.NewString()[:8]
	}

	opts := buildMQTTOptions(cfg, clientID)

	client := pahomqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(defaultConnectTimeout) {
		return nil, fmt.Errorf("%w: connect timeout after %v", ErrConnectionFailed, defaultConnectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	return &MQTT{
		client: client,
		topic:  topic,
		qos:    cfg.QoS,
	}, nil
}

// buildMQTTOptions creates paho options from the transport config.
//
// This configures:
//   - Broker URL and client ID
//   - Authentication credentials (if provided)
//   - Auto-reconnect and clean session mode
//   - Connection timeout and keepalive
func buildMQTTOptions(cfg MQTTConfig, clientID string) *pahomqtt.ClientOptions {
	opts := pahomqtt.NewClientOptions()
	opts.AddBroker(cfg.BrokerURL)
	opts.SetClientID(clientID)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	// Clean session - no persistent broker state for a write-only client
	opts.SetCleanSession(true)

	// Auto-reconnect so a broker restart only costs in-flight publishes
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(defaultConnectTimeout)
	opts.SetKeepAlive(defaultKeepAlive)

	return opts
}

// Send publishes the payload to the configured topic.
//
// Publish failures and broker disconnection wrap ErrConnectionFailed: the
// broker never classifies payload content, so a bad request cannot be
// detected on this transport.
func (t *MQTT) Send(ctx context.Context, payload string) error {
	if !t.client.IsConnected() {
		return fmt.Errorf("%w: not connected to broker", ErrConnectionFailed)
	}

	timeout := defaultPublishTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}

	token := t.client.Publish(t.topic, t.qos, false, payload)
	if !token.WaitTimeout(timeout) {
		return fmt.Errorf("%w: publish timeout after %v", ErrConnectionFailed, timeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}
	return nil
}

// Query is not supported over MQTT.
func (t *MQTT) Query(_ context.Context, _ string) (string, error) {
	return "", ErrQueriesUnsupported
}

// Close disconnects from the broker after a quiesce period for pending
// publishes.
func (t *MQTT) Close() error {
	t.client.Disconnect(defaultDisconnectQuiesce)
	return nil
}
