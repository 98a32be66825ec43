package transport_test

import (
	"context"
	"os"
	"testing"

	"github.com/nerrad567/influxline/transport"
)

// brokerURL returns the broker address for integration tests.
func brokerURL() string {
	if url := os.Getenv("MQTT_BROKER_URL"); url != "" {
		return url
	}
	return "tcp://127.0.0.1:1883"
}

// connectOrSkip connects to the local test broker or skips the test.
func connectOrSkip(t *testing.T) *transport.MQTT {
	t.Helper()
	tr, err := transport.NewMQTT(transport.MQTTConfig{
		BrokerURL: brokerURL(),
		Topic:     "influxline/test",
	})
	if err != nil {
		t.Skip("MQTT broker not available, skipping integration test")
	}
	return tr
}

// =============================================================================
// Validation Tests
// =============================================================================

func TestNewMQTT_MissingBroker(t *testing.T) {
	_, err := transport.NewMQTT(transport.MQTTConfig{})
	if err == nil {
		t.Fatal("NewMQTT() should require a broker url")
	}
}

func TestNewMQTT_InvalidQoS(t *testing.T) {
	_, err := transport.NewMQTT(transport.MQTTConfig{
		BrokerURL: "tcp://127.0.0.1:1883",
		QoS:       3,
	})
	if err == nil {
		t.Fatal("NewMQTT() should reject QoS above 2")
	}
}

// =============================================================================
// Integration Tests (require a local broker)
// =============================================================================

func TestMQTTSend(t *testing.T) {
	tr := connectOrSkip(t)
	defer tr.Close()

	if err := tr.Send(context.Background(), "test value=1i"); err != nil {
		t.Errorf("Send() error = %v", err)
	}
}

func TestMQTTQuery_Unsupported(t *testing.T) {
	tr := connectOrSkip(t)
	defer tr.Close()

	if _, err := tr.Query(context.Background(), "SELECT 1"); err != transport.ErrQueriesUnsupported {
		t.Errorf("Query() error = %v, want ErrQueriesUnsupported", err)
	}
}

func TestMQTTClose_Idempotent(t *testing.T) {
	tr := connectOrSkip(t)

	if err := tr.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := tr.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
