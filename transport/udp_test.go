package transport_test

import (
	"context"
	"errors"
	"net"
	"strings"
	"testing"

	"github.com/nerrad567/influxline/transport"
)

func TestUDPSend(t *testing.T) {
	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("ListenPacket() error = %v", err)
	}
	defer conn.Close()

	tr, err := transport.NewUDP(conn.LocalAddr().String())
	if err != nil {
		t.Fatalf("NewUDP() error = %v", err)
	}
	defer tr.Close()

	if err := tr.Send(context.Background(), "test value=1i"); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	buf := make([]byte, 1024)
	n, _, err := conn.ReadFrom(buf)
	if err != nil {
		t.Fatalf("ReadFrom() error = %v", err)
	}
	if got := string(buf[:n]); got != "test value=1i" {
		t.Errorf("listener received %q, want %q", got, "test value=1i")
	}
}

func TestUDPSend_OversizedPayload(t *testing.T) {
	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("ListenPacket() error = %v", err)
	}
	defer conn.Close()

	tr, err := transport.NewUDP(conn.LocalAddr().String())
	if err != nil {
		t.Fatalf("NewUDP() error = %v", err)
	}
	defer tr.Close()

	payload := strings.Repeat("x", 65508)
	err = tr.Send(context.Background(), payload)
	if !errors.Is(err, transport.ErrBadRequest) {
		t.Errorf("Send() error = %v, want ErrBadRequest for oversized datagram", err)
	}
}

func TestUDPSend_AfterClose(t *testing.T) {
	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("ListenPacket() error = %v", err)
	}
	defer conn.Close()

	tr, err := transport.NewUDP(conn.LocalAddr().String())
	if err != nil {
		t.Fatalf("NewUDP() error = %v", err)
	}
	tr.Close()

	err = tr.Send(context.Background(), "test value=1i")
	if !errors.Is(err, transport.ErrConnectionFailed) {
		t.Errorf("Send() error = %v, want ErrConnectionFailed after Close", err)
	}
}

func TestUDPQuery_Unsupported(t *testing.T) {
	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("ListenPacket() error = %v", err)
	}
	defer conn.Close()

	tr, err := transport.NewUDP(conn.LocalAddr().String())
	if err != nil {
		t.Fatalf("NewUDP() error = %v", err)
	}
	defer tr.Close()

	if _, err := tr.Query(context.Background(), "SELECT 1"); !errors.Is(err, transport.ErrQueriesUnsupported) {
		t.Errorf("Query() error = %v, want ErrQueriesUnsupported", err)
	}
}
