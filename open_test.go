package influxline_test

import (
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nerrad567/influxline"
)

func TestOpen_HTTP(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client, err := influxline.Open(server.URL + "?db=test")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer client.Close()

	result := client.Write(influxline.NewPoint("test").AddField("value", 10))
	if result != influxline.ResultSucceeded {
		t.Fatalf("Write() = %v, want ResultSucceeded", result)
	}
	if gotBody != "test value=10i" {
		t.Errorf("server received %q, want %q", gotBody, "test value=10i")
	}
}

func TestOpen_UDP(t *testing.T) {
	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("ListenPacket() error = %v", err)
	}
	defer conn.Close()

	client, err := influxline.Open("udp://" + conn.LocalAddr().String())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer client.Close()

	result := client.Write(influxline.NewPoint("test").AddField("value", 10))
	if result != influxline.ResultSucceeded {
		t.Fatalf("Write() = %v, want ResultSucceeded", result)
	}

	buf := make([]byte, 1024)
	n, _, err := conn.ReadFrom(buf)
	if err != nil {
		t.Fatalf("ReadFrom() error = %v", err)
	}
	if got := string(buf[:n]); got != "test value=10i" {
		t.Errorf("listener received %q, want %q", got, "test value=10i")
	}
}

func TestOpen_Unix(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "influxline.sock")
	conn, err := net.ListenPacket("unixgram", socket)
	if err != nil {
		t.Fatalf("ListenPacket() error = %v", err)
	}
	defer conn.Close()

	client, err := influxline.Open("unix://" + socket)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer client.Close()

	result := client.Write(influxline.NewPoint("test").AddField("value", 10))
	if result != influxline.ResultSucceeded {
		t.Fatalf("Write() = %v, want ResultSucceeded", result)
	}

	buf := make([]byte, 1024)
	n, _, err := conn.ReadFrom(buf)
	if err != nil {
		t.Fatalf("ReadFrom() error = %v", err)
	}
	if got := string(buf[:n]); got != "test value=10i" {
		t.Errorf("listener received %q, want %q", got, "test value=10i")
	}
}

func TestOpen_UnknownScheme(t *testing.T) {
	_, err := influxline.Open("gopher://localhost")
	if err == nil {
		t.Fatal("Open() should reject unknown schemes")
	}
	if !strings.Contains(err.Error(), "unsupported scheme") {
		t.Errorf("Open() error = %v, want unsupported scheme message", err)
	}
}

func TestOpen_InvalidURL(t *testing.T) {
	if _, err := influxline.Open("://not-a-url"); err == nil {
		t.Fatal("Open() should reject unparseable URLs")
	}
}
