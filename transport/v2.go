package transport

import (
	"context"
	"errors"
	"fmt"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	influxhttp "github.com/influxdata/influxdb-client-go/v2/api/http"
)

// defaultPingTimeout bounds the connectivity check performed at construction.
const defaultPingTimeout = 10 * time.Second

// V2Config configures the InfluxDB 2.x transport.
type V2Config struct {
	// URL is the server address (e.g., "http://localhost:8086").
	URL string

	// Token authenticates against the server's v2 API.
	Token string

	// Org and Bucket select where writes land.
	Org    string
	Bucket string
}

// V2 writes line protocol to an InfluxDB 2.x server through the official
// client's blocking write API.
//
// Queries are not supported: the v2 read path speaks Flux, which is a
// different language from the line-oriented engine this transport serves.
//
// Thread Safety: all methods are safe for concurrent use.
type V2 struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
}

// NewV2 creates the transport and verifies connectivity with a ping.
//
// Parameters:
//   - ctx: Context bounding the connectivity check
//   - cfg: Server address, token, org and bucket
//
// Returns:
//   - *V2: Transport ready for use
//   - error: If the config is invalid or the server is unreachable
func NewV2(ctx context.Context, cfg V2Config) (*V2, error) {
	if cfg.URL == "" {
		return nil, errors.New("transport: influxdb v2 url is required")
	}

	client := influxdb2.NewClient(cfg.URL, cfg.Token)

	pingCtx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
	defer cancel()

	healthy, err := client.Ping(pingCtx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: ping failed: %w", ErrConnectionFailed, err)
	}
	if !healthy {
		client.Close()
		return nil, fmt.Errorf("%w: server not healthy", ErrConnectionFailed)
	}

	return &V2{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
	}, nil
}

// Send writes the payload synchronously.
//
// The official client surfaces server rejections as *http.Error values;
// their status codes map onto the transport failure taxonomy the same way
// the 1.x HTTP transport maps raw responses.
func (t *V2) Send(ctx context.Context, payload string) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultWriteTimeout)
		defer cancel()
	}

	err := t.writeAPI.WriteRecord(ctx, payload)
	if err == nil {
		return nil
	}

	var serverErr *influxhttp.Error
	if errors.As(err, &serverErr) {
		switch {
		case serverErr.StatusCode >= 400 && serverErr.StatusCode < 500:
			return fmt.Errorf("%w: HTTP %d: %s", ErrBadRequest, serverErr.StatusCode, serverErr.Message)
		case serverErr.StatusCode >= 500:
			return fmt.Errorf("%w: HTTP %d: %s", ErrServerError, serverErr.StatusCode, serverErr.Message)
		}
	}
	return fmt.Errorf("%w: %w", ErrConnectionFailed, err)
}

// Query is not supported on the 2.x transport.
func (t *V2) Query(_ context.Context, _ string) (string, error) {
	return "", ErrQueriesUnsupported
}

// Close releases the underlying client's resources.
func (t *V2) Close() error {
	t.client.Close()
	return nil
}
