package influxline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/influxdata/influxdb1-client/models"
)

// Query executes a read-only query through the transport and decodes the
// result rows into points.
//
// Only transports with a read path support this (the 1.x HTTP transport);
// the rest return transport.ErrQueriesUnsupported.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - query: InfluxQL query text
//
// Returns:
//   - []*Point: One point per result row; nil when the result set is empty
//   - error: Transport failures, response decoding failures, or errors the
//     server embedded in the response body
func (c *Client) Query(ctx context.Context, query string) ([]*Point, error) {
	response, err := c.transport.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("influxline: query: %w", err)
	}
	return decodeQueryResponse(response)
}

// queryResponse mirrors the InfluxDB 1.x /query JSON body. Series rows
// reuse the upstream models.Row shape (name, tags, columns, values).
type queryResponse struct {
	Results []struct {
		Series []models.Row `json:"series"`
		Err    string       `json:"error"`
	} `json:"results"`
	Err string `json:"error"`
}

// decodeQueryResponse converts a raw /query JSON body into points.
//
// Per row: the "time" column becomes the point's timestamp (RFC3339),
// numeric and boolean values become fields, string values become tags
// (matching how the stored tag set round-trips), and nulls are skipped.
// GROUP BY tags attached at series level merge into every row's point.
func decodeQueryResponse(body string) ([]*Point, error) {
	var resp queryResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return nil, fmt.Errorf("influxline: decoding query response: %w", err)
	}
	if resp.Err != "" {
		return nil, fmt.Errorf("influxline: query failed: %s", resp.Err)
	}

	var points []*Point
	for _, result := range resp.Results {
		if result.Err != "" {
			return nil, fmt.Errorf("influxline: query statement failed: %s", result.Err)
		}

		for _, series := range result.Series {
			for _, row := range series.Values {
				point := NewPoint(series.Name)
				for key, value := range series.Tags {
					point.AddTag(key, value)
				}

				for i, column := range series.Columns {
					if i >= len(row) || row[i] == nil {
						continue
					}
					if column == "time" {
						if raw, ok := row[i].(string); ok {
							if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
								point.SetTimestamp(ts)
							}
						}
						continue
					}
					switch value := row[i].(type) {
					case float64:
						point.AddField(column, value)
					case bool:
						point.AddField(column, value)
					case string:
						point.AddTag(column, value)
					}
				}

				points = append(points, point)
			}
		}
	}

	return points, nil
}
