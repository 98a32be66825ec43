package influxline

import (
	"strconv"
	"strings"
	"time"
)

// Point is one measurement sample: a name, tags, fields and an optional
// timestamp. Points are built with the chainable Add/Set methods and
// consumed at write time — the client keeps only the encoded text.
//
// Tags and fields render in insertion order. Entries with an empty key,
// an empty tag value or an empty string field value are silently dropped.
// A meaningful point carries at least one field.
//
// Thread Safety: a Point is not safe for concurrent mutation. Build it on
// one goroutine, then hand it to the client.
type Point struct {
	name   string
	tags   string // "k=v,k=v" in insertion order, no leading comma
	fields string // "k=v,k=v" in insertion order
	ts     time.Time
	hasTS  bool
}

// NewPoint creates a point for the named measurement.
func NewPoint(name string) *Point {
	return &Point{name: name}
}

// AddTag appends a tag, preserving insertion order.
//
// Empty keys and empty values are dropped without error: the remote store
// rejects them, and a missing tag is less damaging than a rejected batch.
func (p *Point) AddTag(key, value string) *Point {
	if key == "" || value == "" {
		return p
	}
	if p.tags != "" {
		p.tags += ","
	}
	p.tags += key + "=" + value
	return p
}

// AddField appends a field, preserving insertion order.
//
// Supported value types:
//   - integers (int, int32, int64, uint, uint32, uint64): rendered with the
//     "i" type marker, e.g. 10i
//   - float32, float64: rendered in minimal decimal form (10.10 becomes 10.1)
//   - string: rendered quoted; empty strings are dropped
//   - bool: rendered as true/false
//
// Empty keys and unsupported value types are dropped silently.
func (p *Point) AddField(key string, value any) *Point {
	if key == "" {
		return p
	}

	var rendered string
	switch v := value.(type) {
	case int:
		rendered = strconv.FormatInt(int64(v), 10) + "i"
	case int32:
		rendered = strconv.FormatInt(int64(v), 10) + "i"
	case int64:
		rendered = strconv.FormatInt(v, 10) + "i"
	case uint:
		rendered = strconv.FormatUint(uint64(v), 10) + "i"
	case uint32:
		rendered = strconv.FormatUint(uint64(v), 10) + "i"
	case uint64:
		rendered = strconv.FormatUint(v, 10) + "i"
	case float32:
		rendered = strconv.FormatFloat(float64(v), 'g', -1, 32)
	case float64:
		rendered = strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		rendered = strconv.FormatBool(v)
	case string:
		if v == "" {
			return p
		}
		rendered = strconv.Quote(v)
	default:
		return p
	}

	if p.fields != "" {
		p.fields += ","
	}
	p.fields += key + "=" + rendered
	return p
}

// SetTimestamp assigns an explicit timestamp. Without one, the remote store
// assigns the arrival time.
func (p *Point) SetTimestamp(t time.Time) *Point {
	p.ts = t
	p.hasTS = true
	return p
}

// Name returns the measurement name.
func (p *Point) Name() string {
	return p.name
}

// LineProtocol renders the point as one line protocol line:
//
//	measurement[,tag=val,...] field=val[,field=val...] [timestamp]
//
// Empty segments are omitted entirely; the timestamp renders as integer
// nanoseconds since epoch.
func (p *Point) LineProtocol() string {
	return p.encode("")
}

// encode renders the point with the client's global tags spliced into the
// tag segment ahead of the point's own tags.
func (p *Point) encode(globalTags string) string {
	var b strings.Builder
	b.WriteString(p.name)

	if globalTags != "" {
		b.WriteByte(',')
		b.WriteString(globalTags)
	}
	if p.tags != "" {
		b.WriteByte(',')
		b.WriteString(p.tags)
	}
	if p.fields != "" {
		b.WriteByte(' ')
		b.WriteString(p.fields)
	}
	if p.hasTS {
		b.WriteByte(' ')
		b.WriteString(strconv.FormatInt(p.ts.UnixNano(), 10))
	}

	return b.String()
}
