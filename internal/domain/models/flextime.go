// internal/domain/models/flextime.go
package models

import (
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// FlexTime is a timestamp that tolerates every representation found in the
// legacy data: a proper BSON date, an ISO-8601 string, a {seconds: N} object
// (server-timestamp shape), a millisecond epoch number, or nothing at all.
//
// Absent or unparseable values decode to the zero time, which sorts oldest.
// Decoding never returns an error for a malformed value; rendering must not
// crash on bad documents.
type FlexTime struct {
	time.Time
}

// NewFlexTime wraps a time.Time.
func NewFlexTime(t time.Time) FlexTime { return FlexTime{Time: t.UTC()} }

// Before reports whether f is earlier than other. Zero values compare as
// epoch-zero, so missing timestamps land at the oldest end of any sort.
func (f FlexTime) Before(other FlexTime) bool { return f.Time.Before(other.Time) }

// timestampShape is the {seconds, nanos} object some writers produced.
type timestampShape struct {
	Seconds int64 `bson:"seconds" json:"seconds"`
	Nanos   int64 `bson:"nanoseconds,omitempty" json:"nanoseconds,omitempty"`
}

// UnmarshalBSONValue accepts date, string, embedded document, numeric, and
// null representations. Anything unrecognized becomes the zero time.
func (f *FlexTime) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	f.Time = time.Time{}

	switch t {
	case bson.TypeDateTime:
		var raw bson.RawValue = bson.RawValue{Type: t, Value: data}
		f.Time = raw.Time().UTC()
	case bson.TypeString:
		raw := bson.RawValue{Type: t, Value: data}
		f.Time = parseTimeString(raw.StringValue())
	case bson.TypeEmbeddedDocument:
		var ts timestampShape
		if err := bson.Unmarshal(data, &ts); err == nil && ts.Seconds != 0 {
			f.Time = time.Unix(ts.Seconds, ts.Nanos).UTC()
		}
	case bson.TypeInt64:
		raw := bson.RawValue{Type: t, Value: data}
		if ms, ok := raw.Int64OK(); ok {
			f.Time = time.UnixMilli(ms).UTC()
		}
	case bson.TypeDouble:
		raw := bson.RawValue{Type: t, Value: data}
		if d, ok := raw.DoubleOK(); ok {
			f.Time = time.UnixMilli(int64(d)).UTC()
		}
	case bson.TypeNull, bson.TypeUndefined:
		// zero time
	}
	return nil
}

// MarshalBSONValue always writes a proper BSON date so the collection heals
// toward one representation as documents are rewritten.
func (f FlexTime) MarshalBSONValue() (bsontype.Type, []byte, error) {
	typ, data, err := bson.MarshalValue(f.Time)
	return typ, data, err
}

// UnmarshalJSON mirrors the BSON behavior for API payloads.
func (f *FlexTime) UnmarshalJSON(data []byte) error {
	f.Time = time.Time{}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		f.Time = parseTimeString(s)
		return nil
	}
	var ts timestampShape
	if err := json.Unmarshal(data, &ts); err == nil && ts.Seconds != 0 {
		f.Time = time.Unix(ts.Seconds, ts.Nanos).UTC()
		return nil
	}
	var ms int64
	if err := json.Unmarshal(data, &ms); err == nil && ms != 0 {
		f.Time = time.UnixMilli(ms).UTC()
	}
	return nil
}

// MarshalJSON writes RFC 3339, or null for the zero time.
func (f FlexTime) MarshalJSON() ([]byte, error) {
	if f.Time.IsZero() {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf("%q", f.Time.UTC().Format(time.RFC3339Nano))), nil
}

func parseTimeString(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
