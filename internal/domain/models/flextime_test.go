package models

import (
	"encoding/json"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

func TestFlexTime_UnmarshalBSON_MixedShapes(t *testing.T) {
	type doc struct {
		TS FlexTime `bson:"ts"`
	}

	tests := []struct {
		name string
		in   bson.M
		want time.Time
	}{
		{
			name: "bson date",
			in:   bson.M{"ts": time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
			want: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "iso string",
			in:   bson.M{"ts": "2024-01-01T00:00:00Z"},
			want: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "seconds object",
			in:   bson.M{"ts": bson.M{"seconds": int64(1700000000)}},
			want: time.Unix(1700000000, 0).UTC(),
		},
		{
			name: "garbage string",
			in:   bson.M{"ts": "not-a-date"},
			want: time.Time{},
		},
		{
			name: "null",
			in:   bson.M{"ts": nil},
			want: time.Time{},
		},
		{
			name: "missing",
			in:   bson.M{},
			want: time.Time{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := bson.Marshal(tt.in)
			if err != nil {
				t.Fatalf("marshal fixture: %v", err)
			}
			var d doc
			if err := bson.Unmarshal(raw, &d); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if !d.TS.Time.Equal(tt.want) {
				t.Errorf("got %v, want %v", d.TS.Time, tt.want)
			}
		})
	}
}

func TestFlexTime_UnmarshalJSON_MixedShapes(t *testing.T) {
	type doc struct {
		TS FlexTime `json:"ts"`
	}

	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{"iso string", `{"ts":"2024-01-01T00:00:00Z"}`, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"seconds object", `{"ts":{"seconds":1700000000}}`, time.Unix(1700000000, 0).UTC()},
		{"epoch millis", `{"ts":1700000000000}`, time.UnixMilli(1700000000000).UTC()},
		{"garbage", `{"ts":"not-a-date"}`, time.Time{}},
		{"null", `{"ts":null}`, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d doc
			if err := json.Unmarshal([]byte(tt.in), &d); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if !d.TS.Time.Equal(tt.want) {
				t.Errorf("got %v, want %v", d.TS.Time, tt.want)
			}
		})
	}
}

func TestFlexTime_ZeroSortsOldest(t *testing.T) {
	zero := FlexTime{}
	set := NewFlexTime(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	if !zero.Before(set) {
		t.Error("zero FlexTime should sort before any real timestamp")
	}
	if set.Before(zero) {
		t.Error("real timestamp should not sort before zero")
	}
}
