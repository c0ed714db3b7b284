package domain

import (
	"encoding/json"
	"time"
)

// Stored documents have accumulated several timestamp encodings over time:
// provider-native time values, {seconds,nanos} maps from serialized admin-SDK
// timestamps, ISO strings, and epoch-millisecond numbers. Older documents may
// miss the field entirely. TimestampKind tags which shape was observed.
type TimestampKind int

const (
	TimestampAbsent TimestampKind = iota
	TimestampNative
	TimestampEpochParts
	TimestampTextEncoded
)

// RawTimestamp is the classified form of a stored timestamp field.
type RawTimestamp struct {
	Kind    TimestampKind
	Time    time.Time // Native
	Seconds int64     // EpochParts
	Nanos   int64     // EpochParts
	Text    string    // TextEncoded
}

// ClassifyTimestamp inspects a decoded store value and tags its shape.
// All call sites go through this single conversion point.
func ClassifyTimestamp(v any) RawTimestamp {
	switch t := v.(type) {
	case nil:
		return RawTimestamp{Kind: TimestampAbsent}
	case time.Time:
		return RawTimestamp{Kind: TimestampNative, Time: t}
	case *time.Time:
		if t == nil {
			return RawTimestamp{Kind: TimestampAbsent}
		}
		return RawTimestamp{Kind: TimestampNative, Time: *t}
	case map[string]any:
		if sec, ok := epochPart(t, "_seconds", "seconds"); ok {
			nanos, _ := epochPart(t, "_nanoseconds", "nanos")
			return RawTimestamp{Kind: TimestampEpochParts, Seconds: sec, Nanos: nanos}
		}
		return RawTimestamp{Kind: TimestampAbsent}
	case string:
		if t == "" {
			return RawTimestamp{Kind: TimestampAbsent}
		}
		return RawTimestamp{Kind: TimestampTextEncoded, Text: t}
	case float64:
		return RawTimestamp{Kind: TimestampEpochParts, Seconds: int64(t) / 1000, Nanos: (int64(t) % 1000) * int64(time.Millisecond)}
	case int64:
		return RawTimestamp{Kind: TimestampEpochParts, Seconds: t / 1000, Nanos: (t % 1000) * int64(time.Millisecond)}
	case int:
		return ClassifyTimestamp(int64(t))
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return ClassifyTimestamp(n)
		}
		return RawTimestamp{Kind: TimestampAbsent}
	default:
		return RawTimestamp{Kind: TimestampAbsent}
	}
}

// Resolve converts the tagged value into one concrete point in time.
// Absent or unparseable values default to now so listings never carry a zero
// timestamp.
func (r RawTimestamp) Resolve() time.Time {
	switch r.Kind {
	case TimestampNative:
		return r.Time
	case TimestampEpochParts:
		return time.Unix(r.Seconds, r.Nanos)
	case TimestampTextEncoded:
		if t, err := time.Parse(time.RFC3339Nano, r.Text); err == nil {
			return t
		}
		if t, err := time.Parse(time.RFC3339, r.Text); err == nil {
			return t
		}
		return time.Now()
	default:
		return time.Now()
	}
}

// NormalizeTimestamp is the one-call form used by store adapters.
func NormalizeTimestamp(v any) time.Time {
	return ClassifyTimestamp(v).Resolve()
}

func epochPart(m map[string]any, keys ...string) (int64, bool) {
	for _, k := range keys {
		switch n := m[k].(type) {
		case float64:
			return int64(n), true
		case int64:
			return n, true
		case int:
			return int64(n), true
		case json.Number:
			if v, err := n.Int64(); err == nil {
				return v, true
			}
		}
	}
	return 0, false
}
