package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyTimestamp(t *testing.T) {
	now := time.Now()

	t.Run("native time value", func(t *testing.T) {
		raw := ClassifyTimestamp(now)
		assert.Equal(t, TimestampNative, raw.Kind)
		assert.True(t, raw.Resolve().Equal(now))
	})

	t.Run("epoch parts map", func(t *testing.T) {
		raw := ClassifyTimestamp(map[string]any{"_seconds": float64(1700000000), "_nanoseconds": float64(500000000)})
		assert.Equal(t, TimestampEpochParts, raw.Kind)
		assert.Equal(t, time.Unix(1700000000, 500000000), raw.Resolve())
	})

	t.Run("admin sdk seconds nanos keys", func(t *testing.T) {
		raw := ClassifyTimestamp(map[string]any{"seconds": int64(1700000000), "nanos": int64(0)})
		assert.Equal(t, TimestampEpochParts, raw.Kind)
		assert.Equal(t, time.Unix(1700000000, 0), raw.Resolve())
	})

	t.Run("iso string", func(t *testing.T) {
		raw := ClassifyTimestamp("2024-05-01T12:00:00Z")
		assert.Equal(t, TimestampTextEncoded, raw.Kind)
		assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), raw.Resolve().UTC())
	})

	t.Run("epoch milliseconds number", func(t *testing.T) {
		raw := ClassifyTimestamp(float64(1700000000500))
		assert.Equal(t, TimestampEpochParts, raw.Kind)
		assert.Equal(t, time.Unix(1700000000, int64(500*time.Millisecond)), raw.Resolve())
	})

	t.Run("absent defaults to now", func(t *testing.T) {
		for _, v := range []any{nil, "", map[string]any{}, []string{"x"}} {
			raw := ClassifyTimestamp(v)
			assert.Equal(t, TimestampAbsent, raw.Kind, "value %#v", v)
			assert.WithinDuration(t, time.Now(), raw.Resolve(), time.Second)
		}
	})

	t.Run("unparseable text defaults to now", func(t *testing.T) {
		raw := ClassifyTimestamp("last tuesday")
		assert.Equal(t, TimestampTextEncoded, raw.Kind)
		assert.WithinDuration(t, time.Now(), raw.Resolve(), time.Second)
	})
}
