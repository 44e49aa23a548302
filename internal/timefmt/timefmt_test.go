package timefmt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAge(t *testing.T) {
	now := time.Date(2026, 1, 20, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		ago  time.Duration
		want string
	}{
		{30 * time.Second, "now"},
		{5 * time.Minute, "5m"},
		{3 * time.Hour, "3h"},
		{48 * time.Hour, "2d"},
		{15 * 24 * time.Hour, "2w"},
		{60 * 7 * 24 * time.Hour, "1y"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Age(now.Add(-tc.ago), now), "age %v", tc.ago)
	}
}

func TestAge_FutureClampsToNow(t *testing.T) {
	now := time.Date(2026, 1, 20, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "now", Age(now.Add(time.Hour), now))
}

func TestShort(t *testing.T) {
	ts := time.Date(2026, 1, 20, 0, 6, 0, 0, time.UTC)
	assert.Equal(t, "Jan20 00:06", Short(ts))
}

func TestStamp(t *testing.T) {
	now := time.Date(2026, 1, 20, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "-", Stamp("", now))
	assert.Equal(t, "-", Stamp("not-a-time", now))
	assert.Equal(t, "3h Jan20 09:00", Stamp("2026-01-20T09:00:00Z", now))
}
