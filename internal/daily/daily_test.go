package daily

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateKeyIsUTC(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	ts := time.Date(2024, 6, 2, 5, 0, 0, 0, loc) // 2024-06-01 19:00 UTC
	assert.Equal(t, "2024-06-01", DateKey(ts))
}

func TestWordIndexStablePerDay(t *testing.T) {
	morning := time.Date(2024, 6, 1, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 6, 1, 23, 0, 0, 0, time.UTC)

	a := WordIndex(morning, "salt", 80)
	b := WordIndex(evening, "salt", 80)
	assert.Equal(t, a, b)
	assert.GreaterOrEqual(t, a, 0)
	assert.Less(t, a, 80)
}

func TestWordIndexEmptyList(t *testing.T) {
	assert.Zero(t, WordIndex(time.Now(), "salt", 0))
}
