package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocationFallsBackToUTC(t *testing.T) {
	assert.Equal(t, time.UTC, Location(""))
	assert.Equal(t, time.UTC, Location("Mars/Olympus"))
	assert.False(t, IsValid("Mars/Olympus"))
	assert.True(t, IsValid("UTC"))
}

func TestFormat(t *testing.T) {
	at := time.Date(2026, 3, 1, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-01 14:30 UTC", Format(at, "UTC"))
}
