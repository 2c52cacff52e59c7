package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iwtcode/zplAdapter/models"
)

func TestParseMemory(t *testing.T) {
	m, err := ParseMemory("\x021024,780,450\r\n\x03")
	require.NoError(t, err)
	assert.Equal(t, models.MemoryStatus{TotalRAMKB: 1024, MaxAvailableKB: 780, CurrentAvailableKB: 450}, m)

	m, err = ParseMemory(" 8192 , 7000 , 6000 ,extra\r\nsecond line")
	require.NoError(t, err)
	assert.Equal(t, uint32(6000), m.CurrentAvailableKB)
}

func TestParseMemoryFailures(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		kind error
	}{
		{name: "empty", raw: "", kind: ErrIncomplete},
		{name: "two fields", raw: "1024,780", kind: ErrIncomplete},
		{name: "non numeric", raw: "1024,abc,450", kind: ErrMalformed},
		{name: "negative", raw: "1024,-1,450", kind: ErrMalformed},
		{name: "empty field", raw: "1024,,450", kind: ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseMemory(tt.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			assert.Equal(t, models.MemoryStatus{}, m)
		})
	}
}

func TestUsagePercent(t *testing.T) {
	p, err := UsagePercent(models.MemoryStatus{TotalRAMKB: 1024, MaxAvailableKB: 800, CurrentAvailableKB: 600})
	require.NoError(t, err)
	assert.InDelta(t, 25.0, p, 1e-9)

	p, err = UsagePercent(models.MemoryStatus{MaxAvailableKB: 800, CurrentAvailableKB: 900})
	require.NoError(t, err)
	assert.Zero(t, p)

	p, err = UsagePercent(models.MemoryStatus{MaxAvailableKB: 800})
	require.NoError(t, err)
	assert.InDelta(t, 100.0, p, 1e-9)
}

func TestUsagePercentZeroCapacity(t *testing.T) {
	_, err := UsagePercent(models.MemoryStatus{TotalRAMKB: 1024})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrZeroCapacity)
	assert.ErrorIs(t, err, ErrMalformed)
	assert.NotErrorIs(t, err, ErrIncomplete)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "1024,0,0", perr.Raw)
}
