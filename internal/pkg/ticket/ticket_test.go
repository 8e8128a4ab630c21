package ticket

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAndParse(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	id := New(42, now)

	assert.True(t, strings.HasPrefix(id, "CAR-42-"))

	tk, err := Parse(id)
	require.NoError(t, err)
	assert.Equal(t, int64(42), tk.VehicleID)
	assert.Len(t, tk.Code, 6)
	assert.Equal(t, strings.ToUpper(tk.Code), tk.Code)
	assert.True(t, now.Equal(tk.IssuedAt))
}

func TestNew_Unique(t *testing.T) {
	now := time.Now()
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := New(1, now)
		_, dup := seen[id]
		require.False(t, dup, "duplicate ticket %s", id)
		seen[id] = struct{}{}
	}
}

func TestParse_Malformed(t *testing.T) {
	for _, id := range []string{
		"",
		"CAR-1-ABC-1",
		"BUS-1-ABCDEF-1717236000000",
		"CAR-x-ABCDEF-1717236000000",
		"CAR-1-ABCDEF-later",
		"CAR-1-ABCDEF",
	} {
		_, err := Parse(id)
		assert.ErrorIs(t, err, ErrMalformed, id)
	}
}
