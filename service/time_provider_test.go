package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backendlink/helpers"
)

func TestNewTimeProvider(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tp := NewTimeProvider(helpers.TestNow)
		require.NotNil(t, tp)
		assert.Equal(t, helpers.TestNow(), tp.Now())
	})
	t.Run("panics_on_nil_now", func(t *testing.T) {
		assert.PanicsWithValue(t, "service.time_provider.go: now is required", func() {
			NewTimeProvider(nil)
		})
	})
}

func TestTimeProvider_Now_Advances(t *testing.T) {
	current := helpers.TestNow()
	tp := NewTimeProvider(func() time.Time { return current })

	first := tp.Now()
	current = current.Add(5 * time.Minute)
	second := tp.Now()

	assert.Equal(t, 5*time.Minute, second.Sub(first))
}
