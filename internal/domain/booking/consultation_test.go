package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequest(t *testing.T) *Consultation {
	t.Helper()
	c, err := NewConsultation(nil, "Jonas Weber", "jonas@example.com", "",
		"Living room layout", "", time.Now().Add(48*time.Hour))
	require.NoError(t, err)
	return c
}

func TestNewConsultation(t *testing.T) {
	t.Run("creates requested consultation", func(t *testing.T) {
		c := newRequest(t)
		assert.Equal(t, StatusRequested, c.Status)
	})

	t.Run("rejects past preferred time", func(t *testing.T) {
		_, err := NewConsultation(nil, "Jonas Weber", "jonas@example.com", "",
			"Living room layout", "", time.Now().Add(-time.Hour))
		require.Error(t, err)
	})

	t.Run("rejects missing email", func(t *testing.T) {
		_, err := NewConsultation(nil, "Jonas Weber", "not-an-email", "",
			"Living room layout", "", time.Now().Add(time.Hour))
		require.Error(t, err)
	})

	t.Run("rejects empty topic", func(t *testing.T) {
		_, err := NewConsultation(nil, "Jonas Weber", "jonas@example.com", "",
			" ", "", time.Now().Add(time.Hour))
		require.Error(t, err)
	})
}

func TestConsultation_Lifecycle(t *testing.T) {
	t.Run("requested to confirmed to completed", func(t *testing.T) {
		c := newRequest(t)

		require.NoError(t, c.Confirm())
		require.NoError(t, c.Complete())
		assert.Equal(t, StatusCompleted, c.Status)
	})

	t.Run("requested can be declined", func(t *testing.T) {
		c := newRequest(t)

		require.NoError(t, c.Decline())
		assert.Equal(t, StatusDeclined, c.Status)
	})

	t.Run("declined is terminal", func(t *testing.T) {
		c := newRequest(t)
		require.NoError(t, c.Decline())

		assert.Error(t, c.Confirm())
		assert.Error(t, c.Complete())
	})

	t.Run("requested cannot complete directly", func(t *testing.T) {
		c := newRequest(t)
		assert.Error(t, c.Complete())
	})
}
