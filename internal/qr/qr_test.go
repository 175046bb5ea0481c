package qr

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingPayload(t *testing.T) {
	got := BookingPayload("abc123", "Siti Aminah", "2025-06-01")

	assert.Equal(t, "Booking ID: abc123\nName: Siti Aminah\nVisit Date: 2025-06-01", got)
}

func TestRender(t *testing.T) {
	png, err := Render(BookingPayload("abc123", "Siti Aminah", "2025-06-01"))
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG\r\n\x1a\n")))
}
