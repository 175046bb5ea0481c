package qr

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

const (
	ContentType = "image/png"
	size        = 256
)

// BookingPayload is the text encoded in a booking's QR code.
func BookingPayload(bookingID, name, visitDate string) string {
	return fmt.Sprintf("Booking ID: %s\nName: %s\nVisit Date: %s", bookingID, name, visitDate)
}

// Render encodes content as a PNG QR code.
func Render(content string) ([]byte, error) {
	return qrcode.Encode(content, qrcode.Medium, size)
}
