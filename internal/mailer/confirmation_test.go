package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderConfirmation(t *testing.T) {
	html, err := RenderConfirmation(&Confirmation{
		UserName:    "Siti <b>Aminah</b>",
		VisitDate:   "2025-06-01",
		TicketName:  "Day Pass",
		TotalAmount: 25.5,
		QRURL:       "https://storage.googleapis.com/bucket/qr-codes/abc.png",
	})
	require.NoError(t, err)

	assert.Contains(t, html, "Siti &lt;b&gt;Aminah&lt;/b&gt;")
	assert.Contains(t, html, "<strong>Visit Date:</strong> 2025-06-01")
	assert.Contains(t, html, "<strong>Ticket:</strong> Day Pass")
	assert.Contains(t, html, "RM 25.50")
	assert.Contains(t, html, `<img src="https://storage.googleapis.com/bucket/qr-codes/abc.png"`)
}
