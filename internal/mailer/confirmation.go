package mailer

import (
	"bytes"
	"html/template"
)

const ConfirmationSubject = "🎟️ Your Booking Confirmation with QR Code"

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`
<p>Thank you, <strong>{{.UserName}}</strong>, for your booking!</p>
<p><strong>Visit Date:</strong> {{.VisitDate}}</p>
<p><strong>Ticket:</strong> {{.TicketName}}</p>
<p><strong>Total Paid:</strong> RM {{printf "%.2f" .TotalAmount}}</p>
<p>📲 <strong>Scan this QR code at entry:</strong></p>
<img src="{{.QRURL}}" width="200" alt="QR Code" />
`))

type Confirmation struct {
	UserName    string
	VisitDate   string
	TicketName  string
	TotalAmount float64
	QRURL       string
}

func RenderConfirmation(c *Confirmation) (string, error) {
	var buf bytes.Buffer
	if err := confirmationTemplate.Execute(&buf, c); err != nil {
		return "", err
	}

	return buf.String(), nil
}
