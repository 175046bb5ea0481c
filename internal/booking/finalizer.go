package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/farellandr/melaka-tickets/internal/apperr"
	"github.com/farellandr/melaka-tickets/internal/logger"
	"github.com/farellandr/melaka-tickets/internal/mailer"
	"github.com/farellandr/melaka-tickets/internal/models"
	"github.com/farellandr/melaka-tickets/internal/objectstore"
	"github.com/farellandr/melaka-tickets/internal/qr"
	"github.com/farellandr/melaka-tickets/internal/store"
)

const qrPathFormat = "qr-codes/%s.png"

type Request struct {
	TicketName       string             `json:"ticketName"`
	TicketQuantities map[string]float64 `json:"ticketQuantities"`
	TotalAmount      float64            `json:"totalAmount"`
	UserName         string             `json:"userName"`
	UserPhone        models.Phone       `json:"userPhone"`
	UserEmail        string             `json:"userEmail"`
	VisitDate        string             `json:"visitDate"`
}

type Result struct {
	Success   bool   `json:"success"`
	BookingID string `json:"bookingId"`
	QRURL     string `json:"qrUrl"`
}

// Finalizer persists a paid booking, attaches its QR code and emails the purchaser.
// Steps are never retried or rolled back: a failure leaves the booking in its last status.
type Finalizer struct {
	l      logger.Provider
	store  store.Store
	bucket objectstore.Bucket
	mail   mailer.Sender
	render func(content string) ([]byte, error)
	now    func() time.Time
}

func NewFinalizer(l logger.Provider, s store.Store, bucket objectstore.Bucket, mail mailer.Sender) *Finalizer {
	return &Finalizer{
		l:      l,
		store:  s,
		bucket: bucket,
		mail:   mail,
		render: qr.Render,
		now:    time.Now,
	}
}

func QRPath(bookingID string) string {
	return fmt.Sprintf(qrPathFormat, bookingID)
}

func (f *Finalizer) Finalize(ctx context.Context, callerUID string, req *Request) (*Result, error) {
	l := f.l(ctx)

	if callerUID == "" {
		return nil, apperr.New(apperr.ErrUnauthenticated, "The function must be called while authenticated.")
	}

	visitDate, err := validate(req)
	if err != nil {
		return nil, err
	}

	b := &models.Booking{
		UID:              callerUID,
		TicketName:       req.TicketName,
		TicketQuantities: req.TicketQuantities,
		TotalAmount:      req.TotalAmount,
		UserName:         req.UserName,
		UserPhone:        req.UserPhone,
		UserEmail:        req.UserEmail,
		VisitDate:        visitDate,
		Timestamp:        f.now().UTC(),
		Status:           models.BookingPending,
	}

	bookingID, err := f.store.Create(ctx, models.BookingCollection, "", b)
	if err != nil {
		return nil, failed(err)
	}

	l.SetLabel("booking_id", bookingID)
	l.Infof("booking %s created for %s", bookingID, callerUID)

	png, err := f.render(qr.BookingPayload(bookingID, req.UserName, req.VisitDate))
	if err != nil {
		return nil, failed(fmt.Errorf("qr code generation: %w", err))
	}

	path := QRPath(bookingID)

	if err := f.bucket.Upload(ctx, path, qr.ContentType, png); err != nil {
		return nil, failed(err)
	}

	if err := f.bucket.MakePublic(ctx, path); err != nil {
		return nil, failed(err)
	}

	qrURL := f.bucket.PublicURL(path)

	if err := f.store.Update(ctx, models.BookingCollection, bookingID, map[string]any{
		"qr_url": qrURL,
		"status": models.BookingQRAttached,
	}); err != nil {
		return nil, failed(err)
	}

	html, err := mailer.RenderConfirmation(&mailer.Confirmation{
		UserName:    req.UserName,
		VisitDate:   req.VisitDate,
		TicketName:  req.TicketName,
		TotalAmount: req.TotalAmount,
		QRURL:       qrURL,
	})
	if err != nil {
		return nil, failed(err)
	}

	if err := f.mail.Send(ctx, &mailer.Message{
		To:      req.UserEmail,
		ToName:  req.UserName,
		Subject: mailer.ConfirmationSubject,
		HTML:    html,
	}); err != nil {
		return nil, failed(err)
	}

	// the email is out; a failed status write must not make the caller retry
	if err := f.store.Update(ctx, models.BookingCollection, bookingID, map[string]any{
		"status": models.BookingNotified,
	}); err != nil {
		l.Errorf("booking %s: failed to mark as notified: %s", bookingID, err)
	}

	return &Result{
		Success:   true,
		BookingID: bookingID,
		QRURL:     qrURL,
	}, nil
}

func failed(err error) error {
	return apperr.Wrap(apperr.ErrBookingFinalization, err, "Booking finalization failed: "+err.Error())
}
