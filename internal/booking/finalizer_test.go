package booking

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/farellandr/melaka-tickets/internal/apperr"
	"github.com/farellandr/melaka-tickets/internal/logger"
	"github.com/farellandr/melaka-tickets/internal/mailer"
	mailerMocks "github.com/farellandr/melaka-tickets/internal/mailer/mocks"
	"github.com/farellandr/melaka-tickets/internal/models"
	"github.com/farellandr/melaka-tickets/internal/objectstore"
	"github.com/farellandr/melaka-tickets/internal/store/memory"
)

const (
	bucketName = "melaka-tickets.appspot.com"
	callerUID  = "buyer-uid"
)

var fixedNow = time.Date(2025, 5, 20, 8, 30, 0, 0, time.UTC)

type failingBucket struct {
	*objectstore.MemoryBucket
	err error
}

func (b *failingBucket) Upload(ctx context.Context, path, contentType string, data []byte) error {
	return b.err
}

func dayPassRequest() *Request {
	return &Request{
		TicketName:       "Day Pass",
		TicketQuantities: map[string]float64{"adult": 1, "child": 1},
		TotalAmount:      25.50,
		UserName:         "Siti Aminah",
		UserPhone:        "+60123456789",
		UserEmail:        "siti@example.com",
		VisitDate:        "2025-06-01",
	}
}

func newFinalizer(s *memory.Store, bucket objectstore.Bucket, sender mailer.Sender) *Finalizer {
	f := NewFinalizer(logger.FromContext, s, bucket, sender)
	f.now = func() time.Time { return fixedNow }

	return f
}

func TestFinalizer_Finalize(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	bucket := objectstore.NewMemoryBucket(bucketName)
	sender := mailerMocks.NewSender(t)

	sender.On("Send", ctx, mock.MatchedBy(func(m *mailer.Message) bool {
		return m.To == "siti@example.com" &&
			m.Subject == mailer.ConfirmationSubject &&
			strings.Contains(m.HTML, "Day Pass") &&
			strings.Contains(m.HTML, "RM 25.50")
	})).Return(nil).Once()

	res, err := newFinalizer(s, bucket, sender).Finalize(ctx, callerUID, dayPassRequest())
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.NotEmpty(t, res.BookingID)
	assert.Equal(t, "https://storage.googleapis.com/"+bucketName+"/qr-codes/"+res.BookingID+".png", res.QRURL)

	var b models.Booking
	found, err := s.Get(ctx, models.BookingCollection, res.BookingID, &b)
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, callerUID, b.UID)
	assert.True(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC).Equal(b.VisitDate))
	assert.True(t, fixedNow.Equal(b.Timestamp))
	assert.Equal(t, res.QRURL, b.QRURL)
	assert.Equal(t, models.BookingNotified, b.Status)
	assert.Equal(t, map[string]float64{"adult": 1, "child": 1}, b.TicketQuantities)

	obj, ok := bucket.Object(QRPath(res.BookingID))
	require.True(t, ok)
	assert.Equal(t, "image/png", obj.ContentType)
	assert.True(t, obj.Public)

	assert.True(t, strings.Contains(sender.Calls[0].Arguments.Get(1).(*mailer.Message).HTML, res.QRURL))
}

func TestFinalizer_NotIdempotent(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	sender := mailerMocks.NewSender(t)
	sender.On("Send", ctx, mock.AnythingOfType("*mailer.Message")).Return(nil).Twice()

	f := newFinalizer(s, objectstore.NewMemoryBucket(bucketName), sender)

	first, err := f.Finalize(ctx, callerUID, dayPassRequest())
	require.NoError(t, err)

	second, err := f.Finalize(ctx, callerUID, dayPassRequest())
	require.NoError(t, err)

	assert.NotEqual(t, first.BookingID, second.BookingID)
	assert.Len(t, s.IDs(models.BookingCollection), 2)
}

func TestFinalizer_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		caller string
		modify func(r *Request)
		want   error
	}{
		{
			name:   "unauthenticated",
			caller: "",
			want:   apperr.ErrUnauthenticated,
		},
		{
			name:   "unparseable visit date",
			caller: callerUID,
			modify: func(r *Request) { r.VisitDate = "next tuesday" },
			want:   apperr.ErrInvalidArgument,
		},
		{
			name:   "missing email",
			caller: callerUID,
			modify: func(r *Request) { r.UserEmail = "" },
			want:   apperr.ErrInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := memory.NewStore()
			sender := mailerMocks.NewSender(t)

			req := dayPassRequest()
			if tt.modify != nil {
				tt.modify(req)
			}

			_, err := newFinalizer(s, objectstore.NewMemoryBucket(bucketName), sender).Finalize(context.Background(), tt.caller, req)

			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, s.IDs(models.BookingCollection))
			sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
		})
	}
}

func TestFinalizer_PartialFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("upload fails after the booking is written", func(t *testing.T) {
		s := memory.NewStore()
		sender := mailerMocks.NewSender(t)
		bucket := &failingBucket{
			MemoryBucket: objectstore.NewMemoryBucket(bucketName),
			err:          apperr.Wrap(apperr.ErrStorage, errors.New("bucket unreachable"), ""),
		}

		_, err := newFinalizer(s, bucket, sender).Finalize(ctx, callerUID, dayPassRequest())

		assert.ErrorIs(t, err, apperr.ErrBookingFinalization)
		assert.ErrorIs(t, err, apperr.ErrStorage)
		assert.True(t, strings.HasPrefix(err.Error(), "Booking finalization failed: "))

		ids := s.IDs(models.BookingCollection)
		require.Len(t, ids, 1)

		var b models.Booking
		_, err = s.Get(ctx, models.BookingCollection, ids[0], &b)
		require.NoError(t, err)
		assert.Equal(t, models.BookingPending, b.Status)
		assert.Empty(t, b.QRURL)
		sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("email fails after the qr url is attached", func(t *testing.T) {
		s := memory.NewStore()
		sender := mailerMocks.NewSender(t)
		sender.On("Send", ctx, mock.AnythingOfType("*mailer.Message")).
			Return(apperr.Wrap(apperr.ErrEmailDelivery, errors.New("sendgrid responded 401"), "")).
			Once()

		_, err := newFinalizer(s, objectstore.NewMemoryBucket(bucketName), sender).Finalize(ctx, callerUID, dayPassRequest())

		assert.ErrorIs(t, err, apperr.ErrBookingFinalization)
		assert.ErrorIs(t, err, apperr.ErrEmailDelivery)

		ids := s.IDs(models.BookingCollection)
		require.Len(t, ids, 1)

		var b models.Booking
		_, err = s.Get(ctx, models.BookingCollection, ids[0], &b)
		require.NoError(t, err)
		assert.Equal(t, models.BookingQRAttached, b.Status)
		assert.NotEmpty(t, b.QRURL)
	})
}

func TestParseVisitDate(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "2025-06-01", want: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		{in: "2025-06-01T10:00:00", want: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)},
		{in: "2025-06-01T10:00:00+08:00", want: time.Date(2025, 6, 1, 2, 0, 0, 0, time.UTC)},
		{in: "2025-06-01T10:00:00.000Z", want: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)},
		{in: "2025-06-01 10:00:00", want: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)},
		{in: "2025-06-01 10:00:00.000", want: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)},
		{in: "2025-06-01 10:00:00+08:00", want: time.Date(2025, 6, 1, 2, 0, 0, 0, time.UTC)},
		{in: "2025-06-01 10:00:00Z", want: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)},
		{in: "01/06/2025", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVisitDate(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
				return
			}

			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}
