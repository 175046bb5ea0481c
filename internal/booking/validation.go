package booking

import (
	"strings"
	"time"

	"github.com/farellandr/melaka-tickets/internal/apperr"
)

var visitDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseVisitDate accepts an ISO 8601 date or date-time. Values without a zone are UTC.
func ParseVisitDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	for _, layout := range visitDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, apperr.New(apperr.ErrInvalidArgument, "Invalid visitDate: "+s)
}

func validate(req *Request) (time.Time, error) {
	if req == nil {
		return time.Time{}, apperr.New(apperr.ErrInvalidArgument, "Missing booking data")
	}

	for _, v := range []string{req.TicketName, req.UserName, req.UserEmail, req.VisitDate} {
		if strings.TrimSpace(v) == "" {
			return time.Time{}, apperr.New(apperr.ErrInvalidArgument, "Missing fields")
		}
	}

	return ParseVisitDate(req.VisitDate)
}
