package models

import (
	"time"
)

const BookingCollection = "booking"

type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingQRAttached BookingStatus = "qr_attached"
	BookingNotified   BookingStatus = "notified"
)

// Booking is a booking/<id> document. QRURL stays empty until the QR image is uploaded.
type Booking struct {
	UID              string             `json:"uid" firestore:"uid"`
	TicketName       string             `json:"ticket_name" firestore:"ticket_name"`
	TicketQuantities map[string]float64 `json:"ticket_quantities" firestore:"ticket_quantities"`
	TotalAmount      float64            `json:"total_amount" firestore:"total_amount"`
	UserName         string             `json:"user_name" firestore:"user_name"`
	UserPhone        Phone              `json:"user_phone" firestore:"user_phone"`
	UserEmail        string             `json:"user_email" firestore:"user_email"`
	VisitDate        time.Time          `json:"visit_date" firestore:"visit_date"`
	Timestamp        time.Time          `json:"timestamp" firestore:"timestamp"`
	QRURL            string             `json:"qr_url,omitempty" firestore:"qr_url,omitempty"`
	Status           BookingStatus      `json:"status" firestore:"status"`
}
