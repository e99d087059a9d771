package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// BookingStatus represents the lifecycle of a unit booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// Valid reports whether the status is a known booking status
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

// Booking ties a lead to a unit with an agreed amount
type Booking struct {
	ID        uuid.UUID     `json:"id"`
	LeadID    uuid.UUID     `json:"leadId"`
	UnitID    uuid.UUID     `json:"unitId"`
	Amount    float64       `json:"amount"`
	Status    BookingStatus `json:"status"`
	BookedBy  uuid.UUID     `json:"bookedBy"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// CreateBookingInput creates a booking
type CreateBookingInput struct {
	LeadID string  `json:"leadId" binding:"required,uuid"`
	UnitID string  `json:"unitId" binding:"required,uuid"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// UpdateBookingStatusInput moves a booking through its lifecycle
type UpdateBookingStatusInput struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed cancelled completed"`
}

// PaymentMode represents how a payment was made
type PaymentMode string

const (
	PaymentModeCash         PaymentMode = "cash"
	PaymentModeCheque       PaymentMode = "cheque"
	PaymentModeBankTransfer PaymentMode = "bank_transfer"
	PaymentModeUPI          PaymentMode = "upi"
)

// Payment is money received against a booking
type Payment struct {
	ID        uuid.UUID   `json:"id"`
	BookingID uuid.UUID   `json:"bookingId"`
	Amount    float64     `json:"amount"`
	Mode      PaymentMode `json:"mode"`
	Reference null.String `json:"reference,omitempty"`
	PaidAt    time.Time   `json:"paidAt"`
	CreatedAt time.Time   `json:"createdAt"`
}

// RecordPaymentInput records a payment against a booking
type RecordPaymentInput struct {
	Amount    float64    `json:"amount" binding:"required,gt=0"`
	Mode      string     `json:"mode" binding:"required,oneof=cash cheque bank_transfer upi"`
	Reference string     `json:"reference" binding:"max=100"`
	PaidAt    *time.Time `json:"paidAt"`
}
