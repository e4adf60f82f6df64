package lib

import (
	"database/sql"
	"errors"

	"github.com/uptrace/bun/driver/pgdriver"
)

// Database errors
var (
	ErrConflict = errors.New("conflict")
	ErrNotFound = errors.New("not found")
)

// Ordering errors
var (
	// ErrInvalidQuantity: requested bagel total outside the configured
	// allowed range.
	ErrInvalidQuantity = errors.New("invalid bagel quantity")
	// ErrCapacityExceeded: the slot cannot fit the requested total.
	ErrCapacityExceeded = errors.New("slot capacity exceeded")
	// ErrPricingUnavailable: no tier set resolves the requested total. This
	// is an admin configuration error, never a customer one; pricing fails
	// closed instead of undercharging.
	ErrPricingUnavailable = errors.New("pricing unavailable")
	// ErrSlotClosed: the slot's ordering cutoff has passed.
	ErrSlotClosed = errors.New("slot closed for ordering")
	// ErrSlotHasOrders: slot deletion refused while orders reference it.
	ErrSlotHasOrders = errors.New("slot has orders")
)

// Merch errors
var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrItemUnavailable   = errors.New("item unavailable")
)

// Payment errors
var (
	// ErrPaymentVerificationFailed: webhook signature invalid; the event is
	// rejected outright with no state change.
	ErrPaymentVerificationFailed = errors.New("payment verification failed")
	// ErrNoPaymentReference: a Venmo note contained no recognizable
	// reference token.
	ErrNoPaymentReference = errors.New("no payment reference in note")
)

// Auth errors
var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// MapPgError translates driver SQLSTATEs into sentinel errors the handlers
// understand; everything else passes through.
func MapPgError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		switch pgErr.Field('C') { // SQLSTATE
		case "23505": // unique_violation
			return ErrConflict
		case "P0002": // no_data_found
			return ErrNotFound
		}
	}
	return err
}
