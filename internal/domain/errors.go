package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadRequest   = errors.New("bad request")

	// ErrAlreadySigned rejects signature issuance or verification for an
	// order that is already in StatusSigned.
	ErrAlreadySigned = errors.New("order already signed")

	// ErrInvalidCode is the normal, user-correctable verification failure:
	// wrong code, expired code, or no code outstanding.
	ErrInvalidCode = errors.New("invalid or expired code")

	// ErrSignedNotSaved marks the one truly exceptional signature outcome:
	// the code was verified (and consumed) but the status update did not
	// persist. The caller must start a new signature cycle.
	ErrSignedNotSaved = errors.New("signature verified but order not saved")
)
