package tickets

import "errors"

var (
	ErrTicketNotFound   = errors.New("ticket not found")
	ErrPurchaseNotFound = errors.New("purchase not found")

	// ErrNotActive covers validation of a ticket that was already used
	// or expired; ErrAlreadyExpired covers expiring twice.
	ErrNotActive      = errors.New("ticket is not active")
	ErrAlreadyExpired = errors.New("ticket is already expired")

	// ErrCodeSpaceExhausted means the issuer hit its redraw cap without
	// finding a free code. Practically unreachable with a healthy random
	// source; surfaces as an internal error at the edge.
	ErrCodeSpaceExhausted = errors.New("could not allocate a unique ticket code")
)
