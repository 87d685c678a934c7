package purchases

import "errors"

var (
	ErrPurchaseNotFound   = errors.New("purchase not found")
	ErrEventNotFound      = errors.New("event not found")
	ErrTicketTypeNotFound = errors.New("ticket type not found")
	ErrEmptyPurchase      = errors.New("purchase has no items")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrTicketTypeMismatch = errors.New("ticket type does not belong to the event")
)
