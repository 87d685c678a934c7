package events

import "errors"

var (
	ErrEventNotFound           = errors.New("event not found")
	ErrTicketTypeNotFound      = errors.New("ticket type not found")
	ErrOrganizerNotFound       = errors.New("organizer not found")
	ErrVerifierNotFound        = errors.New("verifier not found")
	ErrAssignmentNotFound      = errors.New("verifier assignment not found")
	ErrVerifierAlreadyAssigned = errors.New("verifier is already assigned to this event")
	ErrOrganizerNotApproved    = errors.New("organizer is not approved yet")
)
