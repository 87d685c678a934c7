package profiles

import "errors"

var (
	ErrOrganizerNotFound = errors.New("organizer not found")
	ErrVerifierNotFound  = errors.New("verifier not found")
	ErrAlreadyOrganizer  = errors.New("user already has an organizer profile")
	ErrAlreadyVerifier   = errors.New("user already has a verifier profile")
)
