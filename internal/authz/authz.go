// Package authz is the central access-policy evaluator. Every mutating or
// sensitive-read operation asks one of these predicates before touching the
// store. A nil return means allow; ErrForbidden means the resource exists
// but the principal lacks rights. Existence is always checked by the caller
// first, so absent resources surface as not-found, never as forbidden.
package authz

import "github.com/suyay-events/suyay-go/internal/domain"

// AdminOnly permits administrators and nobody else. Used for the user
// directory, claims, report moderation and contact messages.
func AdminOnly(p domain.Principal) error {
	if p.Role.IsAdmin() {
		return nil
	}
	return ErrForbidden
}

// SelfOrAdmin permits the owner of the target user id, or an administrator.
// Covers profile reads/updates and created-for-self payloads (favorites,
// ratings, reports, purchases).
func SelfOrAdmin(p domain.Principal, userID int64) error {
	if p.Role.IsAdmin() || p.UserID == userID {
		return nil
	}
	return ErrForbidden
}

// ManageEvent permits administrators or the user who organizes the event.
// The same rule covers event updates and deletes, verifier assignment and
// ticket-type management, with the event resolved through the target
// resource by the caller.
func ManageEvent(p domain.Principal, ev *domain.Event) error {
	if p.Role.IsAdmin() || p.UserID == ev.OrganizerUserID {
		return nil
	}
	return ErrForbidden
}

// CreateEvent permits an organizer creating an event under their own
// organizer profile, or an administrator creating one under any profile.
// org is the profile referenced by the declared organizer id.
func CreateEvent(p domain.Principal, org *domain.Organizer, declaredOrganizerID int64) error {
	if p.Role.IsAdmin() {
		return nil
	}
	if p.Role != domain.RoleOrganizer {
		return ErrForbidden
	}
	if org.UserID != p.UserID || org.ID != declaredOrganizerID {
		return ErrForbidden
	}
	return nil
}

// ReadTicket permits administrators, verifiers (gate scanning), or the
// buyer who owns the ticket through its purchase.
func ReadTicket(p domain.Principal, purchaseOwnerID int64) error {
	if p.Role.IsAdmin() || p.Role.IsVerifier() || p.UserID == purchaseOwnerID {
		return nil
	}
	return ErrForbidden
}

// ValidateTicket permits administrators and verifiers only.
func ValidateTicket(p domain.Principal) error {
	if p.Role.IsAdmin() || p.Role.IsVerifier() {
		return nil
	}
	return ErrForbidden
}

// NarrowListOwner implements the reference behavior for unprivileged list
// queries: instead of denying a mismatched owner filter, the query is
// silently narrowed to the caller. Administrators (and verifiers where
// allowVerifier is set, for ticket lookups) keep the requested filter.
func NarrowListOwner(p domain.Principal, requested *int64, allowVerifier bool) *int64 {
	if p.Role.IsAdmin() || (allowVerifier && p.Role.IsVerifier()) {
		return requested
	}
	if requested != nil && *requested == p.UserID {
		return requested
	}
	self := p.UserID
	return &self
}
