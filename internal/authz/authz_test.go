package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suyay-events/suyay-go/internal/domain"
)

func principal(id int64, role domain.Role) domain.Principal {
	return domain.Principal{UserID: id, Role: role}
}

func TestAdminOnly(t *testing.T) {
	tests := []struct {
		name  string
		p     domain.Principal
		allow bool
	}{
		{"admin", principal(1, domain.RoleAdministrator), true},
		{"organizer", principal(1, domain.RoleOrganizer), false},
		{"buyer", principal(1, domain.RoleBuyer), false},
		{"verifier", principal(1, domain.RoleVerifier), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AdminOnly(tt.p)
			if tt.allow {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrForbidden)
			}
		})
	}
}

func TestSelfOrAdmin(t *testing.T) {
	tests := []struct {
		name   string
		p      domain.Principal
		target int64
		allow  bool
	}{
		{"own profile", principal(7, domain.RoleBuyer), 7, true},
		{"other profile", principal(7, domain.RoleBuyer), 9, false},
		{"admin any profile", principal(1, domain.RoleAdministrator), 9, true},
		{"verifier other profile", principal(7, domain.RoleVerifier), 9, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SelfOrAdmin(tt.p, tt.target)
			if tt.allow {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrForbidden)
			}
		})
	}
}

func TestManageEvent(t *testing.T) {
	// Buyer id=7 against an event organized by user 9 must be denied;
	// the same buyer against their own event must be allowed.
	buyer := principal(7, domain.RoleBuyer)

	err := ManageEvent(buyer, &domain.Event{ID: 3, OrganizerUserID: 9})
	require.ErrorIs(t, err, ErrForbidden)

	err = ManageEvent(buyer, &domain.Event{ID: 3, OrganizerUserID: 7})
	require.NoError(t, err)

	err = ManageEvent(principal(1, domain.RoleAdministrator), &domain.Event{ID: 3, OrganizerUserID: 9})
	require.NoError(t, err)
}

func TestCreateEvent(t *testing.T) {
	org := &domain.Organizer{ID: 5, UserID: 7}

	tests := []struct {
		name     string
		p        domain.Principal
		declared int64
		allow    bool
	}{
		{"organizer own profile", principal(7, domain.RoleOrganizer), 5, true},
		{"organizer foreign profile", principal(8, domain.RoleOrganizer), 5, false},
		{"organizer mismatched declared id", principal(7, domain.RoleOrganizer), 6, false},
		{"buyer", principal(7, domain.RoleBuyer), 5, false},
		{"admin any profile", principal(1, domain.RoleAdministrator), 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CreateEvent(tt.p, org, tt.declared)
			if tt.allow {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrForbidden)
			}
		})
	}
}

func TestReadTicket(t *testing.T) {
	tests := []struct {
		name  string
		p     domain.Principal
		owner int64
		allow bool
	}{
		{"purchase owner", principal(7, domain.RoleBuyer), 7, true},
		{"other buyer", principal(7, domain.RoleBuyer), 9, false},
		{"verifier", principal(2, domain.RoleVerifier), 9, true},
		{"admin", principal(1, domain.RoleAdministrator), 9, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ReadTicket(tt.p, tt.owner)
			if tt.allow {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrForbidden)
			}
		})
	}
}

func TestValidateTicket(t *testing.T) {
	assert.NoError(t, ValidateTicket(principal(1, domain.RoleAdministrator)))
	assert.NoError(t, ValidateTicket(principal(2, domain.RoleVerifier)))
	assert.ErrorIs(t, ValidateTicket(principal(3, domain.RoleBuyer)), ErrForbidden)
	assert.ErrorIs(t, ValidateTicket(principal(4, domain.RoleOrganizer)), ErrForbidden)
}

func TestNarrowListOwner(t *testing.T) {
	nine := int64(9)
	seven := int64(7)

	t.Run("buyer narrowed to self", func(t *testing.T) {
		got := NarrowListOwner(principal(7, domain.RoleBuyer), &nine, false)
		require.NotNil(t, got)
		assert.Equal(t, int64(7), *got)
	})

	t.Run("buyer explicit self kept", func(t *testing.T) {
		got := NarrowListOwner(principal(7, domain.RoleBuyer), &seven, false)
		require.NotNil(t, got)
		assert.Equal(t, int64(7), *got)
	})

	t.Run("buyer without filter narrowed", func(t *testing.T) {
		got := NarrowListOwner(principal(7, domain.RoleBuyer), nil, false)
		require.NotNil(t, got)
		assert.Equal(t, int64(7), *got)
	})

	t.Run("admin keeps filter", func(t *testing.T) {
		got := NarrowListOwner(principal(1, domain.RoleAdministrator), &nine, false)
		require.NotNil(t, got)
		assert.Equal(t, int64(9), *got)
	})

	t.Run("admin keeps nil filter", func(t *testing.T) {
		assert.Nil(t, NarrowListOwner(principal(1, domain.RoleAdministrator), nil, false))
	})

	t.Run("verifier kept for ticket lookups", func(t *testing.T) {
		assert.Nil(t, NarrowListOwner(principal(2, domain.RoleVerifier), nil, true))
	})

	t.Run("verifier narrowed elsewhere", func(t *testing.T) {
		got := NarrowListOwner(principal(2, domain.RoleVerifier), &nine, false)
		require.NotNil(t, got)
		assert.Equal(t, int64(2), *got)
	})
}
