package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleFromID(t *testing.T) {
	assert.Equal(t, RoleAdministrator, RoleFromID(1))
	assert.Equal(t, RoleOrganizer, RoleFromID(2))
	assert.Equal(t, RoleBuyer, RoleFromID(3))
	assert.Equal(t, RoleVerifier, RoleFromID(4))
	assert.Equal(t, RoleUnknown, RoleFromID(0))
	assert.Equal(t, RoleUnknown, RoleFromID(99))
}

func TestRoleTextRoundTrip(t *testing.T) {
	for _, r := range []Role{RoleAdministrator, RoleOrganizer, RoleBuyer, RoleVerifier} {
		b, err := r.MarshalText()
		require.NoError(t, err)

		var back Role
		require.NoError(t, back.UnmarshalText(b))
		assert.Equal(t, r, back)
	}
}

func TestParseRoleRejectsUnknown(t *testing.T) {
	_, err := ParseRole("superuser")
	require.Error(t, err)
}

func TestUserJSONHidesPasswordHash(t *testing.T) {
	u := User{ID: 1, Email: "ana@example.com", PasswordHash: "hash", Role: RoleBuyer}

	b, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "hash")
	assert.Contains(t, string(b), `"role":"buyer"`)
}
