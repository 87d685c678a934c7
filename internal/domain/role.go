package domain

import "fmt"

// Role is a closed enumeration of the four account roles. Permission
// checks go through the predicates below, never through the display
// name stored in the roles catalog table.
type Role int

const (
	RoleUnknown Role = iota
	RoleAdministrator
	RoleOrganizer
	RoleBuyer
	RoleVerifier
)

var roleNames = map[Role]string{
	RoleAdministrator: "administrator",
	RoleOrganizer:     "organizer",
	RoleBuyer:         "buyer",
	RoleVerifier:      "verifier",
}

func (r Role) String() string {
	if s, ok := roleNames[r]; ok {
		return s
	}
	return "unknown"
}

func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func ParseRole(s string) (Role, error) {
	for r, name := range roleNames {
		if name == s {
			return r, nil
		}
	}
	return RoleUnknown, fmt.Errorf("unknown role %q", s)
}

// RoleFromID maps a roles-table primary key to the enum. The catalog is
// seeded in this order and never reordered.
func RoleFromID(id int64) Role {
	switch id {
	case 1:
		return RoleAdministrator
	case 2:
		return RoleOrganizer
	case 3:
		return RoleBuyer
	case 4:
		return RoleVerifier
	default:
		return RoleUnknown
	}
}

func (r Role) IsAdmin() bool    { return r == RoleAdministrator }
func (r Role) IsVerifier() bool { return r == RoleVerifier }

// Principal is the authenticated actor attached to a request by the
// bearer-token middleware.
type Principal struct {
	UserID int64
	Role   Role
}
