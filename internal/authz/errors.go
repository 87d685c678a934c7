package authz

import "errors"

// ErrForbidden is returned when the target resource exists but the
// principal has no permitting predicate for the operation.
var ErrForbidden = errors.New("not enough permissions")
