package auth

import "errors"

// Principal kinds. Exactly one kind is resolved per credential; Role is only
// meaningful for employees.
const (
	KindStudent  = "student"
	KindParent   = "parent"
	KindEmployee = "employee"
)

// Resolution failures, ordered from missing credential to inactive account.
var (
	ErrUnauthenticated   = errors.New("no credential present")
	ErrInvalidCredential = errors.New("credential malformed or expired")
	ErrPrincipalNotFound = errors.New("principal not found")
	ErrAccountInactive   = errors.New("account inactive")
)

// Principal is the authenticated actor attached to every protected request.
// Downstream authorization is a predicate over this value; nothing after the
// resolution boundary probes the principal stores again.
type Principal struct {
	ID    uint   `json:"id"`
	Kind  string `json:"kind"`
	Role  string `json:"role,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// IsStudent reports whether the principal is a student.
func (p Principal) IsStudent() bool { return p.Kind == KindStudent }

// IsParent reports whether the principal is a parent.
func (p Principal) IsParent() bool { return p.Kind == KindParent }

// IsEmployee reports whether the principal is an employee, optionally
// restricted to the given roles.
func (p Principal) IsEmployee(roles ...string) bool {
	if p.Kind != KindEmployee {
		return false
	}
	if len(roles) == 0 {
		return true
	}
	for _, role := range roles {
		if p.Role == role {
			return true
		}
	}
	return false
}
