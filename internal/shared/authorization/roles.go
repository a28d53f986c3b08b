// Package authorization holds the single policy every ticket operation
// consults before acting.
package authorization

// GroupAdmin is the group whose members administer tickets.
const GroupAdmin = "admin"

// Subject is the acting user as seen by the policy.
type Subject interface {
	ID() uint
	IsSuperuser() bool
	Groups() []string
}

// IsAdmin is true for superusers and members of the admin group. It looks
// only at the subject it is given; callers load membership per request.
func IsAdmin(s Subject) bool {
	if s == nil {
		return false
	}
	if s.IsSuperuser() {
		return true
	}
	for _, g := range s.Groups() {
		if g == GroupAdmin {
			return true
		}
	}
	return false
}
