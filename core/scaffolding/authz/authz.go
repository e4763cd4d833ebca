// Package authz holds the authorization policy for task mutations in one
// place. Every mutating handler consults CanMutate rather than carrying its
// own role checks.
package authz

// Role identifies the access class of a principal.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// ParseRole maps a raw role value onto a known Role. Unknown values come
// back as RoleMember so an unrecognized role never widens access.
func ParseRole(s string) Role {
	if s == string(RoleAdmin) {
		return RoleAdmin
	}
	return RoleMember
}

// Principal is the authenticated caller, established by the identity layer
// before a request reaches the handlers.
type Principal struct {
	UserID string
	Role   Role
}

// Operation enumerates the mutations the policy distinguishes.
type Operation string

const (
	OpDelete          Operation = "delete"
	OpReassign        Operation = "reassign"
	OpEditCoreFields  Operation = "edit-core-fields"
	OpUpdateChecklist Operation = "update-checklist"
	OpUpdateStatus    Operation = "update-status"
)

// CanMutate reports whether the principal may perform op on a task with the
// given assignee list. Admins may do anything; assignees may only update
// checklist and status on their own tasks. Any check that cannot positively
// establish membership or the admin role is denied.
func CanMutate(p Principal, assignedTo []string, op Operation) bool {
	if p.Role == RoleAdmin {
		return true
	}

	switch op {
	case OpUpdateChecklist, OpUpdateStatus:
		if p.UserID == "" {
			return false
		}
		for _, userID := range assignedTo {
			if userID == p.UserID {
				return true
			}
		}
		return false

	default:
		return false
	}
}
