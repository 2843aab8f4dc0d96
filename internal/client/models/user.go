package models

// Role is the account role reported by the backend.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// IsStaff reports whether the role may moderate content.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleModerator
}

// User is the identity half of a session.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// Session is the locally cached identity plus the opaque bearer credential.
// It is replaced or cleared as a whole, never mutated.
type Session struct {
	User       User
	Credential string
}
