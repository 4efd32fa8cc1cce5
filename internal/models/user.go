package models

// Role values returned by the remote API.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents the signed-in principal as returned by the remote API.
// A nil *User means "not authenticated"; there is no partially filled user.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IsAdmin reports whether the user holds the administrator role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
