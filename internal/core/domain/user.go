package domain

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is an account that can log in. It is never serialised directly;
// use Public to build the outward-facing view.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         string
}

// PublicUser is the view of a User returned to clients.
type PublicUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Public returns the client-facing projection of u.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Role: u.Role}
}

// RequireAdmin fails with ErrForbidden unless user holds the admin role.
// The comparison is exact and case-sensitive.
func RequireAdmin(user *User) error {
	if user == nil || user.Role != RoleAdmin {
		return ErrForbidden
	}
	return nil
}
