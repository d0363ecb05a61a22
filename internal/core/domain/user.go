package domain

import "time"

// Role is the closed set of authorities a user can hold. Authorization
// decisions switch on this type rather than on free-form strings.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User models an account in the credential store. PasswordHash is the bcrypt
// digest of the password; the plaintext is never stored.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the request-scoped view of an authenticated user, derived from
// a verified token by the identity middleware and discarded at request end.
type Identity struct {
	UserID   string
	Username string
	Role     Role
}
