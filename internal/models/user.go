package models

// Role is the sole authorization key of an officer account.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleSecretary Role = "secretary"
	RoleTreasurer Role = "treasurer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSecretary, RoleTreasurer:
		return true
	}
	return false
}

// User represents a row of the users worksheet.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Username is the login name. Uniqueness is not enforced; the first
	// matching row wins during authentication.
	Username string

	// Password is either the plaintext password or a bcrypt hash.
	Password string

	// Name is the display name of the officer.
	Name string

	// Role decides which workflow operations the user may invoke.
	Role Role
}

// Identity is the authenticated view of a user, without credentials.
// It is what handlers receive once a session is established.
type Identity struct {
	UserID   string
	Username string
	Name     string
	Role     Role
}

// Identity strips the credential from u.
func (u *User) Identity() *Identity {
	return &Identity{
		UserID:   u.ID,
		Username: u.Username,
		Name:     u.Name,
		Role:     u.Role,
	}
}
