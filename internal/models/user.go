package models

// Role represents the available roles for directory accounts.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// UserAccount is the full directory record, including the credential
// hash. It never crosses the authentication boundary.
type UserAccount struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Position     string `json:"position"`
	Role         Role   `json:"role"`
}

// UserProfile is the account with the credential stripped; the only
// representation returned to callers.
type UserProfile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Position string `json:"position"`
	Role     Role   `json:"role"`
}

// Profile strips the credential field from the account.
func (u UserAccount) Profile() UserProfile {
	return UserProfile{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Email:    u.Email,
		Position: u.Position,
		Role:     u.Role,
	}
}

// NewUserRequest is the admin-panel payload for creating an account.
type NewUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=4"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Position string `json:"position"`
	Role     Role   `json:"role" validate:"required,oneof=ADMIN USER"`
}
