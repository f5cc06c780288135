package auth

import "time"

type Role string

const (
	// RoleTrader is a regular participant who can appear as buyer or seller.
	RoleTrader Role = "trader"
	// RoleArbiter may settle any funded deal in either direction.
	RoleArbiter Role = "arbiter"
)

// User is the domain representation of a registered party. Address is the
// opaque participant identifier deals are created and indexed with; it is
// assigned once at registration and never changes.
type User struct {
	ID           string
	Email        string
	FullName     string
	PasswordHash string
	Address      string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RegisterRequest contains registration data supplied by callers.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     Role   `json:"role"`
}

// LoginRequest contains login credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
