package models

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is an account that can sign in. Distinct from Employee: an employee may
// have no account, and an account may link to an employee record.
type User struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"` // admin | user
	EmployeeID string    `json:"employeeId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AuthProfile is the logged-in identity as the client sees it.
type AuthProfile struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"` // admin | user
	EmployeeID string `json:"employeeId,omitempty"`
}

// Valid reports whether a restored profile has the expected shape. Older
// session payloads predate the role field and must be discarded.
func (p AuthProfile) Valid() bool {
	return p.ID != "" && (p.Role == RoleAdmin || p.Role == RoleUser)
}
