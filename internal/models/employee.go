package models

type Employee struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Role       string `json:"role"`
	JoinDate   string `json:"joinDate"`
	Avatar     string `json:"avatar,omitempty"`
}
