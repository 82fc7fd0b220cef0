package models

import "time"

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleDokter  Role = "DOKTER"
	RolePerawat Role = "PERAWAT"
	RoleStaf    Role = "STAF"
)

// CanDecideSwaps reports whether the role may approve or reject swap
// requests on behalf of other employees.
func (r Role) CanDecideSwaps() bool {
	return r == RoleAdmin
}

type User struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	EmployeeID string    `json:"employee_id"`
	Role       Role      `json:"role"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
}
