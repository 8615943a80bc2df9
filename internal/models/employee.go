// Package models contains the data shapes exchanged with the backend API.
package models

import "time"

type Role string

const (
	RoleOperator Role = "operator"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the roles the backend accepts.
func (r Role) Valid() bool {
	switch r {
	case RoleOperator, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// Employee is the identity record returned by the auth and admin endpoints.
type Employee struct {
	ID        string     `json:"_id"`
	Login     string     `json:"login"`
	Role      Role       `json:"role"`
	IsActive  bool       `json:"isActive"`
	CreatedAt time.Time  `json:"createdAt"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}
