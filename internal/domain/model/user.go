package model

import "time"

// Role controls access level of a user account.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// User represents a store account.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         Role
	CreatedAt    time.Time
}
