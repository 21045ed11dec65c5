package entity

import (
	"time"
)

// Status is a user's loyalty tier. It controls the discount fraction
// applied to the cart grand total.
type Status string

const (
	StatusGold   Status = "gold"
	StatusSilver Status = "silver"
	StatusBronze Status = "bronze"
	StatusSimple Status = "simple"
)

// User is the aggregate root for the account domain.
// Passwords are stored as bcrypt hashes in Password.
// DateRegistered is set once at creation and never mutated.
type User struct {
	ID             string
	Username       string
	Email          string
	Password       string
	FirstName      string
	LastName       string
	Age            int
	PhoneNumber    string
	Status         Status
	DateRegistered time.Time
}
