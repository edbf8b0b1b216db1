package domain

import "time"

// User identifies a customer. Credential handling lives in the auth service;
// the ledger only cares that every account has exactly one owner.
type User struct {
	ID           uint
	Username     string
	Email        string
	PhoneNumber  string
	PasswordHash string
	CreatedAt    time.Time
}
