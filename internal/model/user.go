package model

import "time"

// User mirrors the 'users' table. Roles are CUSTOMER (can reserve,
// confirm and cancel seats) and ADMIN (can additionally manage the
// seat inventory).
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email (lowercased)
	PasswordHash string    // users.password_hash (bcrypt)
	Role         string    // users.role: CUSTOMER | ADMIN
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
