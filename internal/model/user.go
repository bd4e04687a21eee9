package model

import "time"

// User represents an application user record as stored in the `users`
// table.  PasswordHash is never serialised.
type User struct {
	ID           string    `json:"id"`        // users.id (UUID)
	Email        string    `json:"email"`     // users.email, unique
	Name         string    `json:"name"`      // users.name
	PasswordHash string    `json:"-"`         // users.password (bcrypt)
	CreatedAt    time.Time `json:"createdAt"` // users.created_at
}

// UserProjection is the minimal user view returned by auth flows.
type UserProjection struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Projection strips everything but id, email and name.
func (u User) Projection() UserProjection {
	return UserProjection{ID: u.ID, Email: u.Email, Name: u.Name}
}
