// Package models defines the server-side database rows that never cross the
// wire in full. Public shapes live in the top-level models package.
package models

import (
	"time"

	"github.com/saciinol/watchkeeper/internal/models"
)

// User is the users table row. PasswordHash stays inside the server.
type User struct {
	ID           models.UserID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Public strips the secret fields for responses.
func (u *User) Public() models.User {
	return models.User{ID: u.ID, Name: u.Name, Email: u.Email}
}
