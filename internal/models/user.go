package models

// User is the public identity of a registered user. The password hash never
// leaves the server's persistence layer.
type User struct {
	ID    UserID `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
