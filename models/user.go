package models

import "time"

// User holds the structure for one registered account in the users collection
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"password,omitempty"` // bcrypt hash; never present on the session record
	CreatedAt time.Time `json:"createdAt"`
}

// WithoutPassword returns a copy of the user safe to persist as the session record
func (u User) WithoutPassword() User {
	u.Password = ""
	return u
}
