package domain

import "time"

// User models an account held by the development backend.
type User struct {
	ID           string    `json:"id"`
	Firstname    string    `json:"firstname"`
	Lastname     string    `json:"lastname"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile projects u onto the payload the portal consumes.
func (u *User) Profile() Profile {
	return Profile{
		ID:        ID(u.ID),
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		Username:  u.Username,
		Role:      u.Role,
	}
}
