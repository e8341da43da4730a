package domain

import "time"

// The types below mirror the backend's JSON payloads. The portal passes them
// through; it never computes stock, due dates or permissions from them.

// Registration is the body of POST /register.
type Registration struct {
	Firstname string `json:"firstname" validate:"required"`
	Lastname  string `json:"lastname"  validate:"required"`
	Username  string `json:"username"  validate:"required"`
	Password  string `json:"password"  validate:"required"`
	Role      Role   `json:"role"      validate:"omitempty,oneof=USER ADMIN"`
}

// LoginRequest is the body sent to the backend's login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResult is what the backend issues on a successful login.
type LoginResult struct {
	Token string `json:"token"`
	Role  Role   `json:"role"`
}

// Profile is a user as the backend reports it.
type Profile struct {
	ID        ID     `json:"id,omitempty"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Username  string `json:"username"`
	Role      Role   `json:"role,omitempty"`
}

// ProfileUpdate is the body of PUT /user/profile.
type ProfileUpdate struct {
	Firstname string `json:"firstname" validate:"required"`
	Lastname  string `json:"lastname"  validate:"required"`
	Username  string `json:"username"  validate:"required"`
}

// Book is a catalog entry.
type Book struct {
	ID          ID     `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Genre       string `json:"genre,omitempty"`
	Description string `json:"description,omitempty"`
	Stock       int    `json:"stock"`
}

// NewBook is the body of POST /admin/book.
type NewBook struct {
	Title       string `json:"title"       validate:"required"`
	Author      string `json:"author"      validate:"required"`
	Genre       string `json:"genre"`
	Description string `json:"description"`
	Stock       int    `json:"stock"       validate:"gte=0"`
}

// BorrowRecord is one loan of a book.
type BorrowRecord struct {
	ID           ID        `json:"id"`
	Book         Book      `json:"book"`
	Username     string    `json:"username,omitempty"`
	BorrowedDate time.Time `json:"borrowedDate"`
	DueDate      time.Time `json:"dueDate"`
	Returned     bool      `json:"returned"`
}

// BookSearchField selects which catalog attribute a search matches on.
type BookSearchField string

const (
	SearchByTitle  BookSearchField = "title"
	SearchByAuthor BookSearchField = "author"
	SearchByGenre  BookSearchField = "genre"
)
