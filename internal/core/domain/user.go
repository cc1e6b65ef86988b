package domain

import "time"

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// User models an account that lists skills and takes part in swaps.
type User struct {
	ID           string    `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         string    `json:"role" bson:"role"`
	Bio          string    `json:"bio" bson:"bio"`
	Rating       float64   `json:"rating" bson:"rating"`
	IsActive     bool      `json:"is_active" bson:"is_active"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// IsAdmin reports whether the user holds the administrative role.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// UserSummary is the public profile attached to match candidates.
type UserSummary struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Rating float64 `json:"rating"`
	Bio    string  `json:"bio"`
}

// Summary returns the public subset of the user record.
func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Rating: u.Rating,
		Bio:    u.Bio,
	}
}
