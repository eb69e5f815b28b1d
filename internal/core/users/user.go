package users

import (
	"time"
)

// User is the stored profile of an identity that has called the API.
// Profiles are refreshed from token claims on every authenticated request,
// so Name and Email reflect the most recent credential seen.
type User struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
}

// Identity is the authenticated caller as asserted by a verified credential
type Identity struct {
	ID    string
	Name  string
	Email string
}

// AuthorView is the author block attached to post and comment views
type AuthorView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// View projects a user into the author block shown next to content
func (u *User) View() *AuthorView {
	return &AuthorView{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}
