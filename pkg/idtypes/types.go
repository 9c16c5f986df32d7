package idtypes

import (
	"time"
)

// user as served by the identity server's profile endpoint
type User struct {
	Id      string    `json:"id"`
	Created time.Time `json:"created"`
	Email   string    `json:"email"`
}

// satisfies gravatar.User
func (u *User) EmailAddress() string {
	if u == nil {
		return ""
	}

	return u.Email
}

// what our API answers with. URL is for the size the caller asked
type Avatar struct {
	URL string `json:"url"`
}
