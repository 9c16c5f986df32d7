package gravatar

import (
	"errors"
	"fmt"
)

var ErrMissingEmail = errors.New("gravatar: user has no email address")

// anything that has an email address, e.g. a user record
type User interface {
	EmailAddress() string
}

// URLFor is URL() for user's email address
func (g *Gravatar) URLFor(user User, overrides Overrides) (string, error) {
	email, err := emailOf(user)
	if err != nil {
		return "", err
	}

	return g.URL(email, overrides), nil
}

// TagFor is Tag() for user's email address
func (g *Gravatar) TagFor(user User, overrides Overrides) (string, error) {
	email, err := emailOf(user)
	if err != nil {
		return "", err
	}

	return g.Tag(email, overrides), nil
}

func emailOf(user User) (string, error) {
	if user == nil {
		return "", fmt.Errorf("nil user: %w", ErrMissingEmail)
	}

	email := user.EmailAddress()
	if !isPresent(email) {
		return "", ErrMissingEmail
	}

	return email, nil
}
