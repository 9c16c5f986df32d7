package httpauth

import (
	"errors"
	"net/http"
	"time"
)

const loginCookieName = "auth"

var (
	ErrNoAuthToken    = errors.New("auth: either specify 'auth' cookie or 'Authorization' header")
	ErrSessionExpired = errors.New("auth: session expired")
)

type UserDetails struct {
	Id           string
	AuthTokenJwt string
}

func NewUserDetails(id string, authTokenJwt string) *UserDetails {
	return &UserDetails{
		Id:           id,
		AuthTokenJwt: authTokenJwt,
	}
}

type Signer interface {
	Sign(userDetails UserDetails, audience string, now time.Time) string
}

type HttpRequestAuthenticator interface {
	// looks for the token from bearer header first, then from cookie
	Authenticate(*http.Request) (*UserDetails, error)
	AuthenticateJwtString(string) (*UserDetails, error)
}

// the ID server hands out tokens in a cookie named like this
func ToCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     loginCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}
