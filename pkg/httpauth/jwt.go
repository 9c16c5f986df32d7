// Bearer token auth for avatar lookups: EdDSA-signed JWTs issued by the ID server
package httpauth

import (
	"crypto/ed25519"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/kataras/jwt"
	"github.com/patrickmn/go-cache"
)

const tokenLifetime = 24 * time.Hour

type jwtSigner struct {
	privKey ed25519.PrivateKey
}

// only the ID server signs tokens in production. we sign for tests and dev tokens
func NewJwtSigner(privKey ed25519.PrivateKey) (Signer, error) {
	if len(privKey) != ed25519.PrivateKeySize {
		return nil, errors.New("NewJwtSigner: invalid Ed25519 private key")
	}

	return &jwtSigner{privKey}, nil
}

func (j *jwtSigner) Sign(userDetails UserDetails, audience string, now time.Time) string {
	claims := jwt.Claims{
		Subject:  userDetails.Id,
		IssuedAt: now.Unix(),
		Expiry:   now.Add(tokenLifetime).Unix(),
	}
	if audience != "" {
		claims.Audience = jwt.Audience{audience}
	}

	token, err := jwt.Sign(jwt.EdDSA, j.privKey, claims)
	if err != nil { // only fails for bad keys, which the constructor rejects
		panic(err)
	}

	return string(token)
}

type jwtAuthenticator struct {
	publicKey ed25519.PublicKey
	audience  string

	// signature checks are not free and avatar pages tend to ask for the same
	// token repeatedly. only valid tokens get cached, until their expiry.
	validated *cache.Cache

	now func() time.Time // for testing
}

func NewJwtAuthenticator(publicKey ed25519.PublicKey, audience string) (HttpRequestAuthenticator, error) {
	if len(publicKey) != ed25519.PublicKeySize {
		return nil, errors.New("NewJwtAuthenticator: invalid Ed25519 public key")
	}

	return &jwtAuthenticator{
		publicKey: publicKey,
		audience:  audience,
		validated: cache.New(5*time.Minute, 10*time.Minute),
		now:       time.Now,
	}, nil
}

func (j *jwtAuthenticator) Authenticate(r *http.Request) (*UserDetails, error) {
	token := tokenFromRequest(r)
	if token == "" {
		return nil, ErrNoAuthToken
	}

	return j.AuthenticateJwtString(token)
}

func (j *jwtAuthenticator) AuthenticateJwtString(token string) (*UserDetails, error) {
	claims, err := j.verifyCached(token)
	switch {
	case err == jwt.ErrExpired:
		return nil, ErrSessionExpired
	case err != nil:
		return nil, err // already prefixed with "jwt: "
	default:
		return NewUserDetails(claims.Subject, token), nil
	}
}

func (j *jwtAuthenticator) verifyCached(token string) (*jwt.Claims, error) {
	if cached, found := j.validated.Get(token); found {
		claims := cached.(*jwt.Claims)

		// cache expiration is checked lazily and with our own clock only here
		if claims.Expiry == 0 || j.now().Before(claims.ExpiresAt()) {
			return claims, nil
		}

		j.validated.Delete(token)
	}

	claims, err := j.verify(token)
	if err != nil {
		return nil, err
	}

	if claims.Expiry != 0 {
		if ttl := claims.ExpiresAt().Sub(j.now()); ttl > 0 {
			j.validated.Set(token, claims, ttl)
		}
	}

	return claims, nil
}

func (j *jwtAuthenticator) verify(token string) (*jwt.Claims, error) {
	validators := []jwt.TokenValidator{}
	if j.audience != "" {
		validators = append(validators, jwt.Expected{Audience: jwt.Audience{j.audience}})
	}

	verified, err := jwt.Verify(jwt.EdDSA, j.publicKey, []byte(token), validators...)
	if err != nil {
		return nil, err
	}

	return &verified.StandardClaims, nil
}

// 1) bearer token 2) cookie
func tokenFromRequest(r *http.Request) string {
	if authorization := r.Header.Get("Authorization"); strings.HasPrefix(authorization, "Bearer ") {
		return strings.TrimPrefix(authorization, "Bearer ")
	}

	if cookie, err := r.Cookie(loginCookieName); err == nil {
		return cookie.Value
	}

	return ""
}
