// Client for the identity server, for looking up who an auth token belongs to
package idclient

import (
	"context"
	"crypto/ed25519"
	"fmt"

	"github.com/function61/gokit/net/http/ezhttp"
	"github.com/function61/gravatar/pkg/idtypes"
	"gopkg.in/square/go-jose.v2"
)

const (
	Function61 = "https://function61.com/id" // our ID server
)

type Client struct {
	serverBaseurl string
}

func New(serverBaseurl string) *Client {
	return &Client{serverBaseurl}
}

func (c *Client) UserByToken(ctx context.Context, token string) (*idtypes.User, error) {
	user := &idtypes.User{}
	if _, err := ezhttp.Get(
		ctx,
		c.serverBaseurl+"/profile",
		ezhttp.AuthBearer(token),
		ezhttp.RespondsJson(user, true),
	); err != nil {
		return nil, fmt.Errorf("UserByToken: %w", err)
	}

	return user, nil
}

// public key the server signs its tokens with, from its JWKS document
func (c *Client) ObtainPublicKey(ctx context.Context) (ed25519.PublicKey, error) {
	keySet := jose.JSONWebKeySet{}
	if _, err := ezhttp.Get(
		ctx,
		c.serverBaseurl+"/.well-known/jwks.json",
		ezhttp.RespondsJson(&keySet, true),
	); err != nil {
		return nil, fmt.Errorf("ObtainPublicKey: %w", err)
	}

	return firstEd25519Key(keySet)
}

func firstEd25519Key(keySet jose.JSONWebKeySet) (ed25519.PublicKey, error) {
	if len(keySet.Keys) == 0 {
		return nil, fmt.Errorf("got %d key(s)", len(keySet.Keys))
	}

	// TODO: take into account multiple keys (key rollover)
	publicKey, ok := keySet.Keys[0].Public().Key.(ed25519.PublicKey)
	if !ok {
		return nil, fmt.Errorf("unsupported key type %T", keySet.Keys[0].Key)
	}

	return publicKey, nil
}
