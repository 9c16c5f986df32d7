package main

import (
	"crypto/ed25519"
	"testing"

	"github.com/function61/gokit/testing/assert"
)

func TestKeyMarshalingRoundTrip(t *testing.T) {
	publicKey, privateKey, err := ed25519.GenerateKey(nil)
	assert.Ok(t, err)

	privateKeyUnmarshaled, err := unmarshalPrivateKey(marshalPrivateKey(privateKey))
	assert.Ok(t, err)
	assert.Assert(t, privateKeyUnmarshaled.Equal(privateKey))

	publicKeyUnmarshaled, err := unmarshalPublicKey(marshalPublicKey(publicKey))
	assert.Ok(t, err)
	assert.Assert(t, publicKeyUnmarshaled.Equal(publicKey))

	_, err = unmarshalPrivateKey("Zm9v")
	assert.Equal(t, err.Error(), "private key: expected 64 bytes; got 3")
}
