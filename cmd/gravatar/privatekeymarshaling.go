package main

import (
	"crypto/ed25519"
	"encoding/base64"
	"fmt"
)

func marshalPrivateKey(privKey ed25519.PrivateKey) string {
	return base64.RawURLEncoding.EncodeToString(privKey)
}

func unmarshalPrivateKey(privKeyStr string) (ed25519.PrivateKey, error) {
	privKeyBytes, err := base64.RawURLEncoding.DecodeString(privKeyStr)
	if err != nil {
		return nil, err
	}

	if len(privKeyBytes) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("private key: expected %d bytes; got %d", ed25519.PrivateKeySize, len(privKeyBytes))
	}

	return ed25519.PrivateKey(privKeyBytes), nil
}

func marshalPublicKey(pubKey ed25519.PublicKey) string {
	return base64.RawURLEncoding.EncodeToString(pubKey)
}

func unmarshalPublicKey(pubKeyStr string) (ed25519.PublicKey, error) {
	pubKeyBytes, err := base64.RawURLEncoding.DecodeString(pubKeyStr)
	if err != nil {
		return nil, err
	}

	if len(pubKeyBytes) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("public key: expected %d bytes; got %d", ed25519.PublicKeySize, len(pubKeyBytes))
	}

	return ed25519.PublicKey(pubKeyBytes), nil
}
