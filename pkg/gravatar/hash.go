package gravatar

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// HashEmail returns the lowercase hex MD5 of the address exactly as given.
// gravatar.com itself expects a trimmed, lowercased address; see NormalizeEmail().
func HashEmail(email string) string {
	sum := md5.Sum([]byte(email))
	return hex.EncodeToString(sum[:])
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func emailHash(email string, opts Options) string {
	if opts.NormalizeEmail {
		return HashEmail(NormalizeEmail(email))
	}

	return HashEmail(email)
}
