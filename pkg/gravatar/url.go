package gravatar

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	insecureBaseURL = "http://www.gravatar.com/avatar/"
	secureBaseURL   = "https://secure.gravatar.com/avatar/"
)

// APIURL returns the base avatar URL (no query) for an email hash. ssl is
// needed when the avatar is displayed on a HTTPS site.
func APIURL(hash string, ssl bool) string {
	if ssl {
		return secureBaseURL + hash
	}

	return insecureBaseURL + hash
}

// URL returns the avatar URL for email. Query parameters are always in order
// rating, size, default and each is left out when it has no value.
func (g *Gravatar) URL(email string, overrides Overrides) string {
	return buildURL(email, g.Resolve(overrides))
}

func buildURL(email string, opts Options) string {
	base := APIURL(emailHash(email, opts), opts.SSL)

	params := []string{}

	if rating := string(opts.Rating); isPresent(rating) {
		params = append(params, "rating="+url.QueryEscape(rating))
	}

	// always has a value (the default's if not overridden), even if out of range
	params = append(params, "size="+strconv.Itoa(opts.Size))

	// default is an URL itself, so it must be escaped in its entirety
	if isPresent(opts.Default) {
		params = append(params, "default="+url.QueryEscape(opts.Default))
	}

	if len(params) == 0 {
		return base
	}

	return base + "?" + strings.Join(params, "&")
}
