package main

import (
	"fmt"
	"net/url"
	"strings"
)

// checks that the caller-given default image lives on a host we allow.
// empty allow list means anything goes.
func validateDefaultImage(defaultImage string, allowList []string) error {
	if len(allowList) == 0 || strings.TrimSpace(defaultImage) == "" {
		return nil
	}

	parsed, err := url.Parse(defaultImage)
	if err != nil {
		return fmt.Errorf("'default' not valid URL: %v", err)
	}

	// gravatar.com's builtin fallbacks ("identicon", "mp", ...) are not URLs
	if parsed.Host == "" && parsed.Scheme == "" && !strings.Contains(defaultImage, "/") {
		return nil
	}

	if !hostMatchesAllowList(parsed.Hostname(), allowList) {
		return fmt.Errorf("'default' hostname (%s) not in allow list", parsed.Hostname())
	}

	return nil
}

func hostMatchesAllowList(host string, allowList []string) bool {
	for _, allow := range allowList {
		switch {
		case host == allow:
			return true
		case strings.HasPrefix(allow, "*.") && strings.HasSuffix(host, allow[1:]): // *.example.com
			return true
		}
	}

	return false
}

func parseAllowList(serialized string) []string {
	allowList := []string{}
	for _, item := range strings.Split(serialized, ",") {
		if item = strings.TrimSpace(item); item != "" {
			allowList = append(allowList, item)
		}
	}

	return allowList
}
