package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/function61/gravatar/pkg/gravatar"
)

// site-wide settings, read once at startup
type config struct {
	defaults                 gravatar.Options
	defaultImageAllowedHosts []string
	idServerUrl              string // "" = /avatar/me disabled
	idServerPublicKey        string // "" = fetch from ID server
	audience                 string
}

func configFromEnv() (*config, error) {
	return configFrom(os.LookupEnv)
}

func configFrom(lookupEnv func(string) (string, bool)) (*config, error) {
	defaults := gravatar.DefaultOptions()

	if val, found := lookupEnv("GRAVATAR_SIZE"); found {
		size, err := strconv.Atoi(val)
		if err != nil {
			return nil, fmt.Errorf("GRAVATAR_SIZE: %w", err)
		}
		defaults.Size = size
	}

	if val, found := lookupEnv("GRAVATAR_RATING"); found {
		defaults.Rating = gravatar.Rating(val)
	}

	if val, found := lookupEnv("GRAVATAR_DEFAULT"); found {
		defaults.Default = val
	}

	if val, found := lookupEnv("GRAVATAR_CLASS"); found {
		defaults.Class = val
	}

	for envName, target := range map[string]*bool{
		"GRAVATAR_SSL":             &defaults.SSL,
		"GRAVATAR_NORMALIZE_EMAIL": &defaults.NormalizeEmail,
	} {
		val, found := lookupEnv(envName)
		if !found {
			continue
		}

		parsed, err := strconv.ParseBool(val)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", envName, err)
		}
		*target = parsed
	}

	getenv := func(key string) string {
		val, _ := lookupEnv(key)
		return val
	}

	return &config{
		defaults:                 defaults,
		defaultImageAllowedHosts: parseAllowList(getenv("GRAVATAR_DEFAULT_ALLOWED_HOSTS")),
		idServerUrl:              getenv("ID_SERVER_URL"),
		idServerPublicKey:        getenv("ID_SERVER_PUBLIC_KEY"),
		audience:                 getenv("ID_AUDIENCE"),
	}, nil
}
