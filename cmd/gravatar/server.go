package main

import (
	"context"
	"crypto/ed25519"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/function61/gokit/encoding/jsonfile"
	"github.com/function61/gokit/log/logex"
	"github.com/function61/gokit/net/http/httputils"
	"github.com/function61/gravatar/pkg/gravatar"
	"github.com/function61/gravatar/pkg/httpauth"
	"github.com/function61/gravatar/pkg/idclient"
	"github.com/function61/gravatar/pkg/idtypes"
	"github.com/gorilla/mux"
)

// query params with this prefix are passed on as extra tag attributes
const attributeParamPrefix = "attr."

type avatarApi struct {
	gravatar *gravatar.Gravatar
	conf     *config
	idClient *idclient.Client // nil if no ID server configured
	logl     *logex.Leveled

	authenticator        httpauth.HttpRequestAuthenticator
	authenticatorBuildMu sync.Mutex
}

func newHttpHandler(conf *config, logger *log.Logger) (http.Handler, error) {
	api := &avatarApi{
		gravatar: gravatar.New(conf.defaults),
		conf:     conf,
		logl:     logex.Levels(logger),
	}

	if conf.idServerUrl != "" {
		api.idClient = idclient.New(conf.idServerUrl)
	}

	// with a static key we can fail fast at startup
	if conf.idServerPublicKey != "" {
		publicKey, err := unmarshalPublicKey(conf.idServerPublicKey)
		if err != nil {
			return nil, fmt.Errorf("ID_SERVER_PUBLIC_KEY: %w", err)
		}

		if _, err := api.buildAuthenticator(publicKey); err != nil {
			return nil, err
		}
	}

	router := mux.NewRouter()

	router.HandleFunc("/avatar/url", func(w http.ResponseWriter, r *http.Request) {
		email, overrides, ok := api.parseRequest(w, r)
		if !ok {
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = jsonfile.Marshal(w, idtypes.Avatar{
			URL: api.gravatar.URL(email, overrides),
		})
	}).Methods(http.MethodGet)

	router.HandleFunc("/avatar/tag", func(w http.ResponseWriter, r *http.Request) {
		email, overrides, ok := api.parseRequest(w, r)
		if !ok {
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintln(w, api.gravatar.Tag(email, overrides))
	}).Methods(http.MethodGet)

	router.HandleFunc("/avatar/redirect", func(w http.ResponseWriter, r *http.Request) {
		email, overrides, ok := api.parseRequest(w, r)
		if !ok {
			return
		}

		http.Redirect(w, r, api.gravatar.URL(email, overrides), http.StatusFound)
	}).Methods(http.MethodGet)

	if api.idClient != nil {
		router.HandleFunc("/avatar/me", api.handleMe).Methods(http.MethodGet)
	}

	return router, nil
}

// redirects to the avatar of whoever the auth token belongs to
func (a *avatarApi) handleMe(w http.ResponseWriter, r *http.Request) {
	overrides, err := overridesFromQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validateDefaultImage(derefOrEmpty(overrides.Default), a.conf.defaultImageAllowedHosts); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	authenticator, err := a.getAuthenticator(r.Context())
	if err != nil {
		a.logl.Error.Println(err)
		http.Error(w, fmt.Sprintf("getAuthenticator: %v", err), http.StatusInternalServerError)
		return
	}

	auth, err := authenticator.Authenticate(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	user, err := a.idClient.UserByToken(r.Context(), auth.AuthTokenJwt)
	if err != nil {
		a.logl.Error.Printf("user %s: %v", auth.Id, err)
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	avatarUrl, err := a.gravatar.URLFor(user, overrides)
	if err != nil {
		if errors.Is(err, gravatar.ErrMissingEmail) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		} else {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	// avatar depends on who's asking
	httputils.NoCacheHeaders(w)
	http.Redirect(w, r, avatarUrl, http.StatusFound)
}

// if returns !ok, error response was already sent
func (a *avatarApi) parseRequest(w http.ResponseWriter, r *http.Request) (string, gravatar.Overrides, bool) {
	query := r.URL.Query()

	if _, has := query["email"]; !has {
		http.Error(w, "missing query param: email", http.StatusBadRequest)
		return "", gravatar.Overrides{}, false
	}

	overrides, err := overridesFromQuery(query)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return "", gravatar.Overrides{}, false
	}

	if err := validateDefaultImage(derefOrEmpty(overrides.Default), a.conf.defaultImageAllowedHosts); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return "", gravatar.Overrides{}, false
	}

	return query.Get("email"), overrides, true
}

// only the params present in query override defaults
func overridesFromQuery(query url.Values) (gravatar.Overrides, error) {
	overrides := gravatar.Overrides{}

	if _, has := query["size"]; has {
		size, err := strconv.Atoi(query.Get("size"))
		if err != nil {
			return overrides, fmt.Errorf("size: %w", err)
		}
		overrides.Size = gravatar.Int(size)
	}

	if _, has := query["ssl"]; has {
		ssl, err := strconv.ParseBool(query.Get("ssl"))
		if err != nil {
			return overrides, fmt.Errorf("ssl: %w", err)
		}
		overrides.SSL = gravatar.Bool(ssl)
	}

	if _, has := query["rating"]; has {
		overrides.Rating = gravatar.RatingOf(gravatar.Rating(query.Get("rating")))
	}

	for param, target := range map[string]**string{
		"default": &overrides.Default,
		"alt":     &overrides.Alt,
		"class":   &overrides.Class,
	} {
		if _, has := query[param]; has {
			*target = gravatar.String(query.Get(param))
		}
	}

	for param := range query {
		if name := strings.TrimPrefix(param, attributeParamPrefix); name != param && name != "" {
			if overrides.Attributes == nil {
				overrides.Attributes = map[string]string{}
			}
			overrides.Attributes[name] = query.Get(param)
		}
	}

	return overrides, nil
}

func (a *avatarApi) getAuthenticator(ctx context.Context) (httpauth.HttpRequestAuthenticator, error) {
	a.authenticatorBuildMu.Lock()
	defer a.authenticatorBuildMu.Unlock()

	if a.authenticator != nil {
		return a.authenticator, nil
	}

	// not fetched at startup so an unreachable ID server doesn't prevent us from
	// starting. failures get retried on the next request.
	publicKey, err := a.idClient.ObtainPublicKey(ctx)
	if err != nil {
		return nil, err
	}

	return a.buildAuthenticator(publicKey)
}

// caller must hold authenticatorBuildMu (or be the constructor)
func (a *avatarApi) buildAuthenticator(publicKey ed25519.PublicKey) (httpauth.HttpRequestAuthenticator, error) {
	authenticator, err := httpauth.NewJwtAuthenticator(publicKey, a.conf.audience)
	if err != nil {
		return nil, fmt.Errorf("NewJwtAuthenticator: %w", err)
	}

	a.authenticator = authenticator

	return authenticator, nil
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
