package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/function61/gokit/testing/assert"
	"github.com/function61/gravatar/pkg/gravatar"
	"github.com/function61/gravatar/pkg/idclient"
)

func TestUserAvatar(t *testing.T) {
	idServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch r.Header.Get("Authorization") {
		case "Bearer bob":
			_, _ = w.Write([]byte(`{"id": "bob", "email": "test@example.com"}`))
		case "Bearer ghost":
			_, _ = w.Write([]byte(`{"id": "ghost"}`))
		default:
			http.Error(w, "forbidden", http.StatusForbidden)
		}
	}))
	defer idServer.Close()

	client := idclient.New(idServer.URL)

	output := &bytes.Buffer{}
	assert.Ok(t, userAvatar(context.Background(), client, "bob", gravatar.Default(), gravatar.Overrides{Alt: gravatar.String("Bob")}, output))
	assert.Equal(t, output.String(), `<img alt="Bob" class="gravatar" height="50" src="http://www.gravatar.com/avatar/55502f40dc8b7c769880b10874abc9d0?rating=PG&amp;size=50" />`+"\n")

	err := userAvatar(context.Background(), client, "ghost", gravatar.Default(), gravatar.Overrides{}, output)
	assert.Assert(t, errors.Is(err, gravatar.ErrMissingEmail))
	assert.Equal(t, err.Error(), "user ghost: gravatar: user has no email address")

	assert.Assert(t, userAvatar(context.Background(), client, "nobody", gravatar.Default(), gravatar.Overrides{}, output) != nil)
}
