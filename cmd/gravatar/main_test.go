package main

import (
	"context"
	"testing"

	"github.com/function61/gokit/log/logex"
	"github.com/function61/gokit/testing/assert"
)

func TestStandaloneServerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Ok(t, runStandaloneRestApi(ctx, "127.0.0.1:0", logex.Discard))
}
