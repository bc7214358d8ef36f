package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/fx"
)

func TestAppGraphIsComplete(t *testing.T) {
	opts := append(appOptions(), serverInvokes())
	assert.NoError(t, fx.ValidateApp(opts...))
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["migrate"])
}
