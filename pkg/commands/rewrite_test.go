package commands_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imgremap/imgremap/pkg/commands"
)

func TestRewriteCommand(t *testing.T) {
	cmd := commands.NewRewriteCommand().ToCLI()
	stdout := &bytes.Buffer{}
	cmd.Writer = stdout

	err := cmd.Run(context.Background(), []string{
		"rewrite",
		"--map", "quay.io=quay.mirror.example.com",
		"--map", "docker.io=hub.mirror.example.com",
		"quay.io/foo/bar", "alpine:3.10",
	})
	require.NoError(t, err)
	assert.Equal(t, "quay.mirror.example.com/foo/bar:latest\nhub.mirror.example.com/library/alpine:3.10\n", stdout.String())
}

func TestRewriteCommand_CanonicalizeOnly(t *testing.T) {
	cmd := commands.NewRewriteCommand().ToCLI()
	stdout := &bytes.Buffer{}
	cmd.Writer = stdout

	err := cmd.Run(context.Background(), []string{"rewrite", "alpine"})
	require.NoError(t, err)
	assert.Equal(t, "docker.io/library/alpine:latest\n", stdout.String())
}

func TestRewriteCommand_InvalidMapping(t *testing.T) {
	cmd := commands.NewRewriteCommand().ToCLI()
	cmd.Writer = &bytes.Buffer{}
	cmd.ErrWriter = &bytes.Buffer{}

	err := cmd.Run(context.Background(), []string{"rewrite", "--map", "missing-equals", "alpine"})
	require.Error(t, err)
}
