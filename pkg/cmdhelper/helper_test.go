package cmdhelper_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/imgremap/imgremap/pkg/cmdhelper"
)

func runWithArgs(t *testing.T, check cmdhelper.ActionFunc, args ...string) error {
	t.Helper()
	var checkErr error
	cmd := &cli.Command{
		Name: "test",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			checkErr = check(ctx, cmd)
			return nil
		},
	}
	require.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...)))
	return checkErr
}

func TestNoArgs(t *testing.T) {
	assert.NoError(t, runWithArgs(t, cmdhelper.NoArgs()))
	assert.Error(t, runWithArgs(t, cmdhelper.NoArgs(), "extra"))
}

func TestExactArgs(t *testing.T) {
	assert.NoError(t, runWithArgs(t, cmdhelper.ExactArgs(2), "a", "b"))
	assert.Error(t, runWithArgs(t, cmdhelper.ExactArgs(2), "a"))
}

func TestMinimumNArgs(t *testing.T) {
	assert.NoError(t, runWithArgs(t, cmdhelper.MinimumNArgs(1), "a", "b"))
	assert.Error(t, runWithArgs(t, cmdhelper.MinimumNArgs(1)))
}

func TestFprintf(t *testing.T) {
	buf := &bytes.Buffer{}
	cmdhelper.Fprintf(buf, "hello %s", "world")
	assert.Equal(t, "hello world\n", buf.String())

	buf.Reset()
	cmdhelper.Fprintf(buf, "already newlined\n")
	assert.Equal(t, "already newlined\n", buf.String())
}

func TestPrettifyJSON(t *testing.T) {
	got, err := cmdhelper.PrettifyJSON(`{"a":1}`)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", string(got))

	_, err = cmdhelper.PrettifyJSON([]byte(`{broken`))
	assert.Error(t, err)
}
