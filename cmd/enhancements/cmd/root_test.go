package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"enhancements/internal/application"
)

func TestRun_ClosesSessionWhenCommandFails(t *testing.T) {
	vault := t.TempDir()
	rootCmd.SetArgs([]string{"ribbon", "missing", "--vault", vault, "--log-level", "error"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := run(context.Background())

	assert.ErrorIs(t, err, application.ErrButtonNotFound)
	assert.Nil(t, session)
}

func TestRun_ClosesSessionOnSuccess(t *testing.T) {
	vault := t.TempDir()
	rootCmd.SetArgs([]string{"list", "--vault", vault, "--log-level", "error"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	assert.NoError(t, run(context.Background()))
	assert.Nil(t, session)
}
