package actions

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enhancements/internal/application"
	"enhancements/internal/domain"
	"enhancements/internal/ports"
)

type recordingStarter struct {
	cmds []*exec.Cmd
	err  error
}

func (r *recordingStarter) start(cmd *exec.Cmd) error {
	r.cmds = append(r.cmds, cmd)
	return r.err
}

func TestProcessLauncher_RendersArgsAndDefaultsToVaultRoot(t *testing.T) {
	v := newTestVault(t)
	starter := &recordingStarter{}

	action := v.build(t, NewProcessLauncherFactory(starter.start), domain.ActionConfig{
		"type":           TypeLaunchProcess,
		"executablePath": "/bin/echo",
		"args":           []any{"{FILE_PATH}"},
	})

	err := action.Execute(context.Background(), &domain.CodeBlockDescriptor{Text: "x", FilePath: "/tmp/x"})

	require.NoError(t, err)
	require.Len(t, starter.cmds, 1)
	cmd := starter.cmds[0]
	assert.Equal(t, []string{"/bin/echo", "/tmp/x"}, cmd.Args)
	assert.Equal(t, v.path, cmd.Dir)
	assert.Nil(t, cmd.Stdout)
	assert.Nil(t, cmd.Stderr)
}

func TestProcessLauncher_RenderedWorkingPath(t *testing.T) {
	v := newTestVault(t)
	starter := &recordingStarter{}

	action := v.build(t, NewProcessLauncherFactory(starter.start), domain.ActionConfig{
		"type":           TypeLaunchProcess,
		"executablePath": "kitty",
		"workingPath":    "{VAULT_PATH}/{VAULT_CONFIG_DIR}",
	})

	require.NoError(t, action.Execute(context.Background(), nil))
	require.Len(t, starter.cmds, 1)
	assert.Equal(t, v.path+"/.obsidian", starter.cmds[0].Dir)
	assert.Equal(t, []string{"kitty"}, starter.cmds[0].Args)
}

func TestProcessLauncher_StartFailureIsNotAnError(t *testing.T) {
	v := newTestVault(t)
	starter := &recordingStarter{err: errors.New("exec: not found")}

	action := v.build(t, NewProcessLauncherFactory(starter.start), domain.ActionConfig{
		"type":           TypeLaunchProcess,
		"executablePath": "/does/not/exist",
	})

	assert.NoError(t, action.Execute(context.Background(), nil))
	assert.Len(t, starter.cmds, 1)
}

func TestProcessLauncher_MissingExecutableStopsSequence(t *testing.T) {
	v := newTestVault(t)
	starter := &recordingStarter{}

	launch := v.build(t, NewProcessLauncherFactory(starter.start), domain.ActionConfig{"type": TypeLaunchProcess})
	nextRan := false
	next := ports.ActionFunc(func(context.Context, *domain.CodeBlockDescriptor) error {
		nextRan = true
		return nil
	})

	err := application.RunActions(context.Background(), []ports.Action{launch, next}, nil)

	var actionErr *application.ActionError
	require.ErrorAs(t, err, &actionErr)
	assert.Equal(t, 0, actionErr.Index)
	var valErr *application.ValidationError
	assert.ErrorAs(t, err, &valErr)
	assert.False(t, nextRan)
	assert.Empty(t, starter.cmds)
}

func TestStartDetached(t *testing.T) {
	path, err := exec.LookPath("true")
	if err != nil {
		t.Skip("true not available")
	}

	require.NoError(t, StartDetached(exec.Command(path)))
	assert.Error(t, StartDetached(exec.Command("/does/not/exist")))
}
