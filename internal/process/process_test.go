// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// EncodeQueue - FFmpeg 批量转码队列工具

package process

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell based tests need a POSIX sh")
	}
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	return sh
}

func TestNewRequiresBinary(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
}

func TestRunSuccessInheritsStreams(t *testing.T) {
	sh := requireShell(t)
	var out, errOut bytes.Buffer
	var transitions []string

	p, err := New(Config{
		Binary: sh,
		Args:   []string{"-c", "read line; echo got $line; echo warn >&2"},
		Stdin:  strings.NewReader("hello\n"),
		Stdout: &out,
		Stderr: &errOut,
		OnStateChange: func(from, to string) {
			transitions = append(transitions, from+"->"+to)
		},
	})
	require.NoError(t, err)

	require.NoError(t, p.Run(context.Background()))
	assert.Equal(t, "got hello\n", out.String())
	assert.Equal(t, "warn\n", errOut.String())
	assert.Equal(t, []string{"idle->starting", "starting->running", "running->finished"}, transitions)

	st := p.Status()
	assert.Equal(t, "finished", st.State)
	assert.Equal(t, 0, st.ExitCode)
}

func TestRunNonZeroExit(t *testing.T) {
	sh := requireShell(t)
	p, err := New(Config{Binary: sh, Args: []string{"-c", "exit 3"}, Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}})
	require.NoError(t, err)

	err = p.Run(context.Background())
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 3, exitErr.Code)
	assert.Empty(t, exitErr.Signal)
	assert.Contains(t, err.Error(), "exited with status 3")
	assert.Equal(t, "failed", p.Status().State)
}

func TestRunKilledBySignal(t *testing.T) {
	sh := requireShell(t)
	p, err := New(Config{Binary: sh, Args: []string{"-c", "kill -9 $$"}, Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}})
	require.NoError(t, err)

	err = p.Run(context.Background())
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.NotEmpty(t, exitErr.Signal)
	assert.Equal(t, "killed", p.Status().State)
}

func TestRunLaunchFailure(t *testing.T) {
	p, err := New(Config{Binary: "/nonexistent/encoder-binary"})
	require.NoError(t, err)

	err = p.Run(context.Background())
	var launchErr *LaunchError
	require.True(t, errors.As(err, &launchErr))
	assert.Equal(t, "/nonexistent/encoder-binary", launchErr.Binary)
	assert.Equal(t, "failed", p.Status().State)
}

func TestRunOnlyOnce(t *testing.T) {
	sh := requireShell(t)
	p, err := New(Config{Binary: sh, Args: []string{"-c", "true"}})
	require.NoError(t, err)

	require.NoError(t, p.Run(context.Background()))
	assert.Error(t, p.Run(context.Background()))
}
