// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// EncodeQueue - FFmpeg 批量转码队列工具

package ffmpeg

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

	"github.com/ZSC714725/encodequeue/internal/process"
)

func TestNewRejectsUnknownBinary(t *testing.T) {
	_, err := New(Config{Binary: "definitely-not-an-encoder-binary"})
	assert.ErrorContains(t, err, "invalid ffmpeg binary")
}

func TestEncodeRunsBinaryWithArgs(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX sh")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	var out bytes.Buffer
	f, err := New(Config{Binary: "sh", Stdout: &out, Stderr: &bytes.Buffer{}})
	require.NoError(t, err)

	require.NoError(t, f.Encode(context.Background(), []string{"-c", "echo encoded"}))
	assert.Equal(t, "encoded\n", out.String())

	err = f.Encode(context.Background(), []string{"-c", "exit 1"})
	var exitErr *process.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 1, exitErr.Code)
}

func TestEncodeUsesConfiguredStdin(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	var out bytes.Buffer
	f, err := New(Config{Binary: "sh", Stdin: strings.NewReader("frame\n"), Stdout: &out, Stderr: &bytes.Buffer{}})
	require.NoError(t, err)

	require.NoError(t, f.Encode(context.Background(), []string{"-c", "read line; echo got $line"}))
	assert.Equal(t, "got frame\n", out.String())
}

func TestDryRunPrintsCommand(t *testing.T) {
	var out bytes.Buffer
	d := DryRun{Binary: "ffmpeg", Out: &out}

	require.NoError(t, d.Encode(context.Background(), Translate(defaultSpec("my clip.mp4", 30))))
	assert.Equal(t, `ffmpeg -hwaccel auto -i "my clip.mp4" -c:v libaom-av1 -crf 30 -b:v 0 -pix_fmt yuv420p -row-mt 1 -tiles 4x4 -cpu-used 8 -c:a libopus -b:a 128K "my clip.webm"`+"\n", out.String())
}
