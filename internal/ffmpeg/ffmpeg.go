// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// EncodeQueue - FFmpeg 批量转码队列工具

package ffmpeg

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"sync"

	"github.com/ZSC714725/encodequeue/internal/ffmpeg/skills"
	"github.com/ZSC714725/encodequeue/internal/logger"
	"github.com/ZSC714725/encodequeue/internal/process"
)

// FFmpeg runs encodes with a resolved FFmpeg binary
type FFmpeg interface {
	Binary() string
	Encode(ctx context.Context, args []string) error
	Skills() (skills.Skills, error)
}

// Config for FFmpeg. Nil streams fall back to the current process's
// standard streams.
type Config struct {
	Binary string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger logger.Logger
}

type ffmpeg struct {
	binary string
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger logger.Logger

	skills     *skills.Skills
	skillsLock sync.Mutex
}

// New resolves config.Binary on PATH
func New(config Config) (FFmpeg, error) {
	binary, err := exec.LookPath(config.Binary)
	if err != nil {
		return nil, fmt.Errorf("invalid ffmpeg binary: %w", err)
	}

	f := &ffmpeg{
		binary: binary,
		stdin:  config.Stdin,
		stdout: config.Stdout,
		stderr: config.Stderr,
		logger: config.Logger,
	}

	if f.logger == nil {
		f.logger = logger.Nop()
	}

	return f, nil
}

func (f *ffmpeg) Binary() string {
	return f.binary
}

// Encode runs one FFmpeg invocation to completion with the configured
// streams attached. Launch failures are *process.LaunchError, non-zero
// exits *process.ExitError.
func (f *ffmpeg) Encode(ctx context.Context, args []string) error {
	proc, err := process.New(process.Config{
		Binary: f.binary,
		Args:   args,
		Stdin:  f.stdin,
		Stdout: f.stdout,
		Stderr: f.stderr,
		Logger: f.logger,
		OnStateChange: func(from, to string) {
			f.logger.Debug("ffmpeg state %s -> %s", from, to)
		},
	})
	if err != nil {
		return err
	}

	err = proc.Run(ctx)
	st := proc.Status()
	if err != nil {
		f.logger.Error("ffmpeg %s after %s: %v", st.State, st.Duration, err)
		return err
	}
	f.logger.Info("ffmpeg finished in %s", st.Duration)
	return nil
}

// Skills probes the binary on first use and caches the result
func (f *ffmpeg) Skills() (skills.Skills, error) {
	f.skillsLock.Lock()
	defer f.skillsLock.Unlock()

	if f.skills != nil {
		return *f.skills, nil
	}
	s, err := skills.New(f.binary)
	if err != nil {
		return skills.Skills{}, fmt.Errorf("invalid ffmpeg: %w", err)
	}
	f.skills = &s
	return s, nil
}

// DryRun prints each command line to out instead of running it
type DryRun struct {
	Binary string
	Out    io.Writer
}

func (d DryRun) Encode(ctx context.Context, args []string) error {
	_, err := fmt.Fprintln(d.Out, FormatCommand(d.Binary, args))
	return err
}
