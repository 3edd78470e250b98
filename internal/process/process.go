// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// EncodeQueue - FFmpeg 批量转码队列工具
//
// Package process runs an FFmpeg process to completion with the caller's
// standard streams attached.

package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"
	"time"
)

// Process represents a single encoder run
type Process interface {
	Run(ctx context.Context) error
	Status() Status
}

// Config for a process
type Config struct {
	Binary        string
	Args          []string
	Stdin         io.Reader
	Stdout        io.Writer
	Stderr        io.Writer
	OnStateChange func(from, to string)
	Logger        Logger
}

// Status of a process
type Status struct {
	State    string
	ExitCode int
	Duration time.Duration
	Time     time.Time
}

// Logger interface
type Logger interface {
	Info(format string, args ...interface{})
	Error(format string, args ...interface{})
	Debug(format string, args ...interface{})
}

// LaunchError means the binary could not be started at all
type LaunchError struct {
	Binary string
	Err    error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("start %s: %v", e.Binary, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// ExitError means the process ran and reported failure.
// Signal is set when the process was killed.
type ExitError struct {
	Binary string
	Code   int
	Signal string
	Err    error
}

func (e *ExitError) Error() string {
	if e.Signal != "" {
		return fmt.Sprintf("%s killed by signal %s", e.Binary, e.Signal)
	}
	return fmt.Sprintf("%s exited with status %d", e.Binary, e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

type stateType string

const (
	stateIdle     stateType = "idle"
	stateStarting stateType = "starting"
	stateRunning  stateType = "running"
	stateFinished stateType = "finished"
	stateFailed   stateType = "failed"
	stateKilled   stateType = "killed"
)

func (s stateType) String() string { return string(s) }

type process struct {
	binary string
	args   []string
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	state    stateType
	time     time.Time
	started  time.Time
	duration time.Duration
	exitCode int

	onStateChange func(from, to string)
	logger        Logger
}

// New creates a new process. Nil streams default to the current
// process's stdin, stdout and stderr.
func New(config Config) (Process, error) {
	p := &process{
		binary:        config.Binary,
		args:          config.Args,
		stdin:         config.Stdin,
		stdout:        config.Stdout,
		stderr:        config.Stderr,
		onStateChange: config.OnStateChange,
		logger:        config.Logger,
		state:         stateIdle,
		time:          time.Now(),
	}

	if len(p.binary) == 0 {
		return nil, fmt.Errorf("no valid binary given")
	}
	if p.stdin == nil {
		p.stdin = os.Stdin
	}
	if p.stdout == nil {
		p.stdout = os.Stdout
	}
	if p.stderr == nil {
		p.stderr = os.Stderr
	}
	if p.logger == nil {
		p.logger = &nopLogger{}
	}

	return p, nil
}

func (p *process) setState(state stateType) error {
	prev := p.state
	ok := false

	switch prev {
	case stateIdle:
		ok = state == stateStarting
	case stateStarting:
		ok = state == stateRunning || state == stateFailed
	case stateRunning:
		ok = state == stateFinished || state == stateFailed || state == stateKilled
	}
	if !ok {
		return fmt.Errorf("can't change from %s to %s", prev, state)
	}

	p.state = state
	p.time = time.Now()
	if p.onStateChange != nil {
		p.onStateChange(prev.String(), state.String())
	}
	return nil
}

func (p *process) Status() Status {
	d := p.duration
	if p.state == stateRunning {
		d = time.Since(p.started)
	}
	return Status{
		State:    p.state.String(),
		ExitCode: p.exitCode,
		Duration: d,
		Time:     p.time,
	}
}

// Run starts the process and blocks until it exits. A process may only be
// run once.
func (p *process) Run(ctx context.Context) error {
	if err := p.setState(stateStarting); err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, p.binary, p.args...)
	cmd.Stdin = p.stdin
	cmd.Stdout = p.stdout
	cmd.Stderr = p.stderr

	p.logger.Debug("starting %s %v", p.binary, p.args)
	if err := cmd.Start(); err != nil {
		p.exitCode = -1
		_ = p.setState(stateFailed)
		return &LaunchError{Binary: p.binary, Err: err}
	}

	p.started = time.Now()
	_ = p.setState(stateRunning)
	p.logger.Debug("%s running with pid %d", p.binary, cmd.Process.Pid)

	err := cmd.Wait()
	p.duration = time.Since(p.started)
	return p.waited(err)
}

func (p *process) waited(err error) error {
	if err == nil {
		p.exitCode = 0
		_ = p.setState(stateFinished)
		return nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		p.exitCode = -1
		_ = p.setState(stateFailed)
		return &ExitError{Binary: p.binary, Code: -1, Err: err}
	}

	p.exitCode = exitErr.ExitCode()
	if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		_ = p.setState(stateKilled)
		return &ExitError{Binary: p.binary, Code: p.exitCode, Signal: status.Signal().String(), Err: err}
	}

	_ = p.setState(stateFailed)
	return &ExitError{Binary: p.binary, Code: p.exitCode, Err: err}
}

type nopLogger struct{}

func (l *nopLogger) Info(format string, args ...interface{})  {}
func (l *nopLogger) Error(format string, args ...interface{}) {}
func (l *nopLogger) Debug(format string, args ...interface{}) {}
