// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// EncodeQueue - FFmpeg 批量转码队列工具

// Package session drives the interactive queue editor: it renders the
// queue, reads a one letter command and dispatches it until the user quits.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/lithammer/shortuuid/v4"

	"github.com/ZSC714725/encodequeue/internal/console"
	"github.com/ZSC714725/encodequeue/internal/logger"
	"github.com/ZSC714725/encodequeue/internal/preflight"
	"github.com/ZSC714725/encodequeue/internal/queue"
)

// Encoder runs one encoder invocation to completion
type Encoder interface {
	Encode(ctx context.Context, args []string) error
}

// Lister returns candidate input files
type Lister interface {
	List() ([]string, error)
}

// Locker guards a batch encode. *flock.Flock implements it.
type Locker interface {
	TryLock() (bool, error)
	Unlock() error
}

// DiskChecker reports free space before a batch
type DiskChecker interface {
	Check(dir string) (preflight.DiskReport, error)
}

// State of the loop
type State int

const (
	Running State = iota
	Exiting
)

func (s State) String() string {
	if s == Exiting {
		return "exiting"
	}
	return "running"
}

// Config wires a session to its collaborators. Console, Files and Encoder
// are required.
type Config struct {
	Console   *console.Console
	Queue     *queue.Queue
	Defaults  queue.Defaults
	Files     Lister
	Encoder   Encoder
	Lock      Locker
	Disk      DiskChecker
	OutputDir string
	Logger    logger.Logger
	// NewBatchID returns the correlation id logged for a batch
	NewBatchID func() string
	// Stat checks that a selected input still exists
	Stat func(name string) (os.FileInfo, error)
}

// Session is the interactive loop state. It is not safe for concurrent use.
type Session struct {
	con      *console.Console
	queue    *queue.Queue
	defaults queue.Defaults
	files    Lister
	enc      Encoder
	lock     Locker
	disk     DiskChecker
	outDir   string
	log      logger.Logger
	batchID  func() string
	stat     func(name string) (os.FileInfo, error)

	state    State
	notice   string
	commands map[rune]func(ctx context.Context) error
}

// New returns a session in the Running state
func New(cfg Config) (*Session, error) {
	if cfg.Console == nil || cfg.Files == nil || cfg.Encoder == nil {
		return nil, errors.New("session requires console, file lister and encoder")
	}

	s := &Session{
		con:      cfg.Console,
		queue:    cfg.Queue,
		defaults: cfg.Defaults,
		files:    cfg.Files,
		enc:      cfg.Encoder,
		lock:     cfg.Lock,
		disk:     cfg.Disk,
		outDir:   cfg.OutputDir,
		log:      cfg.Logger,
		batchID:  cfg.NewBatchID,
		stat:     cfg.Stat,
		state:    Running,
	}
	if s.queue == nil {
		s.queue = queue.New()
	}
	if s.outDir == "" {
		s.outDir = "."
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	if s.batchID == nil {
		s.batchID = shortuuid.New
	}
	if s.stat == nil {
		s.stat = os.Stat
	}

	s.commands = map[rune]func(ctx context.Context) error{
		'a': s.add,
		'r': s.remove,
		'c': s.changeQuality,
		'e': s.encode,
		'q': s.quit,
	}
	return s, nil
}

// Queue returns the queue the session edits
func (s *Session) Queue() *queue.Queue {
	return s.queue
}

// State returns the loop state
func (s *Session) State() State {
	return s.state
}

const menu = "[A]dd file; [R]emove file; [C]hange CRF; [E]ncode queue; [Q]uit "

// Run loops until the user quits or input ends. Only encoder and discovery
// failures are returned; bad input is re-prompted.
func (s *Session) Run(ctx context.Context) error {
	for s.state == Running {
		s.render()

		line, err := s.con.Prompt(menu)
		if err != nil {
			return s.finish(err)
		}
		if err := s.dispatch(ctx, line); err != nil {
			if errors.Is(err, console.ErrAborted) {
				continue
			}
			return s.finish(err)
		}
	}
	return nil
}

func (s *Session) finish(err error) error {
	s.state = Exiting
	if errors.Is(err, io.EOF) {
		s.log.Debug("input closed, leaving with %d queued job(s)", s.queue.Len())
		return nil
	}
	return err
}

func (s *Session) render() {
	s.con.Clear()
	s.con.Println(console.RenderQueue(s.queue.Jobs()))
	if s.notice != "" {
		s.con.Println(s.notice)
		s.notice = ""
	}
}

// dispatch runs the command named by the first letter of line. Unknown
// letters and blank lines do nothing.
func (s *Session) dispatch(ctx context.Context, line string) error {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(line))
	cmd, ok := s.commands[unicode.ToLower(r)]
	if !ok {
		return nil
	}
	return cmd(ctx)
}

func (s *Session) quit(context.Context) error {
	s.state = Exiting
	return nil
}

// selectJob shows the queue and asks for a valid index
func (s *Session) selectJob() (int, error) {
	if s.queue.IsEmpty() {
		s.notice = console.EmptyQueue
		return 0, console.ErrAborted
	}
	s.con.Println(console.RenderQueue(s.queue.Jobs()))
	return s.con.Select("Select entry from queue (q to cancel): ", s.queue.Len())
}

func (s *Session) remove(context.Context) error {
	i, err := s.selectJob()
	if err != nil {
		return err
	}
	if err := s.queue.RemoveAt(i); err != nil {
		return fmt.Errorf("remove entry: %w", err)
	}
	s.log.Info("removed entry %d", i)
	return nil
}

func (s *Session) changeQuality(context.Context) error {
	i, err := s.selectJob()
	if err != nil {
		return err
	}
	q, err := s.con.PromptUint("New CRF rating: ", 8)
	if err != nil {
		return err
	}
	if err := s.queue.SetQualityAt(i, uint8(q)); err != nil {
		return fmt.Errorf("change crf: %w", err)
	}
	s.log.Info("entry %d crf set to %d", i, q)
	return nil
}
