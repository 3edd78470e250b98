// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// EncodeQueue - FFmpeg 批量转码队列工具

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/ZSC714725/encodequeue/internal/config"
	"github.com/ZSC714725/encodequeue/internal/console"
	"github.com/ZSC714725/encodequeue/internal/discover"
	"github.com/ZSC714725/encodequeue/internal/ffmpeg"
	"github.com/ZSC714725/encodequeue/internal/logger"
	"github.com/ZSC714725/encodequeue/internal/preflight"
	"github.com/ZSC714725/encodequeue/internal/session"
)

type options struct {
	configPath string
	ffmpegBin  string
	dir        string
	dryRun     bool
	logFile    string
	logLevel   string
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "encodequeue",
		Short:         "Interactive FFmpeg batch encode queue",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(cmd, opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to YAML config file")
	flags.StringVar(&opts.ffmpegBin, "ffmpeg", "", "FFmpeg binary path (overrides config)")
	flags.StringVar(&opts.logFile, "log-file", "", "Write logs to this file instead of stderr")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.Flags().StringVar(&opts.dir, "dir", "", "Directory to search for input files (overrides config)")
	rootCmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print FFmpeg commands instead of running them")

	rootCmd.AddCommand(newSkillsCommand(opts))
	return rootCmd
}

// loadConfig reads the config file, if any, and applies flag overrides
func loadConfig(opts *options) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		cfg, err = config.Load(opts.configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}

	if opts.ffmpegBin != "" {
		cfg.FFmpeg.Path = opts.ffmpegBin
	}
	if opts.dir != "" {
		cfg.Discovery.Root = opts.dir
	}
	if opts.logFile != "" {
		cfg.Log.File = opts.logFile
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openLogger returns the logger and a close function for its file
func openLogger(cfg *config.Config, stderr io.Writer) (logger.Logger, func(), error) {
	w := stderr
	closer := func() {}
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closer = func() { _ = f.Close() }
	}
	l, err := logger.NewWriter("encodequeue", w, cfg.Log.Level)
	if err != nil {
		closer()
		return nil, nil, err
	}
	return l, closer, nil
}

// encoderStdin returns the stdin handed to ffmpeg. The console reads
// piped input ahead of the current line, so ffmpeg only shares stdin when
// it is a terminal; otherwise it gets an empty stream.
func encoderStdin(in io.Reader) io.Reader {
	if console.IsTerminal(in) {
		return in
	}
	return strings.NewReader("")
}

func runSession(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	log, closeLog, err := openLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	filter, err := discover.NewFilter(cfg.Discovery.Allow, cfg.Discovery.Block)
	if err != nil {
		return fmt.Errorf("discovery filter: %w", err)
	}

	out := cmd.OutOrStdout()
	var encoder session.Encoder
	if opts.dryRun {
		encoder = ffmpeg.DryRun{Binary: cfg.FFmpeg.Path, Out: out}
	} else {
		ff, err := ffmpeg.New(ffmpeg.Config{
			Binary: cfg.FFmpeg.Path,
			Stdin:  encoderStdin(cmd.InOrStdin()),
			Stdout: out,
			Stderr: cmd.ErrOrStderr(),
			Logger: log,
		})
		if err != nil {
			return fmt.Errorf("FFmpeg init: %w", err)
		}
		if s, err := ff.Skills(); err != nil {
			log.Warn("probe %s: %v", ff.Binary(), err)
		} else {
			log.Info("using %s (ffmpeg %s)", ff.Binary(), s.FFmpeg.Version)
		}
		encoder = ff
	}

	s, err := session.New(session.Config{
		Console:  console.New(cmd.InOrStdin(), out),
		Defaults: cfg.JobDefaults(),
		Files: discover.Dir{
			Root:   cfg.Discovery.Root,
			Filter: filter,
			Logger: log,
		},
		Encoder:   encoder,
		Lock:      flock.New(cfg.Lock.Path),
		Disk:      preflight.Disk{MinFreeMB: cfg.Preflight.MinFreeMB},
		OutputDir: ".",
		Logger:    log,
	})
	if err != nil {
		return err
	}
	return s.Run(cmd.Context())
}
