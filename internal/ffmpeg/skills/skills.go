// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// EncodeQueue - FFmpeg 批量转码队列工具

// Package skills detects what the installed FFmpeg binary can do: its
// version, encoders, hardware acceleration methods and muxers. The result is
// informational only; job settings are never checked against it.
package skills

import (
	"bufio"
	"bytes"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

// Encoder is one entry of `ffmpeg -encoders`
type Encoder struct {
	Id   string
	Kind string // video, audio or subtitle
	Name string
}

// Format is a muxer, i.e. a possible output container
type Format struct {
	Id   string
	Name string
}

// Library represents a linked av library
type Library struct {
	Name     string
	Compiled string
	Linked   string
}

// Info is the banner printed by `ffmpeg -version`
type Info struct {
	Version       string
	Compiler      string
	Configuration string
	Libraries     []Library
}

// Skills are the detected capabilities of FFmpeg
type Skills struct {
	FFmpeg   Info
	HWAccels []string
	Encoders struct {
		Video    []Encoder
		Audio    []Encoder
		Subtitle []Encoder
	}
	Muxers []Format
}

// Runner returns the standard output of binary invoked with args
type Runner func(binary string, args ...string) ([]byte, error)

func execRunner(binary string, args ...string) ([]byte, error) {
	return exec.Command(binary, args...).Output()
}

// New probes binary. Only a failing version query is an error; the
// other listings are best effort.
func New(binary string) (Skills, error) {
	return NewWithRunner(binary, execRunner)
}

// NewWithRunner is New with a custom command runner
func NewWithRunner(binary string, run Runner) (Skills, error) {
	s := Skills{}

	out, err := run(binary, "-version")
	if err != nil {
		return Skills{}, fmt.Errorf("can't parse ffmpeg version: %w", err)
	}
	s.FFmpeg = parseVersion(out)
	if s.FFmpeg.Version == "" {
		return Skills{}, fmt.Errorf("can't parse ffmpeg version")
	}

	if out, err := run(binary, "-hide_banner", "-encoders"); err == nil {
		for _, e := range parseEncoders(out) {
			switch e.Kind {
			case "video":
				s.Encoders.Video = append(s.Encoders.Video, e)
			case "audio":
				s.Encoders.Audio = append(s.Encoders.Audio, e)
			case "subtitle":
				s.Encoders.Subtitle = append(s.Encoders.Subtitle, e)
			}
		}
	}
	if out, err := run(binary, "-hide_banner", "-hwaccels"); err == nil {
		s.HWAccels = parseHWAccels(out)
	}
	if out, err := run(binary, "-hide_banner", "-muxers"); err == nil {
		s.Muxers = parseMuxers(out)
	}

	return s, nil
}

var (
	reVersion       = regexp.MustCompile(`^ffmpeg version n?([0-9]+\.[0-9]+(\.[0-9]+)?)`)
	reCompiler      = regexp.MustCompile(`(?m)^\s*built with (.*)$`)
	reConfiguration = regexp.MustCompile(`(?m)^\s*configuration: (.*)$`)
	reLibrary       = regexp.MustCompile(`(?m)^\s*(lib(?:[a-z]+))\s+([0-9]+\.\s*[0-9]+\.\s*[0-9]+) /\s+([0-9]+\.\s*[0-9]+\.\s*[0-9]+)`)
	reEncoder       = regexp.MustCompile(`^\s([VAS])[F.][S.][X.][B.][D.] ([0-9A-Za-z_-]+)\s+(.*)$`)
	reMuxer         = regexp.MustCompile(`^\s[D ]?E[d ]?\s+([0-9A-Za-z_,]+)\s+(.*?)$`)
	reHWAccel       = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
)

func parseVersion(data []byte) Info {
	f := Info{}

	if m := reVersion.FindSubmatch(data); m != nil {
		f.Version = string(m[1])
		if len(m[2]) == 0 {
			f.Version += ".0"
		}
	}
	if m := reCompiler.FindSubmatch(data); m != nil {
		f.Compiler = string(m[1])
	}
	if m := reConfiguration.FindSubmatch(data); m != nil {
		f.Configuration = string(m[1])
	}
	for _, m := range reLibrary.FindAllSubmatch(data, -1) {
		f.Libraries = append(f.Libraries, Library{
			Name:     string(m[1]),
			Compiled: string(m[2]),
			Linked:   string(m[3]),
		})
	}
	return f
}

// parseEncoders reads the table printed by `ffmpeg -encoders`. The legend
// above the " ------" separator is skipped.
func parseEncoders(data []byte) []Encoder {
	var encoders []Encoder
	started := false
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "------") {
			started = true
			continue
		}
		if !started {
			continue
		}
		m := reEncoder.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		e := Encoder{Id: m[2], Name: strings.TrimSpace(m[3])}
		switch m[1] {
		case "V":
			e.Kind = "video"
		case "A":
			e.Kind = "audio"
		case "S":
			e.Kind = "subtitle"
		}
		encoders = append(encoders, e)
	}
	return encoders
}

func parseMuxers(data []byte) []Format {
	var muxers []Format
	started := false
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			started = true
			continue
		}
		if !started {
			continue
		}
		m := reMuxer.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		id := strings.Split(m[1], ",")[0]
		muxers = append(muxers, Format{Id: id, Name: m[2]})
	}
	return muxers
}

func parseHWAccels(data []byte) []string {
	var accels []string
	start := false
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "Hardware acceleration methods:" {
			start = true
			continue
		}
		if !start || !reHWAccel.MatchString(line) {
			continue
		}
		accels = append(accels, line)
	}
	return accels
}
