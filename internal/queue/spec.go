// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// EncodeQueue - FFmpeg 批量转码队列工具

package queue

import (
	"path/filepath"
	"strings"
)

// Spec is one requested encode
type Spec struct {
	Input          string
	Output         string
	Quality        uint8
	VideoCodec     string
	Container      string
	ExtraVideoArgs []string
	AudioCodec     string
	AudioBitrate   uint
}

// Defaults are the values a Spec falls back to when an override is blank
type Defaults struct {
	VideoCodec     string
	Container      string
	ExtraVideoArgs []string
	AudioCodec     string
	AudioBitrate   uint
}

// BuiltinDefaults returns the stock AV1/Opus preset
func BuiltinDefaults() Defaults {
	return Defaults{
		VideoCodec:     "libaom-av1",
		Container:      "webm",
		ExtraVideoArgs: []string{"-row-mt", "1", "-tiles", "4x4", "-cpu-used", "8"},
		AudioCodec:     "libopus",
		AudioBitrate:   128,
	}
}

// Overrides are the user's answers for a new job. Empty strings, a nil
// ExtraVideoArgs and a zero AudioBitrate mean "keep the default".
// Quality is always applied.
type Overrides struct {
	Quality        uint8
	VideoCodec     string
	Container      string
	ExtraVideoArgs []string
	AudioCodec     string
	AudioBitrate   uint
}

// NewSpec builds a job for input.
//
// The default extra args are a preset for the default codec only: picking
// another codec without supplying extra args leaves ExtraVideoArgs empty.
// Output is derived here once and is not touched by later edits.
func NewSpec(input string, d Defaults, o Overrides) Spec {
	s := Spec{
		Input:        input,
		Quality:      o.Quality,
		VideoCodec:   d.VideoCodec,
		Container:    d.Container,
		AudioCodec:   d.AudioCodec,
		AudioBitrate: d.AudioBitrate,
	}

	if v := strings.TrimSpace(o.VideoCodec); v != "" {
		s.VideoCodec = v
	}
	if v := strings.TrimSpace(o.Container); v != "" {
		s.Container = v
	}

	switch {
	case len(o.ExtraVideoArgs) > 0:
		s.ExtraVideoArgs = append([]string{}, o.ExtraVideoArgs...)
	case s.VideoCodec == d.VideoCodec:
		s.ExtraVideoArgs = append([]string{}, d.ExtraVideoArgs...)
	default:
		s.ExtraVideoArgs = []string{}
	}

	if v := strings.TrimSpace(o.AudioCodec); v != "" {
		s.AudioCodec = v
	}
	if o.AudioBitrate != 0 {
		s.AudioBitrate = o.AudioBitrate
	}

	s.Output = OutputPath(input, s.Container)
	return s
}

// OutputPath returns the base filename of input with its extension
// replaced by container. The result has no directory component.
func OutputPath(input, container string) string {
	base := filepath.Base(input)
	// A leading dot is part of the name, not an extension separator.
	if ext := filepath.Ext(base); ext != base {
		base = strings.TrimSuffix(base, ext)
	}
	container = strings.TrimPrefix(container, ".")
	if container == "" {
		return base
	}
	return base + "." + container
}

func (s Spec) clone() Spec {
	if s.ExtraVideoArgs != nil {
		s.ExtraVideoArgs = append(make([]string, 0, len(s.ExtraVideoArgs)), s.ExtraVideoArgs...)
	}
	return s
}
