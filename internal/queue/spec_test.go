// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// EncodeQueue - FFmpeg 批量转码队列工具

package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSpecDefaults(t *testing.T) {
	s := NewSpec("movies/clip.mp4", BuiltinDefaults(), Overrides{Quality: 30})

	assert.Equal(t, "movies/clip.mp4", s.Input)
	assert.Equal(t, "clip.webm", s.Output)
	assert.Equal(t, uint8(30), s.Quality)
	assert.Equal(t, "libaom-av1", s.VideoCodec)
	assert.Equal(t, "webm", s.Container)
	assert.Equal(t, []string{"-row-mt", "1", "-tiles", "4x4", "-cpu-used", "8"}, s.ExtraVideoArgs)
	assert.Equal(t, "libopus", s.AudioCodec)
	assert.Equal(t, uint(128), s.AudioBitrate)
}

func TestNewSpecZeroQualityIsApplied(t *testing.T) {
	s := NewSpec("clip.mp4", BuiltinDefaults(), Overrides{})
	assert.Equal(t, uint8(0), s.Quality)
}

func TestNewSpecNonDefaultCodecDropsPreset(t *testing.T) {
	s := NewSpec("clip.mp4", BuiltinDefaults(), Overrides{VideoCodec: "libx265"})

	assert.Equal(t, "libx265", s.VideoCodec)
	assert.NotNil(t, s.ExtraVideoArgs)
	assert.Empty(t, s.ExtraVideoArgs)
}

func TestNewSpecExplicitExtraArgsWin(t *testing.T) {
	extra := []string{"-preset", "slow"}
	s := NewSpec("clip.mp4", BuiltinDefaults(), Overrides{VideoCodec: "libx265", ExtraVideoArgs: extra})
	assert.Equal(t, []string{"-preset", "slow"}, s.ExtraVideoArgs)

	extra[0] = "-changed"
	assert.Equal(t, "-preset", s.ExtraVideoArgs[0])

	s = NewSpec("clip.mp4", BuiltinDefaults(), Overrides{ExtraVideoArgs: []string{"-cpu-used", "4"}})
	assert.Equal(t, []string{"-cpu-used", "4"}, s.ExtraVideoArgs)
}

func TestNewSpecDefaultCodecTypedExplicitlyKeepsPreset(t *testing.T) {
	s := NewSpec("clip.mp4", BuiltinDefaults(), Overrides{VideoCodec: " libaom-av1 "})
	assert.Equal(t, BuiltinDefaults().ExtraVideoArgs, s.ExtraVideoArgs)
}

func TestNewSpecDoesNotAliasDefaults(t *testing.T) {
	d := BuiltinDefaults()
	s := NewSpec("clip.mp4", d, Overrides{})
	s.ExtraVideoArgs[0] = "-changed"
	assert.Equal(t, "-row-mt", d.ExtraVideoArgs[0])
}

func TestNewSpecOverrides(t *testing.T) {
	s := NewSpec("clip.mp4", BuiltinDefaults(), Overrides{
		Quality:      40,
		Container:    "mkv",
		AudioCodec:   "aac",
		AudioBitrate: 192,
	})
	assert.Equal(t, "clip.mkv", s.Output)
	assert.Equal(t, "mkv", s.Container)
	assert.Equal(t, "aac", s.AudioCodec)
	assert.Equal(t, uint(192), s.AudioBitrate)
}

func TestNewSpecBlankOverridesKeepDefaults(t *testing.T) {
	s := NewSpec("clip.mp4", BuiltinDefaults(), Overrides{VideoCodec: "  ", Container: "\t", AudioCodec: " "})
	assert.Equal(t, "libaom-av1", s.VideoCodec)
	assert.Equal(t, "webm", s.Container)
	assert.Equal(t, "libopus", s.AudioCodec)
	assert.Equal(t, "clip.webm", s.Output)
}

func TestOutputPath(t *testing.T) {
	cases := []struct {
		input, container, want string
	}{
		{"clip.mp4", "webm", "clip.webm"},
		{"a/b/clip.mp4", "mkv", "clip.mkv"},
		{"archive.tar.gz", "webm", "archive.tar.webm"},
		{"noext", "webm", "noext.webm"},
		{"clip.mp4", ".mp4", "clip.mp4"},
		{"clip.mp4", "", "clip"},
		{".hidden", "webm", ".hidden.webm"},
		{"dir/.mp4", "webm", ".mp4.webm"},
		{".clip.mp4", "webm", ".clip.webm"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, OutputPath(tc.input, tc.container), tc.input)
	}
}
