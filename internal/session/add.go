// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// EncodeQueue - FFmpeg 批量转码队列工具

package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZSC714725/encodequeue/internal/console"
	"github.com/ZSC714725/encodequeue/internal/ffmpeg"
	"github.com/ZSC714725/encodequeue/internal/queue"
)

// add asks for an input file and the job settings, then queues the job.
// Blank answers keep the default; an audio bitrate of 0 keeps the default.
func (s *Session) add(context.Context) error {
	files, err := s.files.List()
	if err != nil {
		return fmt.Errorf("discover input files: %w", err)
	}
	if len(files) == 0 {
		s.notice = "No input files found..."
		return nil
	}

	s.con.Println(console.RenderList("File", files))
	i, err := s.con.Select("Select input file (q to cancel): ", len(files))
	if err != nil {
		return err
	}
	input := files[i]

	info, err := s.stat(input)
	if err != nil || info.IsDir() {
		s.notice = fmt.Sprintf("%s is no longer available...", input)
		s.log.Warn("selected input %s unavailable: %v", input, err)
		return nil
	}

	var o queue.Overrides
	crf, err := s.con.PromptUint("CRF rating: ", 8)
	if err != nil {
		return err
	}
	o.Quality = uint8(crf)

	if o.VideoCodec, err = s.con.Prompt(fmt.Sprintf("Video codec [%s]: ", s.defaults.VideoCodec)); err != nil {
		return err
	}
	if o.Container, err = s.con.Prompt(fmt.Sprintf("Container [%s]: ", s.defaults.Container)); err != nil {
		return err
	}
	extra, err := s.con.Prompt(fmt.Sprintf("Extra video args [%s]: ", s.presetHint(o.VideoCodec)))
	if err != nil {
		return err
	}
	o.ExtraVideoArgs = strings.Fields(extra)
	if o.AudioCodec, err = s.con.Prompt(fmt.Sprintf("Audio codec [%s]: ", s.defaults.AudioCodec)); err != nil {
		return err
	}
	bitrate, err := s.con.PromptUint(fmt.Sprintf("Audio bitrate kbit/s, 0 for %s: ", ffmpeg.FormatBitrate(s.defaults.AudioBitrate)), 16)
	if err != nil {
		return err
	}
	o.AudioBitrate = uint(bitrate)

	spec := queue.NewSpec(input, s.defaults, o)
	s.queue.Add(spec)
	s.log.Info("queued %s -> %s (crf %d, %s/%s)", spec.Input, spec.Output, spec.Quality, spec.VideoCodec, spec.AudioCodec)
	return nil
}

// presetHint shows what a blank extra args answer will produce
func (s *Session) presetHint(videoCodec string) string {
	videoCodec = strings.TrimSpace(videoCodec)
	if videoCodec != "" && videoCodec != s.defaults.VideoCodec {
		return "none"
	}
	if len(s.defaults.ExtraVideoArgs) == 0 {
		return "none"
	}
	return strings.Join(s.defaults.ExtraVideoArgs, " ")
}
