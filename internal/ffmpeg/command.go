// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// EncodeQueue - FFmpeg 批量转码队列工具

package ffmpeg

import (
	"strconv"
	"strings"

	"github.com/ZSC714725/encodequeue/internal/queue"
)

// 固定参数：硬件加速自动检测、恒定质量模式、像素格式
const (
	hwaccelFlag  = "-hwaccel"
	hwaccelAuto  = "auto"
	inputFlag    = "-i"
	videoCodec   = "-c:v"
	crfFlag      = "-crf"
	videoBitrate = "-b:v"
	constQuality = "0"
	pixFmtFlag   = "-pix_fmt"
	pixFmt       = "yuv420p"
	audioCodec   = "-c:a"
	audioBitrate = "-b:a"
)

// Translate builds the ffmpeg argument list for one job.
//
// The order is fixed: input, video codec, rate control, extra video args,
// audio codec, audio bitrate, output. Extra args are appended verbatim.
func Translate(s queue.Spec) []string {
	args := make([]string, 0, 17+len(s.ExtraVideoArgs))
	args = append(args,
		hwaccelFlag, hwaccelAuto,
		inputFlag, s.Input,
		videoCodec, s.VideoCodec,
		crfFlag, strconv.FormatUint(uint64(s.Quality), 10),
		videoBitrate, constQuality,
		pixFmtFlag, pixFmt,
	)
	args = append(args, s.ExtraVideoArgs...)
	args = append(args,
		audioCodec, s.AudioCodec,
		audioBitrate, FormatBitrate(s.AudioBitrate),
		s.Output,
	)
	return args
}

// FormatBitrate renders a kbit/s value the way ffmpeg expects it, e.g. "128K"
func FormatBitrate(kbps uint) string {
	return strconv.FormatUint(uint64(kbps), 10) + "K"
}

// FormatCommand renders binary and args as a single shell-like line.
// Arguments containing whitespace or quotes are quoted.
func FormatCommand(binary string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, quoteArg(binary))
	for _, a := range args {
		parts = append(parts, quoteArg(a))
	}
	return strings.Join(parts, " ")
}

func quoteArg(a string) string {
	if a == "" || strings.ContainsAny(a, " \t\n\"'") {
		return strconv.Quote(a)
	}
	return a
}
