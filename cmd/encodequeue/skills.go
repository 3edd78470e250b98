// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// EncodeQueue - FFmpeg 批量转码队列工具

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ZSC714725/encodequeue/internal/console"
	"github.com/ZSC714725/encodequeue/internal/ffmpeg"
	"github.com/ZSC714725/encodequeue/internal/ffmpeg/skills"
)

func newSkillsCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "skills",
		Short: "List the encoders, hardware accelerations and containers FFmpeg provides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			ff, err := ffmpeg.New(ffmpeg.Config{Binary: cfg.FFmpeg.Path})
			if err != nil {
				return fmt.Errorf("FFmpeg init: %w", err)
			}
			s, err := ff.Skills()
			if err != nil {
				return err
			}
			printSkills(cmd.OutOrStdout(), ff.Binary(), s)
			return nil
		},
	}
}

func printSkills(w io.Writer, binary string, s skills.Skills) {
	fmt.Fprintf(w, "%s (ffmpeg %s)\n", binary, s.FFmpeg.Version)
	if len(s.HWAccels) > 0 {
		fmt.Fprintf(w, "Hardware acceleration: %s\n", strings.Join(s.HWAccels, ", "))
	}

	sections := []struct {
		title    string
		encoders []skills.Encoder
	}{
		{"Video encoders", s.Encoders.Video},
		{"Audio encoders", s.Encoders.Audio},
	}
	for _, sec := range sections {
		if len(sec.encoders) == 0 {
			continue
		}
		rows := make([][]string, 0, len(sec.encoders))
		for _, e := range sec.encoders {
			rows = append(rows, []string{e.Id, e.Name})
		}
		fmt.Fprintf(w, "\n%s\n%s\n", sec.title, console.RenderRows([]string{"ID", "Name"}, rows))
	}

	if len(s.Muxers) > 0 {
		rows := make([][]string, 0, len(s.Muxers))
		for _, m := range s.Muxers {
			rows = append(rows, []string{m.Id, m.Name})
		}
		fmt.Fprintf(w, "\nContainers\n%s\n", console.RenderRows([]string{"ID", "Name"}, rows))
	}
}
