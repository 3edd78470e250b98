// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// EncodeQueue - FFmpeg 批量转码队列工具

package console

import (
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/ZSC714725/encodequeue/internal/ffmpeg"
	"github.com/ZSC714725/encodequeue/internal/queue"
)

// EmptyQueue is shown instead of an empty table
const EmptyQueue = "Queue is empty..."

var queueHeader = table.Row{"#", "Input", "Output", "CRF", "Video", "Container", "Extra Args", "Audio", "Audio Bitrate"}

// RenderQueue draws one row per job. The first column is the index used by
// the remove and change commands.
func RenderQueue(jobs []queue.Spec) string {
	if len(jobs) == 0 {
		return EmptyQueue
	}

	tw := newTable()
	tw.AppendHeader(queueHeader)
	for i, j := range jobs {
		tw.AppendRow(table.Row{
			i,
			j.Input,
			j.Output,
			j.Quality,
			j.VideoCodec,
			j.Container,
			`"` + strings.Join(j.ExtraVideoArgs, " ") + `"`,
			j.AudioCodec,
			ffmpeg.FormatBitrate(j.AudioBitrate),
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 9, Align: text.AlignRight},
	})
	return tw.Render()
}

// RenderList draws an indexed list of strings, e.g. candidate files
func RenderList(header string, items []string) string {
	tw := newTable()
	tw.AppendHeader(table.Row{"#", header})
	for i, item := range items {
		tw.AppendRow(table.Row{strconv.Itoa(i), item})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{{Number: 1, Align: text.AlignRight}})
	return tw.Render()
}

// RenderRows draws a generic table
func RenderRows(headers []string, rows [][]string) string {
	tw := newTable()
	h := make(table.Row, len(headers))
	for i, v := range headers {
		h[i] = v
	}
	tw.AppendHeader(h)
	for _, row := range rows {
		r := make(table.Row, len(headers))
		for i := range headers {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}
	return tw.Render()
}

func newTable() table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	return tw
}
