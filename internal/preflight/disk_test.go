// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// EncodeQueue - FFmpeg 批量转码队列工具

package preflight

import (
	"errors"
	"testing"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedUsage(free uint64) UsageFunc {
	return func(path string) (*disk.UsageStat, error) {
		return &disk.UsageStat{Path: path, Free: free}, nil
	}
}

func TestCheckLow(t *testing.T) {
	r, err := Disk{MinFreeMB: 100, Usage: fixedUsage(50 * mb)}.Check("/data")
	require.NoError(t, err)
	assert.True(t, r.Low())
	assert.Equal(t, "/data: 50 MB free, 100 MB wanted", r.String())
}

func TestCheckEnough(t *testing.T) {
	r, err := Disk{MinFreeMB: 100, Usage: fixedUsage(200 * mb)}.Check("/data")
	require.NoError(t, err)
	assert.False(t, r.Low())
}

func TestCheckDisabledThreshold(t *testing.T) {
	r, err := Disk{Usage: fixedUsage(0)}.Check("/data")
	require.NoError(t, err)
	assert.False(t, r.Low())
}

func TestCheckUsageError(t *testing.T) {
	_, err := Disk{Usage: func(string) (*disk.UsageStat, error) { return nil, errors.New("no fs") }}.Check("/x")
	assert.ErrorContains(t, err, "disk usage of /x")
}

func TestCheckRealFilesystem(t *testing.T) {
	r, err := Disk{MinFreeMB: 0}.Check(t.TempDir())
	require.NoError(t, err)
	assert.False(t, r.Low())
}
