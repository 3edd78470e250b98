// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// EncodeQueue - FFmpeg 批量转码队列工具

// Package preflight checks the machine before a batch encode starts.
package preflight

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/disk"
)

const mb = 1024 * 1024

// DiskReport describes free space in the output directory
type DiskReport struct {
	Path     string
	Free     uint64
	Required uint64
}

// Low reports whether free space is below the required minimum
func (r DiskReport) Low() bool {
	return r.Required > 0 && r.Free < r.Required
}

func (r DiskReport) String() string {
	return fmt.Sprintf("%s: %d MB free, %d MB wanted", r.Path, r.Free/mb, r.Required/mb)
}

// UsageFunc returns usage statistics for the filesystem holding path
type UsageFunc func(path string) (*disk.UsageStat, error)

// Disk checks free space with gopsutil
type Disk struct {
	MinFreeMB uint64
	Usage     UsageFunc
}

// Check reports free space at dir. A zero MinFreeMB disables the
// threshold but still reports.
func (d Disk) Check(dir string) (DiskReport, error) {
	usage := d.Usage
	if usage == nil {
		usage = disk.Usage
	}
	stat, err := usage(dir)
	if err != nil {
		return DiskReport{}, fmt.Errorf("disk usage of %s: %w", dir, err)
	}
	return DiskReport{
		Path:     dir,
		Free:     stat.Free,
		Required: d.MinFreeMB * mb,
	}, nil
}
