// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// EncodeQueue - FFmpeg 批量转码队列工具

// Package discover lists candidate input files.
package discover

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ZSC714725/encodequeue/internal/logger"
)

// Filter decides whether a path relative to the root is offered. NewFilter
// builds one from regular expressions.
type Filter interface {
	IsValid(path string) bool
}

// Dir lists regular files under Root recursively, in lexical order.
// Directories never yield an entry. Symlinks are offered when they point
// at a regular file; linked directories are not descended into.
type Dir struct {
	Root   string
	Filter Filter
	Logger logger.Logger
}

// List walks Root. Subdirectories that cannot be read are skipped and
// logged; an unreadable Root is an error.
func (d Dir) List() ([]string, error) {
	root := d.Root
	if root == "" {
		root = "."
	}
	log := d.Logger
	if log == nil {
		log = logger.Nop()
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			log.Warn("skipping %s: %v", path, err)
			if entry != nil && entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			return nil
		}
		if !isRegular(path, entry) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if d.Filter != nil && !d.Filter.IsValid(rel) {
			return nil
		}
		files = append(files, filepath.Join(root, rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", root, err)
	}
	return files, nil
}

func isRegular(path string, entry fs.DirEntry) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
