// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// EncodeQueue - FFmpeg 批量转码队列工具

package discover

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterEmptyAllowsEverything(t *testing.T) {
	f, err := NewFilter(nil, []string{"", "  "})
	require.NoError(t, err)
	assert.True(t, f.IsValid("clip.mp4"))
	assert.True(t, f.IsValid("notes.txt"))
}

func TestFilterAllowAndBlock(t *testing.T) {
	f, err := NewFilter([]string{`\.(mp4|mkv)$`}, []string{`^tmp/`})
	require.NoError(t, err)

	assert.True(t, f.IsValid("movies/clip.mp4"))
	assert.True(t, f.IsValid("show.mkv"))
	assert.False(t, f.IsValid("notes.txt"))
	assert.False(t, f.IsValid("tmp/clip.mp4"))
}

func TestFilterMatchesNormalizedRelativePath(t *testing.T) {
	f, err := NewFilter(nil, []string{`^tmp/`})
	require.NoError(t, err)

	assert.False(t, f.IsValid("./tmp/clip.mp4"))
	assert.False(t, f.IsValid("movies/../tmp/clip.mp4"))
	assert.False(t, f.IsValid(filepath.Join("tmp", "clip.mp4")))
	assert.True(t, f.IsValid("./movies/tmp.mp4"))
}

func TestFilterInvalidExpression(t *testing.T) {
	_, err := NewFilter([]string{"("}, nil)
	assert.ErrorContains(t, err, "invalid allow expression")

	_, err = NewFilter(nil, []string{"[a"})
	assert.ErrorContains(t, err, "invalid block expression")
}

func TestListUsesPatternFilter(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "keep.mp4"))
	touch(t, filepath.Join(root, "tmp", "skip.mp4"))
	touch(t, filepath.Join(root, "notes.txt"))

	f, err := NewFilter([]string{`\.mp4$`}, []string{`^tmp/`})
	require.NoError(t, err)

	files, err := Dir{Root: root, Filter: f}.List()
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "keep.mp4")}, files)
}
