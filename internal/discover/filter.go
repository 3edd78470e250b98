// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// EncodeQueue - FFmpeg 批量转码队列工具

package discover

import (
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

type patternFilter struct {
	allow []*regexp.Regexp
	block []*regexp.Regexp
}

// NewFilter compiles allow and block expressions into a Filter. Blank
// expressions are ignored.
//
// Expressions match the path relative to the discovery root, slash
// separated and without a leading "./", so `^tmp/` blocks the tmp
// directory on every platform. A path passes if it matches no block
// expression and either there are no allow expressions or it matches one.
func NewFilter(allow, block []string) (Filter, error) {
	f := &patternFilter{}

	var err error
	if f.allow, err = compileAll("allow", allow); err != nil {
		return nil, err
	}
	if f.block, err = compileAll("block", block); err != nil {
		return nil, err
	}
	return f, nil
}

func compileAll(kind string, exps []string) ([]*regexp.Regexp, error) {
	var out []*regexp.Regexp
	for _, exp := range exps {
		exp = strings.TrimSpace(exp)
		if exp == "" {
			continue
		}
		re, err := regexp.Compile(exp)
		if err != nil {
			return nil, fmt.Errorf("invalid %s expression '%s': %w", kind, exp, err)
		}
		out = append(out, re)
	}
	return out, nil
}

// normalize turns rel into the form expressions are written against
func normalize(rel string) string {
	p := path.Clean(filepath.ToSlash(rel))
	return strings.TrimPrefix(p, "./")
}

func (f *patternFilter) IsValid(rel string) bool {
	rel = normalize(rel)
	for _, e := range f.block {
		if e.MatchString(rel) {
			return false
		}
	}
	if len(f.allow) == 0 {
		return true
	}
	for _, e := range f.allow {
		if e.MatchString(rel) {
			return true
		}
	}
	return false
}
