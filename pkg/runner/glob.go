package runner

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/gobwas/glob"
)

// globSet matches slash-separated relative paths against ignore patterns.
// A pattern matches either the whole path or its final element, so
// "*.draft.hrml" works at any depth and "drafts/**" prunes a directory.
type globSet []glob.Glob

func compileGlobs(patterns []string) (globSet, error) {
	set := make(globSet, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(filepath.ToSlash(pattern), '/')
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
		set = append(set, g)
	}
	return set, nil
}

func (s globSet) match(relPath string, isDir bool) bool {
	rel := filepath.ToSlash(relPath)
	base := path.Base(rel)

	for _, g := range s {
		if g.Match(rel) || g.Match(base) {
			return true
		}
		if isDir && g.Match(rel+"/") {
			return true
		}
	}
	return false
}
