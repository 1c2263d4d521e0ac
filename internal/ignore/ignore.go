// Package ignore compiles glob-style exclusion patterns into a path matcher
// used to filter candidate source files.
package ignore

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/Gijsreyn/bicep-local-docgen/internal/logger"
)

var log = logger.ForComponent("ignore")

// DefaultIgnoreFile is the ignore file looked up in the base directory when
// no explicit path is given.
const DefaultIgnoreFile = ".docgenignore"

// DefaultPatterns are always compiled into a matcher. User patterns are
// appended, never replacing these.
var DefaultPatterns = []string{
	".git",
	".hg",
	".svn",
	".vs",
	"bin",
	"obj",
	"vendor",
	"node_modules",
}

type pattern struct {
	raw  string
	glob string
	// bare patterns carry no separator and match the filename at any depth
	bare bool
}

func (p pattern) matches(slashPath string) bool {
	if p.bare {
		ok, _ := doublestar.Match(p.glob, path.Base(slashPath))
		return ok
	}
	if ok, _ := doublestar.Match(p.glob, slashPath); ok {
		return true
	}
	// A path pattern also matches anywhere after a separator, so relative
	// and absolute representations of the same logical path agree.
	ok, _ := doublestar.Match("**/"+strings.TrimPrefix(p.glob, "/"), slashPath)
	return ok
}

// Matcher answers IsIgnored for candidate paths.
type Matcher struct {
	patterns []pattern
}

// NewMatcher compiles the default patterns plus the patterns read from an
// ignore file. An explicitly supplied path that does not exist is an error;
// an absent default ignore file leaves the pattern list at defaults.
func NewMatcher(baseDir, explicitPath string) (*Matcher, error) {
	m := &Matcher{}
	for _, raw := range DefaultPatterns {
		m.add(raw)
	}

	ignorePath := explicitPath
	if ignorePath == "" {
		ignorePath = filepath.Join(baseDir, DefaultIgnoreFile)
	}

	data, err := os.ReadFile(ignorePath) // #nosec G304
	if err != nil {
		if os.IsNotExist(err) && explicitPath == "" {
			return m, nil
		}
		return nil, fmt.Errorf("read ignore file %s: %w", ignorePath, err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		m.add(line)
	}
	return m, nil
}

// NewMatcherFromPatterns compiles the defaults plus the given raw patterns.
func NewMatcherFromPatterns(patterns []string) *Matcher {
	m := &Matcher{}
	for _, raw := range append(append([]string(nil), DefaultPatterns...), patterns...) {
		m.add(raw)
	}
	return m
}

func (m *Matcher) add(raw string) {
	glob := filepath.ToSlash(raw)
	p := pattern{
		raw:  raw,
		glob: glob,
		bare: !strings.ContainsAny(raw, `/\`),
	}
	if !doublestar.ValidatePattern(p.glob) {
		log.Warn("skipping invalid ignore pattern", "pattern", raw)
		return
	}
	m.patterns = append(m.patterns, p)
}

// IsIgnored reports whether the path matches any compiled pattern. It is
// called for files and for directories during discovery.
func (m *Matcher) IsIgnored(p string) bool {
	slash := filepath.ToSlash(p)
	for _, pat := range m.patterns {
		if pat.matches(slash) {
			return true
		}
	}
	return false
}
