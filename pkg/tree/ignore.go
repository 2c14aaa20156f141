package tree

import (
	"bufio"
	"bytes"
	"errors"
	"io/fs"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/afero"
)

// IgnoreFile names the per-repository pattern file read by the builder.
const IgnoreFile = ".ditignore"

// Ignore decides which paths a directory walk skips. Patterns follow the
// familiar ignore-file syntax: "#" comments, "!" negation, a trailing "/"
// for directories only, "*", "?" and "**" wildcards. A pattern without a
// slash matches the base name; one with a slash, leading or inner, matches
// the whole repository-relative path. The last matching pattern wins.
type Ignore struct {
	patterns []ignorePattern
}

type ignorePattern struct {
	pattern  string
	negated  bool
	dirOnly  bool
	hasSlash bool
	regex    *regexp.Regexp
}

// LoadIgnore reads root/.ditignore from fsys. A missing file yields an
// Ignore that matches nothing.
func LoadIgnore(fsys afero.Fs, root string) (*Ignore, error) {
	data, err := afero.ReadFile(fsys, filepath.Join(root, IgnoreFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Ignore{}, nil
		}
		return nil, err
	}
	return ParseIgnore(data), nil
}

// ParseIgnore builds an Ignore from the contents of an ignore file.
func ParseIgnore(data []byte) *Ignore {
	ig := &Ignore{}
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		if p, ok := parseIgnoreLine(sc.Text()); ok {
			ig.patterns = append(ig.patterns, p)
		}
	}
	return ig
}

func parseIgnoreLine(line string) (ignorePattern, bool) {
	line = strings.TrimRight(line, " \t\r")
	if line == "" || strings.HasPrefix(line, "#") {
		return ignorePattern{}, false
	}

	var p ignorePattern
	if strings.HasPrefix(line, "!") {
		p.negated = true
		line = line[1:]
	}
	if strings.HasSuffix(line, "/") {
		p.dirOnly = true
		line = strings.TrimRight(line, "/")
	}
	anchored := strings.HasPrefix(line, "/")
	line = strings.TrimPrefix(line, "/")
	if line == "" {
		return ignorePattern{}, false
	}
	p.hasSlash = anchored || strings.Contains(line, "/")
	p.pattern = line
	if strings.Contains(line, "**") {
		if re, err := regexp.Compile(globToRegex(line)); err == nil {
			p.regex = re
		}
	}
	return p, true
}

// Match reports whether the slash-separated relative path rel is ignored.
// isDir tells whether rel names a directory.
func (ig *Ignore) Match(rel string, isDir bool) bool {
	if ig == nil {
		return false
	}
	ignored := false
	for _, p := range ig.patterns {
		if p.matches(rel, isDir) {
			ignored = !p.negated
		}
	}
	return ignored
}

// Len reports the number of patterns.
func (ig *Ignore) Len() int {
	if ig == nil {
		return 0
	}
	return len(ig.patterns)
}

func (p ignorePattern) matches(rel string, isDir bool) bool {
	if p.dirOnly && !isDir {
		return false
	}
	if p.hasSlash {
		return p.match(rel)
	}
	return p.match(path.Base(rel))
}

func (p ignorePattern) match(target string) bool {
	if p.regex != nil {
		return p.regex.MatchString(target)
	}
	ok, _ := path.Match(p.pattern, target)
	return ok
}

func globToRegex(pattern string) string {
	var b strings.Builder
	b.WriteString("^")
	for i := 0; i < len(pattern); i++ {
		ch := pattern[i]
		switch {
		case ch == '*' && i+1 < len(pattern) && pattern[i+1] == '*':
			if i+2 < len(pattern) && pattern[i+2] == '/' {
				// "**/" matches zero or more leading directories.
				b.WriteString("(?:.*/)?")
				i += 2
			} else {
				b.WriteString(".*")
				i++
			}
		case ch == '*':
			b.WriteString("[^/]*")
		case ch == '?':
			b.WriteString("[^/]")
		default:
			if strings.ContainsRune(`.+()|[]{}^$\`, rune(ch)) {
				b.WriteByte('\\')
			}
			b.WriteByte(ch)
		}
	}
	b.WriteString("$")
	return b.String()
}
