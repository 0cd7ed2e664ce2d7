// Package source defines source text with line and column lookup.
package source

import (
	"sort"
	"unicode/utf8"
)

// Source is a named piece of text. Source is immutable and safe for concurrent use.
type Source struct {
	name       string
	content    []byte
	lineStarts []int
}

// New creates Source. content must not be modified afterwards.
func New(name string, content []byte) *Source {
	starts := []int{0}
	for i, c := range content {
		if c == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Source{name: name, content: content, lineStarts: starts}
}

// NewString creates Source from string.
func NewString(name, content string) *Source {
	return New(name, []byte(content))
}

func (s *Source) Name() string {
	return s.name
}

func (s *Source) Content() []byte {
	return s.content
}

func (s *Source) Len() int {
	return len(s.content)
}

// LineCol returns 1-based line and column (in runes) for byte position pos.
// Positions outside of content are clamped.
func (s *Source) LineCol(pos int) (line, col int) {
	if pos < 0 {
		pos = 0
	} else if pos > len(s.content) {
		pos = len(s.content)
	}

	index := sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > pos
	}) - 1
	start := s.lineStarts[index]
	return index + 1, utf8.RuneCount(s.content[start:pos]) + 1
}

// Pos is a position in Source, implements lrx.SourcePos.
type Pos struct {
	src            *Source
	pos, line, col int
}

func NewPos(s *Source, pos int) Pos {
	line, col := s.LineCol(pos)
	return Pos{s, pos, line, col}
}

func (p Pos) Source() *Source {
	return p.src
}

func (p Pos) SourceName() string {
	if p.src == nil {
		return ""
	}
	return p.src.name
}

func (p Pos) Pos() int {
	return p.pos
}

func (p Pos) Line() int {
	return p.line
}

func (p Pos) Col() int {
	return p.col
}
