// Package lexer defines lexical analyzer built from grammar terms.
package lexer

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/ava12/lrx"
	"github.com/ava12/lrx/grammar"
	"github.com/ava12/lrx/source"
)

// Error codes used by lexer:
const (
	// WrongCharError indicates that lexer cannot fetch any token at current position.
	// Error message contains the rune at current source position.
	WrongCharError = lrx.LexicalErrors + iota

	// WrongPatternError indicates that term or aside regular expression cannot be compiled.
	WrongPatternError
)

type termRec struct {
	re       *regexp.Regexp
	typeName string
}

// Lexer fetches the longest lexeme matching some term or aside pattern.
// If several terms match lexemes of the same length the first one wins, terms win over asides.
// Matches of zero length are ignored.
// Lexer is immutable and safe for concurrent use.
type Lexer struct {
	terms  []termRec
	asides []*regexp.Regexp
}

func compile(pattern string) (*regexp.Regexp, error) {
	re, e := regexp.Compile("^(?:" + pattern + ")")
	if e != nil {
		return nil, lrx.FormatError(WrongPatternError, "incorrect RegExp %q (%s)", pattern, e.Error())
	}
	re.Longest()
	return re, nil
}

// New creates Lexer for grammar terms and asides. Token types are term indexes.
func New(g *grammar.Grammar) (*Lexer, error) {
	result := &Lexer{
		terms:  make([]termRec, len(g.Terms)),
		asides: make([]*regexp.Regexp, len(g.Asides)),
	}

	for i, t := range g.Terms {
		re, e := compile(t.Re)
		if e != nil {
			return nil, e
		}
		result.terms[i] = termRec{re, g.SymbolName(t.Symbol)}
	}

	for i, a := range g.Asides {
		re, e := compile(a)
		if e != nil {
			return nil, e
		}
		result.asides[i] = re
	}

	return result, nil
}

func wrongCharError(s *source.Source, pos int) *lrx.Error {
	r, _ := utf8.DecodeRune(s.Content()[pos:])
	msg := fmt.Sprintf("wrong char \"%c\" (u+%x)", r, r)
	p := source.NewPos(s, pos)
	return lrx.NewError(WrongCharError, msg, s.Name(), p.Line(), p.Col())
}

// Scanner is a lexer state for single source.
type Scanner struct {
	lexer *Lexer
	src   *source.Source
	pos   int
}

// Scan creates Scanner positioned at the start of src.
func (l *Lexer) Scan(src *source.Source) *Scanner {
	return &Scanner{lexer: l, src: src}
}

// Next fetches token starting at current source position and advances current position.
// Returns nil token and lrx.Error and does not change position if there is a lexical error.
// Returns EoI token if current position is beyond the end of source.
func (s *Scanner) Next() (*Token, error) {
	content := s.src.Content()
	for {
		if s.pos >= len(content) {
			return NewToken(EoiTokenType, EoiTokenName, "", source.NewPos(s.src, s.pos)), nil
		}

		rest := content[s.pos:]
		tokenType, size := -1, 0
		for i, t := range s.lexer.terms {
			match := t.re.FindIndex(rest)
			if match != nil && match[1] > size {
				tokenType, size = i, match[1]
			}
		}

		asideSize := 0
		for _, re := range s.lexer.asides {
			match := re.FindIndex(rest)
			if match != nil && match[1] > asideSize {
				asideSize = match[1]
			}
		}

		if asideSize > size {
			s.pos += asideSize
			continue
		}

		if size == 0 {
			return nil, wrongCharError(s.src, s.pos)
		}

		pos := source.NewPos(s.src, s.pos)
		s.pos += size
		return NewToken(tokenType, s.lexer.terms[tokenType].typeName, string(rest[:size]), pos), nil
	}
}
