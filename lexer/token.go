package lexer

import (
	"github.com/ava12/lrx/source"
)

const (
	// EoiTokenType is the type of the token returned at the end of input.
	EoiTokenType = -1
	EoiTokenName = "-end-of-input-"
)

// Token is a lexeme fetched by Scanner. Type is the index of grammar term that matched.
type Token struct {
	tokenType int
	typeName  string
	text      string
	pos       source.Pos
}

func NewToken(tokenType int, typeName, text string, pos source.Pos) *Token {
	return &Token{tokenType, typeName, text, pos}
}

func (t *Token) Type() int {
	return t.tokenType
}

func (t *Token) TypeName() string {
	return t.typeName
}

func (t *Token) Text() string {
	return t.text
}

func (t *Token) Pos() source.Pos {
	return t.pos
}

func (t *Token) SourceName() string {
	return t.pos.SourceName()
}

func (t *Token) Line() int {
	return t.pos.Line()
}

func (t *Token) Col() int {
	return t.pos.Col()
}
