package registry

import (
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/ava12/lrx/symbol"
)

// CallerOrigin returns "file.go:line" of the caller skip frames above the function calling CallerOrigin
// or empty string if it cannot be determined.
func CallerOrigin(skip int) string {
	_, file, line, ok := runtime.Caller(skip + 2)
	if !ok {
		return ""
	}
	return filepath.Base(file) + ":" + strconv.Itoa(line)
}

// Denormalize returns full type name of the symbol.
func (r *Registry) Denormalize(s symbol.Symbol) string {
	return r.symbols.Denormalize(s)
}

// ShortName returns type name as seen by the package defining it, e.g. "calc.Expr".
// Same-named types keep their "#n" suffix.
func (r *Registry) ShortName(s symbol.Symbol) string {
	full := r.symbols.Denormalize(s)
	t := r.symbols.Type(s)
	if t == nil {
		return full
	}

	return t.String() + strings.TrimPrefix(full, symbol.TypeName(t))
}

// DescribeProduction returns the place where production was declared.
func (r *Registry) DescribeProduction(id int) string {
	p := r.Production(id)
	if p == nil || p.Origin == "" {
		return "Unknown Rule " + strconv.Itoa(id)
	}
	return p.Origin
}

// DescribeToken returns the place where token was declared.
func (r *Registry) DescribeToken(id int) string {
	t := r.Token(id)
	if t == nil || t.Origin == "" {
		return "Unknown Token " + strconv.Itoa(id)
	}
	return t.Origin
}

// ProductionString returns production in readable form, e.g. "calc.Sum = calc.Sum calc.Plus calc.Term".
func (r *Registry) ProductionString(id int) string {
	p := r.Production(id)
	if p == nil {
		return "Unknown Rule " + strconv.Itoa(id)
	}

	sb := strings.Builder{}
	sb.WriteString(r.ShortName(p.Lhs))
	sb.WriteString(" =")
	for _, s := range p.Rhs {
		sb.WriteByte(' ')
		sb.WriteString(r.ShortName(s))
	}
	return sb.String()
}
