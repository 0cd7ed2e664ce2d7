package registry

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/pattyshack/gt/testing/expect"
	"github.com/pattyshack/gt/testing/suite"

	"github.com/ava12/lrx"
	"github.com/ava12/lrx/grammar"
	"github.com/ava12/lrx/symbol"
	"github.com/ava12/lrx/value"
)

type (
	Num   int
	Name  string
	Plus  struct{}
	Sum   int
	Item  int
	Pair  struct{ A, B Num }
	Flag  bool
	Bytes []byte
)

type Hex int

func (h *Hex) UnmarshalText(text []byte) error {
	n, e := strconv.ParseInt(string(text), 16, 64)
	*h = Hex(n)
	return e
}

func parseNum(text string) (Num, error) {
	n, e := strconv.Atoi(text)
	return Num(n), e
}

type RegistrySuite struct{}

func TestRegistry(t *testing.T) {
	suite.RunTests(t, &RegistrySuite{})
}

func (RegistrySuite) TestRuleSignature(t *testing.T) {
	r := New()
	p, e := InspectRule(r.Symbols(), func(a Num, _ Plus, b Num) Sum { return Sum(a + b) })
	expect.Nil(t, e)

	num := r.Symbols().Of(reflect.TypeFor[Num]())
	plus := r.Symbols().Of(reflect.TypeFor[Plus]())
	sum := r.Symbols().Of(reflect.TypeFor[Sum]())
	expect.Equal(t, sum, p.Lhs)
	expect.Equal(t, []symbol.Symbol{num, plus, num}, p.Rhs)
	expect.Equal(t, 3, p.Arity())
	expect.Equal(t, reflect.TypeFor[Sum](), p.Result)

	v, e := p.Action([]value.Value{value.Of(num, Num(2)), value.Of(plus, Plus{}), value.Of(num, Num(3))})
	expect.Nil(t, e)
	expect.Equal(t, sum, v.Symbol())
	res, ok := value.As[Sum](v)
	expect.True(t, ok)
	expect.Equal(t, Sum(5), res)
}

func (RegistrySuite) TestRhsFollowsParameterOrder(t *testing.T) {
	r := New()
	first, e := InspectRule(r.Symbols(), func(_ Plus, n Num) Pair { return Pair{A: n} })
	expect.Nil(t, e)
	second, e := InspectRule(r.Symbols(), func(n Num, _ Plus) Pair { return Pair{B: n} })
	expect.Nil(t, e)

	expect.Equal(t, first.Lhs, second.Lhs)
	expect.Equal(t, first.Rhs[0], second.Rhs[1])
	expect.Equal(t, first.Rhs[1], second.Rhs[0])
	expect.NotEqual(t, first.Rhs[0], first.Rhs[1])
}

func (RegistrySuite) TestEmptyRule(t *testing.T) {
	r := New()
	p, e := InspectRule(r.Symbols(), func() Sum { return 0 })
	expect.Nil(t, e)
	expect.Equal(t, 0, p.Arity())
	v, e := p.Action(nil)
	expect.Nil(t, e)
	expect.Equal(t, "registry.Sum(0)", v.String())
}

func (RegistrySuite) TestRuleError(t *testing.T) {
	r := New()
	failure := errors.New("too big")
	p, e := InspectRule(r.Symbols(), func(n Num) (Item, error) {
		if n > 10 {
			return 0, failure
		}
		return Item(n), nil
	})
	expect.Nil(t, e)

	num := r.Symbols().Of(reflect.TypeFor[Num]())
	v, e := p.Action([]value.Value{value.Of(num, Num(5))})
	expect.Nil(t, e)
	res, _ := value.As[Item](v)
	expect.Equal(t, Item(5), res)

	_, e = p.Action([]value.Value{value.Of(num, Num(50))})
	expect.True(t, e == failure)
}

func (RegistrySuite) TestBadSignatures(t *testing.T) {
	samples := []struct {
		action any
		code   int
	}{
		{nil, NotFunctionError},
		{42, NotFunctionError},
		{(func(Num) Sum)(nil), NotFunctionError},
		{func(...Num) Sum { return 0 }, VariadicError},
		{func(Num) {}, ResultCountError},
		{func(Num) (Sum, Item, error) { return 0, 0, nil }, ResultCountError},
		{func(Num) error { return nil }, ResultCountError},
		{func(Num) (Sum, Item) { return 0, 0 }, SecondResultError},
	}

	for i, s := range samples {
		r := New()
		_, e := InspectRule(r.Symbols(), s.action)
		if lrx.ErrorCode(e) != s.code {
			t.Errorf("sample #%d: expecting code %d, got %v", i, s.code, e)
		}
		if r.Symbols().Len() != 0 {
			t.Errorf("sample #%d: symbols created for bad signature", i)
		}
	}
}

func (RegistrySuite) TestConversion(t *testing.T) {
	r := New()
	tok, e := InspectConversion(r.Symbols(), parseNum)
	expect.Nil(t, e)
	expect.Equal(t, CustomToken, tok.Kind)
	expect.Equal(t, r.Symbols().Of(reflect.TypeFor[Num]()), tok.Symbol)

	v, e := tok.Action("12")
	expect.Nil(t, e)
	n, _ := value.As[Num](v)
	expect.Equal(t, Num(12), n)

	_, e = tok.Action("x")
	expect.NotNil(t, e)

	_, e = InspectConversion(r.Symbols(), func(int) Num { return 0 })
	expect.Equal(t, ParamCountError, lrx.ErrorCode(e))
	_, e = InspectConversion(r.Symbols(), func(string, string) Num { return 0 })
	expect.Equal(t, ParamCountError, lrx.ErrorCode(e))

	tok, e = InspectConversion(r.Symbols(), func(n Name) Num { return Num(len(n)) })
	expect.Nil(t, e)
	v, _ = tok.Action("abc")
	n, _ = value.As[Num](v)
	expect.Equal(t, Num(3), n)
}

func (RegistrySuite) TestPayloadKinds(t *testing.T) {
	r := New()

	tok := InspectPayload(r.Symbols(), reflect.TypeFor[Name]())
	expect.Equal(t, ConvertToken, tok.Kind)
	v, _ := tok.Action("foo")
	name, _ := value.As[Name](v)
	expect.Equal(t, Name("foo"), name)

	tok = InspectPayload(r.Symbols(), reflect.TypeFor[Bytes]())
	expect.Equal(t, ConvertToken, tok.Kind)
	v, _ = tok.Action("ab")
	bytes, _ := value.As[Bytes](v)
	expect.Equal(t, Bytes("ab"), bytes)

	tok = InspectPayload(r.Symbols(), reflect.TypeFor[Hex]())
	expect.Equal(t, UnmarshalToken, tok.Kind)
	v, e := tok.Action("ff")
	expect.Nil(t, e)
	hex, _ := value.As[Hex](v)
	expect.Equal(t, Hex(255), hex)
	_, e = tok.Action("zz")
	expect.NotNil(t, e)

	tok = InspectPayload(r.Symbols(), reflect.TypeFor[*Hex]())
	expect.Equal(t, UnmarshalToken, tok.Kind)
	v, e = tok.Action("10")
	expect.Nil(t, e)
	hexPtr, _ := value.As[*Hex](v)
	expect.Equal(t, Hex(16), *hexPtr)

	tok = InspectPayload(r.Symbols(), reflect.TypeFor[Plus]())
	expect.Equal(t, MarkerToken, tok.Kind)
	v, e = tok.Action("+")
	expect.Nil(t, e)
	_, ok := value.As[Plus](v)
	expect.True(t, ok)

	tok = InspectPayload(r.Symbols(), reflect.TypeFor[Flag]())
	expect.Equal(t, MarkerToken, tok.Kind)
}

func (RegistrySuite) TestFrozen(t *testing.T) {
	r := New()
	tok := InspectPayload(r.Symbols(), reflect.TypeFor[Num]())
	tok.Pattern = "[0-9]+"
	id, e := r.AddToken(tok)
	expect.Nil(t, e)
	expect.Equal(t, 0, id)

	_, e = r.Grammar(symbol.None)
	expect.Equal(t, NotFrozenError, lrx.ErrorCode(e))

	r.Freeze()
	expect.True(t, r.IsFrozen())

	_, e = r.AddToken(tok)
	expect.Equal(t, FrozenError, lrx.ErrorCode(e))
	_, e = r.AddProduction(Production{})
	expect.Equal(t, FrozenError, lrx.ErrorCode(e))
	e = r.AddAside(" +")
	expect.Equal(t, FrozenError, lrx.ErrorCode(e))
	expect.Equal(t, 1, r.TokenCount())
	expect.Equal(t, 0, r.ProductionCount())
}

func (RegistrySuite) TestBadPattern(t *testing.T) {
	r := New()
	tok := InspectPayload(r.Symbols(), reflect.TypeFor[Num]())
	tok.Pattern = "[0-9"
	_, e := r.AddToken(tok)
	expect.Equal(t, BadPatternError, lrx.ErrorCode(e))
	expect.Equal(t, BadPatternError, lrx.ErrorCode(r.AddAside("(")))
	expect.Equal(t, 0, r.TokenCount())
}

func (RegistrySuite) TestGrammar(t *testing.T) {
	r := New()
	tok, _ := InspectConversion(r.Symbols(), parseNum)
	tok.Pattern = "[0-9]+"
	tok.Origin = "num"
	r.AddToken(tok)
	tok = InspectPayload(r.Symbols(), reflect.TypeFor[Plus]())
	tok.Pattern = `\+`
	r.AddToken(tok)
	r.AddAside(`\s+`)

	p, _ := InspectRule(r.Symbols(), func(s Sum, _ Plus, n Num) Sum { return s + Sum(n) })
	p.Origin = "sum.go:10"
	r.AddProduction(p)
	p, _ = InspectRule(r.Symbols(), func(n Num) Sum { return Sum(n) })
	r.AddProduction(p)
	r.Freeze()

	sum := r.Symbols().Of(reflect.TypeFor[Sum]())
	g, e := r.Grammar(sum)
	expect.Nil(t, e)
	expect.Equal(t, []string{"registry.Num", "registry.Plus", "registry.Sum"}, g.Symbols)
	expect.Equal(t, []grammar.Term{{Symbol: 0, Re: "[0-9]+", Origin: "num"}, {Symbol: 1, Re: `\+`}}, g.Terms)
	expect.Equal(t, []string{`\s+`}, g.Asides)
	expect.Equal(t, []grammar.Rule{{Lhs: 2, Rhs: []int{2, 1, 0}, Origin: "sum.go:10"}, {Lhs: 2, Rhs: []int{0}}}, g.Rules)
	expect.Equal(t, int(sum), g.Goal)

	g, _ = r.Grammar(symbol.None)
	expect.Equal(t, grammar.NoGoal, g.Goal)
}

func (RegistrySuite) TestDescribe(t *testing.T) {
	r := New()
	p, _ := InspectRule(r.Symbols(), func(s Sum, _ Plus, n Num) Sum { return s + Sum(n) })
	p.Origin = CallerOrigin(-1)
	r.AddProduction(p)
	p, _ = InspectRule(r.Symbols(), func(n Num) Sum { return Sum(n) })
	r.AddProduction(p)

	expect.True(t, strings.HasPrefix(r.DescribeProduction(0), "registry_test.go:"))
	expect.Equal(t, "Unknown Rule 1", r.DescribeProduction(1))
	expect.Equal(t, "Unknown Rule 7", r.DescribeProduction(7))
	expect.Equal(t, "Unknown Token 0", r.DescribeToken(0))
	expect.Equal(t, "registry.Sum = registry.Sum registry.Plus registry.Num", r.ProductionString(0))
	expect.Equal(t, "github.com/ava12/lrx/registry.Sum", r.Denormalize(p.Lhs))
	expect.Equal(t, "registry.Sum", r.ShortName(p.Lhs))
}

func localSum() any {
	type Sum float64
	return func(n Num) Sum { return Sum(n) }
}

func (RegistrySuite) TestSameNameTypes(t *testing.T) {
	r := New()
	outer, e := InspectRule(r.Symbols(), func(n Num) Sum { return Sum(n) })
	expect.Nil(t, e)
	inner, e := InspectRule(r.Symbols(), localSum())
	expect.Nil(t, e)

	expect.Equal(t, outer.Rhs[0], inner.Rhs[0])
	expect.NotEqual(t, outer.Lhs, inner.Lhs)
	expect.Equal(t, "registry.Sum", r.ShortName(outer.Lhs))
	expect.Equal(t, "registry.Sum#2", r.ShortName(inner.Lhs))
	expect.Equal(t, "github.com/ava12/lrx/registry.Sum#2", r.Denormalize(inner.Lhs))
}
