package registry

import (
	"encoding"
	"reflect"

	"github.com/ava12/lrx/symbol"
	"github.com/ava12/lrx/value"
)

var (
	errorType           = reflect.TypeFor[error]()
	stringType          = reflect.TypeFor[string]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// TokenKind tells how token action turns matched text into a value.
type TokenKind int

const (
	// CustomToken calls user conversion function.
	CustomToken TokenKind = iota
	// ConvertToken converts text to a string-based payload type (string, []byte, []rune or types based on them).
	ConvertToken
	// UnmarshalToken calls UnmarshalText of the payload type.
	UnmarshalToken
	// MarkerToken ignores text and always returns zero value of the payload type.
	MarkerToken
)

func (k TokenKind) String() string {
	switch k {
	case CustomToken:
		return "custom"
	case ConvertToken:
		return "convert"
	case UnmarshalToken:
		return "unmarshal"
	case MarkerToken:
		return "marker"
	default:
		return "?"
	}
}

// checkResults checks that function returns T or (T, error) where T is not error.
func checkResults(ft reflect.Type) (hasError bool, e error) {
	switch ft.NumOut() {
	case 1:
		if ft.Out(0) == errorType {
			return false, resultCountError(ft)
		}
		return false, nil
	case 2:
		if ft.Out(1) != errorType {
			return false, secondResultError(ft)
		}
		if ft.Out(0) == errorType {
			return false, resultCountError(ft)
		}
		return true, nil
	default:
		return false, resultCountError(ft)
	}
}

func funcValue(fn any) (reflect.Value, bool, error) {
	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func || fv.IsNil() {
		return fv, false, notFunctionError(fn)
	}

	ft := fv.Type()
	if ft.IsVariadic() {
		return fv, false, variadicError(ft)
	}

	hasError, e := checkResults(ft)
	return fv, hasError, e
}

func callResult(lhs symbol.Symbol, out []reflect.Value, hasError bool) (value.Value, error) {
	if hasError && !out[1].IsNil() {
		return value.Value{}, out[1].Interface().(error)
	}
	return value.New(lhs, out[0]), nil
}

// InspectRule derives production from action signature: for func(P1, ..., Pn) R or func(P1, ..., Pn) (R, error)
// the left-hand side is the symbol of R and the right-hand side contains symbols of P1 ... Pn in declaration order.
// Symbols are created only if the signature is valid.
func InspectRule(symbols *symbol.Table, action any) (Production, error) {
	fv, hasError, e := funcValue(action)
	if e != nil {
		return Production{}, e
	}

	ft := fv.Type()
	result := ft.Out(0)
	lhs := symbols.Of(result)
	params := make([]reflect.Type, ft.NumIn())
	rhs := make([]symbol.Symbol, ft.NumIn())
	for i := range params {
		params[i] = ft.In(i)
		rhs[i] = symbols.Of(params[i])
	}

	call := func(args []value.Value) (value.Value, error) {
		in := make([]reflect.Value, len(args))
		for i, arg := range args {
			in[i] = arg.Reflect()
		}
		return callResult(lhs, fv.Call(in), hasError)
	}

	return Production{
		Lhs:    lhs,
		Rhs:    rhs,
		Result: result,
		Params: params,
		Action: call,
	}, nil
}

// InspectConversion derives token from conversion function func(string) T or func(string) (T, error).
// Parameter may be of any type based on string.
func InspectConversion(symbols *symbol.Table, conversion any) (Token, error) {
	fv, hasError, e := funcValue(conversion)
	if e != nil {
		return Token{}, e
	}

	ft := fv.Type()
	if ft.NumIn() != 1 || ft.In(0).Kind() != reflect.String {
		return Token{}, paramCountError(ft)
	}

	param := ft.In(0)
	result := ft.Out(0)
	sym := symbols.Of(result)
	call := func(text string) (value.Value, error) {
		in := []reflect.Value{reflect.ValueOf(text).Convert(param)}
		return callResult(sym, fv.Call(in), hasError)
	}

	return Token{Symbol: sym, Type: result, Kind: CustomToken, Action: call}, nil
}

// InspectPayload derives token from payload type. The way text is turned into a value is chosen here once:
// types implementing encoding.TextUnmarshaler (directly or via pointer) unmarshal text,
// types convertible from string get the text converted, any other type is a marker
// and every token gets the same zero value.
func InspectPayload(symbols *symbol.Table, payload reflect.Type) Token {
	sym := symbols.Of(payload)
	result := Token{Symbol: sym, Type: payload}

	switch {
	case payload.Kind() == reflect.Pointer && payload.Implements(textUnmarshalerType):
		elem := payload.Elem()
		result.Kind = UnmarshalToken
		result.Action = func(text string) (value.Value, error) {
			p := reflect.New(elem)
			e := p.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(text))
			if e != nil {
				return value.Value{}, e
			}
			return value.New(sym, p), nil
		}

	case reflect.PointerTo(payload).Implements(textUnmarshalerType):
		result.Kind = UnmarshalToken
		result.Action = func(text string) (value.Value, error) {
			p := reflect.New(payload)
			e := p.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(text))
			if e != nil {
				return value.Value{}, e
			}
			return value.New(sym, p.Elem()), nil
		}

	case stringType.ConvertibleTo(payload):
		result.Kind = ConvertToken
		result.Action = func(text string) (value.Value, error) {
			return value.New(sym, reflect.ValueOf(text).Convert(payload)), nil
		}

	default:
		result.Kind = MarkerToken
		marker := value.New(sym, reflect.Zero(payload))
		result.Action = func(string) (value.Value, error) {
			return marker, nil
		}
	}

	return result
}
