// Package value defines type-erased values moved between parser stack and typed actions.
package value

import (
	"fmt"
	"reflect"

	"github.com/ava12/lrx/symbol"
)

// Value is a payload tagged with its grammar symbol and its static Go type.
// Zero Value is invalid.
type Value struct {
	symbol symbol.Symbol
	data   reflect.Value
}

// New creates Value. data must be valid, its type is the static type of the value.
func New(s symbol.Symbol, data reflect.Value) Value {
	if !data.IsValid() {
		panic("value.New: invalid data")
	}
	return Value{s, data}
}

// Of creates Value of static type T, even if T is an interface type.
func Of[T any](s symbol.Symbol, x T) Value {
	return Value{s, reflect.ValueOf(&x).Elem()}
}

func (v Value) IsValid() bool {
	return v.data.IsValid()
}

func (v Value) Symbol() symbol.Symbol {
	return v.symbol
}

// Type returns static type of the value or nil for invalid value.
func (v Value) Type() reflect.Type {
	if !v.data.IsValid() {
		return nil
	}
	return v.data.Type()
}

// Reflect returns the payload as reflect.Value of the static type.
func (v Value) Reflect() reflect.Value {
	return v.data
}

// Interface returns the payload or nil for invalid value.
func (v Value) Interface() any {
	if !v.data.IsValid() {
		return nil
	}
	return v.data.Interface()
}

func (v Value) String() string {
	if !v.data.IsValid() {
		return "<invalid>"
	}
	return fmt.Sprintf("%s(%v)", v.data.Type(), v.data.Interface())
}

// As returns the payload viewed as T. Returns false if the static type of the value is not assignable to T.
func As[T any](v Value) (T, bool) {
	var result T
	if !v.data.IsValid() {
		return result, false
	}

	target := reflect.ValueOf(&result).Elem()
	if !v.data.Type().AssignableTo(target.Type()) {
		return result, false
	}

	target.Set(v.data)
	return result, true
}
