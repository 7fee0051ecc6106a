// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package scalar

import (
	"fmt"
	"math"
	"reflect"

	"github.com/bitmark-inc/splice/fault"
	"github.com/bitmark-inc/splice/hasher"
)

// Value - a concrete integer or text, or an opaque unsupported item
type Value struct {
	kind    Kind
	integer int64
	text    string
	raw     interface{}
}

// NewInteger - an integer value
func NewInteger(n int64) Value {
	return Value{kind: Integer, integer: n}
}

// NewText - a text value
func NewText(s string) Value {
	return Value{kind: Text, text: s}
}

// Of - convert a Go value to a scalar
//
// fails with fault.UnsupportedKindError for anything that is not an
// integer, string or byte slice
func Of(x interface{}) (Value, error) {
	switch v := x.(type) {
	case Value:
		if !v.kind.Synthesizable() {
			return Value{}, fault.UnsupportedKindError{Kind: v.RawKind()}
		}
		return v, nil
	case string:
		return NewText(v), nil
	case []byte:
		return NewText(string(v)), nil
	case int:
		return NewInteger(int64(v)), nil
	case int8:
		return NewInteger(int64(v)), nil
	case int16:
		return NewInteger(int64(v)), nil
	case int32:
		return NewInteger(int64(v)), nil
	case int64:
		return NewInteger(v), nil
	case uint8:
		return NewInteger(int64(v)), nil
	case uint16:
		return NewInteger(int64(v)), nil
	case uint32:
		return NewInteger(int64(v)), nil
	case uint:
		if uint64(v) > math.MaxInt64 {
			return Value{}, fault.ErrIntegerOutOfRange
		}
		return NewInteger(int64(v)), nil
	case uint64:
		if v > math.MaxInt64 {
			return Value{}, fault.ErrIntegerOutOfRange
		}
		return NewInteger(int64(v)), nil
	}
	return Value{}, fault.UnsupportedKindError{Kind: kindName(x)}
}

// Wrap - like Of but keeps unsupported items as Kind Unsupported
func Wrap(x interface{}) Value {
	v, err := Of(x)
	if nil != err {
		if s, ok := x.(Value); ok {
			return s
		}
		return Value{kind: Unsupported, raw: x}
	}
	return v
}

// Kind - the domain of the value
func (v Value) Kind() Kind {
	return v.kind
}

// RawKind - Go kind name of an unsupported value
func (v Value) RawKind() string {
	if Unsupported != v.kind {
		return v.kind.String()
	}
	return kindName(v.raw)
}

// Int - the integer content
func (v Value) Int() int64 {
	return v.integer
}

// Str - the text content
func (v Value) Str() string {
	return v.text
}

// Interface - the content as a plain Go value
func (v Value) Interface() interface{} {
	switch v.kind {
	case Integer:
		return v.integer
	case Text:
		return v.text
	default:
		return v.raw
	}
}

// Hash - canonical hash of the value
//
// only meaningful for synthesizable kinds, unsupported values hash
// to zero and can never be stored in a table
func (v Value) Hash() uint64 {
	switch v.kind {
	case Integer:
		return hasher.Integer(v.integer)
	case Text:
		return hasher.Text(v.text)
	default:
		return 0
	}
}

// Same - kind and content are equal
func (v Value) Same(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case Integer:
		return v.integer == other.integer
	case Text:
		return v.text == other.text
	default:
		return reflect.DeepEqual(v.raw, other.raw)
	}
}

// String - printable form
func (v Value) String() string {
	switch v.kind {
	case Integer:
		return fmt.Sprintf("%d", v.integer)
	case Text:
		return fmt.Sprintf("%q", v.text)
	default:
		return fmt.Sprintf("<%s %v>", v.RawKind(), v.raw)
	}
}

func kindName(x interface{}) string {
	if nil == x {
		return "nil"
	}
	t := reflect.TypeOf(x)
	if reflect.Struct == t.Kind() || reflect.Ptr == t.Kind() {
		return t.String()
	}
	return t.Kind().String()
}

// Scalar - a value is its own scalar, see Holder
func (v Value) Scalar() Value {
	return v
}

// Holder - anything that carries a scalar value
type Holder interface {
	Scalar() Value
}

// Equal - compare against a Value or any Holder, used as the table
// key equality
func (v Value) Equal(x interface{}) bool {
	h, ok := x.(Holder)
	if !ok {
		return false
	}
	return v.Same(h.Scalar())
}
