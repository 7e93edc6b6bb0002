package macros

import (
	"encoding/json"

	"github.com/arthur-debert/dynmacros/pkg/errors"
)

// Kind tags the type of a macro value
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindJSON
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindJSON:
		return "json"
	}
	return "null"
}

// Value is the result of one producer: null, a string, or structured data
// that is rendered as compact JSON.
type Value struct {
	kind Kind
	text string
	data interface{}
}

// Null is the absent value
func Null() Value {
	return Value{kind: KindNull}
}

// String wraps a string value
func String(s string) Value {
	return Value{kind: KindString, text: s}
}

// JSON wraps structured data; it fails if data cannot be encoded
func JSON(data interface{}) (Value, error) {
	encoded, err := json.Marshal(data)
	if err != nil {
		return Value{}, errors.Wrap(err, errors.ErrInternal, "macro value is not JSON-serializable")
	}
	return Value{kind: KindJSON, text: string(encoded), data: data}, nil
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Text is the substitution text: empty for null, the string itself, or the
// compact JSON encoding.
func (v Value) Text() string {
	return v.text
}

// Data returns the structured data of a JSON value
func (v Value) Data() interface{} {
	return v.data
}

// MarshalJSON encodes null as null, strings as JSON strings and structured
// values as themselves.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.text)
	case KindJSON:
		return []byte(v.text), nil
	}
	return []byte("null"), nil
}

// String renders the value for logs, the way it would appear in JSON
func (v Value) String() string {
	encoded, err := v.MarshalJSON()
	if err != nil {
		return v.text
	}
	return string(encoded)
}
