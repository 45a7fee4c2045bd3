package patch

import (
	"bytes"
	"encoding/json"
)

// State distinguishes a key missing from a request body, an explicit JSON
// null, and a supplied value.
type State uint8

const (
	Absent State = iota
	Null
	Value
)

func (s State) String() string {
	switch s {
	case Null:
		return "null"
	case Value:
		return "value"
	default:
		return "absent"
	}
}

// Field is a tri-state request field. The zero value is Absent, which is
// what encoding/json leaves behind when the key is not in the body.
type Field[T any] struct {
	State State
	Val   T
}

func Set[T any](v T) Field[T] {
	return Field[T]{State: Value, Val: v}
}

func SetNull[T any]() Field[T] {
	return Field[T]{State: Null}
}

func (f Field[T]) Present() bool { return f.State != Absent }

func (f Field[T]) IsNull() bool { return f.State == Null }

// Get returns the value and whether one was supplied.
func (f Field[T]) Get() (T, bool) {
	return f.Val, f.State == Value
}

func (f *Field[T]) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		var zero T
		f.State, f.Val = Null, zero
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	f.State, f.Val = Value, v
	return nil
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if f.State != Value {
		return []byte("null"), nil
	}
	return json.Marshal(f.Val)
}

// Map converts a supplied value, keeping Absent and Null as they are.
func Map[A, B any](f Field[A], fn func(A) B) Field[B] {
	if f.State != Value {
		return Field[B]{State: f.State}
	}
	return Set(fn(f.Val))
}
