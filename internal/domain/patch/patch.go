// Package patch turns sparse update requests into column assignments.
//
// Each request field is described by an Entry that already knows whether it
// writes a value, writes NULL, or is skipped. Compile walks the entries in
// order and appends the bookkeeping columns every write carries.
package patch

import "sort"

const (
	UpdatedAtColumn   = "updated_at"
	PublishedAtColumn = "published_at"
)

type op uint8

const (
	skip op = iota
	writeNull
	writeValue
)

type Entry struct {
	Column    string
	op        op
	value     any
	publishes bool
}

// Written reports whether the entry produces an assignment.
func (e Entry) Written() bool { return e.op != skip }

// NonEmpty writes the field only when it carries a non-zero value. Null and
// empty values leave the column untouched.
func NonEmpty[T comparable](column string, f Field[T]) Entry {
	var zero T
	if f.State == Value && f.Val != zero {
		return Entry{Column: column, op: writeValue, value: f.Val}
	}
	return Entry{Column: column}
}

// Clearable writes whatever was sent, including null and empty values.
func Clearable[T any](column string, f Field[T]) Entry {
	switch f.State {
	case Null:
		return Entry{Column: column, op: writeNull}
	case Value:
		return Entry{Column: column, op: writeValue, value: f.Val}
	}
	return Entry{Column: column}
}

// Provided writes any supplied value, zero included, and ignores null.
func Provided[T any](column string, f Field[T]) Entry {
	if f.State == Value {
		return Entry{Column: column, op: writeValue, value: f.Val}
	}
	return Entry{Column: column}
}

// Status behaves like NonEmpty and, when the new value equals published,
// also stamps the publish timestamp. It does so on every such write, even if
// the row is already published.
func Status[T comparable](column string, f Field[T], published T) Entry {
	e := NonEmpty(column, f)
	if e.op == writeValue && f.Val == published {
		e.publishes = true
	}
	return e
}

type Patch []Entry

func New(entries ...Entry) Patch {
	return Patch(entries)
}

// Assignments maps column names to new values; a nil value writes NULL.
type Assignments map[string]any

// Compile resolves the patch against the write time. updated_at is always
// assigned, so a patch with no written fields still produces a write.
func (p Patch) Compile(now int64) Assignments {
	out := make(Assignments, len(p)+2)
	for _, e := range p {
		switch e.op {
		case writeNull:
			out[e.Column] = nil
		case writeValue:
			out[e.Column] = e.value
			if e.publishes {
				out[PublishedAtColumn] = now
			}
		}
	}
	out[UpdatedAtColumn] = now
	return out
}

// Fields lists the request columns that will be written, in request order.
func (p Patch) Fields() []string {
	var cols []string
	for _, e := range p {
		if e.Written() {
			cols = append(cols, e.Column)
		}
	}
	return cols
}

func (a Assignments) Columns() []string {
	cols := make([]string, 0, len(a))
	for c := range a {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}
