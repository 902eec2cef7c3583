// Package value implements BareScript's dynamic value system: the tagged
// union every expression evaluates to, its ordering, and its canonical
// string/JSON forms.
package value

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Kind identifies the dynamic type of a Value. There are exactly nine,
// matching the "nine canonical tags" of the language's type system.
type Kind uint8

const (
	KindNull Kind = iota
	KindBoolean
	KindNumber
	KindDatetime
	KindString
	KindArray
	KindObject
	KindRegex
	KindFunction
)

// String returns the canonical type name used by TypeOf and error messages.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindDatetime:
		return "datetime"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindRegex:
		return "regex"
	case KindFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Value is a BareScript runtime value. The zero Value is Null.
//
// Only one of the fields below is meaningful for a given Kind:
//   - KindBoolean  -> b
//   - KindNumber   -> n
//   - KindDatetime -> t
//   - KindString   -> s
//   - KindArray    -> arr
//   - KindObject   -> obj
//   - KindRegex    -> rx
//   - KindFunction -> fn
//
// Value is intentionally a small struct rather than an interface{} wrapper:
// arrays and objects carry pointer semantics (so in-place mutation is
// observable through every alias), everything else is a plain value.
type Value struct {
	kind Kind
	b    bool
	n    float64
	t    time.Time
	s    string
	arr  *Array
	obj  *Object
	rx   *Regex
	fn   *Func
}

// Null is the singleton null value.
var Null = Value{kind: KindNull}

// NewBool wraps a boolean.
func NewBool(b bool) Value { return Value{kind: KindBoolean, b: b} }

// NewNumber wraps a float64.
func NewNumber(n float64) Value { return Value{kind: KindNumber, n: n} }

// NewDatetime wraps an instant. Only millisecond precision is significant.
func NewDatetime(t time.Time) Value {
	return Value{kind: KindDatetime, t: t.Round(time.Millisecond)}
}

// NewString wraps a string.
func NewString(s string) Value { return Value{kind: KindString, s: s} }

// NewArray wraps an *Array. A nil Array is treated as empty.
func NewArray(a *Array) Value { return Value{kind: KindArray, arr: a} }

// NewObject wraps an *Object. A nil Object is treated as empty.
func NewObject(o *Object) Value { return Value{kind: KindObject, obj: o} }

// NewRegex wraps a *Regex.
func NewRegex(r *Regex) Value { return Value{kind: KindRegex, rx: r} }

// NewFunc wraps a *Func.
func NewFunc(f *Func) Value { return Value{kind: KindFunction, fn: f} }

// Kind reports the dynamic type tag.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean payload; only meaningful when Kind()==KindBoolean.
func (v Value) Bool() bool { return v.b }

// Number returns the float64 payload; only meaningful when Kind()==KindNumber.
func (v Value) Number() float64 { return v.n }

// Datetime returns the time payload; only meaningful when Kind()==KindDatetime.
func (v Value) Datetime() time.Time { return v.t }

// Str returns the string payload; only meaningful when Kind()==KindString.
func (v Value) Str() string { return v.s }

// Array returns the array payload, or nil if v is not an array.
func (v Value) Array() *Array {
	if v.kind != KindArray {
		return nil
	}
	return v.arr
}

// Object returns the object payload, or nil if v is not an object.
func (v Value) Object() *Object {
	if v.kind != KindObject {
		return nil
	}
	return v.obj
}

// Regex returns the regex payload, or nil if v is not a regex.
func (v Value) Regex() *Regex {
	if v.kind != KindRegex {
		return nil
	}
	return v.rx
}

// Func returns the function payload, or nil if v is not a function.
func (v Value) Func() *Func {
	if v.kind != KindFunction {
		return nil
	}
	return v.fn
}

// TypeOf returns the canonical type tag string (§4.1 type_of).
func TypeOf(v Value) string { return v.kind.String() }

// Truthy implements the language's boolean coercion rules (§4.1 truthy).
func Truthy(v Value) bool {
	switch v.kind {
	case KindNull:
		return false
	case KindBoolean:
		return v.b
	case KindNumber:
		return v.n != 0
	case KindString:
		return v.s != ""
	case KindArray:
		return v.arr.Len() > 0
	case KindDatetime, KindObject, KindRegex, KindFunction:
		return true
	default:
		return false
	}
}

// StringOf returns the canonical string form of v (§4.1 string_of).
func StringOf(v Value) string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBoolean:
		if v.b {
			return "true"
		}
		return "false"
	case KindNumber:
		return formatNumber(v.n)
	case KindDatetime:
		return formatDatetime(v.t)
	case KindString:
		return v.s
	case KindArray, KindObject:
		return JSONOf(v, "")
	case KindRegex:
		return "<regex>"
	case KindFunction:
		return "<function>"
	default:
		return ""
	}
}

// formatNumber renders the shortest round-trip decimal form of n, matching
// the host's IEEE-754 double semantics (§9 open question (a)): Infinity and
// NaN are surfaced using their familiar spellings rather than Go's defaults.
func formatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	}
	if n == math.Trunc(n) && math.Abs(n) < 1e21 {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

// formatDatetime renders ISO-8601 with a local-wallclock offset, milliseconds
// included only when non-zero, per §3.1/§4.1.
func formatDatetime(t time.Time) string {
	t = t.Local()
	base := t.Format("2006-01-02T15:04:05")
	if ms := t.Nanosecond() / int(time.Millisecond); ms != 0 {
		base += fmt.Sprintf(".%03d", ms)
	}
	_, offset := t.Zone()
	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}
	return fmt.Sprintf("%s%s%02d:%02d", base, sign, offset/3600, (offset%3600)/60)
}

// Compare implements the language's total order (§4.1 compare). It is
// reflexive, antisymmetric, transitive, and total across every Kind.
func Compare(a, b Value) int {
	if a.kind == KindNull && b.kind == KindNull {
		return 0
	}
	if a.kind == KindNull {
		return -1
	}
	if b.kind == KindNull {
		return 1
	}
	if a.kind == b.kind {
		switch a.kind {
		case KindBoolean:
			return compareBool(a.b, b.b)
		case KindNumber:
			return compareFloat(a.n, b.n)
		case KindDatetime:
			return compareTime(a.t, b.t)
		case KindString:
			// Normalize before comparing so visually identical strings built
			// from different Unicode decompositions (e.g. "é" as one code
			// point vs. "e"+combining-acute) order as equal rather than by
			// incidental byte layout.
			return strings.Compare(norm.NFC.String(a.s), norm.NFC.String(b.s))
		case KindArray:
			return compareArrays(a.arr, b.arr)
		default:
			// object/regex/function have no natural order beyond their tag name.
			return strings.Compare(a.kind.String(), b.kind.String())
		}
	}
	return strings.Compare(a.kind.String(), b.kind.String())
}

// Equal reports a == b under the == operator's total-order semantics.
func Equal(a, b Value) bool { return Compare(a, b) == 0 }

func compareBool(a, b bool) int {
	if a == b {
		return 0
	}
	if !a {
		return -1
	}
	return 1
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareTime(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}

func compareArrays(a, b *Array) int {
	al, bl := a.Len(), b.Len()
	n := al
	if bl < n {
		n = bl
	}
	for i := 0; i < n; i++ {
		if c := Compare(a.Get(i), b.Get(i)); c != 0 {
			return c
		}
	}
	return compareFloat(float64(al), float64(bl))
}

// ParseNumber parses a BareScript number literal: optional sign, digits,
// optional fraction, optional exponent. Garbage is rejected.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") || strings.HasPrefix(s, "-0x") {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseInteger parses s as a signed integer in the given radix (2..=36).
func ParseInteger(s string, radix int) (int64, bool) {
	if radix < 2 || radix > 36 {
		return 0, false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(s, radix, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

var dateOnlyRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParseDatetime accepts an ISO date (local midnight) or an ISO datetime with
// a `Z` or `±HH:MM` timezone suffix.
func ParseDatetime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if dateOnlyRE.MatchString(s) {
		t, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	for _, layout := range []string{
		"2006-01-02T15:04:05.999999999Z07:00",
		"2006-01-02T15:04:05Z07:00",
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04:05",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			if !strings.HasSuffix(layout, "Z07:00") {
				// No explicit offset in the source: the timestamp is local wallclock.
				t, _ = time.ParseInLocation(layout, s, time.Local)
			}
			return t, true
		}
	}
	return time.Time{}, false
}

// sortedKeys is a small helper shared by JSONOf; kept here to avoid pulling
// in a second sort import at every call site.
func sortedKeys(keys []string) []string {
	out := make([]string, len(keys))
	copy(out, keys)
	sort.Strings(out)
	return out
}
