// Where: internal/domain/tfvars/value.go
// What: Typed field values produced by the block parser.
// Why: Keep per-value typing decisions explicit instead of passing `any` around.
package tfvars

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds. The zero Kind marks an
// absent value, so a missing record field never reads as a string.
type Kind int

const (
	KindInvalid Kind = iota
	KindString
	KindInt
	KindStringList
	KindIntList
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindStringList:
		return "list(string)"
	case KindIntList:
		return "list(int)"
	default:
		return "invalid"
	}
}

// Value is a parsed field value: a string, an integer, or a list of either.
type Value struct {
	kind Kind
	str  string
	num  int64
	strs []string
	nums []int64
}

// Record is one parsed `{ ... }` block keyed by field name.
type Record map[string]Value

// Document is the ordered list of records parsed from one list assignment.
type Document []Record

func StringValue(s string) Value { return Value{kind: KindString, str: s} }

func IntValue(n int64) Value { return Value{kind: KindInt, num: n} }

func StringListValue(items []string) Value {
	if items == nil {
		items = []string{}
	}
	return Value{kind: KindStringList, strs: items}
}

func IntListValue(items []int64) Value {
	if items == nil {
		items = []int64{}
	}
	return Value{kind: KindIntList, nums: items}
}

func (v Value) Kind() Kind { return v.kind }

// Str returns the string payload and whether the value is a string.
func (v Value) Str() (string, bool) {
	return v.str, v.kind == KindString
}

// Int returns the integer payload and whether the value is an integer.
func (v Value) Int() (int64, bool) {
	return v.num, v.kind == KindInt
}

// Strings returns a copy of the string list payload.
func (v Value) Strings() ([]string, bool) {
	if v.kind != KindStringList {
		return nil, false
	}
	return append([]string(nil), v.strs...), true
}

// Ints returns a copy of the integer list payload.
func (v Value) Ints() ([]int64, bool) {
	if v.kind != KindIntList {
		return nil, false
	}
	return append([]int64(nil), v.nums...), true
}

// Bool interprets bare `true`/`false` words, which the parser keeps as strings.
func (v Value) Bool() (bool, bool) {
	if v.kind != KindString {
		return false, false
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v.str))
	if err != nil {
		return false, false
	}
	return b, true
}

// Interface converts the value into plain Go types for JSON encoding.
func (v Value) Interface() any {
	switch v.kind {
	case KindInt:
		return v.num
	case KindStringList:
		return append([]string{}, v.strs...)
	case KindIntList:
		return append([]int64{}, v.nums...)
	case KindString:
		return v.str
	default:
		return nil
	}
}

// Equal reports whether two values hold the same variant and payload.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindInvalid:
		return true
	case KindString:
		return v.str == other.str
	case KindInt:
		return v.num == other.num
	case KindStringList:
		if len(v.strs) != len(other.strs) {
			return false
		}
		for i := range v.strs {
			if v.strs[i] != other.strs[i] {
				return false
			}
		}
		return true
	case KindIntList:
		if len(v.nums) != len(other.nums) {
			return false
		}
		for i := range v.nums {
			if v.nums[i] != other.nums[i] {
				return false
			}
		}
		return true
	}
	return false
}

func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindStringList:
		quoted := make([]string, len(v.strs))
		for i, s := range v.strs {
			quoted[i] = strconv.Quote(s)
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	case KindIntList:
		parts := make([]string, len(v.nums))
		for i, n := range v.nums {
			parts[i] = strconv.FormatInt(n, 10)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindString:
		return fmt.Sprintf("%q", v.str)
	default:
		return "<invalid>"
	}
}
