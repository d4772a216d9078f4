package plant

import (
	"slices"
	"strings"
)

// Kind distinguishes scalar, list and flag fields.
type Kind uint8

const (
	KindScalar Kind = iota + 1
	KindList
	KindFlag
)

// Value is a tagged union holding the value of one record field. Only the
// member selected by Kind is meaningful.
type Value struct {
	Kind  Kind
	Str   string
	Items []string
	Flag  Flag
}

// Scalar creates a scalar Value.
func Scalar(s string) Value {
	return Value{Kind: KindScalar, Str: s}
}

// List creates a list Value.
func List(items []string) Value {
	return Value{Kind: KindList, Items: items}
}

// FlagOf creates a tri-state Value.
func FlagOf(f Flag) Value {
	return Value{Kind: KindFlag, Flag: f}
}

// IsEmpty reports if the value is empty: a blank string, a list without
// non-blank elements, or an unknown flag.
func (v Value) IsEmpty() bool {
	switch v.Kind {
	case KindScalar:
		return strings.TrimSpace(v.Str) == ""
	case KindList:
		for _, s := range v.Items {
			if strings.TrimSpace(s) != "" {
				return false
			}
		}
		return true
	case KindFlag:
		return !v.Flag.IsKnown()
	default:
		return true
	}
}

// Equal compares two values of the same kind. Empty lists are equal
// regardless of being nil.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindScalar:
		return v.Str == o.Str
	case KindList:
		return slices.Equal(v.Items, o.Items)
	case KindFlag:
		return v.Flag == o.Flag
	default:
		return true
	}
}
