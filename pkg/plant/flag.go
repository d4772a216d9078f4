package plant

import (
	"bytes"
	"fmt"
)

// Flag is a tri-state boolean. The zero value is FlagUnknown, so a missing
// value is never mistaken for a known false.
type Flag int8

const (
	FlagUnknown Flag = iota
	FlagFalse
	FlagTrue
)

// NewFlag converts a bool to a known Flag.
func NewFlag(b bool) Flag {
	if b {
		return FlagTrue
	}
	return FlagFalse
}

func (f Flag) String() string {
	switch f {
	case FlagTrue:
		return "true"
	case FlagFalse:
		return "false"
	default:
		return "unknown"
	}
}

// IsKnown is true for FlagTrue and FlagFalse.
func (f Flag) IsKnown() bool {
	return f == FlagTrue || f == FlagFalse
}

// Value returns true, false or nil.
func (f Flag) Value() any {
	switch f {
	case FlagTrue:
		return true
	case FlagFalse:
		return false
	default:
		return nil
	}
}

// SQLValue returns 1, 0 or nil for storage.
func (f Flag) SQLValue() any {
	switch f {
	case FlagTrue:
		return int64(1)
	case FlagFalse:
		return int64(0)
	default:
		return nil
	}
}

// MarshalJSON encodes the flag as true, false or null.
func (f Flag) MarshalJSON() ([]byte, error) {
	switch f {
	case FlagTrue:
		return []byte("true"), nil
	case FlagFalse:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes true, false and null.
func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "true", "1", `"true"`, `"1"`:
		*f = FlagTrue
	case "false", "0", `"false"`, `"0"`:
		*f = FlagFalse
	case "null", `""`:
		*f = FlagUnknown
	default:
		return fmt.Errorf("cannot decode %s as a tri-state flag", data)
	}
	return nil
}

// MarshalYAML encodes the flag as true, false or null.
func (f Flag) MarshalYAML() (any, error) {
	return f.Value(), nil
}
