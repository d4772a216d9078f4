package normalize

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gnlib"
	"github.com/herbolive/herbdb/pkg/plant"
)

// ScalarString coerces a raw value to a trimmed string with valid UTF-8.
// Lists are joined with ", ".
func ScalarString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return clean(t)
	case []byte:
		return clean(string(t))
	case int:
		return strconv.Itoa(t)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case []string, []any, map[string]any:
		return strings.Join(ParseList(t), ", ")
	case fmt.Stringer:
		return clean(t.String())
	default:
		return clean(fmt.Sprint(t))
	}
}

func clean(s string) string {
	return strings.TrimSpace(gnlib.FixUtf8(s))
}

// ParseList coerces a raw value to an ordered list of trimmed, non-empty
// strings.
//
// Strings that look like "[...]" are decoded as JSON arrays, first as is and
// then with single quotes replaced by double quotes. When both fail the
// brackets are stripped and the rest is split on commas. Other strings are
// split on commas, then on semicolons, and are otherwise wrapped into a
// single element list.
func ParseList(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case []string:
		return compact(t)
	case []any:
		items := make([]string, 0, len(t))
		for _, e := range t {
			items = append(items, ScalarString(e))
		}
		return compact(items)
	case map[string]any:
		items := make([]string, 0, len(t))
		for _, k := range slices.Sorted(maps.Keys(t)) {
			items = append(items, ScalarString(t[k]))
		}
		return compact(items)
	case string:
		return parseListString(t)
	case []byte:
		return parseListString(string(t))
	default:
		return compact([]string{ScalarString(t)})
	}
}

func parseListString(s string) []string {
	s = clean(s)
	if s == "" {
		return nil
	}

	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		if items, ok := decodeList(s); ok {
			return items
		}
		if items, ok := decodeList(strings.ReplaceAll(s, "'", `"`)); ok {
			return items
		}
		inner := s[1 : len(s)-1]
		parts := strings.Split(inner, ",")
		for i := range parts {
			parts[i] = strings.Trim(strings.TrimSpace(parts[i]), `"'`)
		}
		return compact(parts)
	}

	switch {
	case strings.Contains(s, ","):
		return compact(strings.Split(s, ","))
	case strings.Contains(s, ";"):
		return compact(strings.Split(s, ";"))
	default:
		return []string{s}
	}
}

func decodeList(s string) ([]string, bool) {
	var raw []any
	enc := gnfmt.GNjson{}
	if err := enc.Decode([]byte(s), &raw); err != nil {
		return nil, false
	}
	items := make([]string, 0, len(raw))
	for _, e := range raw {
		items = append(items, ScalarString(e))
	}
	return compact(items), true
}

func compact(items []string) []string {
	var res []string
	for _, v := range items {
		v = clean(v)
		if v != "" {
			res = append(res, v)
		}
	}
	return res
}

// ParseFlag coerces a raw value to a tri-state flag. Only 1, "1", "true"
// and 0, "0", "false" (and native booleans) are known values.
func ParseFlag(v any) plant.Flag {
	switch t := v.(type) {
	case bool:
		return plant.NewFlag(t)
	case int:
		return intFlag(int64(t))
	case int32:
		return intFlag(int64(t))
	case int64:
		return intFlag(t)
	case float64:
		if t == 1 || t == 0 {
			return intFlag(int64(t))
		}
	case string, []byte:
		switch strings.ToLower(ScalarString(t)) {
		case "1", "true":
			return plant.FlagTrue
		case "0", "false":
			return plant.FlagFalse
		}
	}
	return plant.FlagUnknown
}

func intFlag(i int64) plant.Flag {
	switch i {
	case 1:
		return plant.FlagTrue
	case 0:
		return plant.FlagFalse
	default:
		return plant.FlagUnknown
	}
}
