// Package normalize converts raw records of any shape (CSV rows, database
// rows, external API payloads) into canonical plant records.
//
// Raw keys are resolved through the alias table of the plant package.
// Comparison ignores case, spaces, underscores and hyphens, so
// "HabitatRange", "habitat_range" and "Habitat Range" all resolve to
// habitat_range. Values are coerced once into the tagged plant.Value union
// according to the kind of the field.
package normalize

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/herbolive/herbdb/pkg/plant"
)

var aliasKeys = func() map[plant.Field][]string {
	res := make(map[plant.Field][]string, len(plant.Fields))
	for _, spec := range plant.Fields {
		keys := make([]string, 0, len(spec.Aliases))
		for _, a := range spec.Aliases {
			k := CanonicalKey(a)
			if !slices.Contains(keys, k) {
				keys = append(keys, k)
			}
		}
		res[spec.Name] = keys
	}
	return res
}()

// Normalize converts a raw record into a fully shaped canonical record.
// Fields missing from raw stay empty, flags stay unknown.
func Normalize(raw map[string]any) plant.Record {
	idx := newIndex(raw)

	var res plant.Record
	if v, ok := idx.lookup([]string{"id"}); ok {
		res.ID = parseID(v)
	}

	for _, spec := range plant.Fields {
		v, ok := idx.lookup(aliasKeys[spec.Name])
		if !ok {
			continue
		}
		switch spec.Kind {
		case plant.KindScalar:
			res.Set(spec.Name, plant.Scalar(ScalarString(v)))
		case plant.KindList:
			res.Set(spec.Name, plant.List(ParseList(v)))
		case plant.KindFlag:
			res.Set(spec.Name, plant.FlagOf(ParseFlag(v)))
		}
	}

	if res.ScientificName == "" {
		res.ScientificName = strings.TrimSpace(res.Genus + " " + res.Species)
	}
	res.SyncImages()

	if v, ok := idx.lookup([]string{"source"}); ok {
		res.Source = plant.ParseSource(ScalarString(v))
	}
	return res
}

// CanonicalKey lower-cases a raw key and removes spaces, underscores and
// hyphens from it.
func CanonicalKey(k string) string {
	var sb strings.Builder
	sb.Grow(len(k))
	for _, r := range strings.ToLower(k) {
		switch r {
		case ' ', '_', '-', '\t', '\uFEFF':
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// index groups raw values by canonical key. Values of keys that collapse
// to the same canonical key keep the sorted order of the raw keys.
type index map[string][]any

func newIndex(raw map[string]any) index {
	res := make(index, len(raw))
	for _, k := range slices.Sorted(maps.Keys(raw)) {
		ck := CanonicalKey(k)
		res[ck] = append(res[ck], raw[k])
	}
	return res
}

// lookup returns the first non-blank value found for the canonical keys.
func (idx index) lookup(keys []string) (any, bool) {
	for _, k := range keys {
		for _, v := range idx[k] {
			if !isBlank(v) {
				return v, true
			}
		}
	}
	return nil, false
}

func isBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []byte:
		return strings.TrimSpace(string(t)) == ""
	case []string:
		return len(t) == 0
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}

func parseID(v any) int64 {
	var res int64
	switch t := v.(type) {
	case int:
		res = int64(t)
	case int32:
		res = int64(t)
	case int64:
		res = t
	case float64:
		if t == float64(int64(t)) {
			res = int64(t)
		}
	case string, []byte:
		s := ScalarString(t)
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			res = i
		}
	}
	if res < 0 {
		return 0
	}
	return res
}
