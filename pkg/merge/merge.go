// Package merge fills gaps of canonical plant records from other records.
// A populated field of the base record is never replaced. Lists grow by
// union with the base list as prefix.
package merge

import (
	"slices"

	"github.com/herbolive/herbdb/pkg/plant"
)

// Result is the outcome of a merge.
type Result struct {
	// Merged is a new record, the base record is not modified.
	Merged plant.Record

	// Changed contains fields of Merged that differ from the base record.
	Changed plant.FieldSet
}

// Merge adopts values of the candidate for empty fields of the base.
// Lists that are populated in both records are united.
func Merge(base, cand plant.Record) Result {
	merged := base.Clone()

	for _, spec := range plant.Fields {
		cv := cand.Get(spec.Name)
		if cv.IsEmpty() {
			continue
		}
		bv := merged.Get(spec.Name)

		switch {
		case bv.IsEmpty() && spec.Kind == plant.KindList:
			merged.Set(spec.Name, plant.List(slices.Clone(cv.Items)))
		case bv.IsEmpty():
			merged.Set(spec.Name, cv)
		case spec.Kind == plant.KindList:
			merged.Set(spec.Name, plant.List(union(bv.Items, cv.Items)))
		}
	}
	merged.SyncImages()

	changed := Diff(base, merged)
	if len(changed) > 0 && cand.Source != plant.SourceUnknown {
		merged.Source = cand.Source
	}
	return Result{Merged: merged, Changed: changed}
}

// Diff returns fields with different values in two records.
func Diff(a, b plant.Record) plant.FieldSet {
	res := plant.NewFieldSet()
	for _, spec := range plant.Fields {
		if !a.Get(spec.Name).Equal(b.Get(spec.Name)) {
			res.Add(spec.Name)
		}
	}
	return res
}

// union keeps the base order and appends candidate elements missing from
// it.
func union(base, cand []string) []string {
	res := slices.Clone(base)
	seen := make(map[string]struct{}, len(base)+len(cand))
	for _, v := range base {
		seen[v] = struct{}{}
	}
	for _, v := range cand {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		res = append(res, v)
	}
	return res
}
