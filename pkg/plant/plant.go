// Package plant provides the canonical plant record shared by normalization,
// enrichment, persistence and translation. The package is pure, it has no
// I/O.
package plant

import (
	"slices"
	"strings"

	"github.com/gnames/gnuuid"
)

// Source tells where a record, or the latest merged contribution to it,
// originated. It is used for diagnostics only.
type Source string

const (
	SourceUnknown   Source = ""
	SourceDB        Source = "db"
	SourceCSV       Source = "csv"
	SourcePerenual  Source = "perenual"
	SourceTrefle    Source = "trefle"
	SourceWikipedia Source = "wikipedia"
)

// ParseSource converts a string to a Source. Unknown values return
// SourceUnknown.
func ParseSource(s string) Source {
	switch src := Source(strings.ToLower(strings.TrimSpace(s))); src {
	case SourceDB, SourceCSV, SourcePerenual, SourceTrefle, SourceWikipedia:
		return src
	default:
		return SourceUnknown
	}
}

// Record is the canonical plant record. Empty strings and nil slices stand
// for absent values.
type Record struct {
	// ID is assigned by storage. It is zero for records that were never
	// persisted.
	ID int64 `json:"id,omitempty" yaml:"id,omitempty"`

	Family         string `json:"family"          yaml:"family,omitempty"`
	Genus          string `json:"genus"           yaml:"genus,omitempty"`
	Species        string `json:"species"         yaml:"species,omitempty"`
	ScientificName string `json:"scientific_name" yaml:"scientific_name,omitempty"`
	CommonName     string `json:"common_name"     yaml:"common_name,omitempty"`

	GrowthRate     string `json:"growth_rate"     yaml:"growth_rate,omitempty"`
	HardinessZones string `json:"hardiness_zones" yaml:"hardiness_zones,omitempty"`
	Height         string `json:"height"          yaml:"height,omitempty"`
	Width          string `json:"width"           yaml:"width,omitempty"`
	Type           string `json:"type"            yaml:"type,omitempty"`
	Foliage        string `json:"foliage"         yaml:"foliage,omitempty"`
	Leaf           string `json:"leaf"            yaml:"leaf,omitempty"`
	Flower         string `json:"flower"          yaml:"flower,omitempty"`
	Ripen          string `json:"ripen"           yaml:"ripen,omitempty"`
	Reproduction   string `json:"reproduction"    yaml:"reproduction,omitempty"`
	PH             string `json:"ph"              yaml:"ph,omitempty"`
	Habitat        string `json:"habitat"         yaml:"habitat,omitempty"`
	HabitatRange   string `json:"habitat_range"   yaml:"habitat_range,omitempty"`
	OtherUses      string `json:"other_uses"      yaml:"other_uses,omitempty"`
	PFAF           string `json:"pfaf"            yaml:"pfaf,omitempty"`
	ImageURL       string `json:"image_url"       yaml:"image_url,omitempty"`
	Description    string `json:"description"     yaml:"description,omitempty"`

	Pollinators []string `json:"pollinators" yaml:"pollinators,omitempty"`
	Soils       []string `json:"soils"       yaml:"soils,omitempty"`
	PHSplit     []string `json:"ph_split"    yaml:"ph_split,omitempty"`
	Preferences []string `json:"preferences" yaml:"preferences,omitempty"`
	Tolerances  []string `json:"tolerances"  yaml:"tolerances,omitempty"`
	Images      []string `json:"images"      yaml:"images,omitempty"`

	Edibility Flag `json:"edibility" yaml:"edibility"`
	Medicinal Flag `json:"medicinal" yaml:"medicinal"`

	Source Source `json:"source,omitempty" yaml:"source,omitempty"`
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	res := r
	for _, spec := range Fields {
		if spec.Kind == KindList {
			l := spec.list(&res)
			*l = slices.Clone(*l)
		}
	}
	return res
}

// Raw exports the record as a raw map keyed by canonical field names.
// Normalizing the result gives back the same record.
func (r Record) Raw() map[string]any {
	res := make(map[string]any, len(Fields)+2)
	if r.ID != 0 {
		res["id"] = r.ID
	}
	for _, spec := range Fields {
		v := r.Get(spec.Name)
		switch v.Kind {
		case KindScalar:
			res[string(spec.Name)] = v.Str
		case KindList:
			res[string(spec.Name)] = slices.Clone(v.Items)
		case KindFlag:
			res[string(spec.Name)] = v.Flag.Value()
		}
	}
	if r.Source != SourceUnknown {
		res["source"] = string(r.Source)
	}
	return res
}

// SyncImages keeps ImageURL equal to the first element of Images. A set
// ImageURL becomes the first image, otherwise the first image becomes
// ImageURL.
func (r *Record) SyncImages() {
	switch {
	case r.ImageURL != "":
		if len(r.Images) > 0 && r.Images[0] == r.ImageURL {
			return
		}
		imgs := make([]string, 0, len(r.Images)+1)
		imgs = append(imgs, r.ImageURL)
		for _, v := range r.Images {
			if v != r.ImageURL {
				imgs = append(imgs, v)
			}
		}
		r.Images = imgs
	case len(r.Images) > 0:
		r.ImageURL = r.Images[0]
	}
}

// HasIdentity is true when the record can be matched against storage,
// either by genus and species or by common name.
func (r Record) HasIdentity() bool {
	return (r.Genus != "" && r.Species != "") || r.CommonName != ""
}

// SameIdentity decides if two records describe the same plant. They do
// when both have genus and species and these are equal, or when both have
// the same common name. A common name match alone is sufficient.
func SameIdentity(a, b Record) bool {
	if a.Genus != "" && a.Species != "" &&
		a.Genus == b.Genus && a.Species == b.Species {
		return true
	}
	return a.CommonName != "" && a.CommonName == b.CommonName
}

// IdentityKey returns a deterministic UUID v5 string derived from the
// identity fields of the record.
func IdentityKey(r Record) string {
	var key string
	switch {
	case r.Genus != "" && r.Species != "":
		key = r.Genus + " " + r.Species
	case r.CommonName != "":
		key = "common:" + r.CommonName
	default:
		key = "scientific:" + r.ScientificName
	}
	return gnuuid.New(key).String()
}

// LookupName returns the name used to query external sources.
func LookupName(r Record) string {
	if r.ScientificName != "" {
		return r.ScientificName
	}
	if r.Genus != "" {
		return strings.TrimSpace(r.Genus + " " + r.Species)
	}
	return r.CommonName
}
