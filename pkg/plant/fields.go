package plant

import (
	"slices"
)

// Field is the canonical name of a record field. It is also the storage
// column name.
type Field string

const (
	Family         Field = "family"
	Genus          Field = "genus"
	Species        Field = "species"
	ScientificName Field = "scientific_name"
	CommonName     Field = "common_name"
	GrowthRate     Field = "growth_rate"
	HardinessZones Field = "hardiness_zones"
	Height         Field = "height"
	Width          Field = "width"
	Type           Field = "type"
	Foliage        Field = "foliage"
	Leaf           Field = "leaf"
	Flower         Field = "flower"
	Ripen          Field = "ripen"
	Reproduction   Field = "reproduction"
	PH             Field = "ph"
	Habitat        Field = "habitat"
	HabitatRange   Field = "habitat_range"
	OtherUses      Field = "other_uses"
	PFAF           Field = "pfaf"
	ImageURL       Field = "image_url"
	Description    Field = "description"
	Pollinators    Field = "pollinators"
	Soils          Field = "soils"
	PHSplit        Field = "ph_split"
	Preferences    Field = "preferences"
	Tolerances     Field = "tolerances"
	Images         Field = "images"
	Edibility      Field = "edibility"
	Medicinal      Field = "medicinal"
)

// FieldSpec describes one record field.
type FieldSpec struct {
	Name Field
	Kind Kind

	// Aliases are raw key spellings accepted for the field, in the order
	// they are tried. Keys are compared ignoring case, spaces, underscores
	// and hyphens, so "CommonName" and "Common Name" need no entry of their
	// own.
	Aliases []string

	// Translatable fields go through the translation decorator.
	Translatable bool

	str  func(*Record) *string
	list func(*Record) *[]string
	flag func(*Record) *Flag
}

func scalar(name Field, tr bool, fn func(*Record) *string, aliases ...string) FieldSpec {
	return FieldSpec{
		Name: name, Kind: KindScalar, Translatable: tr,
		Aliases: append([]string{string(name)}, aliases...), str: fn,
	}
}

func list(name Field, tr bool, fn func(*Record) *[]string, aliases ...string) FieldSpec {
	return FieldSpec{
		Name: name, Kind: KindList, Translatable: tr,
		Aliases: append([]string{string(name)}, aliases...), list: fn,
	}
}

func flag(name Field, fn func(*Record) *Flag, aliases ...string) FieldSpec {
	return FieldSpec{
		Name: name, Kind: KindFlag,
		Aliases: append([]string{string(name)}, aliases...), flag: fn,
	}
}

// Fields is the alias table of the canonical record in storage column
// order.
var Fields = []FieldSpec{
	scalar(Family, false, func(r *Record) *string { return &r.Family }, "family_name"),
	scalar(Genus, false, func(r *Record) *string { return &r.Genus }),
	scalar(Species, false, func(r *Record) *string { return &r.Species }, "specific_epithet"),
	scalar(ScientificName, false, func(r *Record) *string { return &r.ScientificName },
		"scientific", "latin_name"),
	scalar(CommonName, true, func(r *Record) *string { return &r.CommonName }, "common"),
	scalar(GrowthRate, true, func(r *Record) *string { return &r.GrowthRate }, "growth"),
	scalar(HardinessZones, true, func(r *Record) *string { return &r.HardinessZones }, "hardiness"),
	scalar(Height, true, func(r *Record) *string { return &r.Height }),
	scalar(Width, true, func(r *Record) *string { return &r.Width }),
	scalar(Type, true, func(r *Record) *string { return &r.Type }, "plant_type"),
	scalar(Foliage, true, func(r *Record) *string { return &r.Foliage }),
	scalar(Leaf, true, func(r *Record) *string { return &r.Leaf }),
	scalar(Flower, true, func(r *Record) *string { return &r.Flower }),
	scalar(Ripen, true, func(r *Record) *string { return &r.Ripen }),
	scalar(Reproduction, true, func(r *Record) *string { return &r.Reproduction }),
	scalar(PH, true, func(r *Record) *string { return &r.PH }, "ph_value"),
	scalar(Habitat, true, func(r *Record) *string { return &r.Habitat }),
	scalar(HabitatRange, true, func(r *Record) *string { return &r.HabitatRange }),
	scalar(OtherUses, true, func(r *Record) *string { return &r.OtherUses }),
	scalar(PFAF, false, func(r *Record) *string { return &r.PFAF }),
	scalar(ImageURL, false, func(r *Record) *string { return &r.ImageURL }, "image"),
	scalar(Description, true, func(r *Record) *string { return &r.Description },
		"description_text"),
	list(Pollinators, false, func(r *Record) *[]string { return &r.Pollinators }),
	list(Soils, true, func(r *Record) *[]string { return &r.Soils }, "soil"),
	list(PHSplit, false, func(r *Record) *[]string { return &r.PHSplit }),
	list(Preferences, true, func(r *Record) *[]string { return &r.Preferences }),
	list(Tolerances, true, func(r *Record) *[]string { return &r.Tolerances }),
	list(Images, false, func(r *Record) *[]string { return &r.Images }),
	flag(Edibility, func(r *Record) *Flag { return &r.Edibility }, "edible"),
	flag(Medicinal, func(r *Record) *Flag { return &r.Medicinal }, "medicinal_uses"),
}

var fieldIndex = func() map[Field]int {
	res := make(map[Field]int, len(Fields))
	for i, v := range Fields {
		res[v.Name] = i
	}
	return res
}()

// Spec returns the description of a field.
func Spec(f Field) (FieldSpec, bool) {
	i, ok := fieldIndex[f]
	if !ok {
		return FieldSpec{}, false
	}
	return Fields[i], true
}

// Get returns the value of a field. Unknown fields return a zero Value.
func (r *Record) Get(f Field) Value {
	spec, ok := Spec(f)
	if !ok {
		return Value{}
	}
	switch spec.Kind {
	case KindScalar:
		return Scalar(*spec.str(r))
	case KindList:
		return List(*spec.list(r))
	case KindFlag:
		return FlagOf(*spec.flag(r))
	}
	return Value{}
}

// Set assigns a value to a field. Values of a different kind than the
// field are ignored.
func (r *Record) Set(f Field, v Value) {
	spec, ok := Spec(f)
	if !ok || spec.Kind != v.Kind {
		return
	}
	switch spec.Kind {
	case KindScalar:
		*spec.str(r) = v.Str
	case KindList:
		*spec.list(r) = v.Items
	case KindFlag:
		*spec.flag(r) = v.Flag
	}
}

// FieldSet is a set of field names.
type FieldSet map[Field]struct{}

// NewFieldSet creates a set from the given fields.
func NewFieldSet(fields ...Field) FieldSet {
	res := make(FieldSet, len(fields))
	for _, f := range fields {
		res.Add(f)
	}
	return res
}

// Add inserts a field.
func (fs FieldSet) Add(f Field) {
	fs[f] = struct{}{}
}

// Has reports membership.
func (fs FieldSet) Has(f Field) bool {
	_, ok := fs[f]
	return ok
}

// Union adds all fields of another set.
func (fs FieldSet) Union(other FieldSet) {
	for f := range other {
		fs.Add(f)
	}
}

// Fields returns the members in the order of the alias table.
func (fs FieldSet) Fields() []Field {
	res := make([]Field, 0, len(fs))
	for f := range fs {
		res = append(res, f)
	}
	slices.SortFunc(res, func(a, b Field) int {
		return fieldIndex[a] - fieldIndex[b]
	})
	return res
}

// Strings returns the members as strings in the order of the alias table.
func (fs FieldSet) Strings() []string {
	fields := fs.Fields()
	res := make([]string, len(fields))
	for i := range fields {
		res[i] = string(fields[i])
	}
	return res
}
