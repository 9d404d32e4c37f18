// internal/catalog/schema.go
package catalog

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/spf13/cast"

	"github.com/proglide/admin-console/internal/models"
)

const UnknownModel = "Unknown Model"

// Field describes one editable input of a category form.
type Field struct {
	Key      models.SpecField `json:"key"`
	Label    string           `json:"label"`
	Numeric  bool             `json:"numeric"`
	Required bool             `json:"required"`
	Unit     string           `json:"unit,omitempty"`
}

// Schema is the set of spec fields that apply to one category.
type Schema struct {
	Category models.Category  `json:"category"`
	Slug     string           `json:"slug"`
	Title    models.SpecField `json:"title_field"`
	Fields   []Field          `json:"fields"`
}

func radiusFields() []Field {
	keys := []models.SpecField{
		models.SpecRadiusTopLeft,
		models.SpecRadiusTopRight,
		models.SpecRadiusBottomLeft,
		models.SpecRadiusBottomRight,
	}
	fields := make([]Field, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, Field{Key: k, Label: FormatLabel(string(k)), Numeric: true, Unit: "mm"})
	}
	return fields
}

var registry = map[models.Category]Schema{
	models.CategoryScreenGuard: {
		Title: models.SpecOriginalDrawingModel,
		Fields: append([]Field{
			{Key: models.SpecOriginalDrawingModel, Label: "Original Drawing (Master Model)", Required: true},
			{Key: models.SpecHeight, Label: "Height (mm)", Numeric: true, Unit: "mm"},
			{Key: models.SpecWidth, Label: "Width (mm)", Numeric: true, Unit: "mm"},
		}, radiusFields()...),
	},
	models.CategoryPhoneCase: {
		Title: models.SpecBaseModel,
		Fields: []Field{
			{Key: models.SpecBaseModel, Label: "Base Model"},
		},
	},
	models.CategoryCcBoard: {
		Title: models.SpecBaseModel,
		Fields: []Field{
			{Key: models.SpecBaseModel, Label: "Base Model"},
			{Key: models.SpecModelNo, Label: "Model No"},
		},
	},
	models.CategoryCenterPanel: {
		Title: models.SpecBaseModel,
		Fields: []Field{
			{Key: models.SpecBaseModel, Label: "Base Model"},
			{Key: models.SpecModelNo, Label: "Model No"},
		},
	},
	models.CategoryComboDisplay: {
		Title: models.SpecModelNo,
		Fields: []Field{
			{Key: models.SpecBrandName, Label: "Brand Name"},
			{Key: models.SpecModelNo, Label: "Model Number"},
		},
	},
	models.CategoryBattery: {
		Title: models.SpecModelNo,
		Fields: []Field{
			{Key: models.SpecModelNo, Label: "Model Number"},
		},
	},
}

// Lookup returns the schema registered for a category.
func Lookup(category models.Category) (Schema, bool) {
	s, ok := registry[category]
	if !ok {
		return Schema{}, false
	}
	s.Category = category
	s.Slug = category.Slug()
	s.Fields = append([]Field(nil), s.Fields...)
	return s, true
}

// All returns every schema in sidebar order.
func All() []Schema {
	out := make([]Schema, 0, len(models.Categories))
	for _, c := range models.Categories {
		if s, ok := Lookup(c); ok {
			out = append(out, s)
		}
	}
	return out
}

// DisplayName resolves a product's primary name. The order is the same for
// every category.
func DisplayName(specs models.Specs) string {
	for _, f := range []models.SpecField{models.SpecOriginalDrawingModel, models.SpecBaseModel, models.SpecModelNo} {
		if v := specs.Get(f); v != "" {
			return v
		}
	}
	return UnknownModel
}

// Caption is the small over-title of a product card: the brand name when set,
// otherwise the category.
func Caption(p models.Product) string {
	if b := p.Specs.Get(models.SpecBrandName); b != "" {
		return b
	}
	return string(p.Category)
}

// modelNoIsTitle holds for the categories whose model number doubles as the title.
func modelNoIsTitle(category models.Category) bool {
	return category == models.CategoryBattery || category == models.CategoryComboDisplay
}

// ShowInGrid reports whether a spec value belongs in the generic spec grid.
func ShowInGrid(category models.Category, key, value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}
	field := models.SpecField(key)
	if s, ok := registry[category]; ok && s.Title == field {
		return false
	}
	if field == models.SpecBrandName {
		return false
	}
	if field == models.SpecModelNo && modelNoIsTitle(category) {
		return false
	}
	return true
}

type SpecEntry struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// ExtraSpecs lists the grid entries of a product, recognised fields first in
// canonical order, then unknown keys alphabetically.
func ExtraSpecs(p models.Product) []SpecEntry {
	var entries []SpecEntry
	add := func(key string) {
		value := strings.TrimSpace(p.Specs[key])
		if ShowInGrid(p.Category, key, value) {
			entries = append(entries, SpecEntry{Key: key, Label: FormatLabel(key), Value: value})
		}
	}

	for _, f := range models.SpecFields {
		add(string(f))
	}

	var unknown []string
	for k := range p.Specs {
		if !models.SpecField(k).Known() {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	for _, k := range unknown {
		add(k)
	}
	return entries
}

// FormatLabel turns a camelCase spec key into a human label, moving "Radius"
// to the end: radiusTopLeft -> "Top Left Radius".
func FormatLabel(key string) string {
	var b strings.Builder
	for _, r := range key {
		if unicode.IsUpper(r) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}

	label := strings.TrimSpace(b.String())
	if label == "" {
		return ""
	}
	runes := []rune(label)
	runes[0] = unicode.ToUpper(runes[0])
	label = string(runes)

	if strings.Contains(strings.ToLower(key), "radius") {
		label = strings.Join(strings.Fields(strings.ReplaceAll(label, "Radius", "")), " ")
		return strings.TrimSpace(label + " Radius")
	}
	return label
}

// FormValue is a schema field paired with the value being edited.
type FormValue struct {
	Field
	Value string `json:"value"`
}

// Form renders the editable inputs of a category from the schema table.
func Form(category models.Category, specs models.Specs) ([]FormValue, error) {
	s, ok := Lookup(category)
	if !ok {
		return nil, fmt.Errorf("unknown category %q", category)
	}

	values := make([]FormValue, 0, len(s.Fields))
	for _, f := range s.Fields {
		values = append(values, FormValue{Field: f, Value: specs.Get(f.Key)})
	}
	return values, nil
}

// FieldError reports one invalid spec value.
type FieldError struct {
	Field   models.SpecField
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateSpecs checks required and numeric fields of the category schema.
// Fields outside the schema are left alone.
func ValidateSpecs(category models.Category, specs models.Specs) error {
	s, ok := Lookup(category)
	if !ok {
		return fmt.Errorf("unknown category %q", category)
	}

	for _, f := range s.Fields {
		v := specs.Get(f.Key)
		if v == "" {
			if f.Required {
				return &FieldError{Field: f.Key, Message: f.Label + " is required"}
			}
			continue
		}
		if f.Numeric {
			if _, ok := ParseNumber(v); !ok {
				return &FieldError{Field: f.Key, Message: f.Label + " must be a number"}
			}
		}
	}
	return nil
}

// ParseNumber reads a plain decimal number. NaN, infinities and hex floats are
// rejected even though strconv accepts them.
func ParseNumber(v string) (float64, bool) {
	v = strings.TrimSpace(v)
	if v == "" || strings.ContainsAny(v, "xXpP") {
		return 0, false
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
