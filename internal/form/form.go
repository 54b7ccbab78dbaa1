package form

import (
	"colorseason/internal/analysis"
	"colorseason/internal/hexcolor"
	"fmt"
	"net/url"
)

// Form holds the three color fields.
type Form struct {
	Fields []ColorField
}

// Default is the form a new visitor sees.
func Default() Form {
	f := Form{Fields: []ColorField{
		NewField(Skin, "#E0AC69"),
		NewField(Hair, "#3B2F2F"),
		NewField(Eyes, "#5D8AA8"),
	}}
	f.RepaintSwatches()
	return f
}

// RepaintSwatches sets every swatch from its picker.
func (f *Form) RepaintSwatches() {
	for i := range f.Fields {
		f.Fields[i].RepaintSwatch()
	}
}

func (f Form) Field(name FieldName) (ColorField, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return ColorField{}, false
}

// Colors returns the picker values, which are what gets submitted.
func (f Form) Colors() analysis.Colors {
	get := func(n FieldName) string {
		field, _ := f.Field(n)
		return field.Picker
	}
	return analysis.Colors{Skin: get(Skin), Hair: get(Hair), Eyes: get(Eyes)}
}

func pickerKey(n FieldName) string { return string(n) + "_picker" }
func hexKey(n FieldName) string    { return string(n) + "_hex" }

// FromValues rebuilds a submitted form. Every picker must be a valid color;
// the hex text is taken as typed.
func FromValues(v url.Values) (Form, error) {
	var f Form
	for _, name := range FieldNames {
		picker, err := hexcolor.Normalize(v.Get(pickerKey(name)))
		if err != nil {
			return Form{}, fmt.Errorf("%s: %w", name, err)
		}
		field := NewField(name, picker)
		if hex, ok := v[hexKey(name)]; ok && len(hex) > 0 {
			field.HexText = hex[0]
		}
		f.Fields = append(f.Fields, field)
	}
	f.RepaintSwatches()
	return f, nil
}
