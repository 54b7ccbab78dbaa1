package form

import (
	"colorseason/internal/hexcolor"
	"errors"
	"html/template"
	"strings"

	"github.com/samber/lo"
)

var ErrUnknownField = errors.New("unknown color field")

type FieldName string

const (
	Skin FieldName = "skin"
	Hair FieldName = "hair"
	Eyes FieldName = "eyes"
)

// FieldNames is the display and submission order.
var FieldNames = []FieldName{Skin, Hair, Eyes}

func ParseFieldName(s string) (FieldName, error) {
	name, ok := lo.Find(FieldNames, func(n FieldName) bool { return string(n) == s })
	if !ok {
		return "", ErrUnknownField
	}
	return name, nil
}

func (n FieldName) Label() string {
	switch n {
	case Skin:
		return "Skin"
	case Hair:
		return "Hair"
	case Eyes:
		return "Eyes"
	}
	return string(n)
}

// ColorField is one picker, its hex text box and its swatch.
//
// After any accepted edit Picker and HexText hold the same uppercase #RRGGBB
// value. HexText may diverge while the user is typing something invalid.
type ColorField struct {
	Name    FieldName
	Picker  string
	HexText string
	Swatch  string
}

func NewField(name FieldName, hex string) ColorField {
	hex = hexcolor.MustNormalize(hex)
	return ColorField{Name: name, Picker: hex, HexText: hex, Swatch: hex}
}

// OnPickerChange copies the picker value into the hex text and repaints the
// swatch. Browsers only ever send valid colors from a picker; anything else is
// ignored.
func (f ColorField) OnPickerChange(value string) ColorField {
	hex, err := hexcolor.Normalize(value)
	if err != nil {
		return f
	}
	f.Picker = hex
	f.HexText = hex
	f.RepaintSwatch()
	return f
}

// OnHexTextChange accepts raw typed text. A strict #RRGGBB value is
// uppercased into both the text and the picker and repaints the swatch;
// anything else only updates the text.
func (f ColorField) OnHexTextChange(raw string) ColorField {
	hex, err := hexcolor.Normalize(raw)
	if err != nil {
		f.HexText = raw
		return f
	}
	f.Picker = hex
	f.HexText = hex
	f.RepaintSwatch()
	return f
}

func (f *ColorField) RepaintSwatch() {
	f.Swatch = f.Picker
}

// Synced reports whether the hex text agrees with the picker.
func (f ColorField) Synced() bool {
	return f.HexText == f.Picker
}

func (f ColorField) Label() string {
	return f.Name.Label()
}

// PickerValue is the form <input type="color"> wants: lowercase.
func (f ColorField) PickerValue() string {
	return strings.ToLower(f.Picker)
}

// SwatchStyle is safe because Swatch only ever holds a validated color.
func (f ColorField) SwatchStyle() template.CSS {
	return template.CSS("background-color: " + f.Swatch)
}
