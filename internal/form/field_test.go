package form

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnHexTextChange_Valid(t *testing.T) {
	for _, in := range []string{"#a1b2c3", "#A1B2C3", "#00ff7f"} {
		f := NewField(Skin, "#000000").OnHexTextChange(in)
		want := strings.ToUpper(in)
		assert.Equal(t, want, f.Picker, in)
		assert.Equal(t, want, f.Swatch, in)
		assert.Equal(t, want, f.HexText, in)
		assert.True(t, f.Synced(), in)
	}
}

func TestOnHexTextChange_RecoversFromDivergence(t *testing.T) {
	f := NewField(Skin, "#E0AC69").OnHexTextChange("#ab")
	require.False(t, f.Synced())

	f = f.OnHexTextChange("#abcdef")
	assert.True(t, f.Synced())
	assert.Equal(t, "#ABCDEF", f.HexText)
	assert.Equal(t, "#ABCDEF", f.Swatch)
}

func TestOnHexTextChange_InvalidLeavesPickerAndSwatch(t *testing.T) {
	for _, in := range []string{"", "#", "#12345", "123456", "#1234567", "#GGGGGG", " #123456", "#123456 "} {
		f := NewField(Hair, "#3B2F2F").OnHexTextChange(in)
		assert.Equal(t, "#3B2F2F", f.Picker, in)
		assert.Equal(t, "#3B2F2F", f.Swatch, in)
		assert.Equal(t, in, f.HexText, "text keeps what was typed")
		assert.False(t, f.Synced())
	}
}

func TestOnPickerChange_SyncsHexText(t *testing.T) {
	f := NewField(Eyes, "#5D8AA8").OnHexTextChange("#5D8")
	require.False(t, f.Synced())

	f = f.OnPickerChange("#aabbcc")
	assert.Equal(t, "#AABBCC", f.Picker)
	assert.Equal(t, "#AABBCC", f.HexText)
	assert.Equal(t, "#AABBCC", f.Swatch)
	assert.True(t, f.Synced())
}

func TestOnPickerChange_IgnoresGarbage(t *testing.T) {
	f := NewField(Eyes, "#5D8AA8")
	assert.Equal(t, f, f.OnPickerChange("blue"))
}

func TestRepaintSwatches(t *testing.T) {
	f := Default()
	for i := range f.Fields {
		f.Fields[i].Picker = "#111111"
		f.Fields[i].Swatch = "#222222"
	}
	f.RepaintSwatches()
	for _, field := range f.Fields {
		assert.Equal(t, "#111111", field.Swatch)
	}
}

func TestParseFieldName(t *testing.T) {
	n, err := ParseFieldName("eyes")
	require.NoError(t, err)
	assert.Equal(t, Eyes, n)

	_, err = ParseFieldName("nose")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestFromValues(t *testing.T) {
	v := url.Values{
		"skin_picker": {"#e0ac69"}, "skin_hex": {"#E0AC6"},
		"hair_picker": {"#3b2f2f"}, "hair_hex": {"#3B2F2F"},
		"eyes_picker": {"#5d8aa8"},
	}
	f, err := FromValues(v)
	require.NoError(t, err)

	skin, ok := f.Field(Skin)
	require.True(t, ok)
	assert.Equal(t, "#E0AC69", skin.Picker)
	assert.Equal(t, "#E0AC6", skin.HexText)

	colors := f.Colors()
	assert.Equal(t, "#E0AC69", colors.Skin)
	assert.Equal(t, "#3B2F2F", colors.Hair)
	assert.Equal(t, "#5D8AA8", colors.Eyes)

	delete(v, "hair_picker")
	_, err = FromValues(v)
	assert.Error(t, err)
}

func TestSubmissions(t *testing.T) {
	s := newSubmissions()
	require.NoError(t, s.Begin("a"))
	assert.Equal(t, Submitting, s.State("a"))
	assert.ErrorIs(t, s.Begin("a"), ErrBusy)
	require.NoError(t, s.Begin("b"), "sessions are independent")

	assert.Equal(t, Failed, s.Finish("a", true))
	assert.Equal(t, Idle, s.State("a"))
	require.NoError(t, s.Begin("a"))
	assert.Equal(t, Succeeded, s.Finish("a", false))
	assert.Equal(t, 1, s.Len())
}
