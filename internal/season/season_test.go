package season

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Structured(t *testing.T) {
	o := Parse([]byte(`{"status":"success","season_analysis":{"season":"Deep Winter","dominant_trait":"Cool undertone","reasoning":"High contrast"}}`))
	require.Equal(t, Structured, o.Kind)

	d := o.Display()
	assert.Equal(t, "Deep Winter", d.Title)
	assert.Equal(t, "Cool undertone", d.Trait)
	assert.Equal(t, "High contrast", d.Reasoning)
	assert.Equal(t, "DW", d.Badge)
	assert.Equal(t, "deep", d.BadgeClass)
	assert.False(t, d.IsError())
}

func TestParse_RawOutputWithEmbeddedJSON(t *testing.T) {
	o := Parse([]byte(`{"raw_output":"Result: {\"season\": \"Soft Summer\", \"dominant_trait\":\"Muted\",\"reasoning\":\"x\"}"}`))
	require.Equal(t, RawTextWithJSON, o.Kind)

	want := ResultDisplay(Result{Season: "Soft Summer", DominantTrait: "Muted", Reasoning: "x"})
	assert.Equal(t, want, o.Display())
	assert.Equal(t, "SS", o.Display().Badge)
	assert.Equal(t, "soft", o.Display().BadgeClass)
}

func TestParse_RawOutputFencedJSON(t *testing.T) {
	body := "{\"raw_output\":\"```json\\n{\\n  \\\"season\\\": \\\"Warm Autumn\\\",\\n  \\\"dominant_trait\\\": \\\"undertone\\\",\\n  \\\"reasoning\\\": \\\"golden skin\\\"\\n}\\n```\"}"
	o := Parse([]byte(body))
	require.Equal(t, RawTextWithJSON, o.Kind)
	assert.Equal(t, "Warm Autumn", o.Result.Season)
	assert.Equal(t, "golden skin", o.Result.Reasoning)
}

func TestParse_RawOutputBrokenJSONFallsBackToPattern(t *testing.T) {
	o := Parse([]byte(`{"raw_output":"{\"season\": \"Light Spring\", oops}"}`))
	require.Equal(t, RawTextWithPattern, o.Kind)
	assert.Equal(t, "Light Spring", o.Result.Season)
	assert.Equal(t, patternTrait, o.Result.DominantTrait)
	assert.Equal(t, patternReasoning, o.Result.Reasoning)
	assert.Equal(t, "LS", o.Display().Badge)
}

func TestParse_RawOutputPattern(t *testing.T) {
	tests := map[string]string{
		`{"raw_output":"SEASON = Cool Summer"}`:        "Cool Summer",
		`{"raw_output":"season: Bright Winter\nmore"}`: "Bright Winter",
		`{"raw_output":"\"Season\": \"Dark Autumn"}`:   "Dark Autumn",
	}
	for body, want := range tests {
		o := Parse([]byte(body))
		assert.Equal(t, RawTextWithPattern, o.Kind, body)
		assert.Equal(t, want, o.Result.Season, body)
	}
}

func TestParse_RawOutputUnparsed(t *testing.T) {
	o := Parse([]byte(`{"raw_output":"The season is: Autumn"}`))
	require.Equal(t, RawTextUnparsed, o.Kind)

	d := o.Display()
	assert.Equal(t, "Could not determine season", d.Title)
	assert.Equal(t, "The season is: Autumn", d.Reasoning)
	assert.Equal(t, "!", d.Badge)
	assert.Equal(t, "error", d.BadgeClass)
}

func TestParse_RawOutputNotAString(t *testing.T) {
	o := Parse([]byte(`{"raw_output":{"season":"Deep Winter"}}`))
	assert.Equal(t, RawTextUnparsed, o.Kind)
	assert.Equal(t, "Error parsing results", o.Title)
}

func TestParse_EmptyRawOutputFallsThrough(t *testing.T) {
	o := Parse([]byte(`{"raw_output":"","season_analysis":{"season":"Cool Winter"}}`))
	assert.Equal(t, Structured, o.Kind)
	assert.Equal(t, "Cool Winter", o.Result.Season)
}

func TestParse_ErrorShape(t *testing.T) {
	o := Parse([]byte(`{"error":"Season analysis failed","details":"quota exceeded"}`))
	require.Equal(t, ErrorShape, o.Kind)
	assert.Equal(t, ErrorDisplay("Analysis Error", "quota exceeded"), o.Display())

	o = Parse([]byte(`{"error":true}`))
	assert.Equal(t, "An unknown error occurred", o.Message)
}

func TestParse_Unrecognized(t *testing.T) {
	o := Parse([]byte(`{}`))
	require.Equal(t, Unrecognized, o.Kind)

	d := o.Display()
	assert.Equal(t, "Unexpected Response", d.Title)
	assert.Equal(t, "{}", d.Reasoning)
	assert.Equal(t, "!", d.Badge)

	o = Parse([]byte(`{"status":"ok"}`))
	assert.Equal(t, "{\n  \"status\": \"ok\"\n}", o.Message)

	o = Parse([]byte(`{"a":[1,2]}`))
	assert.Equal(t, "{\n  \"a\": [\n    1,\n    2\n  ]\n}", o.Message)
}

func TestParse_NotJSON(t *testing.T) {
	o := Parse([]byte(`<html>bad gateway</html>`))
	assert.Equal(t, Unrecognized, o.Kind)
	assert.Equal(t, "<html>bad gateway</html>", o.Message)
}

func TestResultDisplay_Defaults(t *testing.T) {
	d := ResultDisplay(Result{})
	assert.Equal(t, "Unknown Season", d.Title)
	assert.Equal(t, "?", d.Badge)
	assert.Equal(t, "unknown", d.BadgeClass)
	assert.Empty(t, d.Trait)
	assert.Empty(t, d.Reasoning)
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "DW", Initials("Deep Winter"))
	assert.Equal(t, "S", Initials("Spring"))
	assert.Equal(t, "TS", Initials("True  Summer"))
	assert.Equal(t, "ÉA", Initials("Été Automne"))
}

func TestFailed(t *testing.T) {
	d := Failed()
	assert.Equal(t, "Error", d.Title)
	assert.Equal(t, "Failed to analyze colors", d.Trait)
	assert.Equal(t, "Please try again or check your connection.", d.Reasoning)
	assert.Equal(t, "!", d.Badge)
	assert.True(t, d.IsError())
}
