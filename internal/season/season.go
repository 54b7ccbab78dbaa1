// Package season turns a classification response into something a person can read.
//
// The classification service is loose about its response shape. It may
// answer with a structured season_analysis object, with free model text in
// raw_output that may or may not embed JSON, with an {error, details} pair, or
// with something else entirely. Parse sniffs the body in a fixed priority order
// and always produces an Outcome; it never fails.
package season

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// Result is a season classification as returned by the model.
type Result struct {
	Season        string `json:"season" jsonschema:"description=Exact 12-season name such as Soft Summer"`
	DominantTrait string `json:"dominant_trait" jsonschema:"description=Main reason: undertone / value / chroma / contrast"`
	Reasoning     string `json:"reasoning" jsonschema:"description=Short explanation of why this season fits"`
}

type Kind int

const (
	Structured Kind = iota
	RawTextWithJSON
	RawTextWithPattern
	RawTextUnparsed
	ErrorShape
	Unrecognized
)

func (k Kind) String() string {
	switch k {
	case Structured:
		return "structured"
	case RawTextWithJSON:
		return "raw_text_json"
	case RawTextWithPattern:
		return "raw_text_pattern"
	case RawTextUnparsed:
		return "raw_text_unparsed"
	case ErrorShape:
		return "error"
	case Unrecognized:
		return "unrecognized"
	default:
		return "unknown"
	}
}

// Outcome is the parsed form of one response. Result is set for the three
// successful kinds, Title and Message for the others.
type Outcome struct {
	Kind    Kind
	Result  Result
	Title   string
	Message string
}

// OK reports whether the outcome carries a season result.
func (o Outcome) OK() bool {
	return o.Kind == Structured || o.Kind == RawTextWithJSON || o.Kind == RawTextWithPattern
}

const (
	patternTrait     = "Analyzed based on color characteristics"
	patternReasoning = "The analysis was successful, but some details might be missing."
)

var seasonPattern = regexp.MustCompile(`(?i)"?season"?\s*[:=]\s*"?([^"\n}]+)"?`)

// Width 1 puts every array element on its own line.
var prettyOptions = &pretty.Options{Width: 1, Indent: "  "}

// Parse classifies a response body. Priority: raw_output, season_analysis,
// error, anything else.
func Parse(body []byte) Outcome {
	if !gjson.ValidBytes(body) {
		return Outcome{Kind: Unrecognized, Title: "Unexpected Response", Message: string(body)}
	}
	doc := gjson.ParseBytes(body)

	if raw := doc.Get("raw_output"); truthy(raw) {
		if raw.Type != gjson.String {
			return Outcome{Kind: RawTextUnparsed, Title: "Error parsing results", Message: "Could not process the response from the server."}
		}
		return parseRawText(raw.Str)
	}

	if sa := doc.Get("season_analysis"); truthy(sa) {
		return Outcome{Kind: Structured, Result: resultFrom(sa)}
	}

	if e := doc.Get("error"); truthy(e) {
		msg := "An unknown error occurred"
		if d := doc.Get("details"); truthy(d) {
			msg = d.String()
		}
		return Outcome{Kind: ErrorShape, Title: "Analysis Error", Message: msg}
	}

	return Outcome{
		Kind:    Unrecognized,
		Title:   "Unexpected Response",
		Message: strings.TrimRight(string(pretty.PrettyOptions(body, prettyOptions)), "\n"),
	}
}

func parseRawText(text string) Outcome {
	// first '{' through last '}'
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		candidate := text[start : end+1]
		if gjson.Valid(candidate) {
			if obj := gjson.Parse(candidate); obj.IsObject() {
				return Outcome{Kind: RawTextWithJSON, Result: resultFrom(obj)}
			}
		}
	}

	if m := seasonPattern.FindStringSubmatch(text); m != nil && m[1] != "" {
		return Outcome{Kind: RawTextWithPattern, Result: Result{
			Season:        strings.TrimSpace(m[1]),
			DominantTrait: patternTrait,
			Reasoning:     patternReasoning,
		}}
	}

	return Outcome{Kind: RawTextUnparsed, Title: "Could not determine season", Message: text}
}

func resultFrom(obj gjson.Result) Result {
	return Result{
		Season:        stringField(obj, "season"),
		DominantTrait: stringField(obj, "dominant_trait"),
		Reasoning:     stringField(obj, "reasoning"),
	}
}

// stringField ignores non-string values so a stray number never ends up as a season name.
func stringField(obj gjson.Result, key string) string {
	if v := obj.Get(key); v.Type == gjson.String {
		return v.Str
	}
	return ""
}

// truthy follows the loose notion of "present" the service's clients rely on:
// false, null, 0 and "" are absent, every object and array is present.
func truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.String:
		return r.Str != ""
	case gjson.Number:
		return r.Num != 0
	case gjson.True, gjson.JSON:
		return true
	default:
		return false
	}
}

// Display is what the result panel shows.
type Display struct {
	Title      string `json:"title"`
	Trait      string `json:"dominant_trait"`
	Reasoning  string `json:"reasoning"`
	Badge      string `json:"badge"`
	BadgeClass string `json:"badge_class"`
}

func (d Display) IsError() bool {
	return d.BadgeClass == "error"
}

// Display renders the outcome.
func (o Outcome) Display() Display {
	if o.OK() {
		return ResultDisplay(o.Result)
	}
	return ErrorDisplay(o.Title, o.Message)
}

// ResultDisplay renders a season result, e.g. "Deep Winter" gets badge "DW"
// and class "deep".
func ResultDisplay(r Result) Display {
	d := Display{
		Title:      r.Season,
		Trait:      r.DominantTrait,
		Reasoning:  r.Reasoning,
		Badge:      "?",
		BadgeClass: "unknown",
	}
	if r.Season == "" {
		d.Title = "Unknown Season"
		return d
	}
	d.Badge = Initials(r.Season)
	if first := strings.ToLower(strings.Split(r.Season, " ")[0]); first != "" {
		d.BadgeClass = first
	}
	return d
}

// Initials joins the first character of every space separated word.
func Initials(s string) string {
	return strings.Join(lo.FilterMap(strings.Split(s, " "), func(word string, _ int) (string, bool) {
		if word == "" {
			return "", false
		}
		r, _ := utf8.DecodeRuneInString(word)
		return string(r), true
	}), "")
}

func ErrorDisplay(title, message string) Display {
	return Display{
		Title:      title,
		Reasoning:  message,
		Badge:      "!",
		BadgeClass: "error",
	}
}

// Failed is shown when the classification call itself fails.
func Failed() Display {
	return Display{
		Title:      "Error",
		Trait:      "Failed to analyze colors",
		Reasoning:  "Please try again or check your connection.",
		Badge:      "!",
		BadgeClass: "error",
	}
}

// Analyzing is the transient label shown while a submission is in flight.
func Analyzing() Display {
	return Display{Title: "Analyzing..."}
}
