package classifier

import (
	"colorseason/internal/season"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
)

const systemMessage = "You are an expert certified Personal Color Analyst."

const promptTemplate = `You are a certified Personal Color Analyst working in the 12-season system.
You will receive color analysis data for SKIN, EYES and HAIR. Each entry has the
matched color plus its temperature (Warm / Cool / Neutral), value (Very Light to
Very Dark), chroma (Bright / Soft / Muted), saturation, lightness, hue in degrees
and the nearest named color.

Pick the single best 12-season type:
- Spring: Light Spring, Warm Spring, Bright Spring
- Summer: Light Summer, Cool Summer, Soft Summer
- Autumn: Soft Autumn, Warm Autumn, Dark Autumn
- Winter: Bright Winter, Cool Winter, Dark Winter

Guidelines:
- Skin undertone is the foundation (Warm, Cool or Neutral).
- Hair and eye depth set the value (Light or Deep seasons).
- Chroma separates Bright / Clear from Soft / Muted.
- Contrast between features separates Bright and Winter from Soft, Summer and Autumn.
- Warm + Muted + Medium/Dark usually means Autumn.
- Cool + Soft + Light usually means Summer.
- Cool + High Contrast usually means Winter.
- Warm + Light/Medium contrast usually means Spring.

Answer with strict JSON:
{
  "season": "Exact season name",
  "dominant_trait": "Main reason: undertone / value / chroma / contrast",
  "reasoning": "Short explanation of why this season fits"
}

The person's traits:
{traits}
`

func buildPrompt(t traits) (string, error) {
	b, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal traits: %w", err)
	}
	return strings.Replace(promptTemplate, "{traits}", string(b), 1), nil
}

// resultSchema is the JSON schema of season.Result, for providers that can
// constrain their output.
func resultSchema() map[string]any {
	r := jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	schemaJSON, _ := json.Marshal(r.Reflect(&season.Result{}))

	var m map[string]any
	_ = json.Unmarshal(schemaJSON, &m)
	delete(m, "$schema")
	delete(m, "$id")
	return m
}
