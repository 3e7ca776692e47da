package generator

import (
	"fmt"
	"strings"
)

// Request is what gets sent to the LLM for one attempt.
type Request struct {
	System string
	User   string
	// SchemaName and Schema describe the required output for structured mode.
	SchemaName string
	Schema     map[string]any
}

const systemPrompt = "You are an expert marketing strategist. Respond only with the requested JSON object."

// strategySchema is the JSON schema of a MarketingStrategy.
func strategySchema() map[string]any {
	props := make(map[string]any, len(RequiredFields))
	required := make([]string, 0, len(RequiredFields))
	for _, f := range RequiredFields {
		props[f] = map[string]any{"type": "string"}
		required = append(required, f)
	}
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"required":             required,
		"additionalProperties": false,
	}
}

// BuildStrategyPrompt wraps the brief in the fixed strategist instructions.
// The brief is embedded verbatim between quotes as data and never interpreted.
func BuildStrategyPrompt(brief string) Request {
	var sb strings.Builder
	sb.WriteString("You are an expert marketing strategist. A user has provided the following product/service description:\n\n")
	sb.WriteString("\"")
	sb.WriteString(brief)
	sb.WriteString("\"\n\n")
	sb.WriteString("Generate a comprehensive marketing strategy with these three components:\n\n")
	sb.WriteString("1. Marketing Copy: Write persuasive, engaging marketing copy for this product/service. Make it compelling and action-oriented. 2-3 paragraphs.\n\n")
	sb.WriteString("2. Visual Strategy: Describe the visual presentation strategy including suggested imagery, colors, design motifs, mood, and overall aesthetic direction. Be specific and actionable.\n\n")
	sb.WriteString("3. Target Audience: Identify and describe the ideal target audience including demographics, psychographics, pain points, and why this product/service appeals to them.\n\n")
	sb.WriteString("Return your response as a JSON object with this exact structure:\n")
	sb.WriteString("{\n")
	sb.WriteString(fmt.Sprintf("  %q: \"your marketing copy here\",\n", FieldMarketingCopy))
	sb.WriteString(fmt.Sprintf("  %q: \"your visual strategy here\",\n", FieldVisualStrategy))
	sb.WriteString(fmt.Sprintf("  %q: \"your target audience analysis here\"\n", FieldTargetAudience))
	sb.WriteString("}")

	return Request{
		System:     systemPrompt,
		User:       sb.String(),
		SchemaName: "marketing_strategy",
		Schema:     strategySchema(),
	}
}
