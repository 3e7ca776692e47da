package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"

	"marketing_strategy_assistant/generator"
)

var headings = map[string]string{
	generator.FieldMarketingCopy:  "Marketing Copy",
	generator.FieldVisualStrategy: "Visual Strategy",
	generator.FieldTargetAudience: "Target Audience",
}

// Markdown lays the strategy out as one document with a section per field.
// Field text is inserted unchanged.
func Markdown(s generator.MarketingStrategy) string {
	var sb strings.Builder
	sb.WriteString("# Marketing Strategy\n")
	for _, f := range generator.RequiredFields {
		text, _ := s.Section(f)
		sb.WriteString(fmt.Sprintf("\n## %s\n\n", headings[f]))
		sb.WriteString(strings.TrimRight(text, "\n"))
		sb.WriteString("\n")
	}
	return sb.String()
}

// HTML converts the Markdown document into an HTML fragment.
func HTML(s generator.MarketingStrategy) (string, error) {
	return mdToHTML(Markdown(s))
}

func mdToHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
