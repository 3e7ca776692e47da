package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketing_strategy_assistant/generator"
)

func TestMarkdownSectionsInOrder(t *testing.T) {
	md := Markdown(generator.MarketingStrategy{
		MarketingCopy:  "Buy it.",
		VisualStrategy: "Bold blue.",
		TargetAudience: "Hikers.",
	})

	copyAt := strings.Index(md, "## Marketing Copy\n\nBuy it.")
	visualAt := strings.Index(md, "## Visual Strategy\n\nBold blue.")
	audienceAt := strings.Index(md, "## Target Audience\n\nHikers.")
	require.NotEqual(t, -1, copyAt)
	require.NotEqual(t, -1, visualAt)
	require.NotEqual(t, -1, audienceAt)
	assert.Less(t, copyAt, visualAt)
	assert.Less(t, visualAt, audienceAt)
}

func TestHTML(t *testing.T) {
	html, err := HTML(generator.MarketingStrategy{
		MarketingCopy:  "First paragraph.\n\nSecond **bold** paragraph.",
		VisualStrategy: "- teal\n- sand",
		TargetAudience: "Weekend campers.",
	})
	require.NoError(t, err)

	assert.Contains(t, html, "<h1>Marketing Strategy</h1>")
	assert.Contains(t, html, "<h2>Visual Strategy</h2>")
	assert.Contains(t, html, "<strong>bold</strong>")
	assert.Contains(t, html, "<li>teal</li>")
	assert.Contains(t, html, "<p>Weekend campers.</p>")
}
