package generator

import (
	"context"
	"encoding/json"
	"fmt"
)

// MockLLM is a local stand-in that never calls a model; handy for demos and UI work.
type MockLLM struct{}

func (m MockLLM) Generate(_ context.Context, req Request, _ bool) (string, error) {
	out := MarketingStrategy{
		MarketingCopy:  "Meet the product you described: built for people who want more from every day. Try it today.",
		VisualStrategy: "Clean layouts, a warm accent colour on a neutral palette, natural light photography.",
		TargetAudience: fmt.Sprintf("Early adopters who would write a brief like this one (%d characters).", len([]rune(req.User))),
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
