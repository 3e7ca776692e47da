package generator

import (
	"context"
	"errors"
)

// Agent runs a single generation attempt: prompt, model call, response check.
type Agent struct {
	llm LLMClient
}

func NewAgent(llm LLMClient) (*Agent, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	return &Agent{llm: llm}, nil
}

// Generate assumes brief was already validated. Failures of the model call come back
// as *TransportError, unusable output as *ShapeError.
func (a *Agent) Generate(ctx context.Context, brief string) (MarketingStrategy, error) {
	req := BuildStrategyPrompt(brief)

	raw, err := a.llm.Generate(ctx, req, true)
	if err != nil {
		return MarketingStrategy{}, &TransportError{Err: err}
	}
	return ParseStrategy(raw)
}
