package generator

import (
	"context"
	"net/http"
	"time"
)

// LLMClient abstracts the model provider so it can be swapped or mocked.
// structured asks the provider to bias the model toward JSON output matching
// req.Schema; callers still validate the result.
type LLMClient interface {
	Generate(ctx context.Context, req Request, structured bool) (string, error)
}

// LLMSettings is the provider-independent configuration for a client.
type LLMSettings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
	Timeout  time.Duration

	// HTTPClient overrides the provider SDK's default client when set.
	HTTPClient *http.Client
}
