package generator

import (
	"time"

	"go.uber.org/zap"
)

// Session is one user's workspace. It exclusively owns its Controller.
type Session struct {
	ID        string
	CreatedAt time.Time
	*Controller
}

// NewSession creates an idle session backed by llm.
func NewSession(id string, llm LLMClient, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctrl, err := NewController(llm, WithLogger(logger.With(zap.String("session", id))))
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:         id,
		CreatedAt:  time.Now(),
		Controller: ctrl,
	}, nil
}
