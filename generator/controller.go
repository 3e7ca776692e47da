package generator

import (
	"context"
	"errors"
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Controller owns the workflow state of one user session.
// At most one attempt is in flight; results of attempts that were reset or
// replaced are dropped.
type Controller struct {
	agent  *Agent
	logger *zap.Logger

	mu       sync.Mutex
	brief    string
	phase    Phase
	strategy *MarketingStrategy
	err      error
	token    uint64
	seq      uint64
	subs     []func(State)
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. Brief text is never logged.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

func NewController(llm LLMClient, opts ...Option) (*Controller, error) {
	agent, err := NewAgent(llm)
	if err != nil {
		return nil, err
	}
	c := &Controller{agent: agent, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Subscribe registers fn to receive a snapshot after every transition.
// fn runs on the goroutine that caused the transition, outside the lock, so
// deliveries from competing transitions may arrive out of order; compare Seq.
// fn may call back into the Controller.
func (c *Controller) Subscribe(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

// SetBrief records an edit of the brief and reports its eligibility.
func (c *Controller) SetBrief(brief string) Eligibility {
	c.mu.Lock()
	c.brief = brief
	c.mu.Unlock()
	return ValidateBrief(brief)
}

func (c *Controller) Brief() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.brief
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() State {
	s := State{Phase: c.phase, Token: c.token, Seq: c.seq}
	switch c.phase {
	case PhaseSucceeded:
		strategy := *c.strategy
		s.Strategy = &strategy
	case PhaseFailed:
		s.Err = c.err
		s.Reason = failureReason(c.err)
	}
	return s
}

// Submit runs one generation attempt for brief and blocks until the model answers.
// It fails fast with a *ValidationError when the brief is ineligible or another
// attempt is in flight; neither changes the state. Otherwise the returned error is
// the attempt's failure (nil on success), or ErrSuperseded when the controller was
// reset or resubmitted before the answer arrived.
func (c *Controller) Submit(ctx context.Context, brief string) (State, error) {
	elig := ValidateBrief(brief)

	c.mu.Lock()
	if c.phase == PhaseGenerating {
		c.mu.Unlock()
		c.logger.Debug("submit rejected: in flight")
		return c.State(), &ValidationError{
			Reason:        ErrInFlight.Error(),
			Length:        elig.Length,
			TrimmedLength: elig.TrimmedLength,
			cause:         ErrInFlight,
		}
	}
	if verr := elig.err(); verr != nil {
		c.mu.Unlock()
		c.logger.Debug("submit rejected: ineligible brief",
			zap.Int("length", elig.Length),
			zap.Int("trimmed_length", elig.TrimmedLength))
		return c.State(), verr
	}
	c.brief = brief
	c.token++
	token := c.token
	c.phase = PhaseGenerating
	c.strategy = nil
	c.err = nil
	c.seq++
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.logger.Info("generation started",
		zap.Uint64("token", token),
		zap.Int("brief_chars", utf8.RuneCountInString(brief)))
	c.publish(snap)

	strategy, err := c.agent.Generate(ctx, brief)
	return c.finish(token, strategy, err)
}

func (c *Controller) finish(token uint64, strategy MarketingStrategy, err error) (State, error) {
	c.mu.Lock()
	if c.token != token || c.phase != PhaseGenerating {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.logger.Info("stale generation result dropped",
			zap.Uint64("token", token),
			zap.Uint64("current_token", snap.Token))
		return snap, ErrSuperseded
	}
	if err != nil {
		c.phase = PhaseFailed
		c.err = err
	} else {
		c.phase = PhaseSucceeded
		c.strategy = &strategy
	}
	c.seq++
	snap := c.snapshotLocked()
	c.mu.Unlock()

	var te *TransportError
	var se *ShapeError
	switch {
	case err == nil:
		c.logger.Info("generation succeeded", zap.Uint64("token", token))
	case errors.As(err, &te):
		c.logger.Warn("generation failed: transport", zap.Uint64("token", token), zap.Error(te.Err))
	case errors.As(err, &se):
		c.logger.Warn("generation failed: response shape",
			zap.Uint64("token", token),
			zap.Stringer("kind", se.Kind),
			zap.String("field", se.Field))
	default:
		c.logger.Warn("generation failed", zap.Uint64("token", token), zap.Error(err))
	}
	c.publish(snap)
	return snap, err
}

// Reset returns to Idle and discards the brief, strategy and error.
// An in-flight attempt keeps running but its result will be ignored.
// Resetting an idle controller with an empty brief changes nothing.
func (c *Controller) Reset() State {
	c.mu.Lock()
	if c.phase == PhaseIdle && c.brief == "" {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap
	}
	if c.phase == PhaseGenerating {
		// invalidate the in-flight token
		c.token++
	}
	c.phase = PhaseIdle
	c.brief = ""
	c.strategy = nil
	c.err = nil
	c.seq++
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.logger.Info("controller reset", zap.Uint64("token", snap.Token))
	c.publish(snap)
	return snap
}

func (c *Controller) publish(s State) {
	c.mu.Lock()
	subs := append([]func(State){}, c.subs...)
	c.mu.Unlock()
	for _, fn := range subs {
		fn(s)
	}
}
