package generator

import (
	"context"
	"sync"
)

// staticLLM answers every call with the same raw text or error.
type staticLLM struct {
	raw string
	err error

	mu    sync.Mutex
	calls []Request
	flags []bool
}

func (s *staticLLM) Generate(_ context.Context, req Request, structured bool) (string, error) {
	s.mu.Lock()
	s.calls = append(s.calls, req)
	s.flags = append(s.flags, structured)
	s.mu.Unlock()
	return s.raw, s.err
}

type reply struct {
	raw string
	err error
}

type pendingCall struct {
	req   Request
	reply chan reply
}

// gatedLLM parks every call until the test answers it.
type gatedLLM struct {
	calls chan *pendingCall
}

func newGatedLLM() *gatedLLM {
	return &gatedLLM{calls: make(chan *pendingCall)}
}

func (g *gatedLLM) Generate(ctx context.Context, req Request, _ bool) (string, error) {
	pc := &pendingCall{req: req, reply: make(chan reply, 1)}
	select {
	case g.calls <- pc:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	select {
	case r := <-pc.reply:
		return r.raw, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

type submitResult struct {
	state State
	err   error
}

func submitAsync(ctx context.Context, c *Controller, brief string) <-chan submitResult {
	out := make(chan submitResult, 1)
	go func() {
		s, err := c.Submit(ctx, brief)
		out <- submitResult{state: s, err: err}
	}()
	return out
}
