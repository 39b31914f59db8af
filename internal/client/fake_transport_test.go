package client

import (
	"context"
	"sync"
)

// scriptedTransport replays a fixed sequence of results, repeating the last one.
type scriptedTransport struct {
	mu      sync.Mutex
	results []scriptedResult
	calls   []LookupRequest
}

type scriptedResult struct {
	body []byte
	err  error
}

func (s *scriptedTransport) Lookup(ctx context.Context, req LookupRequest) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, req)
	idx := len(s.calls) - 1
	if idx >= len(s.results) {
		idx = len(s.results) - 1
	}
	return s.results[idx].body, s.results[idx].err
}

func (s *scriptedTransport) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}
