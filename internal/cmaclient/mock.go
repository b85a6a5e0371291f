package cmaclient

import (
	"context"
	"sync"
)

// MockCall records one Invoke invocation for assertions in tests.
type MockCall struct {
	Resource   string
	Method     string
	HTTPMethod string
	Args       []any
}

// MockResponse is one canned result in a MockClient's response sequence.
type MockResponse struct {
	Result any
	Err    error
}

// MockClient is a Client that returns canned responses in sequence and
// records every call it received.
type MockClient struct {
	mu        sync.Mutex
	responses []MockResponse
	calls     []MockCall
}

var _ Client = (*MockClient)(nil)

// NewMockClient builds a MockClient that returns responses in order,
// repeating the last one once exhausted.
func NewMockClient(responses ...MockResponse) *MockClient {
	return &MockClient{responses: responses}
}

func (m *MockClient) Invoke(ctx context.Context, resource, method, httpMethod string, args []any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, MockCall{Resource: resource, Method: method, HTTPMethod: httpMethod, Args: args})

	if len(m.responses) == 0 {
		return nil, nil
	}
	idx := len(m.calls) - 1
	if idx >= len(m.responses) {
		idx = len(m.responses) - 1
	}
	r := m.responses[idx]
	return r.Result, r.Err
}

// Calls returns a copy of the calls recorded so far.
func (m *MockClient) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}
