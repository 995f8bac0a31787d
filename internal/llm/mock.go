package llm

import "context"

// MockClient returns canned responses for tests. When Err is set it is
// returned instead; otherwise responses are served in order, repeating the
// last one when exhausted.
type MockClient struct {
	Responses []string
	Err       error
	Calls     []string
	idx       int
}

// Generate records the prompt and returns the next canned response.
func (m *MockClient) Generate(ctx context.Context, system, prompt string) (string, error) {
	m.Calls = append(m.Calls, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Responses) == 0 {
		return "", nil
	}
	resp := m.Responses[min(m.idx, len(m.Responses)-1)]
	m.idx++
	return resp, nil
}
