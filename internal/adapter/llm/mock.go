package llm

import (
	"context"
	"strings"
	"sync"
)

// Mock is a scripted LLM for tests. Rules match a substring of the user
// prompt; the first matching rule wins. Unmatched prompts return "{}".
type Mock struct {
	mu    sync.Mutex
	rules []mockRule
	calls int
}

type mockRule struct {
	substr   string
	response string
	err      error
}

// NewMock creates an empty scripted model.
func NewMock() *Mock {
	return &Mock{}
}

// Respond returns response for any prompt containing substr.
func (m *Mock) Respond(substr, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rules = append(m.rules, mockRule{substr: substr, response: response})
}

// FailWith returns err for any prompt containing substr.
func (m *Mock) FailWith(substr string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rules = append(m.rules, mockRule{substr: substr, err: err})
}

func (m *Mock) Chat(_ context.Context, _, userPrompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	for _, r := range m.rules {
		if strings.Contains(userPrompt, r.substr) {
			if r.err != nil {
				return "", r.err
			}
			return r.response, nil
		}
	}
	return "{}", nil
}

func (m *Mock) ModelName() string {
	return "mock"
}

// Calls returns how many Chat calls the mock has served.
func (m *Mock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
