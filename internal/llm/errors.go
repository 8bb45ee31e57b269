package llm

import "fmt"

// ProviderError wraps a failure returned by an LLM or embedding provider
type ProviderError struct {
	Provider Provider
	Op       string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s %s failed: %v", e.Provider, e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func providerErr(p Provider, op string, err error) error {
	return &ProviderError{Provider: p, Op: op, Err: err}
}
