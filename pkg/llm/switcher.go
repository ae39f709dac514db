package llm

import (
	"context"
	"fmt"
	"sync"
)

// BackendName is the closed set of selectable LLM backends.
type BackendName string

const (
	BackendGemini BackendName = "gemini"
	BackendOllama BackendName = "ollama"
	BackendMetaAI BackendName = "metaai"
)

// ErrUnknownProvider is returned when a switch names a backend outside the
// closed set.
type ErrUnknownProvider struct {
	Name string
}

func (e *ErrUnknownProvider) Error() string {
	return fmt.Sprintf("unknown llm provider %q", e.Name)
}

// Switcher holds the registered backends and the current selection. It is a
// Provider itself, delegating every call to the selected backend, so the
// orchestrator never deals with backend names directly.
type Switcher struct {
	mu       sync.RWMutex
	backends map[BackendName]Provider
	current  BackendName
}

// NewSwitcher registers the given backends and selects def as current.
// Backends mapped to nil are treated as unregistered.
func NewSwitcher(backends map[BackendName]Provider, def BackendName) (*Switcher, error) {
	registered := make(map[BackendName]Provider, len(backends))
	for name, p := range backends {
		if p != nil {
			registered[name] = p
		}
	}
	if _, ok := registered[def]; !ok {
		return nil, &ErrUnknownProvider{Name: string(def)}
	}
	return &Switcher{
		backends: registered,
		current:  def,
	}, nil
}

// Switch selects a different backend. Unknown names fail without changing
// the current selection.
func (s *Switcher) Switch(name BackendName) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.backends[name]; !ok {
		return &ErrUnknownProvider{Name: string(name)}
	}
	s.current = name
	return nil
}

// Current returns the currently selected backend name.
func (s *Switcher) Current() BackendName {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Switcher) provider() Provider {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.backends[s.current]
}

func (s *Switcher) Chat(ctx context.Context, history []Message, options ...Option) (string, error) {
	return s.provider().Chat(ctx, history, options...)
}

func (s *Switcher) Generate(ctx context.Context, prompt string, options ...Option) (string, error) {
	return s.provider().Generate(ctx, prompt, options...)
}
