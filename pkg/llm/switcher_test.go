package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	name string
}

func (p *stubProvider) Chat(ctx context.Context, history []Message, options ...Option) (string, error) {
	return "chat:" + p.name, nil
}

func (p *stubProvider) Generate(ctx context.Context, prompt string, options ...Option) (string, error) {
	return "gen:" + p.name, nil
}

func newTestSwitcher(t *testing.T) *Switcher {
	t.Helper()
	s, err := NewSwitcher(map[BackendName]Provider{
		BackendGemini: &stubProvider{name: "gemini"},
		BackendOllama: &stubProvider{name: "ollama"},
	}, BackendGemini)
	require.NoError(t, err)
	return s
}

func TestNewSwitcherUnknownDefault(t *testing.T) {
	_, err := NewSwitcher(map[BackendName]Provider{
		BackendOllama: &stubProvider{name: "ollama"},
	}, BackendGemini)

	require.Error(t, err)
	var unknown *ErrUnknownProvider
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "gemini", unknown.Name)
}

func TestNewSwitcherNilBackendIsUnregistered(t *testing.T) {
	_, err := NewSwitcher(map[BackendName]Provider{
		BackendGemini: nil,
	}, BackendGemini)
	assert.Error(t, err)
}

func TestSwitcherDelegatesToCurrent(t *testing.T) {
	s := newTestSwitcher(t)

	out, err := s.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "gen:gemini", out)

	require.NoError(t, s.Switch(BackendOllama))
	assert.Equal(t, BackendOllama, s.Current())

	out, err = s.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "gen:ollama", out)

	out, err = s.Chat(context.Background(), []Message{{Role: "user", Content: "hi"}})
	require.NoError(t, err)
	assert.Equal(t, "chat:ollama", out)
}

func TestSwitchUnknownKeepsCurrent(t *testing.T) {
	s := newTestSwitcher(t)

	err := s.Switch(BackendName("gpt-99"))

	require.Error(t, err)
	var unknown *ErrUnknownProvider
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "gpt-99", unknown.Name)
	assert.Equal(t, BackendGemini, s.Current())
}

func TestSwitchUnregisteredKnownName(t *testing.T) {
	s := newTestSwitcher(t)

	// metaai is a valid name but was never registered here.
	err := s.Switch(BackendMetaAI)
	assert.Error(t, err)
	assert.Equal(t, BackendGemini, s.Current())
}
