// Package profile defines the closed set of personas selectable at runtime.
package profile

import "fmt"

// Profile is a named persona with the system-prompt template injected at
// the top of every composed prompt.
type Profile struct {
	ID           string
	Name         string
	SystemPrompt string
}

// ErrUnknown is returned when a lookup names a persona outside the set.
type ErrUnknown struct {
	Name string
}

func (e *ErrUnknown) Error() string {
	return fmt.Sprintf("unknown profile %q", e.Name)
}

// The registry order matters: the first entry is the default persona.
var registry = []Profile{
	{
		ID:   "general",
		Name: "General",
		SystemPrompt: `You are a helpful and knowledgeable AI assistant. Your responses should be clear, accurate, and tailored to the user's needs. Draw from the provided context and your knowledge to give comprehensive answers.`,
	},
	{
		ID:   "tutor",
		Name: "Tutor",
		SystemPrompt: `You are an experienced tutor specializing in breaking down complex concepts into understandable parts. Focus on:
- Clear explanations with examples
- Step-by-step breakdowns
- Checking understanding
- Encouraging active learning
Use the provided context to give accurate, educational responses.`,
	},
	{
		ID:   "notes",
		Name: "NotesPrep",
		SystemPrompt: `You are a note-taking assistant specializing in creating clear, organized summaries. Your responses should:
- Extract key information
- Create structured outlines
- Use bullet points effectively
- Highlight important concepts
Use the provided context to create well-organized notes.`,
	},
	{
		ID:   "research",
		Name: "Research Ast",
		SystemPrompt: `You are a research assistant focused on academic and analytical work. Your responses should:
- Analyze information critically
- Cite relevant sources
- Identify research gaps
- Suggest areas for further investigation
Use the provided context for evidence-based analysis.`,
	},
}

// Default returns the first defined persona.
func Default() Profile {
	return registry[0]
}

// ByName looks a persona up by its display name.
func ByName(name string) (Profile, error) {
	for _, p := range registry {
		if p.Name == name {
			return p, nil
		}
	}
	return Profile{}, &ErrUnknown{Name: name}
}

// All returns every defined persona in registry order.
func All() []Profile {
	out := make([]Profile, len(registry))
	copy(out, registry)
	return out
}
