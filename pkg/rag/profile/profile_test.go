package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsGeneral(t *testing.T) {
	p := Default()
	assert.Equal(t, "General", p.Name)
	assert.NotEmpty(t, p.SystemPrompt)
}

func TestByName(t *testing.T) {
	for _, name := range []string{"General", "Tutor", "NotesPrep", "Research Ast"} {
		p, err := ByName(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, p.Name)
		assert.NotEmpty(t, p.SystemPrompt)
	}
}

func TestByNameUnknown(t *testing.T) {
	_, err := ByName("Pirate")

	require.Error(t, err)
	var unknown *ErrUnknown
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "Pirate", unknown.Name)
}

func TestByNameIsCaseSensitive(t *testing.T) {
	_, err := ByName("general")
	assert.Error(t, err)
}

func TestAllReturnsCopy(t *testing.T) {
	all := All()
	require.Len(t, all, 4)

	all[0].Name = "mutated"
	assert.Equal(t, "General", Default().Name)
}
