package words_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/scramble/internal/words"
)

func TestLoad_Embedded(t *testing.T) {
	list, err := words.Load("")
	require.NoError(t, err)

	assert.Len(t, list, 10)
	assert.Equal(t, "opposite", list[0])
	assert.Contains(t, list, "introspection")
	assert.Contains(t, list, "dream")
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("Cat\n\n# animals\n  dog  \ncat\n"), 0o644))

	list, err := words.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "dog"}, list)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := words.Load(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestParse_DropsNonAlphabetic(t *testing.T) {
	list, err := words.Parse(strings.NewReader("ice-cream\nx2\nok\nwith space\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"ok"}, list)
}

func TestParse_Empty(t *testing.T) {
	_, err := words.Parse(strings.NewReader("# nothing here\n\n"))
	assert.True(t, errors.Is(err, words.ErrEmpty))
}
