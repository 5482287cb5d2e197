package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemplate(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "summarize.yaml", "name: summarize\nsystem: sys\nuser: usr\n")
	writeTemplate(t, dir, "answer.yml", "name: answer\nsystem: sys\nuser: usr\n")
	writeTemplate(t, dir, "notes.txt", "not a template")

	store := NewStore()
	require.NoError(t, LoadDirectory(store, dir))

	assert.Equal(t, []string{"answer", "summarize"}, store.List())
}

func TestLoadDirectory_Recursive(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "extraction")
	require.NoError(t, os.MkdirAll(sub, 0755))
	writeTemplate(t, sub, "entities.yaml", "name: entities\nsystem: sys\nuser: usr\n")

	store := NewStore()
	require.NoError(t, LoadDirectory(store, dir))

	assert.Equal(t, 1, store.Count())
}

func TestLoadDirectory_CollectsParseErrors(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "good.yaml", "name: good\nsystem: sys\nuser: usr\n")
	writeTemplate(t, dir, "broken.yaml", "name: [unclosed")

	store := NewStore()
	err := LoadDirectory(store, dir)
	require.Error(t, err)

	var parseErrs *ParseErrors
	require.ErrorAs(t, err, &parseErrs)
	assert.Len(t, parseErrs.Errors, 1)

	// Good template still loaded
	assert.Equal(t, 1, store.Count())
}

func TestLoadDirectory_MissingDirectory(t *testing.T) {
	store := NewStore()

	assert.NoError(t, LoadDirectory(store, filepath.Join(t.TempDir(), "absent")))
	assert.Equal(t, 0, store.Count())
}
