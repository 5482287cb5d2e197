package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pserrors "github.com/HartBrook/promptsmith/internal/errors"
)

func TestStore_RegisterAndGet(t *testing.T) {
	store := NewStore()
	store.Register(&Template{Name: "summarize", System: "sys", User: "usr"})

	tpl, err := store.Get("summarize")
	require.NoError(t, err)
	assert.Equal(t, "sys", tpl.System)
}

func TestStore_GetUnregistered(t *testing.T) {
	store := NewStore()

	_, err := store.Get("missing")
	require.Error(t, err)

	var perr *pserrors.PromptsmithError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, pserrors.ErrTemplateNotFound, perr.Code)
}

func TestStore_LastRegistrationWins(t *testing.T) {
	store := NewStore()
	store.Register(&Template{Name: "summarize", System: "first"})
	store.Register(&Template{Name: "summarize", System: "second"})

	tpl, err := store.Get("summarize")
	require.NoError(t, err)
	assert.Equal(t, "second", tpl.System)
	assert.Equal(t, 1, store.Count())
}

func TestStore_ListSorted(t *testing.T) {
	store := NewStore()
	store.Register(&Template{Name: "zeta"})
	store.Register(&Template{Name: "alpha"})
	store.Register(&Template{Name: "mid"})

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, store.List())
}
