package strategy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HartBrook/promptsmith/internal/token"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Strategy
	}{
		{"truncate", Truncate},
		{"Whitespace-Normalize", WhitespaceNormalize},
		{" contradiction-check ", ContradictionCheck},
		{"all", All},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Unknown(t *testing.T) {
	_, err := Parse("compress-harder")

	assert.Error(t, err)
}

func TestExpand_AllAlias(t *testing.T) {
	assert.Equal(t, CanonicalOrder, Expand([]Strategy{All}))
}

func TestExpand_PreservesCanonicalOrder(t *testing.T) {
	// Requested in reverse destructiveness order; output must be canonical.
	got := Expand([]Strategy{Truncate, ExampleReduce, ContradictionCheck})

	assert.Equal(t, []Strategy{ContradictionCheck, ExampleReduce, Truncate}, got)
}

func TestExpand_CollapsesDuplicates(t *testing.T) {
	got := Expand([]Strategy{Truncate, Truncate, All, WhitespaceNormalize})

	assert.Equal(t, CanonicalOrder, got)
}

func TestExpand_Empty(t *testing.T) {
	assert.Empty(t, Expand(nil))
}

func TestApply_UnknownStrategyIsNoop(t *testing.T) {
	lib := NewLibrary(token.NewEstimator(), 100)

	system, user := lib.Apply(context.Background(), Strategy("bogus"), "sys", "usr")
	assert.Equal(t, "sys", system)
	assert.Equal(t, "usr", user)
}

func TestApply_DispatchesWhitespace(t *testing.T) {
	lib := NewLibrary(token.NewEstimator(), 100)

	system, user := lib.Apply(context.Background(), WhitespaceNormalize, "a  b\n\n\n\nc", "  d  ")
	assert.Equal(t, "a b\n\nc", system)
	assert.Equal(t, "d", user)
}
