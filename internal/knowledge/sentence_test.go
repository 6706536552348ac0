package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSentence(t *testing.T, cells []Cell, count int) *Sentence {
	t.Helper()
	s, err := NewSentence(cells, count)
	require.NoError(t, err)
	return s
}

func TestNewSentenceRejectsBadCount(t *testing.T) {
	cells := []Cell{{0, 0}, {0, 1}}

	_, err := NewSentence(cells, -1)
	assert.Error(t, err)

	_, err = NewSentence(cells, 3)
	assert.Error(t, err)

	_, err = NewSentence(nil, 0)
	assert.NoError(t, err)
}

func TestSentenceKnownMines(t *testing.T) {
	s := mustSentence(t, []Cell{{0, 0}, {0, 1}, {1, 1}}, 3)

	assert.Equal(t, []Cell{{0, 0}, {0, 1}, {1, 1}}, s.KnownMines())
	assert.Empty(t, s.KnownSafes())

	// no side effects: asking twice gives the same answer
	assert.Equal(t, []Cell{{0, 0}, {0, 1}, {1, 1}}, s.KnownMines())
}

func TestSentenceKnownSafes(t *testing.T) {
	s := mustSentence(t, []Cell{{2, 0}, {2, 1}}, 0)

	assert.Equal(t, []Cell{{2, 0}, {2, 1}}, s.KnownSafes())
	assert.Empty(t, s.KnownMines())
	assert.Equal(t, []Cell{{2, 0}, {2, 1}}, s.KnownSafes())
}

func TestSentenceUndetermined(t *testing.T) {
	s := mustSentence(t, []Cell{{0, 0}, {0, 1}, {0, 2}}, 1)

	assert.Empty(t, s.KnownMines())
	assert.Empty(t, s.KnownSafes())
}

func TestSentenceMarkMine(t *testing.T) {
	s := mustSentence(t, []Cell{{0, 0}, {0, 1}, {0, 2}}, 2)

	require.NoError(t, s.MarkMine(Cell{0, 1}))
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 1, s.Count())
	assert.False(t, s.Has(Cell{0, 1}))

	// non-member is a no-op
	require.NoError(t, s.MarkMine(Cell{5, 5}))
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 1, s.Count())
}

func TestSentenceMarkMineUnderflow(t *testing.T) {
	s := mustSentence(t, []Cell{{0, 0}, {0, 1}}, 0)

	err := s.MarkMine(Cell{0, 0})
	assert.Error(t, err)
	assert.IsType(t, AssertionError{}, err)
}

func TestSentenceMarkSafe(t *testing.T) {
	s := mustSentence(t, []Cell{{0, 0}, {0, 1}, {0, 2}}, 1)

	s.MarkSafe(Cell{0, 0})
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 1, s.Count())

	s.MarkSafe(Cell{9, 9})
	assert.Equal(t, 2, s.Len())
}

func TestSentenceEqualIgnoresOrder(t *testing.T) {
	a := mustSentence(t, []Cell{{0, 0}, {1, 1}, {2, 2}}, 1)
	b := mustSentence(t, []Cell{{2, 2}, {0, 0}, {1, 1}}, 1)
	c := mustSentence(t, []Cell{{2, 2}, {0, 0}, {1, 1}}, 2)

	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))
	assert.False(t, a.Equal(c))
}
