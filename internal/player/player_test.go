package player

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"govel.dev/sweeper/internal/knowledge"
	"govel.dev/sweeper/internal/mines"
)

func newTestGame(t *testing.T, width, height int, mineCells ...int) *mines.GameState {
	t.Helper()
	grid := make([]bool, width*height)
	for _, i := range mineCells {
		grid[i] = true
	}
	playerGrid := make(mines.Grid, len(grid))
	for i := range playerGrid {
		playerGrid[i] = mines.Unknown
	}
	return &mines.GameState{
		GameParams: mines.GameParams{
			Width: width, Height: height, MineCount: len(mineCells),
		},
		Grid:       grid,
		PlayerGrid: playerGrid,
	}
}

func TestPlayDeducesSingleMine(t *testing.T) {
	// 3x3 board, one mine in the corner. After a free opening probe
	// every further move is forced by deduction: the solver opens all
	// eight safe cells, flags the mine and wins without guessing.
	game := newTestGame(t, 3, 3, 8)
	p := New(game, rand.New(rand.NewPCG(1, 2)))

	count := game.OpenCell(0, 0)
	require.Equal(t, 0, count)
	require.NoError(t, p.KB.AddKnowledge(knowledge.Cell{Row: 0, Col: 0}, count))

	moves, err := p.Play(context.Background())
	require.NoError(t, err)

	assert.True(t, game.Won)
	assert.False(t, game.Dead)
	assert.Equal(t, []knowledge.Cell{{Row: 2, Col: 2}}, p.KB.Mines())
	for _, m := range moves {
		assert.Equal(t, MoveSafe, m.Kind, "move %s was a guess", m.Cell)
	}
	assert.Equal(t, mines.Flagged, game.PlayerGrid[8])
}

func TestPlayMineFreeBoard(t *testing.T) {
	game := newTestGame(t, 4, 4)
	p := New(game, rand.New(rand.NewPCG(1, 2)))

	moves, err := p.Play(context.Background())
	require.NoError(t, err)

	assert.True(t, game.Won)
	require.NotEmpty(t, moves)
	assert.Equal(t, MoveRandom, moves[0].Kind)
	for _, m := range moves[1:] {
		assert.Equal(t, MoveSafe, m.Kind)
	}
}

func TestNoCellIsProbedTwice(t *testing.T) {
	game := newTestGame(t, 5, 5, 7, 13, 21)
	p := New(game, rand.New(rand.NewPCG(5, 6)))

	moves, _ := p.Play(context.Background())

	seen := map[knowledge.Cell]bool{}
	for _, m := range moves {
		assert.False(t, seen[m.Cell], "cell %s probed twice", m.Cell)
		seen[m.Cell] = true
	}
}

func TestStepOnMine(t *testing.T) {
	// the only cell is a mine; the forced guess loses the game
	game := newTestGame(t, 1, 1, 0)
	p := New(game, rand.New(rand.NewPCG(1, 2)))

	move, err := p.Step()
	require.NoError(t, err)

	assert.Equal(t, MoveRandom, move.Kind)
	assert.Equal(t, -1, move.Count)
	assert.True(t, game.Dead)
}

func TestStepAfterGameOver(t *testing.T) {
	game := newTestGame(t, 1, 1, 0)
	p := New(game, rand.New(rand.NewPCG(1, 2)))

	_, err := p.Step()
	require.NoError(t, err)

	_, err = p.Step()
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestPlayHonorsContext(t *testing.T) {
	game := newTestGame(t, 8, 8, 3)
	p := New(game, rand.New(rand.NewPCG(1, 2)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Play(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStateRoundTrip(t *testing.T) {
	game := newTestGame(t, 3, 3, 8)
	p := New(game, rand.New(rand.NewPCG(1, 2)))
	_, err := p.Step()
	require.NoError(t, err)

	buf, err := p.State().Bytes()
	require.NoError(t, err)

	state, err := DecodeState(buf)
	require.NoError(t, err)

	restored := Restore(state, rand.New(rand.NewPCG(1, 2)))
	assert.Equal(t, p.Game.PlayerGrid, restored.Game.PlayerGrid)
	assert.Equal(t, p.KB.Moves(), restored.KB.Moves())
	assert.Equal(t, p.Moves, restored.Moves)
}
