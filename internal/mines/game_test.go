package mines

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGameParamsValidation(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))

	tests := []struct {
		name   string
		params GameParams
		ok     bool
	}{
		{"9x9(10)", GameParams{Width: 9, Height: 9, MineCount: 10}, true},
		{"1x1(0)", GameParams{Width: 1, Height: 1, MineCount: 0}, true},
		{"zero width", GameParams{Width: 0, Height: 9, MineCount: 1}, false},
		{"all mines", GameParams{Width: 3, Height: 3, MineCount: 9}, false},
		{"negative mines", GameParams{Width: 3, Height: 3, MineCount: -1}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewGame(test.params, r)
			if test.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestNewGamePlacesExactMineCount(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	game, err := NewGame(GameParams{Width: 16, Height: 16, MineCount: 40}, r)
	require.NoError(t, err)

	mines := 0
	for _, m := range game.Grid {
		if m {
			mines++
		}
	}
	assert.Equal(t, 40, mines)
}

func TestNeighborMines(t *testing.T) {
	game := &GameState{
		GameParams: GameParams{Width: 3, Height: 3, MineCount: 2},
		Grid: []bool{
			false, true, false,
			false, false, false,
			false, false, true,
		},
	}

	assert.Equal(t, 1, game.NeighborMines(0, 0))
	assert.Equal(t, 1, game.NeighborMines(1, 0))
	assert.Equal(t, 2, game.NeighborMines(1, 1))
	assert.Equal(t, 2, game.NeighborMines(1, 2))
	assert.Equal(t, 0, game.NeighborMines(2, 2)) // the mine itself is excluded
}

func TestOpenCell(t *testing.T) {
	newGame := func() *GameState {
		return &GameState{
			GameParams: GameParams{Width: 3, Height: 3, MineCount: 1},
			Grid: []bool{
				false, false, false,
				false, false, false,
				false, false, true,
			},
			PlayerGrid: Grid{
				Unknown, Unknown, Unknown,
				Unknown, Unknown, Unknown,
				Unknown, Unknown, Unknown,
			},
		}
	}

	t.Run("safe cell returns its count", func(t *testing.T) {
		game := newGame()
		assert.Equal(t, 0, game.OpenCell(0, 0))
		assert.Equal(t, 1, game.OpenCell(1, 1))
		assert.False(t, game.Dead)
		assert.Equal(t, CellState(1), game.PlayerGrid[4])
	})

	t.Run("mine kills", func(t *testing.T) {
		game := newGame()
		assert.Equal(t, -1, game.OpenCell(2, 2))
		assert.True(t, game.Dead)
		assert.False(t, game.Won)
		assert.Equal(t, ExplodedMine, game.PlayerGrid[8])
	})

	t.Run("opening all safe cells wins", func(t *testing.T) {
		game := newGame()
		for row := range 3 {
			for col := range 3 {
				if !game.MineAt(row, col) {
					game.OpenCell(row, col)
				}
			}
		}
		assert.True(t, game.Won)
		assert.False(t, game.Dead)
		assert.Equal(t, UnflaggedMine, game.PlayerGrid[8])
	})

	t.Run("reopening does not double count", func(t *testing.T) {
		game := newGame()
		game.OpenCell(0, 0)
		game.OpenCell(0, 0)
		assert.Equal(t, 1, game.OpenCount)
	})
}

func TestForfeitRevealsGrid(t *testing.T) {
	game := &GameState{
		GameParams: GameParams{Width: 2, Height: 2, MineCount: 1},
		Grid:       []bool{true, false, false, false},
		PlayerGrid: Grid{Unknown, Flagged, Unknown, Unknown},
	}

	game.Forfeit()

	assert.True(t, game.Dead)
	assert.Equal(t, UnflaggedMine, game.PlayerGrid[0])
	assert.Equal(t, FalselyFlagged, game.PlayerGrid[1])
	assert.Equal(t, CellState(1), game.PlayerGrid[2])
	assert.Equal(t, CellState(1), game.PlayerGrid[3])
}

func TestGameStateGobRoundTrip(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	game, err := NewGame(GameParams{Width: 9, Height: 9, MineCount: 10}, r)
	require.NoError(t, err)
	game.OpenCell(4, 4)

	buf, err := game.Bytes()
	require.NoError(t, err)

	restored, err := DecodeGameState(buf)
	require.NoError(t, err)
	assert.Equal(t, game.GameParams, restored.GameParams)
	assert.Equal(t, game.Grid, restored.Grid)
	assert.Equal(t, game.PlayerGrid, restored.PlayerGrid)
	assert.Equal(t, game.OpenCount, restored.OpenCount)
}
