package mines

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

type GameParams struct {
	Width     int `json:"width"`
	Height    int `json:"height"`
	MineCount int `json:"mine_count"`
}

func (p GameParams) Validate() error {
	if p.Width < 1 || p.Height < 1 {
		return fmt.Errorf("board must be at least 1x1, got %dx%d", p.Width, p.Height)
	}
	if p.MineCount < 0 || p.MineCount >= p.Width*p.Height {
		return fmt.Errorf(
			"mine count must be within [0, %d), got %d",
			p.Width*p.Height, p.MineCount,
		)
	}
	return nil
}

func (p GameParams) ValidatePosition(row, col int) bool {
	return 0 <= row && row < p.Height && 0 <= col && col < p.Width
}

func (p GameParams) String() string {
	return fmt.Sprintf("%dx%d(%d)", p.Width, p.Height, p.MineCount)
}

type GameState struct {
	Dead, Won  bool
	Grid       []bool /* real mine points */
	PlayerGrid Grid   /* player knowledge */
	OpenCount  int
	GameParams
}

func DecodeGameState(buf []byte) (*GameState, error) {
	var game GameState
	err := gob.NewDecoder(bytes.NewBuffer(buf)).Decode(&game)
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (s GameState) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(s)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

/*
NewGame places mines uniformly at random. Any cell may be a mine,
including the first one probed; the solver takes its chances exactly
like a human player would.
*/
func NewGame(params GameParams, r *rand.Rand) (*GameState, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	grid := make([]bool, params.Width*params.Height)
	candidates := make([]int, len(grid))
	for i := range candidates {
		candidates[i] = i
	}
	k := len(candidates)
	for range params.MineCount {
		i := r.IntN(k)
		grid[candidates[i]] = true
		k--
		candidates[i] = candidates[k]
	}

	playerGrid := make(Grid, len(grid))
	for i := range playerGrid {
		playerGrid[i] = Unknown
	}

	Log.WithField("params", params.String()).Debug("new game")

	return &GameState{
		GameParams: params,
		Grid:       grid,
		PlayerGrid: playerGrid,
	}, nil
}

func (s *GameState) MineAt(row, col int) bool {
	return s.Grid[row*s.Width+col]
}

/*
NeighborMines counts the mines among the up-to-8 cells adjacent to
row:col, the cell itself excluded.
*/
func (s *GameState) NeighborMines(row, col int) int {
	n := 0
	for dr := -1; dr <= 1; dr++ {
		if row+dr < 0 || row+dr >= s.Height {
			continue
		}
		for dc := -1; dc <= 1; dc++ {
			if col+dc < 0 || col+dc >= s.Width {
				continue
			}
			if dr == 0 && dc == 0 {
				continue
			}
			if s.MineAt(row+dr, col+dc) {
				n++
			}
		}
	}
	return n
}

/*
OpenCell probes a cell. On a mine it returns -1 and the game is lost;
otherwise it returns the neighboring mine count, records it on the
player grid, and flips Won once every non-mine cell is open. Cells are
opened one at a time; there is no flood fill, since deciding that a
zero-count cell's neighbors are worth opening is the solver's job.
*/
func (s *GameState) OpenCell(row, col int) int {
	i := row*s.Width + col
	if s.Grid[i] {
		s.Dead = true
		s.PlayerGrid[i] = ExplodedMine
		return -1
	}

	if s.PlayerGrid[i] == Unknown || s.PlayerGrid[i] == Flagged {
		s.OpenCount++
	}
	n := s.NeighborMines(row, col)
	s.PlayerGrid[i] = CellState(n)

	if s.OpenCount == s.Width*s.Height-s.MineCount {
		s.Won = true
		for j := range s.Grid {
			if s.Grid[j] && s.PlayerGrid[j] == Unknown {
				s.PlayerGrid[j] = UnflaggedMine
			}
		}
	}

	return n
}

func (s *GameState) FlagCell(row, col int) {
	i := row*s.Width + col
	if s.PlayerGrid[i] == Unknown {
		s.PlayerGrid[i] = Flagged
	}
}

func (s *GameState) Forfeit() {
	if !(s.Dead || s.Won) {
		s.Dead = true
	}
	s.RevealPlayerGrid()
}

func (s *GameState) RevealPlayerGrid() {
	for i := range s.Grid {
		switch s.PlayerGrid[i] {
		case Flagged:
			if s.Grid[i] {
				s.PlayerGrid[i] = CorrectlyFlagged
			} else {
				s.PlayerGrid[i] = FalselyFlagged
			}
		case Unknown:
			if s.Grid[i] {
				s.PlayerGrid[i] = UnflaggedMine
			} else {
				s.PlayerGrid[i] = CellState(s.NeighborMines(i/s.Width, i%s.Width))
			}
		}
	}
}
