package player

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"math/rand/v2"

	"github.com/sirupsen/logrus"

	"govel.dev/sweeper/internal/knowledge"
	"govel.dev/sweeper/internal/mines"
)

var Log = logrus.New()

var (
	ErrGameOver = errors.New("game is already over")
	ErrNoMoves  = errors.New("no cells left to probe")
)

type MoveKind string

const (
	MoveSafe   MoveKind = "safe"   // deduced safe by the knowledge base
	MoveRandom MoveKind = "random" // a guess among undetermined cells
)

type Move struct {
	Cell  knowledge.Cell `json:"cell"`
	Kind  MoveKind       `json:"kind"`
	Count int            `json:"count"` // -1 when the move hit a mine
}

/*
Player drives one game to its end: every turn it asks the knowledge
base for a certainly-safe cell, falls back to a uniform guess among
undetermined cells, probes, and feeds the observation back in. Mines
the knowledge base becomes certain of get flagged on the player grid
as they are deduced.
*/
type Player struct {
	Game  *mines.GameState
	KB    *knowledge.Knowledge
	Moves []Move
	rnd   *rand.Rand
}

func New(game *mines.GameState, r *rand.Rand) *Player {
	return &Player{
		Game: game,
		KB:   knowledge.New(game.Height, game.Width),
		rnd:  r,
	}
}

/*
SafeMove returns the first known-safe unprobed cell in row-major
order. Deterministic on purpose: given the same knowledge the solver
always plays the same move.
*/
func (p *Player) SafeMove() (knowledge.Cell, bool) {
	safes := p.KB.SafeMoves()
	if len(safes) == 0 {
		return knowledge.Cell{}, false
	}
	return safes[0], true
}

/*
RandomMove picks uniformly among cells that are neither probed nor
known mines. False means the board is exhausted: nothing is left that
could legally be probed.
*/
func (p *Player) RandomMove() (knowledge.Cell, bool) {
	var candidates []knowledge.Cell
	for row := range p.Game.Height {
		for col := range p.Game.Width {
			c := knowledge.Cell{Row: row, Col: col}
			if p.KB.IsMine(c) || p.KB.HasMoved(c) {
				continue
			}
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return knowledge.Cell{}, false
	}
	return candidates[p.rnd.IntN(len(candidates))], true
}

/*
Step plays one turn. It returns the move made, or [ErrGameOver] /
[ErrNoMoves] when there is no turn to play. A move that steps on a
mine is a normal outcome: the game is lost, the move is returned and
no observation is ingested. Any other error is an inference failure
and means the knowledge base can no longer be trusted.
*/
func (p *Player) Step() (*Move, error) {
	if p.Game.Dead || p.Game.Won {
		return nil, ErrGameOver
	}

	cell, kind := knowledge.Cell{}, MoveSafe
	cell, ok := p.SafeMove()
	if !ok {
		kind = MoveRandom
		if cell, ok = p.RandomMove(); !ok {
			return nil, ErrNoMoves
		}
	}

	count := p.Game.OpenCell(cell.Row, cell.Col)
	move := Move{Cell: cell, Kind: kind, Count: count}
	p.Moves = append(p.Moves, move)

	if count < 0 {
		Log.WithFields(logrus.Fields{
			"cell": cell, "kind": kind,
		}).Info("stepped on a mine")
		return &move, nil
	}

	if err := p.KB.AddKnowledge(cell, count); err != nil {
		return &move, err
	}
	for _, m := range p.KB.Mines() {
		p.Game.FlagCell(m.Row, m.Col)
	}

	Log.WithFields(logrus.Fields{
		"cell":  cell,
		"kind":  kind,
		"count": count,
		"safes": len(p.KB.SafeMoves()),
		"mines": len(p.KB.Mines()),
	}).Debug("move made")

	return &move, nil
}

/*
Play drives the game to a win, a loss or an exhausted board and
returns the moves made during this call.
*/
func (p *Player) Play(ctx context.Context) ([]Move, error) {
	var moves []Move
	for !p.Game.Dead && !p.Game.Won {
		if err := ctx.Err(); err != nil {
			return moves, err
		}
		move, err := p.Step()
		if errors.Is(err, ErrNoMoves) {
			break
		}
		if move != nil {
			moves = append(moves, *move)
		}
		if err != nil {
			return moves, err
		}
	}
	return moves, nil
}

/*
State is the serializable snapshot of a solver session, stored as a
gob blob by the repository layer.
*/
type State struct {
	Game  *mines.GameState
	KB    *knowledge.Knowledge
	Moves []Move
}

func (p *Player) State() *State {
	return &State{Game: p.Game, KB: p.KB, Moves: p.Moves}
}

func Restore(s *State, r *rand.Rand) *Player {
	return &Player{Game: s.Game, KB: s.KB, Moves: s.Moves, rnd: r}
}

func DecodeState(buf []byte) (*State, error) {
	var s State
	if err := gob.NewDecoder(bytes.NewBuffer(buf)).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s State) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
