package mines

import (
	"fmt"
	"strconv"
	"strings"
)

type CellState int8

const (
	Unknown          CellState = -2
	Flagged          CellState = -1
	CorrectlyFlagged CellState = 64
	ExplodedMine     CellState = 65
	FalselyFlagged   CellState = 66
	UnflaggedMine    CellState = 67
	/*
	 * Each item in the player grid is one of the following values:
	 *
	 * 	- 0 to 8 mean the square is open and has a surrounding mine
	 * 	  count.
	 *
	 *  - -1 means the square is flagged as a mine.
	 *
	 *  - -2 means the square is unknown.
	 *
	 * 	- 64 to 67 appear only once the game is over: a correctly
	 * 	  flagged mine, the mine that was stepped on, a flag with no
	 * 	  mine under it, and an unflagged mine.
	 */
)

func (s CellState) String() string {
	switch {
	case s == Unknown:
		return " "
	case s == Flagged || s == CorrectlyFlagged || s == UnflaggedMine:
		return "*"
	case s == ExplodedMine:
		return "X"
	case s == FalselyFlagged:
		return "x"
	case 0 <= s && s <= 8:
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

type Grid []CellState

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for row := range len(g) / width {
		for col := range width {
			i := row*width + col
			if i >= len(g) {
				break
			}
			fmt.Fprint(&b, g[i].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}
