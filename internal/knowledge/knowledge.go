package knowledge

import (
	"errors"
	"fmt"
	"slices"
)

var ErrRepeatedMove = errors.New("cell has already been probed")

/*
Knowledge accumulates everything the solver has deduced about one board:
which cells were probed, which are certainly mines, which are certainly
safe, and the open sentences that tie the rest together. It is created
once per game and only ever moves forward; facts are never retracted.

AddKnowledge is the single mutating entry point. A Knowledge value is
not safe for concurrent use.
*/
type Knowledge struct {
	height, width int
	moves         map[Cell]struct{}
	mines         map[Cell]struct{}
	safes         map[Cell]struct{}
	sentences     []*Sentence
}

func New(height, width int) *Knowledge {
	return &Knowledge{
		height: height,
		width:  width,
		moves:  map[Cell]struct{}{},
		mines:  map[Cell]struct{}{},
		safes:  map[Cell]struct{}{},
	}
}

/*
AddKnowledge ingests one observation: cell was probed and turned out to
have count mines among its neighbors. The cell is recorded as a made
move and a safe cell, the observation becomes a new sentence over the
still-undetermined neighbors, and deduction then runs to a fixpoint, so
that when AddKnowledge returns no further fact can be squeezed out of
the sentences on hand.

Probing the same cell twice returns [ErrRepeatedMove]. A count that
disagrees with established knowledge (e.g. smaller than the number of
neighbors already known to be mines) returns an [AssertionError]; the
knowledge base refuses to absorb contradictory observations.
*/
func (k *Knowledge) AddKnowledge(cell Cell, count int) error {
	if _, ok := k.moves[cell]; ok {
		return fmt.Errorf("%w: %s", ErrRepeatedMove, cell)
	}
	k.moves[cell] = struct{}{}
	if _, err := k.markSafe(cell); err != nil {
		return err
	}

	/*
	 * Build a sentence over the undetermined neighbors. Neighbors
	 * already known to be mines reduce the observed count; skipping
	 * that adjustment would poison every later subset deduction.
	 */
	neighbors, knownMines := k.undeterminedNeighbors(cell)
	count -= knownMines
	if count < 0 {
		return AssertionError{fmt.Sprintf(
			"cell %s reports fewer mines than already known around it", cell,
		)}
	}
	s, err := NewSentence(neighbors, count)
	if err != nil {
		return err
	}
	if !s.Empty() && !k.hasSentence(s) {
		k.sentences = append(k.sentences, s)
	}

	return k.saturate()
}

// Mines returns all cells known to be mines, in row-major order.
func (k *Knowledge) Mines() []Cell {
	return sortedCells(k.mines)
}

// Safes returns all cells known to be safe, in row-major order.
func (k *Knowledge) Safes() []Cell {
	return sortedCells(k.safes)
}

// Moves returns all cells probed so far, in row-major order.
func (k *Knowledge) Moves() []Cell {
	return sortedCells(k.moves)
}

// SafeMoves returns the cells known safe but not yet probed.
func (k *Knowledge) SafeMoves() []Cell {
	cells := make([]Cell, 0)
	for c := range k.safes {
		if _, made := k.moves[c]; !made {
			cells = append(cells, c)
		}
	}
	slices.SortFunc(cells, cellCmp)
	return cells
}

func (k *Knowledge) IsMine(c Cell) bool {
	_, ok := k.mines[c]
	return ok
}

func (k *Knowledge) IsSafe(c Cell) bool {
	_, ok := k.safes[c]
	return ok
}

func (k *Knowledge) HasMoved(c Cell) bool {
	_, ok := k.moves[c]
	return ok
}

// Sentences returns the number of live (non-empty) sentences.
func (k *Knowledge) Sentences() int {
	n := 0
	for _, s := range k.sentences {
		if !s.Empty() {
			n++
		}
	}
	return n
}

/*
saturate drives deduction to a fixpoint: propagate simple facts, resolve
subset pairs, and repeat until one full round neither marks a cell nor
derives a sentence. Every round either shrinks total sentence membership
or adds a strictly smaller derived sentence over a finite board, so the
loop terminates.
*/
func (k *Knowledge) saturate() error {
	for {
		marked, err := k.propagateFacts()
		if err != nil {
			return err
		}
		derived, err := k.resolveSubsets()
		if err != nil {
			return err
		}
		if !marked && !derived {
			k.compact()
			return nil
		}
	}
}

/*
propagateFacts sweeps every sentence for cells it already pins down
(count zero, or count equal to set size) and marks them globally.
Marking shrinks other sentences, which can expose further facts, so
the sweep repeats until a full pass marks nothing.
*/
func (k *Knowledge) propagateFacts() (marked bool, err error) {
	for {
		any := false
		for _, s := range k.sentences {
			for _, c := range s.KnownSafes() {
				ok, err := k.markSafe(c)
				if err != nil {
					return marked, err
				}
				any = any || ok
			}
			for _, c := range s.KnownMines() {
				ok, err := k.markMine(c)
				if err != nil {
					return marked, err
				}
				any = any || ok
			}
		}
		if !any {
			return marked, nil
		}
		marked = true
	}
}

/*
resolveSubsets performs one sweep of pairwise subset resolution over a
snapshot of the current sentences. For a pair where one cell set
contains the other, the set difference must hold the count difference
in mines. A single-cell difference becomes a direct fact; a larger one
becomes a new derived sentence, appended after the sweep so the
snapshot is never mutated mid-iteration.
*/
func (k *Knowledge) resolveSubsets() (progress bool, err error) {
	snapshot := k.sentences
	var pending []*Sentence

	for i, a := range snapshot {
		for _, b := range snapshot[i+1:] {
			if a.Empty() || b.Empty() || a.Len() == b.Len() {
				continue
			}
			small, big := a, b
			if small.Len() > big.Len() {
				small, big = b, a
			}
			if !big.contains(small) {
				continue
			}

			diffCount := big.Count() - small.Count()
			if diffCount < 0 {
				return progress, AssertionError{fmt.Sprintf(
					"sentence %s contains %s but holds fewer mines", big, small,
				)}
			}
			var diff []Cell
			for _, c := range big.Cells() {
				if !small.Has(c) {
					diff = append(diff, c)
				}
			}

			if len(diff) == 1 {
				var ok bool
				switch diffCount {
				case 0:
					ok, err = k.markSafe(diff[0])
				case 1:
					ok, err = k.markMine(diff[0])
				default:
					err = AssertionError{fmt.Sprintf(
						"%d mines deduced for a single cell %s", diffCount, diff[0],
					)}
				}
				if err != nil {
					return progress, err
				}
				progress = progress || ok
				continue
			}

			derived, err := NewSentence(diff, diffCount)
			if err != nil {
				return progress, err
			}
			if !k.hasSentence(derived) && !containsSentence(pending, derived) {
				pending = append(pending, derived)
				progress = true
			}
		}
	}

	k.sentences = append(k.sentences, pending...)
	return progress, nil
}

/*
markMine records a cell as a mine and broadcasts the fact to every
sentence, so later subset resolution only ever sees up-to-date cell
sets. Reports whether the fact was new.
*/
func (k *Knowledge) markMine(c Cell) (bool, error) {
	if _, ok := k.mines[c]; ok {
		return false, nil
	}
	if _, ok := k.safes[c]; ok {
		return false, AssertionError{fmt.Sprintf(
			"cell %s deduced to be both safe and a mine", c,
		)}
	}
	k.mines[c] = struct{}{}
	for _, s := range k.sentences {
		if err := s.MarkMine(c); err != nil {
			return true, err
		}
	}
	return true, nil
}

// markSafe is the safe-cell counterpart of markMine.
func (k *Knowledge) markSafe(c Cell) (bool, error) {
	if _, ok := k.safes[c]; ok {
		return false, nil
	}
	if _, ok := k.mines[c]; ok {
		return false, AssertionError{fmt.Sprintf(
			"cell %s deduced to be both safe and a mine", c,
		)}
	}
	k.safes[c] = struct{}{}
	for _, s := range k.sentences {
		s.MarkSafe(c)
	}
	return true, nil
}

func (k *Knowledge) hasSentence(s *Sentence) bool {
	return containsSentence(k.sentences, s)
}

func containsSentence(sentences []*Sentence, s *Sentence) bool {
	for _, o := range sentences {
		if o.Equal(s) {
			return true
		}
	}
	return false
}

// compact drops sentences whose cell set has emptied out, along with
// sentences that shrank into a copy of an earlier one.
func (k *Knowledge) compact() {
	live := k.sentences[:0]
	for _, s := range k.sentences {
		if s.Empty() || containsSentence(live, s) {
			continue
		}
		live = append(live, s)
	}
	k.sentences = live
}

/*
undeterminedNeighbors collects the in-bounds neighbors of a cell whose
status is still unknown, plus the number of neighbors already known to
be mines.
*/
func (k *Knowledge) undeterminedNeighbors(cell Cell) (cells []Cell, mines int) {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			n := Cell{Row: cell.Row + dr, Col: cell.Col + dc}
			if n.Row < 0 || n.Row >= k.height || n.Col < 0 || n.Col >= k.width {
				continue
			}
			if _, ok := k.mines[n]; ok {
				mines++
			} else if _, ok := k.safes[n]; !ok {
				cells = append(cells, n)
			}
		}
	}
	return cells, mines
}

func sortedCells(set map[Cell]struct{}) []Cell {
	cells := make([]Cell, 0, len(set))
	for c := range set {
		cells = append(cells, c)
	}
	slices.SortFunc(cells, cellCmp)
	return cells
}
