package knowledge

import (
	"fmt"
	"slices"
	"strings"
)

/*
A Sentence is a logical statement about the board: of the cells in the
set, exactly Count are mines. Cells whose status becomes known are
removed from the set as the knowledge base learns about them, so a live
sentence only ever mentions undetermined cells.
*/
type Sentence struct {
	cells map[Cell]struct{}
	count int
}

func NewSentence(cells []Cell, count int) (*Sentence, error) {
	if count < 0 || count > len(cells) {
		return nil, AssertionError{fmt.Sprintf(
			"sentence count %d outside [0, %d]", count, len(cells),
		)}
	}
	s := &Sentence{
		cells: make(map[Cell]struct{}, len(cells)),
		count: count,
	}
	for _, c := range cells {
		s.cells[c] = struct{}{}
	}
	if s.count > len(s.cells) { // duplicate input cells
		return nil, AssertionError{fmt.Sprintf(
			"sentence count %d outside [0, %d]", count, len(s.cells),
		)}
	}
	return s, nil
}

func (s *Sentence) Len() int {
	return len(s.cells)
}

func (s *Sentence) Count() int {
	return s.count
}

func (s *Sentence) Empty() bool {
	return len(s.cells) == 0
}

func (s *Sentence) Has(c Cell) bool {
	_, ok := s.cells[c]
	return ok
}

// Cells returns the member cells in row-major order.
func (s *Sentence) Cells() []Cell {
	cells := make([]Cell, 0, len(s.cells))
	for c := range s.cells {
		cells = append(cells, c)
	}
	slices.SortFunc(cells, cellCmp)
	return cells
}

// Equal reports whether two sentences have the same cell set and count.
func (s *Sentence) Equal(o *Sentence) bool {
	if s.count != o.count || len(s.cells) != len(o.cells) {
		return false
	}
	for c := range s.cells {
		if _, ok := o.cells[c]; !ok {
			return false
		}
	}
	return true
}

// contains reports whether every cell of o is a member of s.
func (s *Sentence) contains(o *Sentence) bool {
	if len(o.cells) > len(s.cells) {
		return false
	}
	for c := range o.cells {
		if _, ok := s.cells[c]; !ok {
			return false
		}
	}
	return true
}

/*
KnownMines returns all member cells when the count equals the set size
(every member must be a mine), otherwise nothing.
*/
func (s *Sentence) KnownMines() []Cell {
	if len(s.cells) > 0 && s.count == len(s.cells) {
		return s.Cells()
	}
	return nil
}

/*
KnownSafes returns all member cells when the count is zero (no member
can be a mine), otherwise nothing.
*/
func (s *Sentence) KnownSafes() []Cell {
	if s.count == 0 {
		return s.Cells()
	}
	return nil
}

/*
MarkMine removes a cell known to be a mine, decrementing the count.
Cells that are not members are ignored. Decrementing the count below
zero means some earlier deduction double-counted a mine; that is an
internal consistency failure, not a recoverable condition.
*/
func (s *Sentence) MarkMine(c Cell) error {
	if _, ok := s.cells[c]; !ok {
		return nil
	}
	if s.count == 0 {
		return AssertionError{fmt.Sprintf(
			"cell %s marked mine in a zero-count sentence %s", c, s,
		)}
	}
	delete(s.cells, c)
	s.count--
	return nil
}

// MarkSafe removes a cell known to be safe. The count is unaffected.
func (s *Sentence) MarkSafe(c Cell) {
	delete(s.cells, c)
}

func (s *Sentence) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, c := range s.Cells() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(c.String())
	}
	fmt.Fprintf(&b, "}=%d", s.count)
	return b.String()
}
