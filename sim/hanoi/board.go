package hanoi

import (
	"errors"
	"fmt"
)

// NumPegs is the number of pegs on the board.
const NumPegs = 3

var (
	ErrPegRange    = errors.New("hanoi: peg out of range")
	ErrIllegalMove = errors.New("hanoi: disk placed on a smaller disk")
)

// Board is the logical puzzle state: one stack of disk ids per peg, bottom first.
//
// Disk ids double as sizes: a larger id is a larger disk.
type Board struct {
	disks int
	pegs  [NumPegs][]int
}

// NewBoard returns a board with every disk stacked on peg 0.
func NewBoard(disks int) *Board {
	if disks < 0 {
		disks = 0
	}
	b := &Board{disks: disks}
	for i := range b.pegs {
		b.pegs[i] = make([]int, 0, disks)
	}
	b.Reset()
	return b
}

// Reset restores the start layout.
func (b *Board) Reset() {
	for i := range b.pegs {
		b.pegs[i] = b.pegs[i][:0]
	}
	for id := b.disks - 1; id >= 0; id-- {
		b.pegs[0] = append(b.pegs[0], id)
	}
}

func (b *Board) Disks() int { return b.disks }

// Height returns the number of disks on peg.
func (b *Board) Height(peg int) int {
	if !validPeg(peg) {
		return 0
	}
	return len(b.pegs[peg])
}

// Top returns the topmost disk on peg and its height index.
func (b *Board) Top(peg int) (disk, height int, ok bool) {
	if !validPeg(peg) || len(b.pegs[peg]) == 0 {
		return 0, 0, false
	}
	h := len(b.pegs[peg]) - 1
	return b.pegs[peg][h], h, true
}

// RemoveTop pops the topmost disk off peg.
func (b *Board) RemoveTop(peg int) (int, bool) {
	disk, h, ok := b.Top(peg)
	if !ok {
		return 0, false
	}
	b.pegs[peg] = b.pegs[peg][:h]
	return disk, true
}

// CanPlace reports whether disk may go on top of peg.
func (b *Board) CanPlace(peg, disk int) error {
	if !validPeg(peg) {
		return fmt.Errorf("%w: %d", ErrPegRange, peg)
	}
	if top, _, ok := b.Top(peg); ok && top < disk {
		return fmt.Errorf("%w: disk %d onto %d (peg %d)", ErrIllegalMove, disk, top, peg)
	}
	return nil
}

// Place pushes disk onto peg.
func (b *Board) Place(peg, disk int) error {
	if err := b.CanPlace(peg, disk); err != nil {
		return err
	}
	b.pegs[peg] = append(b.pegs[peg], disk)
	return nil
}

// Solved reports whether every disk sits on peg.
func (b *Board) Solved(peg int) bool {
	return validPeg(peg) && len(b.pegs[peg]) == b.disks
}

// Pegs returns a copy of every stack, bottom first.
func (b *Board) Pegs() [NumPegs][]int {
	var out [NumPegs][]int
	for i, p := range b.pegs {
		out[i] = append([]int(nil), p...)
	}
	return out
}

func validPeg(peg int) bool { return peg >= 0 && peg < NumPegs }
