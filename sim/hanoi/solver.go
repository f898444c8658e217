package hanoi

import "fmt"

// Move relocates the top disk of From onto To.
type Move struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func (m Move) String() string { return fmt.Sprintf("(%d,%d)", m.From, m.To) }

// MaxDisks bounds the puzzle size; the move list has 2^n-1 entries.
const MaxDisks = 24

// Solve returns the optimal move sequence carrying disks from peg 0 to peg 2.
func Solve(disks int) []Move {
	return SolveFrom(disks, 0, 2)
}

// SolveFrom returns the optimal move sequence carrying disks from one peg to another.
// It returns nil when there is nothing to move, the pegs are invalid or disks
// exceeds MaxDisks.
func SolveFrom(disks, from, to int) []Move {
	if disks <= 0 || disks > MaxDisks || from == to || !validPeg(from) || !validPeg(to) {
		return nil
	}
	moves := make([]Move, 0, (1<<uint(disks))-1)
	return moveStack(moves, disks, from, to)
}

func moveStack(moves []Move, n, from, to int) []Move {
	if n == 1 {
		return append(moves, Move{From: from, To: to})
	}
	other := NumPegs - from - to
	moves = moveStack(moves, n-1, from, other)
	moves = append(moves, Move{From: from, To: to})
	return moveStack(moves, n-1, other, to)
}

// MoveQueue is a FIFO of pending moves.
type MoveQueue struct {
	moves []Move
	head  int
}

// Push appends moves in order.
func (q *MoveQueue) Push(moves ...Move) {
	if q.head > 0 && q.head == len(q.moves) {
		q.moves = q.moves[:0]
		q.head = 0
	}
	q.moves = append(q.moves, moves...)
}

// Pop removes and returns the oldest move.
func (q *MoveQueue) Pop() (Move, bool) {
	if q.head >= len(q.moves) {
		return Move{}, false
	}
	m := q.moves[q.head]
	q.head++
	return m, true
}

func (q *MoveQueue) Len() int { return len(q.moves) - q.head }

func (q *MoveQueue) Clear() {
	q.moves = q.moves[:0]
	q.head = 0
}
