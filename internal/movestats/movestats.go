// Package movestats tracks per-move win/play counters for a single
// color to move, used by playout-only engines and reporting.
package movestats

import "github.com/tengengo/mcts/internal/board"

// MoveStat is a {wins, plays} pair. Invariant: Wins <= Plays.
type MoveStat struct {
	Wins  int
	Plays int
}

// WinRatio returns Wins/Plays, or 0 when Plays is 0.
func (s MoveStat) WinRatio() float64 {
	if s.Plays == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Plays)
}

// MoveStats maps every candidate move (for a fixed color to move) to
// its MoveStat. The move set is fixed at construction; recording only
// mutates counters of moves already present.
type MoveStats struct {
	color Color
	stats map[board.Move]*MoveStat
	order []board.Move
}

// Color is re-exported so callers don't need to import board just for
// the color type in common cases.
type Color = board.Color

// New constructs a MoveStats for color, tracking exactly the given
// candidate moves.
func New(color Color, candidates []board.Move) *MoveStats {
	ms := &MoveStats{
		color: color,
		stats: make(map[board.Move]*MoveStat, len(candidates)),
		order: append([]board.Move(nil), candidates...),
	}
	for _, m := range candidates {
		ms.stats[m] = &MoveStat{}
	}
	return ms
}

// RecordWin increments both wins and plays for m. Recording against a
// move outside the construction set is a programming error.
func (ms *MoveStats) RecordWin(m board.Move) {
	stat, ok := ms.stats[m]
	if !ok {
		panic("movestats: RecordWin on unknown move " + m.String())
	}
	stat.Wins++
	stat.Plays++
}

// RecordLoss increments plays only for m. Recording against a move
// outside the construction set is a programming error.
func (ms *MoveStats) RecordLoss(m board.Move) {
	stat, ok := ms.stats[m]
	if !ok {
		panic("movestats: RecordLoss on unknown move " + m.String())
	}
	stat.Plays++
}

// Get returns the current MoveStat for m and whether it is tracked.
func (ms *MoveStats) Get(m board.Move) (MoveStat, bool) {
	stat, ok := ms.stats[m]
	if !ok {
		return MoveStat{}, false
	}
	return *stat, true
}

// AllWins reports whether every tracked move has Wins == Plays,
// vacuously true on an empty or never-recorded move set.
func (ms *MoveStats) AllWins() bool {
	for _, m := range ms.order {
		if s := ms.stats[m]; s.Wins != s.Plays {
			return false
		}
	}
	return true
}

// AllLosses reports whether every tracked move has Wins == 0,
// vacuously true on an empty move set.
func (ms *MoveStats) AllLosses() bool {
	for _, m := range ms.order {
		if ms.stats[m].Wins != 0 {
			return false
		}
	}
	return true
}

// Best returns the tracked move with the highest win ratio, ties
// broken by construction order. Returns Pass(color) if no move was
// tracked, or none beats the implicit zero-ratio baseline.
func (ms *MoveStats) Best() board.Move {
	best := board.PassMove(ms.color)
	bestRatio := 0.0
	for _, m := range ms.order {
		if ratio := ms.stats[m].WinRatio(); ratio > bestRatio {
			bestRatio = ratio
			best = m
		}
	}
	return best
}
