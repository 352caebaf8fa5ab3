// Package pattern defines the 3×3 local-shape matcher the playout
// policy consults, as a query interface per spec — this package
// ships one small built-in table so the repo runs without an external
// pattern database.
package pattern

import "github.com/tengengo/mcts/internal/board"

// Matcher reports how many known patterns match the local 3×3
// neighbourhood of coord, assuming color is about to play there. It
// must be safe to call on any on-board coord, including edges and
// corners.
type Matcher interface {
	MatchCount(b *board.Board, coord board.Coord, color board.Color) int
}

// shape is a 3×3 local pattern described by neighbour counts rather
// than a cell-by-cell template: it matches a point that has at least
// one enemy orthogonal neighbour, at least minAllyOrtho ally
// orthogonal neighbours and at least minEnemyDiag enemy diagonal
// neighbours. Off-board cells are not counted.
type shape struct {
	name         string
	minAllyOrtho int
	minEnemyDiag int
}

// BuiltinMatcher is a minimal, hand-authored table of two common
// tactical shapes (hane and cut-point) good
// enough to bias the playout policy toward locally contested points
// without depending on an external pattern database.
type BuiltinMatcher struct {
	shapes []shape
}

// NewBuiltinMatcher constructs the default pattern table.
func NewBuiltinMatcher() *BuiltinMatcher {
	return &BuiltinMatcher{
		shapes: []shape{
			// Hane: at least one enemy orthogonal neighbour and at
			// least one enemy diagonal neighbour. The number of enemy
			// orthogonal neighbours is not capped, so a fully
			// surrounded point also matches.
			{name: "hane", minEnemyDiag: 1},
			// Cut point, approximated as at least one enemy orthogonal
			// neighbour and at least one ally orthogonal neighbour. A
			// single enemy orthogonal neighbour is enough, and whether
			// the enemy stones are connected is not checked.
			{name: "cut", minAllyOrtho: 1},
		},
	}
}

func (m *BuiltinMatcher) MatchCount(b *board.Board, coord board.Coord, color board.Color) int {
	enemy := color.Opponent()
	var allyOrtho, enemyOrtho, enemyDiag int
	for _, n := range b.Neighbours(coord) {
		switch b.At(n) {
		case color:
			allyOrtho++
		case enemy:
			enemyOrtho++
		}
	}
	for _, d := range b.Diagonals(coord) {
		if b.At(d) == enemy {
			enemyDiag++
		}
	}

	count := 0
	for _, s := range m.shapes {
		if enemyOrtho == 0 {
			continue
		}
		if allyOrtho < s.minAllyOrtho {
			continue
		}
		if enemyDiag < s.minEnemyDiag {
			continue
		}
		count++
	}
	return count
}

// Null is a Matcher that never reports a match; useful when pattern
// play is disabled by configuration.
type Null struct{}

func (Null) MatchCount(*board.Board, board.Coord, board.Color) int { return 0 }
