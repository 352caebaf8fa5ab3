package board

// Game is an (conceptually) immutable value wrapping a Board and the
// side to move. Play yields a new Game rather than mutating in place.
type Game struct {
	board  *Board
	toMove Color
}

// NewGame creates a fresh Game on an empty board of the given size
// and komi, Black to move.
func NewGame(size int, komi float64) *Game {
	return &Game{board: NewBoard(size, komi), toMove: Black}
}

// NewGameFromBoard wraps an existing board as a Game, with the given
// color to move.
func NewGameFromBoard(b *Board, toMove Color) *Game {
	return &Game{board: b, toMove: toMove}
}

// Board exposes the underlying board for read-only queries (playout
// policy, pattern matching, rendering).
func (g *Game) Board() *Board { return g.board }

// Play plays m, returning the resulting Game, or an *IllegalMoveError
// if the board rejects it.
func (g *Game) Play(m Move) (*Game, error) {
	next, err := g.board.PlayLegalMove(m)
	if err != nil {
		return nil, err
	}
	return &Game{board: next, toMove: m.Color.Opponent()}, nil
}

// LegalMovesWithoutEyes returns every legal move for the side to move
// except plays into the mover's own eyes, plus the always-legal Pass.
func (g *Game) LegalMovesWithoutEyes() []Move {
	moves := make([]Move, 0, len(g.board.points)+1)
	moves = append(moves, PassMove(g.toMove))
	for _, c := range g.board.Vacant() {
		if g.board.IsEye(c, g.toMove) {
			continue
		}
		m := PlayMove(g.toMove, c)
		if g.board.IsLegal(m) {
			moves = append(moves, m)
		}
	}
	return moves
}

// NextPlayer returns the side to move.
func (g *Game) NextPlayer() Color { return g.toMove }

// Komi returns the board's komi.
func (g *Game) Komi() float64 { return g.board.Komi() }

// SetKomi updates the board's komi in place.
func (g *Game) SetKomi(komi float64) { g.board.SetKomi(komi) }

// Size returns the board size.
func (g *Game) Size() int { return g.board.Size() }

// Score returns the current area score for both sides.
func (g *Game) Score() (black, white float64) { return g.board.Score() }

// Winner returns the color currently ahead on score.
func (g *Game) Winner() Color { return g.board.Winner() }

// IsGameOver reports whether the game has ended (two consecutive
// passes).
func (g *Game) IsGameOver() bool { return g.board.IsGameOver() }

// Clone returns a Game with an independently-owned board, per the
// "Game value cheap-cloned into each node" ownership rule.
func (g *Game) Clone() *Game {
	return &Game{board: g.board.Clone(), toMove: g.toMove}
}
