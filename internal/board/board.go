package board

import "fmt"

// IllegalMoveError reports a move rejected by the board, per spec's
// IllegalMove error taxonomy entry.
type IllegalMoveError struct {
	Move   Move
	Reason string
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("board: illegal move %v: %s", e.Move, e.Reason)
}

// Board is a concrete N×N Go board: stone placement, chain/liberty
// tracking, simple-ko, eye detection and area scoring.
type Board struct {
	size       int
	komi       float64
	points     []Color
	nextPlayer Color
	koPoint    *Coord
	passes     int
}

// NewBoard creates an empty board of the given size with the given
// komi, Black to move first.
func NewBoard(size int, komi float64) *Board {
	return &Board{
		size:       size,
		komi:       komi,
		points:     make([]Color, size*size),
		nextPlayer: Black,
	}
}

// Clone deep-copies the board. Per spec's ownership note, the board is
// cheap-cloned into each search tree node.
func (b *Board) Clone() *Board {
	clone := &Board{
		size:       b.size,
		komi:       b.komi,
		points:     append([]Color(nil), b.points...),
		nextPlayer: b.nextPlayer,
		passes:     b.passes,
	}
	if b.koPoint != nil {
		kp := *b.koPoint
		clone.koPoint = &kp
	}
	return clone
}

func (b *Board) Size() int           { return b.size }
func (b *Board) Komi() float64       { return b.komi }
func (b *Board) NextPlayer() Color   { return b.nextPlayer }

// SetKomi updates the board's komi in place, per the `komi` GTP
// command's "update komi on current game" effect.
func (b *Board) SetKomi(komi float64) { b.komi = komi }

// At returns the stone color at c, or Empty if c is out of bounds.
func (b *Board) At(c Coord) Color {
	if !c.IsInside(b.size) {
		return Empty
	}
	return b.points[c.Index(b.size)]
}

func (b *Board) set(c Coord, color Color) {
	b.points[c.Index(b.size)] = color
}

// PlaceSetupStone places a stone at c bypassing legality checks, for
// SGF AB/AW setup properties which place handicap/initial stones
// outside of normal alternating play. Out-of-bounds coordinates are
// silently ignored.
func (b *Board) PlaceSetupStone(c Coord, color Color) {
	if !c.IsInside(b.size) {
		return
	}
	b.set(c, color)
}

// Vacant returns every empty point on the board, in row-major order.
func (b *Board) Vacant() []Coord {
	out := make([]Coord, 0, len(b.points))
	for i, color := range b.points {
		if color == Empty {
			out = append(out, CoordFromIndex(i, b.size))
		}
	}
	return out
}

// Neighbours returns c's orthogonal neighbours inside the board.
func (b *Board) Neighbours(c Coord) []Coord { return c.Neighbours(b.size) }

// Diagonals returns c's diagonal neighbours inside the board.
func (b *Board) Diagonals(c Coord) []Coord { return c.Diagonals(b.size) }

// chainAt flood-fills the same-colored group containing c. c must not
// be Empty.
func (b *Board) chainAt(c Coord) Chain {
	color := b.At(c)
	visited := make(map[Coord]bool)
	libSeen := make(map[Coord]bool)
	stack := []Coord{c}
	chain := Chain{ChainColor: color}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[cur] {
			continue
		}
		visited[cur] = true
		chain.ChainCoords = append(chain.ChainCoords, cur)

		for _, n := range b.Neighbours(cur) {
			switch b.At(n) {
			case Empty:
				if !libSeen[n] {
					libSeen[n] = true
					chain.ChainLiberties = append(chain.ChainLiberties, n)
				}
			case color:
				if !visited[n] {
					stack = append(stack, n)
				}
			}
		}
	}
	return chain
}

// Chains returns every chain currently on the board.
func (b *Board) Chains() []Chain {
	visited := make(map[Coord]bool)
	var chains []Chain
	for i, color := range b.points {
		if color == Empty {
			continue
		}
		c := CoordFromIndex(i, b.size)
		if visited[c] {
			continue
		}
		chain := b.chainAt(c)
		for _, cc := range chain.ChainCoords {
			visited[cc] = true
		}
		chains = append(chains, chain)
	}
	return chains
}

// ChainsOf returns only the chains belonging to color.
func (b *Board) ChainsOf(color Color) []Chain {
	all := b.Chains()
	out := all[:0:0]
	for _, ch := range all {
		if ch.ChainColor == color {
			out = append(out, ch)
		}
	}
	return out
}

// wouldCapture returns the opponent chains that a stone of color
// played at c would reduce to zero liberties, without mutating the
// board.
func (b *Board) wouldCapture(c Coord, color Color) []Chain {
	opponent := color.Opponent()
	visited := make(map[Coord]bool)
	var captured []Chain
	for _, n := range b.Neighbours(c) {
		if b.At(n) != opponent || visited[n] {
			continue
		}
		chain := b.chainAt(n)
		for _, cc := range chain.ChainCoords {
			visited[cc] = true
		}
		// Its only liberty is c (the point about to be filled).
		if chain.LibertyCount() == 1 && chain.ChainLiberties[0] == c {
			captured = append(captured, chain)
		}
	}
	return captured
}

// IsLegal reports whether m can be played: on-board, vacant, not
// simple-ko, and not suicide.
func (b *Board) IsLegal(m Move) bool {
	if m.IsPass {
		return true
	}
	c := m.At
	if !c.IsInside(b.size) || b.At(c) != Empty {
		return false
	}
	if b.koPoint != nil && *b.koPoint == c {
		return false
	}
	// Suicide check: legal if it captures something, or if the placed
	// stone's own chain keeps a liberty.
	if len(b.wouldCapture(c, m.Color)) > 0 {
		return true
	}
	tmp := b.Clone()
	tmp.set(c, m.Color)
	return tmp.chainAt(c).LibertyCount() > 0
}

// IsNotSelfAtari reports whether playing m would NOT leave the
// mover's own chain with exactly one liberty.
func (b *Board) IsNotSelfAtari(m Move) bool {
	if m.IsPass {
		return true
	}
	tmp := b.Clone()
	captured := tmp.wouldCapture(m.At, m.Color)
	tmp.set(m.At, m.Color)
	for _, ch := range captured {
		for _, cc := range ch.ChainCoords {
			tmp.set(cc, Empty)
		}
	}
	return tmp.chainAt(m.At).LibertyCount() != 1
}

// NewChainLengthLessThan reports whether the chain resulting from
// playing m would have fewer than k stones.
func (b *Board) NewChainLengthLessThan(m Move, k int) bool {
	if m.IsPass {
		return true
	}
	tmp := b.Clone()
	captured := tmp.wouldCapture(m.At, m.Color)
	tmp.set(m.At, m.Color)
	for _, ch := range captured {
		for _, cc := range ch.ChainCoords {
			tmp.set(cc, Empty)
		}
	}
	return tmp.chainAt(m.At).Len() < k
}

// IsEye reports whether c is a point surrounded entirely by color's
// stones (and, at most, on-board-edge-adjusted diagonal allowances),
// such that playing there is normally self-destructive for the
// opponent.
func (b *Board) IsEye(c Coord, color Color) bool {
	if b.At(c) != Empty {
		return false
	}
	neighbours := b.Neighbours(c)
	if len(neighbours) == 0 {
		return false
	}
	for _, n := range neighbours {
		if b.At(n) != color {
			return false
		}
	}
	diagonals := b.Diagonals(c)
	if len(diagonals) == 0 {
		return true
	}
	allowedForeign := 0
	if len(diagonals) < 4 {
		allowedForeign = 1 // edge/corner point: one off-color diagonal tolerated
	}
	foreign := 0
	for _, d := range diagonals {
		if b.At(d) != color && b.At(d) != Empty {
			foreign++
		}
	}
	return foreign <= allowedForeign
}

// PlayInMiddleOfEye checks whether m plays into a single-point eye
// (as IsEye defines it) of the opponent of m's mover and, if so,
// looks for an empty, legal orthogonal neighbour to play instead.
// Every orthogonal neighbour of such an eye is an opponent stone, so
// that search finds nothing and m is returned unchanged; larger eye
// shapes are not recognised.
func (b *Board) PlayInMiddleOfEye(m Move) Move {
	if m.IsPass {
		return m
	}
	if !b.IsEye(m.At, m.Color.Opponent()) {
		return m
	}
	for _, n := range b.Neighbours(m.At) {
		if b.At(n) == Empty && b.IsLegal(PlayMove(m.Color, n)) {
			return PlayMove(m.Color, n)
		}
	}
	return m
}

// SaveGroup returns candidate moves that would rescue chain (assumed
// to be in atari), without checking whether the rescue survives a
// ladder chase.
func (b *Board) SaveGroup(chain Chain) []Move {
	if chain.LibertyCount() != 1 {
		return nil
	}
	liberty := chain.ChainLiberties[0]
	candidates := []Coord{liberty}
	for _, n := range b.Neighbours(liberty) {
		if b.At(n) == Empty {
			candidates = append(candidates, n)
		}
	}
	var moves []Move
	seen := make(map[Coord]bool)
	for _, c := range candidates {
		if seen[c] {
			continue
		}
		seen[c] = true
		m := PlayMove(chain.ChainColor, c)
		if b.IsLegal(m) {
			moves = append(moves, m)
		}
	}
	return moves
}

// FixAtariNoLadderCheck returns the same rescue candidates as
// SaveGroup, filtered to those that leave the chain with more than
// one liberty, without simulating any chase.
func (b *Board) FixAtariNoLadderCheck(chain Chain) []Move {
	var out []Move
	for _, m := range b.SaveGroup(chain) {
		tmp := b.Clone()
		captured := tmp.wouldCapture(m.At, m.Color)
		tmp.set(m.At, m.Color)
		for _, cc := range captured {
			for _, p := range cc.ChainCoords {
				tmp.set(p, Empty)
			}
		}
		if tmp.chainAt(m.At).LibertyCount() > 1 {
			out = append(out, m)
		}
	}
	return out
}

// FixAtariLadderCheck filters SaveGroup's candidates through
// ladderSurvives. That accepts a candidate after which the chain has
// two or more liberties, so the result is the same as
// FixAtariNoLadderCheck's except where the capturing move is itself
// illegal (ko); no multi-move ladder chase is read.
func (b *Board) FixAtariLadderCheck(chain Chain) []Move {
	var out []Move
	for _, m := range b.SaveGroup(chain) {
		tmp := b.Clone()
		captured := tmp.wouldCapture(m.At, m.Color)
		tmp.set(m.At, m.Color)
		for _, cc := range captured {
			for _, p := range cc.ChainCoords {
				tmp.set(p, Empty)
			}
		}
		if tmp.ladderSurvives(tmp.chainAt(m.At), 6) {
			out = append(out, m)
		}
	}
	return out
}

// ladderSurvives reports true at once when chain has two or more
// liberties. With a single liberty the opponent plays that liberty,
// which captures the chain, so the result is false unless that move
// is illegal. A chain with two liberties is not chased further, so
// ladders are not detected.
func (b *Board) ladderSurvives(chain Chain, depth int) bool {
	for i := 0; i < depth; i++ {
		if chain.LibertyCount() >= 3 {
			return true
		}
		if chain.LibertyCount() != 1 {
			return true
		}
		// Opponent chases: plays the chain's single liberty.
		chase := PlayMove(chain.ChainColor.Opponent(), chain.ChainLiberties[0])
		if !b.IsLegal(chase) {
			return true
		}
		captured := b.wouldCapture(chase.At, chase.Color)
		b.set(chase.At, chase.Color)
		for _, cc := range captured {
			for _, p := range cc.ChainCoords {
				b.set(p, Empty)
			}
		}
		chain = b.chainAt(chain.ChainCoords[0])
		if chain.ChainColor != chase.Color.Opponent() {
			// The chasing move captured our chain outright.
			return false
		}
		if chain.LibertyCount() == 0 {
			return false
		}
		rescue := b.SaveGroup(chain)
		if len(rescue) == 0 {
			return chain.LibertyCount() > 1
		}
		m := rescue[0]
		captured = b.wouldCapture(m.At, m.Color)
		b.set(m.At, m.Color)
		for _, cc := range captured {
			for _, p := range cc.ChainCoords {
				b.set(p, Empty)
			}
		}
		chain = b.chainAt(chain.ChainCoords[0])
	}
	return chain.LibertyCount() > 1
}

// PlayLegalMove plays m on a clone of b and returns the resulting
// board. The caller must have already checked IsLegal; playing an
// illegal move is a programming error and returns an error rather
// than mutating state.
func (b *Board) PlayLegalMove(m Move) (*Board, error) {
	if !b.IsLegal(m) {
		return nil, &IllegalMoveError{Move: m, Reason: "rejected by board"}
	}
	next := b.Clone()
	next.nextPlayer = m.Color.Opponent()

	if m.IsPass {
		next.passes++
		next.koPoint = nil
		return next, nil
	}
	next.passes = 0

	captured := next.wouldCapture(m.At, m.Color)
	next.set(m.At, m.Color)
	capturedPoints := 0
	for _, ch := range captured {
		for _, cc := range ch.ChainCoords {
			next.set(cc, Empty)
			capturedPoints++
		}
	}

	placedChain := next.chainAt(m.At)
	if capturedPoints == 1 && placedChain.Len() == 1 && placedChain.LibertyCount() == 1 {
		kp := captured[0].ChainCoords[0]
		next.koPoint = &kp
	} else {
		next.koPoint = nil
	}
	return next, nil
}

// IsGameOver reports whether the game has ended: two consecutive
// passes.
func (b *Board) IsGameOver() bool { return b.passes >= 2 }

// Score computes area (Chinese) score for both sides: stones on the
// board plus territory reachable only from one color, komi applied to
// White.
func (b *Board) Score() (blackScore, whiteScore float64) {
	var blackStones, whiteStones, blackTerritory, whiteTerritory int
	visited := make(map[Coord]bool)

	for i, color := range b.points {
		c := CoordFromIndex(i, b.size)
		switch color {
		case Black:
			blackStones++
		case White:
			whiteStones++
		case Empty:
			if visited[c] {
				continue
			}
			region, borders := b.emptyRegion(c, visited)
			if borders == Black {
				blackTerritory += len(region)
			} else if borders == White {
				whiteTerritory += len(region)
			}
		}
	}

	blackScore = float64(blackStones + blackTerritory)
	whiteScore = float64(whiteStones+whiteTerritory) + b.komi
	return
}

// emptyRegion flood-fills a connected empty region starting at c,
// returning its points and the single color bordering it (Empty
// meaning the region borders both colors, i.e. neutral dame).
func (b *Board) emptyRegion(c Coord, visited map[Coord]bool) ([]Coord, Color) {
	stack := []Coord{c}
	var region []Coord
	borderColor := Empty
	mixed := false

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[cur] {
			continue
		}
		visited[cur] = true
		region = append(region, cur)

		for _, n := range b.Neighbours(cur) {
			switch b.At(n) {
			case Empty:
				if !visited[n] {
					stack = append(stack, n)
				}
			default:
				if borderColor == Empty {
					borderColor = b.At(n)
				} else if borderColor != b.At(n) {
					mixed = true
				}
			}
		}
	}
	if mixed {
		return region, Empty
	}
	return region, borderColor
}

// Winner reports the color with the higher score, or Empty on a tie.
func (b *Board) Winner() Color {
	black, white := b.Score()
	switch {
	case black > white:
		return Black
	case white > black:
		return White
	default:
		return Empty
	}
}
