// Package playout implements the move-selection policy cascade that
// simulates a single game to completion: atari-rescue, then pattern,
// then random moves.
package playout

import (
	"math/rand"

	"github.com/tengengo/mcts/internal/board"
	"github.com/tengengo/mcts/internal/config"
	"github.com/tengengo/mcts/internal/pattern"
)

// Result is the recorded outcome of a single playout.
type Result struct {
	Moves  []board.Move
	Winner board.Color
}

// Simulator runs heuristic playouts from a given game state. Config
// and Matcher are shared read-only handles, safe to reuse across
// concurrent simulators as long as each owns its own *rand.Rand.
type Simulator struct {
	Config  *config.Config
	Matcher pattern.Matcher
}

// New builds a Simulator sharing cfg and matcher.
func New(cfg *config.Config, matcher pattern.Matcher) *Simulator {
	return &Simulator{Config: cfg, Matcher: matcher}
}

// Run plays a single game to completion from g, optionally playing
// initial first. It never fails: it terminates on game-over or the
// move cap (3*size^2) and reports the board's declared winner.
func (s *Simulator) Run(g *board.Game, initial *board.Move, rng *rand.Rand) Result {
	game := g.Clone()
	maxMoves := 3 * game.Size() * game.Size()
	var played []board.Move
	includePass := 0

	if initial != nil {
		next, err := game.Play(*initial)
		if err == nil {
			game = next
			played = append(played, *initial)
		}
	}

	for !game.IsGameOver() && len(played) < maxMoves {
		move := s.selectMove(game, played, rng, &includePass)
		next, err := game.Play(move)
		if err != nil {
			// The board rejected our own heuristic's candidate (should
			// not happen for a well-formed policy); fall back to Pass
			// to guarantee forward progress.
			move = board.PassMove(game.NextPlayer())
			next, err = game.Play(move)
			if err != nil {
				break
			}
		}
		game = next
		played = append(played, move)
	}

	return Result{Moves: played, Winner: game.Winner()}
}

// RunRandomOnly plays a single game to completion using only a
// uniform-random legal move policy (no atari-rescue, no patterns).
// Kept as the auxiliary fast policy per Open Question (c); genmove
// never uses it.
func (s *Simulator) RunRandomOnly(g *board.Game, initial *board.Move, rng *rand.Rand) Result {
	game := g.Clone()
	maxMoves := 3 * game.Size() * game.Size()
	var played []board.Move

	if initial != nil {
		next, err := game.Play(*initial)
		if err == nil {
			game = next
			played = append(played, *initial)
		}
	}

	for !game.IsGameOver() && len(played) < maxMoves {
		legal := game.LegalMovesWithoutEyes()
		move := legal[rng.Intn(len(legal))]
		next, err := game.Play(move)
		if err != nil {
			continue
		}
		game = next
		played = append(played, move)
	}

	return Result{Moves: played, Winner: game.Winner()}
}

func (s *Simulator) selectMove(g *board.Game, history []board.Move, rng *rand.Rand, includePass *int) board.Move {
	color := g.NextPlayer()
	b := g.Board()

	if s.Config.Playout.AtariCheck {
		if m, ok := s.atariRescue(b, color, rng); ok {
			return m
		}
	}

	if s.Config.Playout.UsePatterns && rng.Float64() < s.Config.Playout.PatternProbability {
		if m, ok := s.patternMove(g, history, rng); ok {
			return m
		}
	}

	return s.randomMove(g, rng, includePass)
}

// atariRescue enumerates color's chains in atari (one liberty, more
// than one stone) and, for the first one found, returns a uniformly
// random saving candidate.
func (s *Simulator) atariRescue(b *board.Board, color board.Color, rng *rand.Rand) (board.Move, bool) {
	for _, chain := range b.ChainsOf(color) {
		if chain.LibertyCount() != 1 || chain.Len() <= 1 {
			continue
		}
		var candidates []board.Move
		if s.Config.Playout.LadderCheck {
			candidates = b.FixAtariLadderCheck(chain)
		} else {
			candidates = b.FixAtariNoLadderCheck(chain)
		}
		if len(candidates) == 0 {
			return board.Move{}, false
		}
		return candidates[rng.Intn(len(candidates))], true
	}
	return board.Move{}, false
}

// patternMove builds the heuristic coord set and returns the first
// candidate that is legal and matches at least one pattern.
func (s *Simulator) patternMove(g *board.Game, history []board.Move, rng *rand.Rand) (board.Move, bool) {
	color := g.NextPlayer()
	b := g.Board()
	for _, c := range heuristicCoordSet(g, history, s.Config.Playout.LastMovesForHeuristics, rng) {
		m := board.PlayMove(color, c)
		if !b.IsLegal(m) {
			continue
		}
		if s.Matcher.MatchCount(b, c, color) >= 1 {
			return m, true
		}
	}
	return board.Move{}, false
}

// randomMove implements spec.md §4.2's random-move selection: find
// the first legal+playable vacant point, then uniformly resample
// indices (allowing Pass once self-atari forces it) until a playable
// candidate is found.
func (s *Simulator) randomMove(g *board.Game, rng *rand.Rand, includePass *int) board.Move {
	color := g.NextPlayer()
	b := g.Board()
	vacant := b.Vacant()

	first := -1
	for i, c := range vacant {
		m := board.PlayMove(color, c)
		if b.IsLegal(m) && s.playable(b, m) {
			first = i
			break
		}
	}
	if first == -1 {
		return board.PassMove(color)
	}

	for {
		span := len(vacant) - first + *includePass
		idx := first + rng.Intn(span)
		if idx >= len(vacant) {
			return board.PassMove(color)
		}
		m := board.PlayMove(color, vacant[idx])
		if !b.IsLegal(m) {
			continue
		}
		if !s.playable(b, m) {
			continue
		}
		if !b.IsNotSelfAtari(m) {
			*includePass = 1
			continue
		}
		if s.Config.Playout.PlayInMiddleOfEye {
			m = b.PlayInMiddleOfEye(m)
		}
		return m
	}
}

// playable implements spec.md §4.2's playability predicate: not the
// mover's own eye, and either not a self-atari or the resulting chain
// is small enough that dying there is tolerable.
func (s *Simulator) playable(b *board.Board, m board.Move) bool {
	if b.IsEye(m.At, m.Color) {
		return false
	}
	if b.IsNotSelfAtari(m) {
		return true
	}
	return b.NewChainLengthLessThan(m, s.Config.Playout.NoSelfAtariCutoff)
}

// heuristicCoordSet builds the pattern policy's candidate point
// order: the last k non-pass moves from history, most recent first,
// each contributing its shuffled local neighbourhood (neighbours +
// diagonals) with already-seen points skipped. Recency ordering is
// preserved across the whole list; only the per-move locality is
// randomized.
func heuristicCoordSet(g *board.Game, history []board.Move, k int, rng *rand.Rand) []board.Coord {
	size := g.Size()
	seen := make(map[board.Coord]bool)
	var coords []board.Coord

	recent := lastNonPass(history, k)
	for _, m := range recent {
		local := append([]board.Coord(nil), m.At.Neighbours(size)...)
		local = append(local, m.At.Diagonals(size)...)
		rng.Shuffle(len(local), func(i, j int) { local[i], local[j] = local[j], local[i] })
		for _, c := range local {
			if !seen[c] {
				seen[c] = true
				coords = append(coords, c)
			}
		}
	}
	return coords
}

// lastNonPass returns up to k non-pass moves from the tail of
// history, most recent first.
func lastNonPass(history []board.Move, k int) []board.Move {
	var out []board.Move
	for i := len(history) - 1; i >= 0 && len(out) < k; i-- {
		if !history[i].IsPass {
			out = append(out, history[i])
		}
	}
	return out
}
