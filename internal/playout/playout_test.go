package playout

import (
	"math/rand"
	"testing"

	"github.com/tengengo/mcts/internal/board"
	"github.com/tengengo/mcts/internal/config"
	"github.com/tengengo/mcts/internal/pattern"
)

func TestRunTerminatesWithinMoveCap(t *testing.T) {
	const size = 9
	g := board.NewGame(size, 6.5)
	sim := New(config.Default(), pattern.NewBuiltinMatcher())
	rng := rand.New(rand.NewSource(1))

	result := sim.Run(g, nil, rng)
	if len(result.Moves) > 3*size*size {
		t.Errorf("playout ran %d moves, want <= %d", len(result.Moves), 3*size*size)
	}
}

func TestRunPlaysInitialMoveFirst(t *testing.T) {
	g := board.NewGame(9, 6.5)
	sim := New(config.Default(), pattern.NewBuiltinMatcher())
	rng := rand.New(rand.NewSource(2))

	initial := board.PlayMove(board.Black, board.Coord{Col: 5, Row: 5})
	result := sim.Run(g, &initial, rng)
	if len(result.Moves) == 0 || result.Moves[0] != initial {
		t.Fatalf("expected initial move %v to be played first, got %v", initial, result.Moves)
	}
}

func TestRunReportsAWinner(t *testing.T) {
	g := board.NewGame(5, 0)
	sim := New(config.Default(), pattern.NewBuiltinMatcher())
	rng := rand.New(rand.NewSource(3))

	result := sim.Run(g, nil, rng)
	if result.Winner != board.Black && result.Winner != board.White && result.Winner != board.Empty {
		t.Fatalf("unexpected winner value %v", result.Winner)
	}
}

func TestRandomOnlyPlayoutTerminates(t *testing.T) {
	const size = 7
	g := board.NewGame(size, 6.5)
	sim := New(config.Default(), pattern.NewBuiltinMatcher())
	rng := rand.New(rand.NewSource(4))

	result := sim.RunRandomOnly(g, nil, rng)
	if len(result.Moves) > 3*size*size {
		t.Errorf("random playout ran %d moves, want <= %d", len(result.Moves), 3*size*size)
	}
}
