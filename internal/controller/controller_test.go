package controller

import (
	"context"
	"testing"
	"time"

	"github.com/tengengo/mcts/internal/board"
	"github.com/tengengo/mcts/internal/config"
	"github.com/tengengo/mcts/internal/search"
)

// stubEngine always emits a fixed move and records Reset/GenMove calls,
// standing in for a real search.Engine so these tests don't depend on
// search timing.
type stubEngine struct {
	move        board.Move
	simulations int
	resets      int
	genMoves    int
}

func (s *stubEngine) GenMove(ctx context.Context, color board.Color, game *board.Game, emit search.EmitFunc) {
	s.genMoves++
	emit(s.move, s.simulations)
}

func (s *stubEngine) Reset() { s.resets++ }

func (s *stubEngine) EngineType() string { return "stub" }

func TestControllerGenMoveReturnsEngineResult(t *testing.T) {
	stub := &stubEngine{move: board.PassMove(board.Black), simulations: 42}
	c := New(config.Default(), stub)
	defer c.ShutDown()

	g := board.NewGame(9, 6.5)
	result := c.GenMove(context.Background(), board.Black, g)

	if result.Move != stub.move {
		t.Fatalf("got move %v, want %v", result.Move, stub.move)
	}
	if result.Simulations != 42 {
		t.Fatalf("got simulations %d, want 42", result.Simulations)
	}
	if stub.genMoves != 1 {
		t.Fatalf("engine.GenMove called %d times, want 1", stub.genMoves)
	}
}

func TestControllerResetForwardsToEngine(t *testing.T) {
	stub := &stubEngine{}
	c := New(config.Default(), stub)
	defer c.ShutDown()

	c.Reset()
	// Reset is sent on an unbuffered channel to the controller's own
	// goroutine; round-trip through another command to know it landed.
	c.GenMove(context.Background(), board.Black, board.NewGame(9, 6.5))

	if stub.resets != 1 {
		t.Fatalf("engine.Reset called %d times, want 1", stub.resets)
	}
}

func TestControllerShutDownStopsLoop(t *testing.T) {
	stub := &stubEngine{}
	c := New(config.Default(), stub)

	done := make(chan struct{})
	go func() {
		c.ShutDown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("ShutDown did not return promptly")
	}
}
