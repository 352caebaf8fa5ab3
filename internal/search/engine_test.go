package search

import (
	"context"
	"testing"
	"time"

	"github.com/tengengo/mcts/internal/board"
	"github.com/tengengo/mcts/internal/config"
	"github.com/tengengo/mcts/internal/pattern"
	"github.com/tengengo/mcts/internal/playout"
)

func newTestSim() *playout.Simulator {
	return playout.New(config.Default(), pattern.NewBuiltinMatcher())
}

func TestUCTEngineGenMoveEmitsLegalMove(t *testing.T) {
	g := board.NewGame(5, 0)
	cfg := config.Default().SetThreads(2)
	engine := NewUCTEngine(cfg, newTestSim())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	var gotMove board.Move
	var gotSims int
	done := make(chan struct{})
	engine.GenMove(ctx, board.Black, g, func(m board.Move, sims int) {
		gotMove, gotSims = m, sims
		close(done)
	})
	<-done

	if !gotMove.IsPass {
		if !g.Board().IsLegal(gotMove) {
			t.Fatalf("engine emitted illegal move %v", gotMove)
		}
	}
	if gotSims < 0 {
		t.Fatalf("negative simulation count %d", gotSims)
	}
}

func TestUCTEngineRespectsCancelledContext(t *testing.T) {
	g := board.NewGame(5, 0)
	engine := NewUCTEngine(config.Default(), newTestSim())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	finished := make(chan struct{})
	go func() {
		engine.GenMove(ctx, board.Black, g, func(board.Move, int) {})
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("GenMove did not return promptly after context cancellation")
	}
}

func TestUCTEngineOnTerminalPositionEmitsPass(t *testing.T) {
	g := board.NewGame(1, 0)
	g2, err := g.Play(board.PassMove(board.Black))
	if err != nil {
		t.Fatalf("pass: %v", err)
	}
	g3, err := g2.Play(board.PassMove(board.White))
	if err != nil {
		t.Fatalf("pass: %v", err)
	}
	if !g3.IsGameOver() {
		t.Fatal("expected game over after two consecutive passes")
	}

	engine := NewUCTEngine(config.Default(), newTestSim())
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	done := make(chan board.Move, 1)
	engine.GenMove(ctx, board.Black, g3, func(m board.Move, _ int) { done <- m })
	move := <-done
	if !move.IsPass {
		t.Fatalf("expected Pass on a terminal position, got %v", move)
	}
}

func TestAMAFEngineGenMoveEmitsLegalMove(t *testing.T) {
	g := board.NewGame(5, 0)
	engine := NewAMAFEngine(config.Default(), newTestSim())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan board.Move, 1)
	engine.GenMove(ctx, board.Black, g, func(m board.Move, _ int) { done <- m })
	move := <-done

	if !move.IsPass && !g.Board().IsLegal(move) {
		t.Fatalf("amaf engine emitted illegal move %v", move)
	}
}

func TestSelectChildPrefersUnvisited(t *testing.T) {
	g := board.NewGame(5, 0)
	root := NewRoot(g)
	if len(root.Children) < 2 {
		t.Fatal("expected root to have multiple children on an empty 5x5 board")
	}
	root.Children[0].RecordPlay()
	root.RecordPlay()

	idx := selectChild(root)
	if root.Children[idx].Plays() != 0 {
		t.Fatalf("expected selection to prefer an unvisited child, got child with %d plays", root.Children[idx].Plays())
	}
}
