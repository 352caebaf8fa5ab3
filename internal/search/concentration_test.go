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

// Scenario 6: on a fixed empty board, root visit counts should
// concentrate rather than spread evenly — the most-visited child
// should draw meaningfully more visits than the per-child average.
func TestRootVisitsConcentrateOnBestChild(t *testing.T) {
	g := board.NewGame(9, 6.5)
	cfg := config.Default().SetThreads(4)
	engine := NewUCTEngine(cfg, playout.New(cfg, pattern.NewBuiltinMatcher()))

	ctx, cancel := context.WithTimeout(context.Background(), 400*time.Millisecond)
	defer cancel()

	// Drive the same worker loop GenMove uses directly, against a root
	// this test can inspect afterward.
	root := NewRoot(g)
	limiter := NewLimiter(ctx, 0)
	done := make(chan struct{})
	for w := 0; w < cfg.Threads; w++ {
		w := w
		go func() {
			engine.searchWorker(root, limiter, w)
			if w == 0 {
				close(done)
			}
		}()
	}
	<-done
	<-time.After(10 * time.Millisecond) // let other workers settle past cancellation

	if len(root.Children) == 0 {
		t.Fatal("expected root to have children")
	}

	var total int32
	var maxPlays int32
	for i := range root.Children {
		p := root.Children[i].Plays()
		total += p
		if p > maxPlays {
			maxPlays = p
		}
	}
	average := float64(total) / float64(len(root.Children))
	if float64(maxPlays) < average*2 {
		t.Fatalf("expected visits to concentrate: max plays %d, average %.2f", maxPlays, average)
	}
}
