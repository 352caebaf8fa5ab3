package search

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"

	"github.com/tengengo/mcts/internal/board"
	"github.com/tengengo/mcts/internal/config"
	"github.com/tengengo/mcts/internal/movestats"
	"github.com/tengengo/mcts/internal/playout"
)

// AMAFEngine is the flat, tree-less All-Moves-As-First variant:
// candidate moves are the root's legal-non-eye moves, playouts start
// from a uniformly chosen candidate, and every move the playout
// actually played — not only the first — is credited to MoveStats if
// it is one of those candidates. Moves outside the candidate set,
// including every move of the other color, are not credited.
// Grounded on the original implementation's AmafMcEngine.
type AMAFEngine struct {
	Config *config.Config
	Sim    *playout.Simulator
}

// NewAMAFEngine builds an AMAFEngine sharing cfg and sim.
func NewAMAFEngine(cfg *config.Config, sim *playout.Simulator) *AMAFEngine {
	return &AMAFEngine{Config: cfg, Sim: sim}
}

// EngineType returns the engine's protocol-visible name.
func (e *AMAFEngine) EngineType() string { return "amaf" }

// Reset is a no-op: AMAFEngine carries no state across GenMove calls.
func (e *AMAFEngine) Reset() {}

// GenMove runs independent playouts, each started from a uniformly
// chosen root candidate, crediting every played move that is a root
// candidate to a single flat MoveStats, until ctx is cancelled.
func (e *AMAFEngine) GenMove(ctx context.Context, color board.Color, game *board.Game, emit EmitFunc) {
	candidates := game.LegalMovesWithoutEyes()
	stats := movestats.New(color, candidates)
	if len(candidates) == 0 {
		emit(board.PassMove(color), 0)
		return
	}

	limiter := NewLimiter(ctx, 0)
	threads := e.Config.Threads
	if threads < 1 {
		threads = 1
	}

	var mu sync.Mutex
	g, _ := errgroup.WithContext(ctx)
	for id := 0; id < threads; id++ {
		id := id
		g.Go(func() error {
			e.worker(game, color, candidates, stats, &mu, limiter, id)
			return nil
		})
	}
	_ = g.Wait()

	move := stats.Best()
	if e.Config.Log {
		klog.V(2).InfoS("amaf gen_move", "color", color, "cycles", limiter.Cycles(),
			"stop", limiter.Reason(), "move", move)
	}
	emit(move, int(limiter.Cycles()))
}

func (e *AMAFEngine) worker(game *board.Game, color board.Color, candidates []board.Move, stats *movestats.MoveStats, mu *sync.Mutex, limiter *Limiter, workerID int) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(workerID)))

	for !limiter.Stop() {
		initial := candidates[rng.Intn(len(candidates))]
		result := e.Sim.Run(game, &initial, rng)

		mu.Lock()
		won := result.Winner == color
		for _, m := range result.Moves {
			// Only root-candidate moves are tracked; a playout visits
			// both colors and later board positions, most of which
			// fall outside the fixed construction set.
			if _, tracked := stats.Get(m); !tracked {
				continue
			}
			if won {
				stats.RecordWin(m)
			} else {
				stats.RecordLoss(m)
			}
		}
		mu.Unlock()

		limiter.RecordCycle()
	}
}
