package search

import (
	"context"
	"math/rand"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"

	"github.com/tengengo/mcts/internal/board"
	"github.com/tengengo/mcts/internal/config"
	"github.com/tengengo/mcts/internal/playout"
)

// virtualLossAmount is added to a node's effective-plays denominator
// while a worker's traversal has it in flight, spreading concurrent
// workers across the tree. Matches the teacher's VirtualLoss=2.
const virtualLossAmount = 2

// EmitFunc reports a chosen move and the simulation count backing it.
// The search engine may call it more than once with improving
// estimates; the final call is authoritative.
type EmitFunc func(move board.Move, simulations int)

// Engine drives a search from a position to a chosen move.
type Engine interface {
	GenMove(ctx context.Context, color board.Color, game *board.Game, emit EmitFunc)
	Reset()
	EngineType() string
}

// UCTEngine is the tree-search engine of spec.md §4.4: Selection via
// UCT, Expansion at a visit threshold, Simulation via the heuristic
// Playout Simulator, Backpropagation with zero-sum win/play counters.
type UCTEngine struct {
	Config *config.Config
	Sim    *playout.Simulator
}

// NewUCTEngine builds a UCTEngine sharing cfg and sim.
func NewUCTEngine(cfg *config.Config, sim *playout.Simulator) *UCTEngine {
	return &UCTEngine{Config: cfg, Sim: sim}
}

// EngineType returns the engine's protocol-visible name.
func (e *UCTEngine) EngineType() string { return "uct" }

// Reset is a no-op: UCTEngine carries no state across GenMove calls,
// it builds a fresh tree every time.
func (e *UCTEngine) Reset() {}

// GenMove builds a fresh root from game and drives config.Threads
// worker goroutines against it (tree-parallel, shared root) until ctx
// is cancelled, then emits the most-visited root child.
func (e *UCTEngine) GenMove(ctx context.Context, color board.Color, game *board.Game, emit EmitFunc) {
	root := NewRoot(game)
	limiter := NewLimiter(ctx, 0)

	threads := e.Config.Threads
	if threads < 1 {
		threads = 1
	}

	g, _ := errgroup.WithContext(ctx)
	for id := 0; id < threads; id++ {
		id := id
		g.Go(func() error {
			e.searchWorker(root, limiter, id)
			return nil
		})
	}
	_ = g.Wait()

	move, plays := bestRootMove(root)
	if e.Config.Log {
		klog.V(2).InfoS("uct gen_move", "color", color, "cycles", limiter.Cycles(),
			"stop", limiter.Reason(), "move", move, "plays", plays)
	}
	emit(move, int(limiter.Cycles()))
}

// searchWorker repeatedly runs Selection -> Expansion -> Simulation ->
// Backpropagation against the shared root until limiter says stop.
func (e *UCTEngine) searchWorker(root *Node, limiter *Limiter, workerID int) {
	if root.Terminal() || len(root.Children) == 0 {
		return
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(workerID)))

	for !limiter.Stop() {
		path := e.selectAndExpand(root, rng)
		leaf := path[len(path)-1]

		result := e.Sim.Run(leaf.Game, nil, rng)

		for _, n := range path {
			n.RecordPlay()
			mover := n.Game.NextPlayer().Opponent()
			if result.Winner == mover {
				n.RecordWin()
			}
		}
		for _, n := range path[1:] {
			n.AddVirtualLoss(-virtualLossAmount)
		}

		limiter.RecordCycle()
	}
}

// selectAndExpand descends from root via UCT selection until reaching
// a leaf or an under-threshold node (Selection), expands it once the
// visit threshold is met (Expansion), and returns the full traversed
// path including the final node reached.
func (e *UCTEngine) selectAndExpand(root *Node, rng *rand.Rand) []*Node {
	path := make([]*Node, 0, 8)
	node := root
	path = append(path, node)

	for node.Expanded() && !node.Terminal() && len(node.Children) > 0 {
		idx := selectChild(node)
		child := &node.Children[idx]
		child.AddVirtualLoss(virtualLossAmount)
		node = child
		path = append(path, node)
	}

	if node.Terminal() || node.Plays() < int32(e.Config.UCT.ExpandAfter) {
		return path
	}

	if node.TryStartExpand() {
		node.BuildChildren()
		node.FinishExpand()
	} else {
		for node.Expanding() {
			runtime.Gosched()
		}
	}

	if node.Expanded() && len(node.Children) > 0 {
		idx := rng.Intn(len(node.Children))
		child := &node.Children[idx]
		child.AddVirtualLoss(virtualLossAmount)
		node = child
		path = append(path, node)
	}

	return path
}

// bestRootMove picks the most-visited root child (the teacher's
// BestChildMostVisits default), ties broken by lowest index. Returns
// Pass with zero plays if the root never expanded (already terminal).
func bestRootMove(root *Node) (board.Move, int32) {
	if len(root.Children) == 0 {
		return board.PassMove(root.Game.NextPlayer()), 0
	}
	best := 0
	bestPlays := root.Children[0].Plays()
	for i := 1; i < len(root.Children); i++ {
		if p := root.Children[i].Plays(); p > bestPlays {
			bestPlays = p
			best = i
		}
	}
	return root.Children[best].Move, bestPlays
}
