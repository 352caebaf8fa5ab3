// Command selfplay benchmarks a search engine against itself (or UCT
// against AMAF) over many independent games and reports aggregate
// win/draw/loss and simulations-per-move statistics. The "runnable
// demo" role the teacher's examples/ directory played, aimed instead
// at this repo's actual domain. Grounded on the teacher's pkg/bench
// VersusArena and on janpfeifer-hiveGo/cmd/compare/main.go's flag and
// signal-handling conventions.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"k8s.io/klog/v2"

	"github.com/tengengo/mcts/internal/config"
	"github.com/tengengo/mcts/internal/pattern"
	"github.com/tengengo/mcts/internal/playout"
	"github.com/tengengo/mcts/internal/search"
	"github.com/tengengo/mcts/internal/selfplay"
)

var (
	flagEngineA    = flag.String("engine_a", "uct", "player A's engine: uct or amaf")
	flagEngineB    = flag.String("engine_b", "amaf", "player B's engine: uct or amaf")
	flagBoardSize  = flag.Int("board_size", 9, "board size for every game")
	flagKomi       = flag.Float64("komi", 6.5, "komi for every game")
	flagMoveBudget = flag.Duration("move_budget", 200*time.Millisecond, "per-move search budget")
	flagThreads    = flag.Int("threads", 4, "number of parallel arena workers")
	flagGames      = flag.Int("games_per_worker", 5, "games each arena worker plays")
)

func newEngine(kind string) search.Engine {
	cfg := config.Default()
	sim := playout.New(cfg, pattern.NewBuiltinMatcher())
	if kind == "amaf" {
		return search.NewAMAFEngine(cfg, sim)
	}
	return search.NewUCTEngine(cfg, sim)
}

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	arena := selfplay.New(
		newEngine(*flagEngineA),
		newEngine(*flagEngineB),
		*flagBoardSize,
		*flagKomi,
		*flagMoveBudget,
		*flagThreads,
		*flagGames,
	)

	stats, err := arena.Run(ctx)
	if err != nil {
		klog.Exitf("selfplay arena failed: %v", err)
	}

	fmt.Printf("games: %d\n", stats.TotalGames)
	fmt.Printf("engine A (%s) wins: %d\n", *flagEngineA, stats.EngineAWins)
	fmt.Printf("engine B (%s) wins: %d\n", *flagEngineB, stats.EngineBWins)
	fmt.Printf("draws: %d\n", stats.Draws)
	fmt.Printf("first-to-move wins: %d, second-to-move wins: %d\n", stats.FirstToMoveWins, stats.SecondToMoveWins)
	fmt.Printf("average simulations/move: %.1f\n", stats.AverageSimulationsPerMove())
}
