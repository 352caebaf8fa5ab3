// Package selfplay runs engine-vs-engine games to completion and
// aggregates win/draw/loss and simulation-rate statistics. Adapted
// from the teacher's pkg/bench VersusArena: concrete (non-generic)
// engines and board types in place of the teacher's MoveLike/
// NodeStatsLike/GameResult type parameters, and golang.org/x/sync/errgroup
// in place of the teacher's raw sync.WaitGroup + atomic.Bool
// "finished" flag.
package selfplay

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tengengo/mcts/internal/board"
	"github.com/tengengo/mcts/internal/search"
)

// Stats aggregates the outcome of every game an Arena ran.
type Stats struct {
	EngineAWins       int
	EngineBWins       int
	Draws             int
	FirstToMoveWins   int
	SecondToMoveWins  int
	TotalGames        int
	TotalSimulations  int64
	TotalMoves        int64
}

// AverageSimulationsPerMove returns TotalSimulations/TotalMoves, or 0
// if no moves were played.
func (s Stats) AverageSimulationsPerMove() float64 {
	if s.TotalMoves == 0 {
		return 0
	}
	return float64(s.TotalSimulations) / float64(s.TotalMoves)
}

func (s *Stats) merge(other Stats) {
	s.EngineAWins += other.EngineAWins
	s.EngineBWins += other.EngineBWins
	s.Draws += other.Draws
	s.FirstToMoveWins += other.FirstToMoveWins
	s.SecondToMoveWins += other.SecondToMoveWins
	s.TotalGames += other.TotalGames
	s.TotalSimulations += other.TotalSimulations
	s.TotalMoves += other.TotalMoves
}

// Arena pits EngineA against EngineB over many independent games,
// alternating who plays Black, distributed across NThreads workers
// each playing GamesPerWorker games.
type Arena struct {
	EngineA, EngineB search.Engine
	BoardSize        int
	Komi             float64
	MoveBudget       time.Duration
	NThreads         int
	GamesPerWorker   int
}

// New builds an Arena with the given engines and game parameters.
func New(engineA, engineB search.Engine, boardSize int, komi float64, moveBudget time.Duration, threads, gamesPerWorker int) *Arena {
	if threads < 1 {
		threads = 1
	}
	if gamesPerWorker < 1 {
		gamesPerWorker = 1
	}
	return &Arena{
		EngineA:        engineA,
		EngineB:        engineB,
		BoardSize:      boardSize,
		Komi:           komi,
		MoveBudget:     moveBudget,
		NThreads:       threads,
		GamesPerWorker: gamesPerWorker,
	}
}

// Run plays every worker's share of games and returns the aggregated
// Stats, or the first error any worker's context produced.
func (a *Arena) Run(ctx context.Context) (Stats, error) {
	var mu sync.Mutex
	var total Stats

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < a.NThreads; w++ {
		w := w
		g.Go(func() error {
			local, err := a.worker(gctx, w)
			if err != nil {
				return err
			}
			mu.Lock()
			total.merge(local)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}
	return total, nil
}

func (a *Arena) worker(ctx context.Context, workerID int) (Stats, error) {
	var local Stats

	for i := 0; i < a.GamesPerWorker; i++ {
		select {
		case <-ctx.Done():
			return local, ctx.Err()
		default:
		}

		aIsBlack := (workerID+i)%2 == 0
		result, err := a.playGame(ctx, aIsBlack)
		if err != nil {
			return local, err
		}

		local.TotalGames++
		local.TotalSimulations += result.simulations
		local.TotalMoves += result.moves

		switch {
		case result.winner == board.Empty:
			local.Draws++
		case (result.winner == board.Black) == aIsBlack:
			local.EngineAWins++
		default:
			local.EngineBWins++
		}

		if result.winner != board.Empty {
			blackWon := result.winner == board.Black
			if blackWon {
				local.FirstToMoveWins++
			} else {
				local.SecondToMoveWins++
			}
		}
	}

	return local, nil
}

type gameResult struct {
	winner      board.Color
	simulations int64
	moves       int64
}

// playGame runs one game to completion, aIsBlack deciding which
// engine plays which color, capped at 3*size^2 moves for the same
// runaway-playout reason as the Playout Simulator.
func (a *Arena) playGame(ctx context.Context, aIsBlack bool) (gameResult, error) {
	game := board.NewGame(a.BoardSize, a.Komi)
	maxMoves := 3 * a.BoardSize * a.BoardSize

	var res gameResult
	for int(res.moves) < maxMoves && !game.IsGameOver() {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}

		color := game.NextPlayer()
		engine := a.engineFor(color, aIsBlack)

		moveCtx, cancel := context.WithTimeout(ctx, a.MoveBudget)
		var move board.Move
		var simulations int
		engine.GenMove(moveCtx, color, game, func(m board.Move, sims int) {
			move, simulations = m, sims
		})
		cancel()

		next, err := game.Play(move)
		if err != nil {
			// A misbehaving engine proposed an illegal move; fall back
			// to Pass so the game still terminates.
			move = board.PassMove(color)
			next, err = game.Play(move)
			if err != nil {
				return res, err
			}
		}
		game = next
		res.moves++
		res.simulations += int64(simulations)
	}

	res.winner = game.Winner()
	return res, nil
}

func (a *Arena) engineFor(color board.Color, aIsBlack bool) search.Engine {
	if (color == board.Black) == aIsBlack {
		return a.EngineA
	}
	return a.EngineB
}
