package movestats

import (
	"testing"

	"github.com/tengengo/mcts/internal/board"
)

func candidates() []board.Move {
	return []board.Move{
		board.PlayMove(board.Black, board.Coord{Col: 1, Row: 1}),
		board.PlayMove(board.Black, board.Coord{Col: 2, Row: 2}),
		board.PassMove(board.Black),
	}
}

func TestBestReturnsPassWhenEmpty(t *testing.T) {
	ms := New(board.Black, nil)
	if got := ms.Best(); got != board.PassMove(board.Black) {
		t.Errorf("Best() on empty stats = %v, want Pass", got)
	}
}

func TestBestPicksHighestRatio(t *testing.T) {
	cs := candidates()
	ms := New(board.Black, cs)
	ms.RecordWin(cs[0])
	ms.RecordLoss(cs[0])
	ms.RecordWin(cs[1])
	ms.RecordWin(cs[1])
	if got := ms.Best(); got != cs[1] {
		t.Errorf("Best() = %v, want %v", got, cs[1])
	}
}

func TestRecordingUnknownMovePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic recording an unknown move")
		}
	}()
	ms := New(board.Black, candidates())
	ms.RecordWin(board.PlayMove(board.White, board.Coord{Col: 9, Row: 9}))
}

func TestWinsNeverExceedPlays(t *testing.T) {
	cs := candidates()
	ms := New(board.Black, cs)
	ms.RecordWin(cs[0])
	ms.RecordLoss(cs[0])
	ms.RecordWin(cs[0])
	stat, _ := ms.Get(cs[0])
	if stat.Wins > stat.Plays {
		t.Errorf("invariant violated: wins=%d plays=%d", stat.Wins, stat.Plays)
	}
}

func TestAllWinsAllLosses(t *testing.T) {
	cs := candidates()
	ms := New(board.Black, cs)
	for _, m := range cs {
		ms.RecordWin(m)
	}
	if !ms.AllWins() {
		t.Errorf("expected AllWins() true")
	}
	if ms.AllLosses() {
		t.Errorf("expected AllLosses() false")
	}
}

func TestAllWinsAllLossesVacuouslyTrueBeforeAnyRecord(t *testing.T) {
	ms := New(board.Black, candidates())
	if !ms.AllWins() {
		t.Errorf("expected AllWins() true on a freshly constructed MoveStats")
	}
	if !ms.AllLosses() {
		t.Errorf("expected AllLosses() true on a freshly constructed MoveStats")
	}
}
