package gtp

import "time"

// timer tracks the external time budget consumed by genmove, per
// spec.md §5's "timer lives outside the core" boundary: the core only
// ever sees a context.Context deadline derived from it. Grounded on
// the original's Timer (main/byo-yomi/stones), trimmed to the fields
// time_settings/time_left actually drive.
type timer struct {
	main     time.Duration
	byoyomi  time.Duration
	stones   int
	remain   time.Duration
	perMove  time.Duration
}

// newTimer starts with a conservative per-move budget used until
// time_settings configures something else.
func newTimer() *timer {
	return &timer{perMove: 5 * time.Second}
}

// settings implements time_settings main byo stones (seconds).
func (t *timer) settings(mainSeconds, byoSeconds uint32, stones int32) {
	t.main = time.Duration(mainSeconds) * time.Second
	t.byoyomi = time.Duration(byoSeconds) * time.Second
	t.stones = int(stones)
	t.remain = t.main
	t.recomputePerMove()
}

// update implements time_left time stones (seconds remaining, moves
// left in the current period).
func (t *timer) update(seconds uint32, stones int32) {
	t.remain = time.Duration(seconds) * time.Second
	t.stones = int(stones)
	t.recomputePerMove()
}

func (t *timer) recomputePerMove() {
	if t.stones > 0 && t.remain > 0 {
		t.perMove = t.remain / time.Duration(t.stones)
		return
	}
	if t.remain > 0 {
		// Sudden-death remainder: budget one move at a conservative
		// fraction of what's left so a single genmove can't exhaust it.
		t.perMove = t.remain / 20
	}
}

// reset restores the default per-move budget, per clear_board.
func (t *timer) reset() {
	*t = *newTimer()
}

// budget returns the duration the next genmove may run for.
func (t *timer) budget() time.Duration {
	if t.perMove <= 0 {
		return 5 * time.Second
	}
	return t.perMove
}
