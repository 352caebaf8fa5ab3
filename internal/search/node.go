// Package search implements the MCTS search tree node and the
// search engines (UCT, AMAF) that drive it.
package search

import (
	"sync/atomic"

	"github.com/tengengo/mcts/internal/board"
)

const (
	expandStateIdle uint32 = iota
	expandStateExpanding
	expandStateExpanded
)

// Node is a search tree node: the Game resulting from the move that
// led here, the move itself (absent for the root), and atomic
// wins/plays counters. Children are exclusively owned by their
// parent — a strict tree, no back-references.
type Node struct {
	Game     *board.Game
	Move     board.Move
	HasMove  bool
	Children []Node

	plays       int32
	wins        int32
	virtualLoss int32
	expandState uint32
}

// NewRoot creates a node with no leading move, pre-expanded per
// spec.md §4.3. A root whose game is already over is left unexpanded
// (no legal moves to expand into); callers must check Terminal().
func NewRoot(game *board.Game) *Node {
	root := &Node{Game: game}
	if !root.Terminal() {
		root.expand()
	}
	return root
}

func newChild(move board.Move, game *board.Game) Node {
	return Node{Game: game, Move: move, HasMove: true}
}

// Plays returns the node's completed-simulation count.
func (n *Node) Plays() int32 { return atomic.LoadInt32(&n.plays) }

// Wins returns the node's recorded-win count.
func (n *Node) Wins() int32 { return atomic.LoadInt32(&n.wins) }

// WinRatio returns Wins()/Plays(), or 0 when Plays() is 0. Wins are
// loaded before plays so a concurrent RecordPlay/RecordWin pair can
// never make the loaded wins exceed the loaded plays.
func (n *Node) WinRatio() float64 {
	wins := n.Wins()
	plays := n.Plays()
	if plays == 0 {
		return 0
	}
	return float64(wins) / float64(plays)
}

// RecordPlay bumps the play counter by one. Must be called before
// RecordWin on the same simulation so the wins<=plays invariant never
// observes a transient violation.
func (n *Node) RecordPlay() { atomic.AddInt32(&n.plays, 1) }

// RecordWin bumps the win counter by one.
func (n *Node) RecordWin() { atomic.AddInt32(&n.wins, 1) }

// AddVirtualLoss adds delta to the transient virtual-loss counter
// used to spread concurrent workers across the tree during selection.
// It is never reflected in Plays()/Wins().
func (n *Node) AddVirtualLoss(delta int32) { atomic.AddInt32(&n.virtualLoss, delta) }

// EffectivePlays returns Plays() plus any outstanding virtual loss,
// used as the UCT selection denominator so concurrent workers don't
// pile onto the same unsettled leaf.
func (n *Node) EffectivePlays() int32 {
	return atomic.LoadInt32(&n.plays) + atomic.LoadInt32(&n.virtualLoss)
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Terminal reports whether the underlying game is over.
func (n *Node) Terminal() bool { return n.Game.IsGameOver() }

// Expanded reports whether expansion has completed.
func (n *Node) Expanded() bool {
	return atomic.LoadUint32(&n.expandState) == expandStateExpanded
}

// Expanding reports whether another goroutine is currently building
// this node's children.
func (n *Node) Expanding() bool {
	return atomic.LoadUint32(&n.expandState) == expandStateExpanding
}

// TryStartExpand CAS-transitions idle -> expanding, returning whether
// this caller won the race and must now call BuildChildren then
// FinishExpand. A losing caller must instead wait for Expanded().
func (n *Node) TryStartExpand() bool {
	return atomic.CompareAndSwapUint32(&n.expandState, expandStateIdle, expandStateExpanding)
}

// FinishExpand marks expansion complete. Must only be called by the
// goroutine that won TryStartExpand.
func (n *Node) FinishExpand() {
	atomic.StoreUint32(&n.expandState, expandStateExpanded)
}

// BuildChildren builds this node's children: a Pass child first, then
// one child per legal-non-eye move, per spec.md §4.3. Must only be
// called by the goroutine that won TryStartExpand, and never on a
// terminal node (an internal invariant violation — panics).
func (n *Node) BuildChildren() int {
	if n.Terminal() {
		panic("search: BuildChildren called on a terminal node")
	}

	moves := n.Game.LegalMovesWithoutEyes()
	n.Children = make([]Node, len(moves))
	for i, m := range moves {
		next, err := n.Game.Play(m)
		if err != nil {
			// LegalMovesWithoutEyes only returns moves the board
			// itself reports legal; a rejection here means the board
			// implementation disagrees with itself — an internal
			// invariant violation.
			panic("search: BuildChildren: board rejected its own legal move " + m.String())
		}
		n.Children[i] = newChild(m, next)
	}
	return len(n.Children)
}

// expand is the synchronous, single-threaded form used for the root
// (always expanded eagerly at construction, before any worker starts).
func (n *Node) expand() int {
	if !n.TryStartExpand() {
		return 0
	}
	defer n.FinishExpand()
	return n.BuildChildren()
}
