// Package controller sits between the protocol front end and a search
// Engine: it owns the one live Engine instance, serializes requests
// onto it through a command channel, and reports the chosen move and
// simulation count back to the caller. Grounded on the original
// implementation's GTPInterpreter/EngineController split (a dedicated
// controller goroutine fed a ControllerCommand enum of
// GenMove/Reset/ShutDown over a channel).
package controller

import (
	"context"
	"time"

	"k8s.io/klog/v2"

	"github.com/tengengo/mcts/internal/board"
	"github.com/tengengo/mcts/internal/config"
	"github.com/tengengo/mcts/internal/search"
)

type commandKind int

const (
	cmdGenMove commandKind = iota
	cmdReset
	cmdShutDown
)

type command struct {
	kind  commandKind
	ctx   context.Context
	color board.Color
	game  *board.Game
	reply chan Result
}

// Result is the outcome of a GenMove request: the chosen move and the
// total simulation count backing it.
type Result struct {
	Move        board.Move
	Simulations int
}

// Controller owns one Engine and runs it on a dedicated goroutine,
// the way the teacher's EngineController loop owns one Engine per
// GTP session.
type Controller struct {
	cfg    *config.Config
	engine search.Engine
	cmds   chan command
	done   chan struct{}
}

// New starts a Controller's goroutine, ready to accept commands.
func New(cfg *config.Config, engine search.Engine) *Controller {
	c := &Controller{
		cfg:    cfg,
		engine: engine,
		cmds:   make(chan command),
		done:   make(chan struct{}),
	}
	go c.loop()
	return c
}

func (c *Controller) loop() {
	defer close(c.done)
	for cmd := range c.cmds {
		switch cmd.kind {
		case cmdGenMove:
			c.runGenMove(cmd)
		case cmdReset:
			c.engine.Reset()
		case cmdShutDown:
			return
		}
	}
}

func (c *Controller) runGenMove(cmd command) {
	startedAt := time.Now()
	var last Result
	c.engine.GenMove(cmd.ctx, cmd.color, cmd.game, func(m board.Move, simulations int) {
		last = Result{Move: m, Simulations: simulations}
	})
	c.measurePlayoutSpeed(startedAt, last.Simulations)
	cmd.reply <- last
}

func (c *Controller) measurePlayoutSpeed(startedAt time.Time, simulations int) {
	if !c.cfg.Log {
		return
	}
	elapsed := time.Since(startedAt).Seconds()
	if elapsed <= 0 {
		return
	}
	pps := float64(simulations) / elapsed
	threads := c.cfg.Threads
	if threads < 1 {
		threads = 1
	}
	klog.V(1).InfoS("playout speed", "pps", int(pps+0.5), "pps_per_thread", int(pps/float64(threads)+0.5))
}

// GenMove sends a GenMove request to the controller's engine and
// blocks for the reply. ctx governs cancellation of the search itself
// (time budget or external cancel), not the channel round-trip.
func (c *Controller) GenMove(ctx context.Context, color board.Color, game *board.Game) Result {
	reply := make(chan Result, 1)
	c.cmds <- command{kind: cmdGenMove, ctx: ctx, color: color, game: game, reply: reply}
	return <-reply
}

// Reset tells the engine to discard any retained search state.
func (c *Controller) Reset() {
	c.cmds <- command{kind: cmdReset}
}

// ShutDown stops the controller's goroutine and waits for it to exit.
// The controller must not be used afterward.
func (c *Controller) ShutDown() {
	c.cmds <- command{kind: cmdShutDown}
	<-c.done
}
