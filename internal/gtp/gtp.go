// Package gtp implements the line-oriented GTP-like front end: it
// reads whitespace-tokenized commands, dispatches them against the
// live Game and Controller, and writes "= result\n\n" / "? error\n\n"
// responses. Grounded on the original implementation's
// gtp/mod.rs GTPInterpreter (command preprocessing, the KnownCommands
// enum, and the per-command dispatch below).
package gtp

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/tengengo/mcts/internal/board"
	"github.com/tengengo/mcts/internal/config"
	"github.com/tengengo/mcts/internal/controller"
	"github.com/tengengo/mcts/internal/sgf"
)

// Name and Version are reported by the `name`/`version` commands.
const (
	Name            = "mcts-goengine"
	Version         = "0.1.0"
	ProtocolVersion = 2
)

// knownCommands is the authoritative list backing list_commands and
// known_command, in the order reported.
var knownCommands = []string{
	"boardsize",
	"clear_board",
	"final_score",
	"genmove",
	"known_command",
	"komi",
	"list_commands",
	"loadsgf",
	"name",
	"play",
	"protocol_version",
	"quit",
	"showboard",
	"time_left",
	"time_settings",
	"version",
}

var controlChars = regexp.MustCompile(`[\x00-\x08\x0b-\x1f\x7f]`)

// Interpreter holds the live Game, the shared Config, and a handle to
// the Controller driving search. One Interpreter serves one session.
type Interpreter struct {
	cfg        *config.Config
	controller *controller.Controller
	game       *board.Game
	size       int
	komi       float64
	timer      *timer
}

// New builds an Interpreter with a fresh default-sized game.
func New(cfg *config.Config, ctrl *controller.Controller) *Interpreter {
	const defaultSize = 19
	const defaultKomi = 6.5
	return &Interpreter{
		cfg:        cfg,
		controller: ctrl,
		game:       board.NewGame(defaultSize, defaultKomi),
		size:       defaultSize,
		komi:       defaultKomi,
		timer:      newTimer(),
	}
}

// Handle processes one input line and returns the full GTP-formatted
// response, including its trailing blank line. stop reports whether
// the caller (the session loop, typically cmd/gtpengine) should exit
// after writing the response.
func (ip *Interpreter) Handle(line string) (response string, stop bool) {
	input := preprocess(line)
	if input == "" {
		return "", false
	}
	fields := strings.Fields(input)
	name := fields[0]
	args := fields[1:]

	if !known(name) {
		return errorResponse(fmt.Sprintf("unknown command: %s", name)), false
	}

	switch name {
	case "name":
		return okResponse(Name), false
	case "version":
		return okResponse(Version), false
	case "protocol_version":
		return okResponse(strconv.Itoa(ProtocolVersion)), false
	case "list_commands":
		return okResponse(strings.Join(knownCommands, "\n")), false
	case "known_command":
		if len(args) < 1 {
			return okResponse("false"), false
		}
		return okResponse(strconv.FormatBool(known(args[0]))), false
	case "boardsize":
		return ip.boardsize(args), false
	case "clear_board":
		return ip.clearBoard(), false
	case "komi":
		return ip.komi(args), false
	case "genmove":
		return ip.genmove(args), false
	case "play":
		return ip.play(args), false
	case "showboard":
		return okResponse("\n" + renderBoard(ip.game.Board())), false
	case "final_score":
		return okResponse(ip.finalScore()), false
	case "time_settings":
		return ip.timeSettings(args), false
	case "time_left":
		return ip.timeLeft(args), false
	case "loadsgf":
		return ip.loadsgf(args), false
	case "quit":
		ip.controller.ShutDown()
		return okResponse(""), true
	default:
		return errorResponse("unrecognized command"), false
	}
}

func (ip *Interpreter) boardsize(args []string) string {
	if len(args) < 1 {
		return errorResponse("boardsize requires a size argument")
	}
	size, err := strconv.Atoi(args[0])
	if err != nil || size < 1 {
		return errorResponse("invalid boardsize")
	}
	ip.size = size
	ip.game = board.NewGame(ip.size, ip.komi)
	return okResponse("")
}

func (ip *Interpreter) clearBoard() string {
	ip.game = board.NewGame(ip.size, ip.komi)
	ip.timer.reset()
	ip.controller.Reset()
	return okResponse("")
}

func (ip *Interpreter) komi(args []string) string {
	if len(args) < 1 {
		return errorResponse("komi requires a float argument")
	}
	k, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return errorResponse("invalid komi")
	}
	ip.komi = k
	ip.game.SetKomi(k)
	return okResponse("")
}

func (ip *Interpreter) genmove(args []string) string {
	if len(args) < 1 {
		return errorResponse("genmove requires a color argument")
	}
	color, ok := board.ColorFromGTP(args[0])
	if !ok {
		return errorResponse("invalid color")
	}

	budget := ip.timer.budget()
	ctx, cancel := context.WithTimeout(context.Background(), budget)
	defer cancel()

	result := ip.controller.GenMove(ctx, color, ip.game)
	next, err := ip.game.Play(result.Move)
	if err != nil {
		return errorResponse(errors.Wrap(err, "genmove produced an illegal move").Error())
	}
	ip.game = next
	return okResponse(result.Move.ToGTP())
}

func (ip *Interpreter) play(args []string) string {
	if len(args) < 2 {
		return errorResponse("play requires color and vertex arguments")
	}
	color, ok := board.ColorFromGTP(args[0])
	if !ok {
		return errorResponse("invalid color")
	}
	m, err := parseMove(color, args[1])
	if err != nil {
		return errorResponse(err.Error())
	}
	next, err := ip.game.Play(m)
	if err != nil {
		return errorResponse(errors.Wrap(err, "illegal move").Error())
	}
	ip.game = next
	return okResponse("")
}

func (ip *Interpreter) finalScore() string {
	black, white := ip.game.Score()
	switch {
	case black > white:
		return fmt.Sprintf("B+%.1f", black-white)
	case white > black:
		return fmt.Sprintf("W+%.1f", white-black)
	default:
		return "0"
	}
}

func (ip *Interpreter) timeSettings(args []string) string {
	if len(args) < 3 {
		return errorResponse("time_settings requires main, byo, and stones arguments")
	}
	main, err1 := strconv.ParseUint(args[0], 10, 32)
	byo, err2 := strconv.ParseUint(args[1], 10, 32)
	stones, err3 := strconv.ParseInt(args[2], 10, 32)
	if err1 != nil || err2 != nil || err3 != nil {
		return errorResponse("invalid time_settings arguments")
	}
	ip.timer.settings(uint32(main), uint32(byo), int32(stones))
	return okResponse("")
}

// timeLeft implements `time_left color time stones`, per Open
// Question (b): the color token is always present; arguments 2 and 3
// are the remaining time (seconds) and stones.
func (ip *Interpreter) timeLeft(args []string) string {
	if len(args) < 3 {
		return errorResponse("time_left requires color, time, and stones arguments")
	}
	if _, ok := board.ColorFromGTP(args[0]); !ok {
		return errorResponse("invalid color")
	}
	seconds, err1 := strconv.ParseUint(args[1], 10, 32)
	stones, err2 := strconv.ParseInt(args[2], 10, 32)
	if err1 != nil || err2 != nil {
		return errorResponse("invalid time_left arguments")
	}
	ip.timer.update(uint32(seconds), int32(stones))
	return okResponse("")
}

func (ip *Interpreter) loadsgf(args []string) string {
	if len(args) < 1 {
		return errorResponse("loadsgf requires a path argument")
	}
	game, err := sgf.LoadFile(args[0])
	if err != nil {
		return errorResponse(errors.Wrap(err, "cannot load file").Error())
	}
	ip.game = game
	ip.size = game.Size()
	ip.komi = game.Komi()
	return okResponse("")
}

func parseMove(color board.Color, vertex string) (board.Move, error) {
	if strings.EqualFold(vertex, "pass") {
		return board.PassMove(color), nil
	}
	c, err := board.FromGTP(vertex)
	if err != nil {
		return board.Move{}, errors.Wrap(err, "malformed vertex")
	}
	return board.PlayMove(color, c), nil
}

func known(name string) bool {
	for _, c := range knownCommands {
		if c == name {
			return true
		}
	}
	return false
}

// preprocess mirrors the original's GTPInterpreter.preprocess: tabs
// become spaces, control characters are stripped, trailing comments
// (# onward) are dropped, and the result is trimmed.
func preprocess(input string) string {
	input = strings.ReplaceAll(input, "\t", " ")
	input = controlChars.ReplaceAllString(input, "")
	if idx := strings.IndexByte(input, '#'); idx >= 0 {
		input = input[:idx]
	}
	return strings.TrimSpace(input)
}

func okResponse(body string) string {
	if body == "" {
		return "=\n\n"
	}
	return "= " + body + "\n\n"
}

func errorResponse(msg string) string {
	return "? " + msg + "\n\n"
}
