package gtp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tengengo/mcts/internal/config"
	"github.com/tengengo/mcts/internal/controller"
	"github.com/tengengo/mcts/internal/pattern"
	"github.com/tengengo/mcts/internal/playout"
	"github.com/tengengo/mcts/internal/search"
)

func newTestInterpreter(t *testing.T) *Interpreter {
	t.Helper()
	cfg := config.Default().SetThreads(2)
	sim := playout.New(cfg, pattern.NewBuiltinMatcher())
	engine := search.NewUCTEngine(cfg, sim)
	ctrl := controller.New(cfg, engine)
	t.Cleanup(ctrl.ShutDown)
	return New(cfg, ctrl)
}

func TestNameAndVersion(t *testing.T) {
	ip := newTestInterpreter(t)
	resp, stop := ip.Handle("name")
	require.False(t, stop)
	require.Equal(t, "= "+Name+"\n\n", resp)

	resp, _ = ip.Handle("version")
	require.Equal(t, "= "+Version+"\n\n", resp)
}

func TestListCommandsListsExactlySixteen(t *testing.T) {
	ip := newTestInterpreter(t)
	resp, _ := ip.Handle("list_commands")
	body := strings.TrimSuffix(strings.TrimPrefix(resp, "= "), "\n\n")
	lines := strings.Split(body, "\n")
	require.Len(t, lines, 16)
}

func TestKnownCommand(t *testing.T) {
	ip := newTestInterpreter(t)
	resp, _ := ip.Handle("known_command genmove")
	require.Equal(t, "= true\n\n", resp)

	resp, _ = ip.Handle("known_command bogus")
	require.Equal(t, "= false\n\n", resp)
}

func TestUnknownCommandReportsError(t *testing.T) {
	ip := newTestInterpreter(t)
	resp, stop := ip.Handle("frobnicate")
	require.False(t, stop)
	require.True(t, strings.HasPrefix(resp, "? "))
}

func TestBoardsizeKomiAndPlay(t *testing.T) {
	ip := newTestInterpreter(t)

	resp, _ := ip.Handle("boardsize 9")
	require.Equal(t, "=\n\n", resp)

	resp, _ = ip.Handle("komi 6.5")
	require.Equal(t, "=\n\n", resp)

	resp, _ = ip.Handle("play b D4")
	require.Equal(t, "=\n\n", resp)

	resp, _ = ip.Handle("showboard")
	require.True(t, strings.HasPrefix(resp, "= \n"))
	require.Contains(t, resp, "D")
}

func TestPlaySameVertexTwiceIsIllegalSecondTime(t *testing.T) {
	ip := newTestInterpreter(t)
	ip.Handle("boardsize 9")

	resp, _ := ip.Handle("play b A1")
	require.Equal(t, "=\n\n", resp)

	resp, _ = ip.Handle("play w A1")
	require.True(t, strings.HasPrefix(resp, "? "))
}

func TestGenmoveReturnsALegalVertex(t *testing.T) {
	ip := newTestInterpreter(t)
	ip.Handle("boardsize 9")
	ip.Handle("komi 6.5")
	ip.Handle("time_settings 1 0 1")

	resp, _ := ip.Handle("genmove b")
	require.True(t, strings.HasPrefix(resp, "= "))
	vertex := strings.TrimSpace(strings.TrimPrefix(resp, "="))
	require.NotEmpty(t, vertex)
}

func TestQuitShutsDownAndSignalsStop(t *testing.T) {
	cfg := config.Default()
	sim := playout.New(cfg, pattern.NewBuiltinMatcher())
	engine := search.NewUCTEngine(cfg, sim)
	ctrl := controller.New(cfg, engine)
	ip := New(cfg, ctrl)

	resp, stop := ip.Handle("quit")
	require.True(t, stop)
	require.Equal(t, "=\n\n", resp)
}
