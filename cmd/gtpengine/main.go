// Command gtpengine runs the GTP-like front end over stdin/stdout,
// driving a single search Engine through one Controller for the life
// of the process. Grounded on the original implementation's GTP
// driver loop (read a line, dispatch, write the response, repeat
// until quit) and on the teacher/pack's cmd-entry-point conventions
// (flag.Parse + klog.InitFlags + signal.NotifyContext for graceful
// shutdown, e.g. janpfeifer-hiveGo/cmd/compare/main.go).
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"k8s.io/klog/v2"

	"github.com/tengengo/mcts/internal/config"
	"github.com/tengengo/mcts/internal/controller"
	"github.com/tengengo/mcts/internal/gtp"
	"github.com/tengengo/mcts/internal/pattern"
	"github.com/tengengo/mcts/internal/playout"
	"github.com/tengengo/mcts/internal/search"
)

var (
	flagThreads     = flag.Int("threads", 1, "number of parallel search workers")
	flagExpandAfter = flag.Int("expand_after", 1, "minimum node visits before child expansion")
	flagEngine      = flag.String("engine", "uct", "search engine to drive: uct or amaf")
	flagLog         = flag.Bool("engine_log", false, "enable the engine's diagnostic logging")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Default().SetThreads(*flagThreads).SetExpandAfter(*flagExpandAfter).SetLog(*flagLog)
	sim := playout.New(cfg, pattern.NewBuiltinMatcher())

	var engine search.Engine
	switch *flagEngine {
	case "amaf":
		engine = search.NewAMAFEngine(cfg, sim)
	default:
		engine = search.NewUCTEngine(cfg, sim)
	}

	ctrl := controller.New(cfg, engine)
	interp := gtp.New(cfg, ctrl)

	go func() {
		<-ctx.Done()
		klog.Info("interrupted, shutting down")
		os.Exit(0)
	}()

	scanner := bufio.NewScanner(os.Stdin)
	writer := bufio.NewWriter(os.Stdout)
	defer writer.Flush()

	for scanner.Scan() {
		response, stop := interp.Handle(scanner.Text())
		if response != "" {
			fmt.Fprint(writer, response)
			writer.Flush()
		}
		if stop {
			return
		}
	}
}
