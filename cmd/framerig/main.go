// Command framerig runs the built-in capture verification scenarios
// headless and prints their reports.
//
// Exit status is non-zero when any scenario records a failed check;
// skipped scenarios (missing renderer capability) count as success.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/gogpu/framerig"
	"github.com/gogpu/framerig/scenario"
	"github.com/gogpu/framerig/sim/render"
)

func main() {
	var (
		configPath = flag.String("config", "", "TOML scenario config file (optional)")
		renderer   = flag.String("renderer", "", "renderer name (default: best available)")
		verbose    = flag.Bool("v", false, "enable debug logging")
		list       = flag.Bool("list", false, "list registered renderers and exit")
	)
	flag.Parse()

	if *list {
		for _, name := range render.Available() {
			fmt.Println(name)
		}
		return
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	framerig.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	cfg := scenario.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = scenario.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}
	if *renderer != "" {
		cfg.Renderer = *renderer
	}

	reports := scenario.RunAll(context.Background(), cfg, scenario.Suite()...)

	failed := false
	for _, rep := range reports {
		fmt.Print(rep.String())
		if rep.Failed() {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}
