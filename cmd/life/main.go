package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"mad-life/internal/app"
	"mad-life/internal/core"
	"mad-life/internal/sims/life"
	"mad-life/pkg/grid"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	quiet := flag.Bool("quiet", false, "do not draw generations, only report the outcome")
	fast := flag.Bool("fast", false, "run as fast as possible instead of at -tps")
	flag.Parse()

	if err := run(cfg, *quiet, *fast); err != nil {
		log.Fatal(err)
	}
}

func run(cfg *app.Config, quiet, fast bool) error {
	sim, err := cfg.Build()
	if err != nil {
		return err
	}
	l, ok := sim.(*life.Life)
	if !ok {
		return fmt.Errorf("sim %q cannot be run headless", sim.Name())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := life.Options{Logger: log.Default()}
	if !fast {
		opts.Pace = core.NewFixedStep(cfg.TPS)
	}
	if !quiet {
		opts.Renderer = terminal(bufio.NewWriter(os.Stdout))
	}

	_, err = life.Run(ctx, l, opts)
	return err
}

// terminal clears the screen and prints every generation.
func terminal(w *bufio.Writer) life.Renderer {
	return life.RendererFunc(func(g grid.Grid, generation int, _ *grid.Diff) error {
		fmt.Fprint(w, "\x1b[2J\x1b[H")
		fmt.Fprintf(w, "Generation %d  population %d\n", generation, g.Population())
		fmt.Fprint(w, grid.Format(g))
		return w.Flush()
	})
}
