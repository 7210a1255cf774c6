package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"mad-life/internal/sims/life"
	"mad-life/pkg/grid"
)

type scenario struct {
	kind    grid.Kind
	rule    string
	density float64
	seed    int64
}

func (s scenario) String() string {
	return fmt.Sprintf("grid=%s rule=%s density=%.2f seed=%d", s.kind, s.rule, s.density, s.seed)
}

type scenarioResult struct {
	scenario scenario
	outcome  life.Outcome
}

type sweepConfig struct {
	width, height int
	steps         int
	history       int
	workers       int
	kinds         []grid.Kind
	rules         []string
	densities     []float64
	seeds         int
}

func main() {
	cfg := sweepConfig{}
	flag.IntVar(&cfg.width, "w", 48, "grid width")
	flag.IntVar(&cfg.height, "h", 48, "grid height")
	flag.IntVar(&cfg.steps, "steps", 500, "generation limit per scenario")
	flag.IntVar(&cfg.history, "history", 12, "history window per scenario")
	flag.IntVar(&cfg.workers, "workers", runtime.NumCPU(), "number of worker goroutines")
	flag.IntVar(&cfg.seeds, "seeds", 4, "seeds per parameter set")
	kinds := flag.String("grids", "dense,sparse", "comma separated grid kinds")
	ruleList := flag.String("rules", "conway,highlife", "comma separated rules")
	top := flag.Int("top", 5, "number of longest runs to print")
	flag.Parse()

	for _, k := range strings.Split(*kinds, ",") {
		kind, err := grid.ParseKind(strings.TrimSpace(k))
		if err != nil {
			log.Fatal(err)
		}
		cfg.kinds = append(cfg.kinds, kind)
	}
	for _, r := range strings.Split(*ruleList, ",") {
		if r = strings.TrimSpace(r); r != "" {
			cfg.rules = append(cfg.rules, r)
		}
	}
	cfg.densities = []float64{0.1, 0.2, 0.3, 0.4, 0.5}

	sets := cfg.scenarios()
	fmt.Printf("Sweeping %d scenarios (%d workers, %d generations)\n", len(sets), cfg.workers, cfg.steps)

	start := time.Now()
	all, err := sweep(context.Background(), cfg, sets)
	if err != nil {
		log.Fatal(err)
	}
	report(os.Stdout, all, *top, time.Since(start))
}

func (c sweepConfig) scenarios() []scenario {
	var sets []scenario
	for _, kind := range c.kinds {
		for _, rule := range c.rules {
			for _, density := range c.densities {
				for seed := int64(1); seed <= int64(c.seeds); seed++ {
					sets = append(sets, scenario{kind: kind, rule: rule, density: density, seed: seed})
				}
			}
		}
	}
	return sets
}

// sweep runs every scenario on a pool of workers. Results are returned
// longest run first.
func sweep(ctx context.Context, cfg sweepConfig, sets []scenario) ([]scenarioResult, error) {
	workers := max(cfg.workers, 1)
	jobs := make(chan scenario)
	results := make(chan scenarioResult)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for _, s := range sets {
			select {
			case jobs <- s:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	workersGroup, wctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		workersGroup.Go(func() error {
			for s := range jobs {
				res, err := runScenario(wctx, cfg, s)
				if err != nil {
					return err
				}
				select {
				case results <- res:
				case <-wctx.Done():
					return wctx.Err()
				}
			}
			return nil
		})
	}
	g.Go(func() error {
		defer close(results)
		return workersGroup.Wait()
	})

	var all []scenarioResult
	for res := range results {
		all = append(all, res)
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].outcome.Generations != all[j].outcome.Generations {
			return all[i].outcome.Generations > all[j].outcome.Generations
		}
		return all[i].scenario.String() < all[j].scenario.String()
	})
	return all, nil
}

func runScenario(ctx context.Context, cfg sweepConfig, s scenario) (scenarioResult, error) {
	lc := life.DefaultConfig()
	lc.Width = cfg.width
	lc.Height = cfg.height
	lc.Grid = string(s.kind)
	lc.Rule = s.rule
	lc.Density = s.density
	lc.Seed = s.seed
	lc.MaxGenerations = cfg.steps
	if cfg.history > 0 {
		lc.History = cfg.history
	}

	l, err := life.New(lc)
	if err != nil {
		return scenarioResult{}, fmt.Errorf("%s: %w", s, err)
	}
	out, err := life.Run(ctx, l, life.Options{})
	if err != nil {
		return scenarioResult{}, fmt.Errorf("%s: %w", s, err)
	}
	return scenarioResult{scenario: s, outcome: out}, nil
}

func report(w io.Writer, all []scenarioResult, top int, elapsed time.Duration) {
	counts := map[life.Reason]int{}
	for _, res := range all {
		counts[res.outcome.Reason]++
	}
	reasons := make([]life.Reason, 0, len(counts))
	for r := range counts {
		reasons = append(reasons, r)
	}
	sort.Slice(reasons, func(i, j int) bool { return reasons[i] < reasons[j] })

	fmt.Fprintf(w, "\nOutcomes (elapsed %s):\n", elapsed.Round(time.Millisecond))
	for _, r := range reasons {
		fmt.Fprintf(w, "  %-26s %d\n", r, counts[r])
	}

	fmt.Fprintf(w, "\nTop %d longest runs:\n", top)
	for i := 0; i < len(all) && i < top; i++ {
		res := all[i]
		fmt.Fprintf(w, "%2d) %s params=%s\n", i+1, res.outcome, res.scenario)
	}
}
