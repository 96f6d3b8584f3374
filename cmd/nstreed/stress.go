package main

import (
	"fmt"
	"math/rand"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/nbtaylor/nstree/nstree"
)

func newStressCmd() *cobra.Command {
	var (
		workers    int
		opsPerWork int
		scenario   string
	)
	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Exercise a fresh namespace with concurrent workloads",
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := loadTree()
			if err != nil {
				return err
			}
			switch scenario {
			case "move":
				return runMoveScenario(tr)
			case "race":
				return runMoveRace(tr)
			case "random":
				return runRandomWorkload(tr, workers, opsPerWork)
			case "all":
				if err := runMoveScenario(tr); err != nil {
					return err
				}
				if err := runMoveRace(nstree.New()); err != nil {
					return err
				}
				return runRandomWorkload(nstree.New(), workers, opsPerWork)
			default:
				return fmt.Errorf("unknown scenario %q (want move, race, random, or all)", scenario)
			}
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 50, "number of creator/remover/lister/mover goroutines in the random scenario")
	cmd.Flags().IntVar(&opsPerWork, "ops-per-worker", 20, "operations each random-scenario goroutine performs")
	cmd.Flags().StringVar(&scenario, "scenario", "all", "scenario to run: move, race, random, or all")
	return cmd
}

// runMoveScenario reproduces original_source/main.c's example_move_test.
func runMoveScenario(tr *nstree.Tree) error {
	for _, p := range []string{"/a/", "/b/", "/a/b/", "/a/b/c/", "/a/b/d/", "/b/a/", "/b/a/d/"} {
		if err := tr.Create(p); err != nil {
			return err
		}
	}
	if err := tr.Move("/a/b/", "/b/x/"); err != nil {
		return err
	}
	listing, err := tr.List("/")
	if err != nil {
		return err
	}
	log.WithField("listing", listing).Info("nstreed: move scenario complete")
	return nil
}

// runMoveRace reproduces original_source/main.c's move_example_test_async:
// two goroutines swap /a/b/ and /b/x/ in opposite directions a fixed number
// of times.
func runMoveRace(tr *nstree.Tree) error {
	for _, p := range []string{"/a/", "/b/", "/a/b/", "/a/b/c/", "/a/b/d/", "/b/a/", "/b/a/d/"} {
		if err := tr.Create(p); err != nil {
			return err
		}
	}

	const iterations = 100
	var g errgroup.Group
	g.Go(func() error {
		for i := 0; i < iterations; i++ {
			_ = tr.Move("/a/b/", "/b/x/")
			_ = tr.Move("/b/x/", "/a/b/")
		}
		return nil
	})
	g.Go(func() error {
		for i := 0; i < iterations; i++ {
			_ = tr.Move("/b/x/", "/a/b/")
			_ = tr.Move("/a/b/", "/b/x/")
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("nstreed: move race scenario complete")
	return nil
}

// runRandomWorkload reproduces original_source/main.c's random_async_test:
// `workers` creators, removers, listers and movers each perform
// `opsPerWorker` operations over random shallow paths on {a,b,c,d}.
func runRandomWorkload(tr *nstree.Tree, workers, opsPerWorker int) error {
	randomPath := func(rng *rand.Rand, minDepth, maxDepth int) string {
		depth := minDepth + rng.Intn(maxDepth-minDepth+1)
		path := "/"
		for i := 0; i < depth; i++ {
			path += string(rune('a'+rng.Intn(4))) + "/"
		}
		return path
	}

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		seed := int64(w + 1)
		g.Go(func() error {
			rng := rand.New(rand.NewSource(seed))
			for i := 0; i < opsPerWorker; i++ {
				_ = tr.Create(randomPath(rng, 1, 3))
			}
			return nil
		})
		g.Go(func() error {
			rng := rand.New(rand.NewSource(seed + 1000))
			for i := 0; i < opsPerWorker; i++ {
				_ = tr.Remove(randomPath(rng, 1, 3))
			}
			return nil
		})
		g.Go(func() error {
			rng := rand.New(rand.NewSource(seed + 2000))
			for i := 0; i < opsPerWorker; i++ {
				_, _ = tr.List(randomPath(rng, 0, 3))
			}
			return nil
		})
		g.Go(func() error {
			rng := rand.New(rand.NewSource(seed + 3000))
			for i := 0; i < opsPerWorker; i++ {
				_ = tr.Move(randomPath(rng, 1, 3), randomPath(rng, 1, 3))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("nstreed: random workload scenario complete")
	return nil
}
