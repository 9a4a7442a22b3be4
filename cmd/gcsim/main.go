// gcsim drives a synthetic write/invalidate workload through a gc.GC and
// prints its telemetry. It exists to exercise the package end-to-end from
// outside its own test suite; it carries no contract of its own and is
// not imported by anything in this module.
//
// Usage:
//
//	gcsim -dies 2 -blocks 64 -pages 4 -policy cat -rounds 2000 -checkpoint /tmp/gc.json
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/rs/zerolog"

	gc "github.com/enclab-oss/cosmosplus-gc"
)

func main() {
	var (
		dies         = flag.Int("dies", 1, "number of dies")
		blocksPerDie = flag.Int("blocks", 32, "blocks per die")
		pagesPerBlk  = flag.Int("pages", 4, "pages per block")
		policyName   = flag.String("policy", "greedy", "greedy, cost-benefit, or cat")
		rounds       = flag.Int("rounds", 1000, "simulated write/invalidate rounds")
		seed         = flag.Int64("seed", 1, "PRNG seed")
		checkpoint   = flag.String("checkpoint", "", "optional path to write a Stats checkpoint to")
		verbose      = flag.Bool("v", false, "debug-level logging")
	)
	flag.Parse()

	policy, err := parsePolicy(*policyName)
	if err != nil {
		fmt.Fprintln(os.Stderr, "gcsim:", err)
		os.Exit(2)
	}

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).With().Timestamp().Logger()

	ftl := newSimFTL(*dies, *blocksPerDie, *pagesPerBlk, *seed)
	g := gc.New(gc.Config{
		Dies:           *dies,
		BlocksPerDie:   *blocksPerDie,
		PagesPerBlock:  *pagesPerBlk,
		SlicesPerBlock: uint32(*pagesPerBlk),
		Policy:         policy,
	}, ftl, ftl, ftl, ftl, gc.WithLogger(logger))

	// linked tracks which blocks sit in the candidate index, so a block is
	// detached before Put moves it to another bucket.
	linked := make([][]bool, *dies)
	for d := range linked {
		linked[d] = make([]bool, *blocksPerDie)
	}

	rng := rand.New(rand.NewSource(*seed))
	for i := 0; i < *rounds; i++ {
		die := rng.Intn(*dies)
		block := gc.BlockNo(rng.Intn(*blocksPerDie))
		invalid := uint32(rng.Intn(*pagesPerBlk + 1))
		if linked[die][block] {
			g.Detach(die, block)
		}
		g.Put(die, block, invalid)
		linked[die][block] = true

		if rng.Intn(4) == 0 {
			g.RunGc(die)
			victim := ftl.LastErased(die)
			linked[die][victim] = false
			g.OnEraseComplete(die, victim)
		}
	}

	stats := g.StatsSnapshot()
	for d := 0; d < *dies; d++ {
		fmt.Printf("die %d: erased=%d migrated=%d\n", d, stats.BlocksErased[d], stats.SlicesMigrated[d])
	}

	if *checkpoint != "" {
		if err := g.Checkpoint(*checkpoint); err != nil {
			fmt.Fprintln(os.Stderr, "gcsim: checkpoint:", err)
			os.Exit(1)
		}
	}
}

func parsePolicy(s string) (gc.PolicyKind, error) {
	switch s {
	case "greedy":
		return gc.Greedy, nil
	case "cost-benefit":
		return gc.CostBenefit, nil
	case "cat":
		return gc.CAT, nil
	default:
		return 0, fmt.Errorf("unknown policy %q (want greedy, cost-benefit, or cat)", s)
	}
}
