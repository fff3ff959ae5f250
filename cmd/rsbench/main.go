// Command rsbench measures rank/select throughput for
// github.com/dbitv/ranksel. It fills a bit vector at roughly 50%
// density, builds it, then times nloop rank queries and nloop select
// queries with uniformly random arguments, reporting the median of 11
// trials for each.
package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"sort"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dbitv/ranksel"
)

const trials = 11

func main() {
	run(os.Args)
}

// run is split out from main so it can be driven from tests.
func run(args []string) {
	app := application()
	if err := app.Run(args); err != nil {
		log.Fatal(err)
	}
}

func application() *cli.App {
	return &cli.App{
		Name:  "rsbench",
		Usage: "benchmark rank/select throughput on a succinct bit vector",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:  "nloop",
				Value: 10_000_000,
				Usage: "number of queries per measured phase (1000-1e9)",
			},
			&cli.Int64Flag{
				Name:  "bitsz",
				Value: 1_000_000,
				Usage: "number of bits in the vector (1000-1e9)",
			},
		},
		Action: benchmark,
	}
}

func benchmark(c *cli.Context) error {
	nloop := c.Int64("nloop")
	bitsz := c.Int64("bitsz")

	if nloop < 1000 || nloop > 1_000_000_000 {
		return cli.Exit("nloop must be in range [1000, 1e9]", 1)
	}
	if bitsz < 1000 || bitsz > 1_000_000_000 {
		return cli.Exit("bitsz must be in range [1000, 1e9]", 1)
	}

	bv, err := fill(uint64(bitsz))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	rankArgs := randomRankArgs(nloop, bv.Len())
	benchmarkRank(nloop, bv, rankArgs)

	selectArgs := randomSelectArgs(nloop, bv.CountOnes(), bv.Len()-bv.CountOnes())
	benchmarkSelect(nloop, bv, selectArgs)

	return nil
}

type rankArg struct {
	pos uint64
	bit uint8
}

type selectArg struct {
	k   uint64
	bit uint8
}

func randomRankArgs(nloop int64, n uint64) []rankArg {
	r := rand.New(rand.NewSource(1))
	args := make([]rankArg, nloop)
	for i := range args {
		args[i] = rankArg{pos: uint64(r.Int63n(int64(n))), bit: uint8(r.Intn(2))}
	}
	return args
}

func randomSelectArgs(nloop int64, ones, zeros uint64) []selectArg {
	r := rand.New(rand.NewSource(2))
	args := make([]selectArg, nloop)
	for i := range args {
		bit := uint8(r.Intn(2))
		limit := ones
		if bit == 0 {
			limit = zeros
		}
		var k uint64
		if limit > 0 {
			k = uint64(r.Int63n(int64(limit)))
		}
		args[i] = selectArg{k: k, bit: bit}
	}
	return args
}

// benchmarkRank times nloop rank queries per trial, indexing args by
// the inner loop variable i. (A legacy version of this harness reused
// the outer trial index inside the inner loop, reading the same
// argument on every iteration of a trial; that bug is not reproduced
// here.)
func benchmarkRank(nloop int64, bv *ranksel.SuccinctBitVector, args []rankArg) {
	durations := make([]time.Duration, trials)
	for t := 0; t < trials; t++ {
		start := time.Now()
		for i := int64(0); i < nloop; i++ {
			_, _ = bv.Rank(args[i].pos, args[i].bit)
		}
		durations[t] = time.Since(start)
	}
	report("rank", nloop, durations)
}

func benchmarkSelect(nloop int64, bv *ranksel.SuccinctBitVector, args []selectArg) {
	durations := make([]time.Duration, trials)
	for t := 0; t < trials; t++ {
		start := time.Now()
		for i := int64(0); i < nloop; i++ {
			_, _ = bv.Select(args[i].k, args[i].bit)
		}
		durations[t] = time.Since(start)
	}
	report("select", nloop, durations)
}

// fill builds a SuccinctBitVector of n bits at ~50% density.
func fill(n uint64) (*ranksel.SuccinctBitVector, error) {
	bv := ranksel.New()
	if err := bv.Init(n); err != nil {
		return nil, err
	}

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := uint64(0); i < n; i++ {
		if r.Float64() < 0.5 {
			if err := bv.SetBit(i, 1); err != nil {
				return nil, err
			}
		}
	}

	if err := bv.Build(); err != nil {
		return nil, err
	}
	return bv, nil
}

// report sorts the per-trial durations and prints the median throughput.
func report(label string, nloop int64, durations []time.Duration) {
	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })
	median := durations[trials/2]

	opsPerSec := float64(nloop) / median.Seconds()
	fmt.Printf("%s: median %s for %d ops (%.2f ops/sec)\n", label, median, nloop, opsPerSec)
}
