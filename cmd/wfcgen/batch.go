package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gitrdm/wfcgen/cmd/wfcgen/internal/render"
	"github.com/gitrdm/wfcgen/internal/parallel"
	"github.com/gitrdm/wfcgen/pkg/wfc"
	"github.com/gitrdm/wfcgen/rulefile"
)

func newBatchCmd() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Generate N independent regions concurrently",
		Long: `batch spins up N independent wfc.World instances — distinct seeds,
distinct grids, never sharing state — and runs them across a worker pool.
A single World is never safe to propagate from more than one goroutine,
so this is the module's concurrency story: independent Worlds driven in
parallel, not shared state inside one.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(v)
		},
	}

	flags := cmd.Flags()
	flags.String("rules", "", "path to a YAML rule file (required)")
	flags.Int("count", 4, "number of independent regions to generate")
	flags.Int("workers", 0, "worker goroutines (0 = NumCPU)")
	flags.Int("width", 8, "region width")
	flags.Int("height", 8, "region height")
	flags.Int("stability", 8, "snapshot stability (per-tier capacity)")
	flags.Uint64("seed", 1, "base PRNG seed; region i uses seed+i")
	_ = cmd.MarkFlagRequired("rules")
	_ = v.BindPFlags(flags)

	return cmd
}

func runBatch(v *viper.Viper) error {
	rules, err := rulefile.Load(v.GetString("rules"))
	if err != nil {
		return err
	}

	count := v.GetInt("count")
	width, height := v.GetInt("width"), v.GetInt("height")
	stability := v.GetInt("stability")
	baseSeed := v.GetUint64("seed")

	pool := parallel.New(v.GetInt("workers"))
	defer pool.Close()

	results := make([]string, count)
	var wg sync.WaitGroup
	ctx := context.Background()

	for i := 0; i < count; i++ {
		i := i
		wg.Add(1)
		err := pool.Submit(ctx, func() {
			defer wg.Done()
			world := wfc.NewWorld(rules, stability, wfc.WithSeed(baseSeed+uint64(i)))
			results[i] = render.Grid(world.Get, 0, 0, width, height)
		})
		if err != nil {
			wg.Done()
			return fmt.Errorf("submitting region %d: %w", i, err)
		}
	}
	wg.Wait()

	for i, r := range results {
		fmt.Printf("--- region %d ---\n%s", i, r)
	}
	return nil
}
