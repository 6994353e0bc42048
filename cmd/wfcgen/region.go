package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/gitrdm/wfcgen/cmd/wfcgen/internal/render"
	"github.com/gitrdm/wfcgen/pkg/wfc"
	"github.com/gitrdm/wfcgen/rulefile"
)

func newRegionCmd() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "region",
		Short: "Generate and print a rectangular region of tiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegion(v)
		},
	}

	flags := cmd.Flags()
	flags.String("rules", "", "path to a YAML rule file (required)")
	flags.Int32("x", 0, "top-left X coordinate")
	flags.Int32("y", 0, "top-left Y coordinate")
	flags.Int("width", 16, "region width")
	flags.Int("height", 16, "region height")
	flags.Int("stability", 8, "snapshot stability (per-tier capacity)")
	flags.Uint64("seed", 1, "PRNG seed")
	_ = cmd.MarkFlagRequired("rules")
	_ = v.BindPFlags(flags)

	return cmd
}

func runRegion(v *viper.Viper) error {
	rules, err := rulefile.Load(v.GetString("rules"))
	if err != nil {
		return err
	}

	log, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	world := wfc.NewWorld(rules, v.GetInt("stability"),
		wfc.WithSeed(v.GetUint64("seed")),
		wfc.WithLogger(log),
	)

	out := render.Grid(world.Get, int32(v.GetInt("x")), int32(v.GetInt("y")), v.GetInt("width"), v.GetInt("height"))
	fmt.Print(out)
	return nil
}
