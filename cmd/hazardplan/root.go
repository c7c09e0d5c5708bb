package main

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"hazardplan/internal/app/evaluate"
	"hazardplan/internal/app/ports"
	"hazardplan/internal/app/shared/planrun"
	"hazardplan/internal/config"
	"hazardplan/internal/domain/hazard"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	snapshot   hazard.Snapshot
	kind       string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "hazardplan",
		Short:        "Check whether a hazard is survivable with the given energy and reserves",
		SilenceUsage: true,
	}
	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "YAML config file (defaults apply when empty)")
	flags.IntVar(&opts.snapshot.Energy, "energy", 99, "current regular energy")
	flags.IntVar(&opts.snapshot.MaxEnergy, "max-energy", 99, "maximum regular energy")
	flags.IntVar(&opts.snapshot.Reserve, "reserve", 0, "current reserve energy")
	flags.IntVar(&opts.snapshot.MaxReserve, "max-reserve", 0, "maximum reserve energy")
	flags.StringVar(&opts.kind, "kind", "", "hazard kind name, overrides --interrupting")

	cmd.AddCommand(newPunctualCmd(opts), newContinuousCmd(opts), newKindsCmd(opts))
	return cmd
}

func newPunctualCmd(opts *rootOptions) *cobra.Command {
	var h hazard.PunctualHazard
	cmd := &cobra.Command{
		Use:   "punctual",
		Short: "Plan a run of identical hits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlan(cmd, opts, planrun.Hazard{Type: ports.HazardPunctual, Kind: opts.kind, Punctual: h})
		},
	}
	cmd.Flags().IntVar(&h.DamagePerHit, "damage", 0, "damage per hit")
	cmd.Flags().IntVar(&h.Hits, "hits", 1, "number of hits")
	cmd.Flags().BoolVar(&h.CanActBeforeFirstHit, "act-before", false, "reserves may be used before the first hit")
	return cmd
}

func newContinuousCmd(opts *rootOptions) *cobra.Command {
	var h hazard.ContinuousHazard
	cmd := &cobra.Command{
		Use:   "continuous",
		Short: "Plan a per-frame drain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlan(cmd, opts, planrun.Hazard{Type: ports.HazardContinuous, Kind: opts.kind, Continuous: h})
		},
	}
	cmd.Flags().Float64Var(&h.DamagePerFrame, "dpf", 0, "damage per frame")
	cmd.Flags().IntVar(&h.TotalFrames, "frames", 0, "total frames of exposure")
	cmd.Flags().IntVar(&h.ExcessFrames, "excess", 0, "trailing frames that are optional")
	cmd.Flags().IntVar(&h.EnergyFloor, "floor", 0, "energy that must remain afterwards")
	cmd.Flags().BoolVar(&h.Interrupting, "interrupting", false, "the hazard ends when energy reaches the floor")
	cmd.Flags().BoolVar(&h.CanActBefore, "act-before", false, "reserves may be used before the hazard starts")
	return cmd
}

func newKindsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List known hazard kinds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			for _, name := range cfg.Rules.KindNames() {
				mark := ""
				if cfg.Rules.Kinds[name].Interrupting {
					mark = " (interrupting)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", name, mark)
			}
			return nil
		},
	}
}

func runPlan(cmd *cobra.Command, opts *rootOptions, h planrun.Hazard) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd, cfg.Log)
	if err != nil {
		return err
	}
	planner, err := hazard.NewPlanner(cfg.Planner, cfg.Rules)
	if err != nil {
		return err
	}

	logger.Debug("planning hazard",
		slog.String("type", string(h.Type)),
		slog.Any("snapshot", opts.snapshot),
		slog.Any("params", h.Params()),
	)
	resp, err := evaluate.UseCase{Planner: planner}.Execute(cmd.Context(), evaluate.Request{Snapshot: opts.snapshot, Hazard: h})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

// newLogger writes human-readable logs to stderr so stdout stays plain JSON.
func newLogger(cmd *cobra.Command, cfg config.Log) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})), nil
}
