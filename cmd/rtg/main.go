// Command rtg finds the minimum number of elevator moves that bring every
// generator and microchip of a facility to the top floor.
package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/oisee/aoc-core/pkg/cli"
	"github.com/oisee/aoc-core/pkg/facility"
	"github.com/oisee/aoc-core/pkg/result"
	"github.com/oisee/aoc-core/pkg/search"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		common        cli.Common
		bidirectional bool
		trace         bool
		extra         []string
	)

	cmd := &cobra.Command{
		Use:          "rtg",
		Short:        "Minimum elevator moves to bring every component to the top floor",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := common.Resolve(cmd.Flags())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("bidirectional") {
				cfg.RTG.Bidirectional = bidirectional
			}
			if cmd.Flags().Changed("trace") {
				cfg.RTG.Trace = trace
			}
			if cmd.Flags().Changed("extra") {
				cfg.RTG.ExtraPairs = extra
			}

			data, err := cli.ReadInput(cfg.Input)
			if err != nil {
				return err
			}
			sess, err := cli.Open("rtg", cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer sess.Close()

			digest := result.Digest("rtg", data, "extra="+strings.Join(cfg.RTG.ExtraPairs, ","))
			if rep, ok := sess.Cached(digest); ok && (!cfg.RTG.Trace || len(rep.Trace) == int(rep.Answer)) {
				printTrace(cmd, cfg.RTG.Trace, rep.Trace)
				fmt.Fprintln(cmd.OutOrStdout(), rep.Answer)
				return sess.Finish(rep)
			}

			rep, err := solve(sess, data)
			if err != nil {
				return err
			}
			rep.Digest = digest
			printTrace(cmd, cfg.RTG.Trace, rep.Trace)
			fmt.Fprintln(cmd.OutOrStdout(), rep.Answer)
			return sess.Finish(rep)
		},
	}

	common.Register(cmd.Flags())
	cmd.Flags().BoolVarP(&bidirectional, "bidirectional", "b", false, "search forward and backward concurrently")
	cmd.Flags().BoolVarP(&trace, "trace", "t", false, "print the optimal move sequence to stderr")
	cmd.Flags().StringSliceVar(&extra, "extra", nil, "extra element pairs to add to the first floor")
	return cmd
}

func solve(sess *cli.Session, data []byte) (result.Report, error) {
	fac, err := facility.Parse(bytes.NewReader(data))
	if err != nil {
		return result.Report{}, fmt.Errorf("parse facility: %w", err)
	}
	if len(sess.Config.RTG.ExtraPairs) > 0 {
		fac, err = fac.WithExtraPairs(sess.Config.RTG.ExtraPairs...)
		if err != nil {
			return result.Report{}, err
		}
	}
	sess.Log.Info("facility loaded",
		"floors", fac.Floors(),
		"elements", len(fac.Elements),
		"bidirectional", sess.Config.RTG.Bidirectional)

	res, err := search.Run(fac, search.Config{
		Bidirectional: sess.Config.RTG.Bidirectional,
		Trace:         sess.Config.RTG.Trace,
		Logger:        sess.Log.Logger,
		Metrics:       sess.Metrics,
	})
	if err != nil {
		return result.Report{}, err
	}

	rep := sess.NewReport()
	rep.Answer = int64(res.Moves)
	rep.SetStat("lower_bound", int64(res.LowerBound))
	for _, st := range res.Stats {
		rep.SetStat(st.Direction+"_expanded", int64(st.Expanded))
		rep.SetStat(st.Direction+"_generated", int64(st.Generated))
		rep.SetStat(st.Direction+"_duplicates", int64(st.Duplicates))
		rep.SetStat(st.Direction+"_pruned", int64(st.Pruned))
		rep.SetStat(st.Direction+"_max_frontier", int64(st.MaxFrontier))
	}
	for _, step := range res.Path {
		rep.Trace = append(rep.Trace, step.Move.Describe(fac.Elements))
	}
	sess.Log.Info("search finished",
		"moves", res.Moves,
		"direction", string(res.Direction),
		"elapsed", res.Elapsed)
	return rep, nil
}

func printTrace(cmd *cobra.Command, on bool, lines []string) {
	if !on {
		return
	}
	w := cmd.ErrOrStderr()
	for i, l := range lines {
		fmt.Fprintf(w, "%3d. %s\n", i+1, l)
	}
}
