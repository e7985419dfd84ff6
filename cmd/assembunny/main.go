// Command assembunny runs an assembunny program and prints register a.
package main

import (
	"bytes"
	"fmt"
	"maps"
	"os"
	"strings"

	"github.com/oisee/aoc-core/pkg/cli"
	"github.com/oisee/aoc-core/pkg/cpu"
	"github.com/oisee/aoc-core/pkg/inst"
	"github.com/oisee/aoc-core/pkg/result"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		common cli.Common
		sets   []string
		dump   bool
	)

	cmd := &cobra.Command{
		Use:          "assembunny",
		Short:        "Run an assembunny program and print register a",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := common.Resolve(cmd.Flags())
			if err != nil {
				return err
			}
			seeds, err := cfg.Assembunny.Seeds()
			if err != nil {
				return err
			}
			regs, err := cli.ParseRegisters(sets)
			if err != nil {
				return err
			}
			// The flag wins for the registers it names.
			maps.Copy(seeds, regs)
			if cmd.Flags().Changed("dump") {
				cfg.Assembunny.Dump = dump
			}

			data, err := cli.ReadInput(cfg.Input)
			if err != nil {
				return err
			}
			sess, err := cli.Open("assembunny", cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer sess.Close()

			digest := result.Digest("assembunny", data, assignments(seeds)...)
			rep, ok := sess.Cached(digest)
			if !ok {
				rep, err = execute(sess, data, seeds)
				if err != nil {
					return err
				}
				rep.Digest = digest
			}
			if cfg.Assembunny.Dump {
				dumpRegisters(cmd, rep.Registers)
			}
			fmt.Fprintln(cmd.OutOrStdout(), rep.Answer)
			return sess.Finish(rep)
		},
	}

	common.Register(cmd.Flags())
	cmd.Flags().StringArrayVar(&sets, "set", nil, "initial register value r=v (repeatable)")
	cmd.Flags().BoolVar(&dump, "dump", false, "print every register to stderr")
	return cmd
}

func execute(sess *cli.Session, data []byte, seeds map[inst.Reg]int32) (result.Report, error) {
	prog, err := inst.Parse(bytes.NewReader(data))
	if err != nil {
		return result.Report{}, fmt.Errorf("parse program: %w", err)
	}
	var regs [inst.RegCount]int32
	for r, v := range seeds {
		regs[r] = v
	}
	sess.Log.Info("program loaded", "instructions", len(prog), "registers", regs)

	final, st := cpu.RunFrom(prog, regs)

	rep := sess.NewReport()
	rep.Answer = int64(final.Get(inst.RegA))
	rep.SetStat("steps", int64(st.Steps))
	rep.Registers = make(map[string]int32, inst.RegCount)
	for r := inst.Reg(0); r < inst.RegCount; r++ {
		rep.Registers[r.String()] = final.Get(r)
	}
	for op := inst.OpCode(0); op < inst.OpCodeCount; op++ {
		sess.Metrics.ObserveInstructions(op.String(), st.ByOp[op])
		rep.SetStat(op.String(), int64(st.ByOp[op]))
	}
	sess.Log.Info("program halted", "steps", st.Steps, "pc", final.PC)
	return rep, nil
}

// assignments renders register seeds in a stable order.
func assignments(seeds map[inst.Reg]int32) []string {
	out := make([]string, 0, len(seeds))
	for r := inst.Reg(0); r < inst.RegCount; r++ {
		if v, ok := seeds[r]; ok {
			out = append(out, fmt.Sprintf("%s=%d", r, v))
		}
	}
	return out
}

func dumpRegisters(cmd *cobra.Command, regs map[string]int32) {
	parts := make([]string, 0, inst.RegCount)
	for r := inst.Reg(0); r < inst.RegCount; r++ {
		parts = append(parts, fmt.Sprintf("%s=%d", r, regs[r.String()]))
	}
	fmt.Fprintln(cmd.ErrOrStderr(), strings.Join(parts, " "))
}
