package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/maxgonick/segheap/heap/trace"
)

func init() {
	rootCmd.AddCommand(newRunCmd())
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <trace>...",
		Short: "Replay traces and report utilization and throughput",
		Long: `The run command replays each trace file against a fresh allocator,
verifies payload integrity throughout, and prints a scoring table.

Example:
  segheapctl run traces/binary.rep traces/coalescing.rep
  segheapctl run --mmap --heap-limit 67108864 traces/large.rep`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var results []*trace.Result
			for _, path := range args {
				tr, err := trace.ParseFile(path)
				if err != nil {
					return err
				}
				mem, cleanup, err := newMemory()
				if err != nil {
					return err
				}
				_, res, err := trace.Run(tr, mem)
				if cerr := cleanup(); err == nil {
					err = cerr
				}
				if err != nil {
					return err
				}
				if verbose {
					fmt.Fprintf(os.Stderr, "%s: %d ops in %s\n", tr.Name, res.Ops, res.Elapsed)
				}
				results = append(results, res)
			}
			trace.Report(os.Stdout, results)
			return nil
		},
	}
}
