package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/maxgonick/segheap/heap/trace"
	"github.com/maxgonick/segheap/heap/verify"
)

func init() {
	rootCmd.AddCommand(newCheckCmd())
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <trace>...",
		Short: "Replay traces and run the full heap invariant checks",
		Long: `The check command replays each trace and then validates every heap
and free-list invariant over the final region. It exits non-zero if any
invariant is violated.

Example:
  segheapctl check traces/realloc.rep`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bad := 0
			for _, path := range args {
				tr, err := trace.ParseFile(path)
				if err != nil {
					return err
				}
				mem, cleanup, err := newMemory()
				if err != nil {
					return err
				}
				_, _, err = trace.Run(tr, mem)
				if err != nil {
					cleanup()
					return err
				}
				errs := verify.All(mem.Bytes())
				for _, verr := range errs {
					fmt.Fprintf(os.Stderr, "%s: %v\n", tr.Name, verr)
				}
				bad += len(errs)
				if len(errs) == 0 && verbose {
					fmt.Fprintf(os.Stderr, "%s: ok\n", tr.Name)
				}
				if err := cleanup(); err != nil {
					return err
				}
			}
			if bad != 0 {
				return fmt.Errorf("%d invariant violation(s)", bad)
			}
			return nil
		},
	}
}
