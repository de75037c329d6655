package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/maxgonick/segheap/heap/trace"
)

func init() {
	rootCmd.AddCommand(newDumpCmd())
}

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <trace>",
		Short: "Replay a trace and print the resulting heap block by block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := trace.ParseFile(args[0])
			if err != nil {
				return err
			}
			mem, cleanup, err := newMemory()
			if err != nil {
				return err
			}
			defer cleanup()
			a, _, err := trace.Run(tr, mem)
			if err != nil {
				return err
			}
			a.CheckHeap(os.Stdout, true)
			return nil
		},
	}
}
