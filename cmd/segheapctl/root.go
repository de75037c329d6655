package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose   bool
	heapLimit int
	useMmap   bool
)

var rootCmd = &cobra.Command{
	Use:   "segheapctl",
	Short: "Replay and inspect allocation traces against the segheap allocator",
	Long: `segheapctl replays allocation traces against the segregated-fit heap
allocator and reports space utilization and throughput. It can also walk the
resulting heap and run the full invariant checks after a replay.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		IntVar(&heapLimit, "heap-limit", 0, "Heap capacity in bytes (0 = default)")
	rootCmd.PersistentFlags().
		BoolVar(&useMmap, "mmap", false, "Back the heap with an anonymous mapping instead of a slice")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
