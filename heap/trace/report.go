package trace

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Report writes a scoring table for the given results, with grouped
// decimals for the larger byte counts.
func Report(w io.Writer, results []*Result) {
	p := message.NewPrinter(language.English)
	p.Fprintf(w, "%-28s %10s %14s %14s %7s %10s\n",
		"trace", "ops", "peak live", "heap bytes", "util", "Kops/s")
	var ops, peak, heapBytes int
	var util float64
	for _, r := range results {
		p.Fprintf(w, "%-28s %10d %14d %14d %6.1f%% %10.0f\n",
			r.Name, r.Ops, r.PeakLive, r.HeapSize, r.Utilization*100, r.KopsPerSec())
		ops += r.Ops
		peak += r.PeakLive
		heapBytes += r.HeapSize
		util += r.Utilization
	}
	if len(results) > 1 {
		p.Fprintf(w, "%-28s %10d %14d %14d %6.1f%%\n",
			"total", ops, peak, heapBytes, util/float64(len(results))*100)
	}
}
