package trace

import (
	"fmt"
	"time"

	"github.com/maxgonick/segheap/heap"
	"github.com/maxgonick/segheap/heap/alloc"
)

// Result holds the outcome of replaying one trace.
type Result struct {
	Name        string
	Ops         int
	HeapSize    int     // final heap size in bytes
	PeakLive    int     // peak sum of live requested payload bytes
	Utilization float64 // PeakLive / HeapSize
	Elapsed     time.Duration
}

// KopsPerSec returns throughput in thousands of operations per second.
func (r *Result) KopsPerSec() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Ops) / r.Elapsed.Seconds() / 1000
}

// Run replays tr against a fresh allocator on mem, verifying payload
// integrity with a per-id fill pattern. It returns the allocator (for
// post-replay inspection) and the scored result.
func Run(tr *Trace, mem heap.Memory) (*alloc.Allocator, *Result, error) {
	a, err := alloc.New(mem)
	if err != nil {
		return nil, nil, fmt.Errorf("trace %s: %w", tr.Name, err)
	}

	refs := make([]alloc.Ref, tr.NumIDs)
	bufs := make([][]byte, tr.NumIDs)
	sizes := make([]int, tr.NumIDs)
	live, peak := 0, 0

	start := time.Now()
	for i, op := range tr.Ops {
		switch op.Kind {
		case OpAlloc:
			ref, buf, err := a.Alloc(op.Size)
			if err != nil {
				return nil, nil, fmt.Errorf("trace %s: op %d: alloc(%d): %w", tr.Name, i, op.Size, err)
			}
			fill(buf[:op.Size], op.ID)
			refs[op.ID], bufs[op.ID], sizes[op.ID] = ref, buf, op.Size
			live += op.Size

		case OpRealloc:
			old := sizes[op.ID]
			if err := check(bufs[op.ID][:old], op.ID); err != nil {
				return nil, nil, fmt.Errorf("trace %s: op %d: before realloc: %w", tr.Name, i, err)
			}
			ref, buf, err := a.Realloc(refs[op.ID], op.Size)
			if err != nil {
				return nil, nil, fmt.Errorf("trace %s: op %d: realloc(%d): %w", tr.Name, i, op.Size, err)
			}
			kept := old
			if op.Size < kept {
				kept = op.Size
			}
			if err := check(buf[:kept], op.ID); err != nil {
				return nil, nil, fmt.Errorf("trace %s: op %d: after realloc: %w", tr.Name, i, err)
			}
			fill(buf[:op.Size], op.ID)
			refs[op.ID], bufs[op.ID], sizes[op.ID] = ref, buf, op.Size
			live += op.Size - old

		case OpFree:
			if err := check(bufs[op.ID][:sizes[op.ID]], op.ID); err != nil {
				return nil, nil, fmt.Errorf("trace %s: op %d: before free: %w", tr.Name, i, err)
			}
			if err := a.Free(refs[op.ID]); err != nil {
				return nil, nil, fmt.Errorf("trace %s: op %d: free: %w", tr.Name, i, err)
			}
			live -= sizes[op.ID]
			refs[op.ID], bufs[op.ID], sizes[op.ID] = alloc.NullRef, nil, 0
		}
		if live > peak {
			peak = live
		}
	}
	elapsed := time.Since(start)

	res := &Result{
		Name:     tr.Name,
		Ops:      len(tr.Ops),
		HeapSize: a.HeapSize(),
		PeakLive: peak,
		Elapsed:  elapsed,
	}
	if res.HeapSize > 0 {
		res.Utilization = float64(res.PeakLive) / float64(res.HeapSize)
	}
	return a, res, nil
}

// fill writes the id's byte pattern over a live payload.
func fill(buf []byte, id int) {
	pattern := byte(id&0x7F + 1)
	for i := range buf {
		buf[i] = pattern
	}
}

// check verifies a payload still carries its id's pattern.
func check(buf []byte, id int) error {
	pattern := byte(id&0x7F + 1)
	for i, got := range buf {
		if got != pattern {
			return fmt.Errorf("payload %d corrupted at byte %d: got %#x, want %#x", id, i, got, pattern)
		}
	}
	return nil
}
