package ops

import "time"

// Progress is a monotonic snapshot of a streaming operation, per spec
// §3 StorageProgress: bytes_transferred never decreases within one
// operation, and total_bytes is fixed unless unknown (then 0).
type Progress struct {
	TotalBytes      int64
	BytesTransferred int64
	BytesPerSecond  float64
	ProgressPercent float64
}

// ProgressFunc is invoked synchronously, on the goroutine doing the
// I/O, after each buffer write — per spec §9 Design Notes "Specify a
// single interface: callbacks are invoked on the thread performing
// the I/O, synchronously, after each buffer write."
type ProgressFunc func(Progress)

// progressTracker accumulates bytes transferred for one operation
// (which may span several files, as in a directory copy) and derives
// bytes_per_second from wall-clock elapsed time.
type progressTracker struct {
	total     int64
	start     time.Time
	report    ProgressFunc
	sofar     int64
}

func newProgressTracker(total int64, report ProgressFunc) *progressTracker {
	if report == nil {
		report = func(Progress) {}
	}
	return &progressTracker{total: total, start: time.Now(), report: report}
}

func (t *progressTracker) add(n int64) {
	t.sofar += n
	elapsed := time.Since(t.start).Seconds()
	var bps float64
	if elapsed > 0 {
		bps = float64(t.sofar) / elapsed
	}
	var pct float64
	if t.total > 0 {
		pct = 100 * float64(t.sofar) / float64(t.total)
	}
	t.report(Progress{
		TotalBytes:       t.total,
		BytesTransferred: t.sofar,
		BytesPerSecond:   bps,
		ProgressPercent:  pct,
	})
}
