package parallel

// PoolThreshold is the pixel count below which row-parallel filters run on
// the calling goroutine. Queueing costs more than it saves for tiny buffers.
const PoolThreshold = 2048

// Rows runs fn for every row in [0, rows) on pool, or serially when pool is
// nil or the work is smaller than PoolThreshold pixels (rows*cols).
// It returns after every row has completed.
func Rows(pool *WorkerPool, rows, cols, scratchLen int, fn RowFunc) {
	if rows <= 0 {
		return
	}
	if pool == nil || rows*cols < PoolThreshold || rows == 1 {
		serial(rows, scratchLen, fn)
		return
	}
	pool.Dispatch(rows, scratchLen, fn)
}

// serial runs every row on the calling goroutine, sharing one scratch slice.
// The worker id passed to fn is -1.
func serial(rows, scratchLen int, fn RowFunc) {
	var scratch []float64
	if scratchLen > 0 {
		scratch = make([]float64, scratchLen)
	}
	for row := range rows {
		fn(row, -1, scratch)
	}
}
