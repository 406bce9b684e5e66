package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// =============================================================================
// WorkerPool Creation Tests
// =============================================================================

func TestWorkerPool_Create(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}

	if !pool.IsRunning() {
		t.Error("Pool should be running after creation")
	}
}

func TestWorkerPool_CreateZeroWorkers(t *testing.T) {
	pool := NewWorkerPool(0)
	defer pool.Close()

	expected := runtime.GOMAXPROCS(0)
	if pool.Workers() != expected {
		t.Errorf("Workers() = %d, want %d (GOMAXPROCS)", pool.Workers(), expected)
	}
}

func TestWorkerPool_CreateNegativeWorkers(t *testing.T) {
	pool := NewWorkerPool(-5)
	defer pool.Close()

	expected := runtime.GOMAXPROCS(0)
	if pool.Workers() != expected {
		t.Errorf("Workers() = %d, want %d (GOMAXPROCS)", pool.Workers(), expected)
	}
}

// =============================================================================
// Dispatch Tests
// =============================================================================

func TestWorkerPool_DispatchVisitsEveryRow(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	const rows = 257
	seen := make([]atomic.Int32, rows)

	pool.Dispatch(rows, 0, func(row, _ int, _ []float64) {
		seen[row].Add(1)
	})

	for i := range seen {
		if got := seen[i].Load(); got != 1 {
			t.Errorf("row %d visited %d times, want 1", i, got)
		}
	}
}

func TestWorkerPool_DispatchScratch(t *testing.T) {
	pool := NewWorkerPool(3)
	defer pool.Close()

	const rows = 64
	const scratchLen = 100

	var bad atomic.Int32
	pool.Dispatch(rows, scratchLen, func(row, worker int, scratch []float64) {
		if len(scratch) != scratchLen {
			bad.Add(1)
			return
		}
		if worker < 0 || worker >= pool.Workers() {
			bad.Add(1)
			return
		}
		// A worker runs one row at a time, so its scratch is private here.
		for i := range scratch {
			scratch[i] = float64(row)
		}
		for i := range scratch {
			if scratch[i] != float64(row) {
				bad.Add(1)
				return
			}
		}
	})

	if bad.Load() != 0 {
		t.Errorf("%d rows saw shared or wrongly sized scratch", bad.Load())
	}
}

func TestWorkerPool_DispatchScratchReused(t *testing.T) {
	pool := NewWorkerPool(1)
	defer pool.Close()

	var first, second *float64
	pool.Dispatch(1, 32, func(_, _ int, scratch []float64) { first = &scratch[0] })
	pool.Dispatch(1, 16, func(_, _ int, scratch []float64) { second = &scratch[0] })

	if first != second {
		t.Error("smaller scratch request reallocated the worker slice")
	}
}

func TestWorkerPool_DispatchBarrier(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	const rows = 50
	var phase1 atomic.Int32
	var early atomic.Int32

	pool.Dispatch(rows, 0, func(_, _ int, _ []float64) {
		time.Sleep(100 * time.Microsecond)
		phase1.Add(1)
	})
	pool.Dispatch(rows, 0, func(_, _ int, _ []float64) {
		if phase1.Load() != rows {
			early.Add(1)
		}
	})

	if early.Load() != 0 {
		t.Errorf("%d second-pass rows started before the first pass finished", early.Load())
	}
}

func TestWorkerPool_DispatchEmpty(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	called := false
	pool.Dispatch(0, 10, func(_, _ int, _ []float64) { called = true })
	if called {
		t.Error("Dispatch(0) should not call fn")
	}
}

func TestWorkerPool_DispatchAfterClose(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()

	var count int
	pool.Dispatch(5, 4, func(_, worker int, scratch []float64) {
		if worker != -1 || len(scratch) != 4 {
			t.Errorf("closed pool: worker=%d len(scratch)=%d", worker, len(scratch))
		}
		count++
	})
	if count != 5 {
		t.Errorf("closed pool ran %d rows, want 5", count)
	}
}

// =============================================================================
// Rows Helper Tests
// =============================================================================

func TestRows_SerialWithoutPool(t *testing.T) {
	var order []int
	Rows(nil, 4, 1000, 8, func(row, worker int, scratch []float64) {
		if worker != -1 {
			t.Errorf("serial worker = %d, want -1", worker)
		}
		if len(scratch) != 8 {
			t.Errorf("len(scratch) = %d, want 8", len(scratch))
		}
		order = append(order, row)
	})

	for i, row := range order {
		if row != i {
			t.Fatalf("serial order = %v, want ascending", order)
		}
	}
}

func TestRows_SmallWorkStaysSerial(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	Rows(pool, 4, 4, 0, func(_, worker int, _ []float64) {
		if worker != -1 {
			t.Errorf("tiny job ran on worker %d", worker)
		}
	})
}

func TestRows_LargeWorkUsesPool(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var onWorker atomic.Int32
	Rows(pool, 100, 100, 0, func(_, worker int, _ []float64) {
		if worker >= 0 {
			onWorker.Add(1)
		}
	})
	if onWorker.Load() != 100 {
		t.Errorf("%d of 100 rows ran on workers", onWorker.Load())
	}
}

// =============================================================================
// ExecuteAll Tests
// =============================================================================

func TestWorkerPool_ExecuteAll(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	numTasks := 100

	work := make([]func(), numTasks)
	for i := range work {
		work[i] = func() {
			counter.Add(1)
		}
	}

	pool.ExecuteAll(work)

	if counter.Load() != int64(numTasks) {
		t.Errorf("counter = %d, want %d", counter.Load(), numTasks)
	}
}

func TestWorkerPool_ExecuteAll_NilEntries(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	var counter atomic.Int64
	pool.ExecuteAll([]func(){nil, func() { counter.Add(1) }, nil})

	if counter.Load() != 1 {
		t.Errorf("counter = %d, want 1", counter.Load())
	}
}

// =============================================================================
// Lifecycle Tests
// =============================================================================

func TestWorkerPool_CloseIdempotent(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()
	pool.Close()

	if pool.IsRunning() {
		t.Error("Pool should not be running after Close")
	}
}

func TestWorkerPool_Concurrent(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var total atomic.Int64
	var wg sync.WaitGroup

	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pool.Dispatch(50, 16, func(_, _ int, scratch []float64) {
				scratch[0] = 1
				total.Add(1)
			})
		}()
	}
	wg.Wait()

	if total.Load() != 8*50 {
		t.Errorf("total = %d, want %d", total.Load(), 8*50)
	}
}

func TestWorkerPool_NoGoroutineLeak(t *testing.T) {
	before := runtime.NumGoroutine()

	for range 5 {
		pool := NewWorkerPool(4)
		pool.Dispatch(20, 0, func(_, _ int, _ []float64) {})
		pool.Close()
	}

	time.Sleep(10 * time.Millisecond)
	after := runtime.NumGoroutine()

	if after > before+2 {
		t.Errorf("goroutines before=%d after=%d, possible leak", before, after)
	}
}

func TestWorkerPool_QueuedWork(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	if got := pool.QueuedWork(); got != 0 {
		t.Errorf("QueuedWork() on idle pool = %d, want 0", got)
	}
}

// =============================================================================
// Benchmarks
// =============================================================================

func BenchmarkWorkerPool_Dispatch(b *testing.B) {
	pool := NewWorkerPool(0)
	defer pool.Close()

	b.ResetTimer()
	for range b.N {
		pool.Dispatch(512, 1024, func(_, _ int, scratch []float64) {
			for i := range scratch {
				scratch[i] = float64(i)
			}
		})
	}
}
