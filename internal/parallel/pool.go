package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// RowFunc processes one independent unit of work, usually one image row or
// column. worker identifies the goroutine running it and scratch is that
// worker's private scratch slice.
type RowFunc func(row, worker int, scratch []float64)

// task is a queued work item. It receives the id of the worker executing it,
// which may differ from the queue it was posted to when work is stolen.
type task func(worker int)

// WorkerPool is a pool of goroutines for row-parallel pixel filters.
//
// The pool distributes work items across multiple workers, each with their own
// queue. Workers can steal work from other workers when their own queue is empty.
// Every worker owns a scratch slice that is grown on demand and reused across
// dispatches, so row tasks never allocate in the hot loop.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	// workers is the number of worker goroutines.
	workers int

	// workQueues holds per-worker work queues.
	// Each worker primarily pulls from its own queue but can steal from others.
	workQueues []chan task

	// scratch holds one slice per worker. Slot i is only touched by worker i.
	scratch [][]float64

	// done signals workers to stop.
	done chan struct{}

	// wg waits for all workers to finish.
	wg sync.WaitGroup

	// running indicates whether the pool is accepting work.
	running atomic.Bool

	// queueSize is the buffer size for each worker's queue.
	queueSize int
}

// NewWorkerPool creates a new worker pool with the specified number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
// The pool starts immediately and workers begin waiting for work.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := workers * 4
	if queueSize < 8 {
		queueSize = 8
	}

	p := &WorkerPool{
		workers:    workers,
		workQueues: make([]chan task, workers),
		scratch:    make([][]float64, workers),
		done:       make(chan struct{}),
		queueSize:  queueSize,
	}

	for i := range workers {
		p.workQueues[i] = make(chan task, queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}

	return p
}

// worker is the main loop for each worker goroutine.
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	myQueue := p.workQueues[id]

	for {
		select {
		case <-p.done:
			p.drainQueue(id, myQueue)
			return

		case work := <-myQueue:
			if work != nil {
				work(id)
			}

		default:
			if stolen := p.steal(id); stolen != nil {
				stolen(id)
			} else {
				select {
				case <-p.done:
					p.drainQueue(id, myQueue)
					return
				case work := <-myQueue:
					if work != nil {
						work(id)
					}
				}
			}
		}
	}
}

// drainQueue executes all remaining work in a queue.
func (p *WorkerPool) drainQueue(id int, queue chan task) {
	for {
		select {
		case work := <-queue:
			if work != nil {
				work(id)
			}
		default:
			return
		}
	}
}

// steal attempts to take work from another worker's queue.
// Returns nil if no work is available.
func (p *WorkerPool) steal(myID int) task {
	for i := range p.workers {
		if i == myID {
			continue
		}

		select {
		case work := <-p.workQueues[i]:
			return work
		default:
		}
	}
	return nil
}

// workerScratch returns worker id's scratch slice with at least n elements.
// The slice is grown, never shrunk; contents are not cleared.
func (p *WorkerPool) workerScratch(id, n int) []float64 {
	s := p.scratch[id]
	if cap(s) < n {
		s = make([]float64, n)
		p.scratch[id] = s
	}
	return s[:n]
}

// Dispatch runs fn for every row in [0, rows) and blocks until all of them
// have completed. Each call receives a scratch slice of scratchLen elements
// that belongs to the executing worker.
//
// Dispatch is a full barrier: a second Dispatch issued after this one returns
// never overlaps with it. If the pool is closed the rows run on the calling
// goroutine.
func (p *WorkerPool) Dispatch(rows, scratchLen int, fn RowFunc) {
	if rows <= 0 {
		return
	}
	if !p.running.Load() {
		serial(rows, scratchLen, fn)
		return
	}

	var completionWG sync.WaitGroup
	completionWG.Add(rows)

	var local []float64
	for row := range rows {
		wrapped := func(worker int) {
			defer completionWG.Done()
			fn(row, worker, p.workerScratch(worker, scratchLen))
		}

		select {
		case p.workQueues[row%p.workers] <- wrapped:
		case <-p.done:
			// Pool is closing; finish the row here with private scratch.
			if local == nil {
				local = make([]float64, scratchLen)
			}
			fn(row, -1, local)
			completionWG.Done()
		}
	}

	completionWG.Wait()
}

// ExecuteAll distributes work across workers and waits for all to complete.
// If the pool is closed, the work runs on the calling goroutine.
func (p *WorkerPool) ExecuteAll(work []func()) {
	p.Dispatch(len(work), 0, func(i, _ int, _ []float64) {
		if work[i] != nil {
			work[i]()
		}
	})
}

// Close gracefully shuts down the pool.
// It stops accepting new work, waits for all queued work to complete,
// and then stops all workers.
// Close is safe to call multiple times. It must not race with an in-flight
// Dispatch on the same pool.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}

	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning returns true if the pool is still accepting work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}

// QueuedWork returns the total number of work items currently queued.
// This is an approximation as queues can change while iterating.
func (p *WorkerPool) QueuedWork() int {
	total := 0
	for _, q := range p.workQueues {
		total += len(q)
	}
	return total
}
