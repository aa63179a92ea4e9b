// Package parallel runs independent layout work across a pool of worker
// goroutines, typically one disjoint partition's subgraph per task.
package parallel

import (
	"fmt"
	"math"
	"runtime"
	"sync"
)

// ErrTooManyWorkers is returned when the worker count exceeds the
// maximum allowed.
var ErrTooManyWorkers = fmt.Errorf("worker count exceeds maximum")

// ErrPoolClosed is returned when work is handed to a closed pool.
var ErrPoolClosed = fmt.Errorf("worker pool is closed")

// MaxWorkers is the maximum number of workers allowed in a pool.
const MaxWorkers = math.MaxInt / 2

// WorkerPool manages a pool of worker goroutines.
type WorkerPool struct {
	workers   int
	taskQueue chan func()
	wg        sync.WaitGroup
	once      sync.Once
	mu        sync.RWMutex // protects taskQueue from close during send
	closed    bool         // protected by mu
}

// NewWorkerPool creates a pool with the given number of workers. Zero or
// negative worker counts default to GOMAXPROCS.
func NewWorkerPool(workers int) (*WorkerPool, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > MaxWorkers {
		return nil, fmt.Errorf("%w: %d exceeds %d", ErrTooManyWorkers, workers, MaxWorkers)
	}

	pool := &WorkerPool{
		workers:   workers,
		taskQueue: make(chan func(), workers*2),
	}
	for i := 0; i < pool.workers; i++ {
		pool.wg.Add(1)
		go pool.worker()
	}
	return pool, nil
}

// Workers returns the number of workers in the pool.
func (wp *WorkerPool) Workers() int {
	return wp.workers
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()
	for task := range wp.taskQueue {
		// Recover so a panicking task does not take the worker down.
		func() {
			defer func() {
				recover()
			}()
			task()
		}()
	}
}

// Submit adds a task to the pool. It returns false if the pool has been
// closed.
func (wp *WorkerPool) Submit(task func()) bool {
	wp.mu.RLock()
	defer wp.mu.RUnlock()
	if wp.closed {
		return false
	}
	wp.taskQueue <- task
	return true
}

// Close shuts the pool down and waits for in-flight tasks to finish.
func (wp *WorkerPool) Close() {
	wp.once.Do(func() {
		wp.mu.Lock()
		wp.closed = true
		close(wp.taskQueue)
		wp.mu.Unlock()
	})
	wp.wg.Wait()
}

// ForEach runs fn for every index in [0, n) across the pool's workers
// and blocks until the submitted calls return. The pool stays open for
// further use. Distinct indices must not touch shared state. If the
// pool is closed, remaining indices never run and ErrPoolClosed is
// returned once in-flight calls finish.
func (wp *WorkerPool) ForEach(n int, fn func(i int)) error {
	var done sync.WaitGroup
	var err error
	for i := 0; i < n; i++ {
		i := i
		done.Add(1)
		if !wp.Submit(func() {
			defer done.Done()
			fn(i)
		}) {
			done.Done()
			err = ErrPoolClosed
			break
		}
	}
	done.Wait()
	return err
}
