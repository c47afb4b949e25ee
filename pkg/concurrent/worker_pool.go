package concurrent

import "sync"

/*
WorkerPool fixed number of goroutines draining a buffered job queue.

	workers := NewWorkerPool[RouteQuery, routeResult](8, len(queries))
	for ... { workers.AddJob(q) }
	workers.Close()
	workers.Start(fn)
	workers.Wait()
	for res := range workers.CollectResults() { ... }

the job queue is buffered with numJobs so every job can be added before Start.
*/
type WorkerPool[T JobI, G any] struct {
	numWorkers int
	jobQueue   chan T
	results    chan G
	wg         sync.WaitGroup
}

func NewWorkerPool[T JobI, G any](numWorkers, numJobs int) *WorkerPool[T, G] {
	if numWorkers < 1 {
		numWorkers = 1
	}
	if numJobs < 0 {
		numJobs = 0
	}
	return &WorkerPool[T, G]{
		numWorkers: numWorkers,
		jobQueue:   make(chan T, numJobs),
		results:    make(chan G, numJobs),
	}
}

func (wp *WorkerPool[T, G]) AddJob(job T) {
	wp.jobQueue <- job
}

// Close no more jobs. workers return once the queue is drained.
func (wp *WorkerPool[T, G]) Close() {
	close(wp.jobQueue)
}

func (wp *WorkerPool[T, G]) Start(fn JobFunc[T, G]) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(fn)
	}
}

func (wp *WorkerPool[T, G]) worker(fn JobFunc[T, G]) {
	defer wp.wg.Done()
	for job := range wp.jobQueue {
		wp.results <- fn(job)
	}
}

// Wait blocks until every worker is done and closes the results channel.
func (wp *WorkerPool[T, G]) Wait() {
	wp.wg.Wait()
	close(wp.results)
}

func (wp *WorkerPool[T, G]) CollectResults() <-chan G {
	return wp.results
}
