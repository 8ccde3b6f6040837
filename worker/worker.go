package worker

import (
	"fmt"
	"sync"
	"time"

	"github.com/BrugadaSyndrome/bslogger"

	"mandelbrot/misc"
)

// Pool is a fixed set of goroutines draining a shared job queue. Execute fans a
// batch of jobs out to the pool and blocks until every one of them has run.
type Pool struct {
	closed   bool
	jobs     chan func()
	logger   bslogger.Logger
	mutex    sync.RWMutex
	settings Settings
	workers  sync.WaitGroup
}

func NewPool(settings Settings) *Pool {
	pool := &Pool{
		logger: bslogger.NewLogger("WorkerPool", bslogger.Normal, nil),
	}
	misc.CheckError(settings.Verify(), pool.logger, misc.Fatal, "Verifying worker settings")

	pool.jobs = make(chan func(), settings.QueueSize)
	pool.settings = settings

	pool.workers.Add(settings.Workers)
	for id := 0; id < settings.Workers; id++ {
		go pool.processJobs(id)
	}
	pool.logger.Debug(fmt.Sprintf("Started %d workers", settings.Workers))

	return pool
}

func (p *Pool) processJobs(id int) {
	defer p.workers.Done()

	var completed int
	var startTime = time.Now()
	for job := range p.jobs {
		job()
		completed++
	}

	p.logger.Debug(fmt.Sprintf("Worker %d processed %d jobs in %s", id, completed, time.Since(startTime)))
}

// Size is the number of worker goroutines.
func (p *Pool) Size() int {
	return p.settings.Workers
}

// Execute runs every job on the pool and returns once all of them are done.
// After Close the jobs run one after another on the calling goroutine.
func (p *Pool) Execute(jobs []func()) {
	var pass sync.WaitGroup
	pass.Add(len(jobs))

	p.mutex.RLock()
	defer p.mutex.RUnlock()

	for _, job := range jobs {
		wrapped := func() {
			defer pass.Done()
			job()
		}
		if p.closed {
			wrapped()
			continue
		}
		p.jobs <- wrapped
	}

	pass.Wait()
}

// Close stops the workers once the queue has drained. It waits for any Execute
// already in progress.
func (p *Pool) Close() {
	p.mutex.Lock()
	if p.closed {
		p.mutex.Unlock()
		return
	}
	p.closed = true
	close(p.jobs)
	p.mutex.Unlock()

	p.workers.Wait()
	p.logger.Debug("Worker pool shut down")
}
