package worker

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
)

func TestExecuteRunsEveryJob(t *testing.T) {
	pool := NewPool(Settings{Workers: 4, QueueSize: 2})
	defer pool.Close()

	results := make([]int, 100)
	jobs := make([]func(), len(results))
	for i := range jobs {
		jobs[i] = func() {
			results[i] = i * i
		}
	}
	pool.Execute(jobs)

	for i, got := range results {
		if got != i*i {
			t.Errorf("results[%d] = %d, want %d", i, got, i*i)
		}
	}
}

func TestExecuteFromSeveralGoroutines(t *testing.T) {
	pool := NewPool(Settings{Workers: 3})
	defer pool.Close()

	var total atomic.Int64
	var callers sync.WaitGroup
	for c := 0; c < 8; c++ {
		callers.Add(1)
		go func() {
			defer callers.Done()
			jobs := make([]func(), 50)
			for i := range jobs {
				jobs[i] = func() { total.Add(1) }
			}
			pool.Execute(jobs)
		}()
	}
	callers.Wait()

	if got := total.Load(); got != 8*50 {
		t.Errorf("ran %d jobs, want %d", got, 8*50)
	}
}

func TestExecuteAfterClose(t *testing.T) {
	pool := NewPool(Settings{Workers: 2})
	pool.Close()
	pool.Close()

	var ran int
	pool.Execute([]func(){
		func() { ran++ },
		func() { ran++ },
	})
	if ran != 2 {
		t.Errorf("ran %d jobs after Close, want 2", ran)
	}
}

func TestExecuteNothing(t *testing.T) {
	pool := NewPool(Settings{Workers: 1})
	defer pool.Close()
	pool.Execute(nil)
}

func TestSettingsVerify(t *testing.T) {
	var s Settings
	if err := s.Verify(); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if s.Workers != runtime.GOMAXPROCS(0) {
		t.Errorf("Workers = %d, want %d", s.Workers, runtime.GOMAXPROCS(0))
	}
	if s.QueueSize != 4*s.Workers {
		t.Errorf("QueueSize = %d, want %d", s.QueueSize, 4*s.Workers)
	}

	s = Settings{Workers: 3, QueueSize: 1}
	_ = s.Verify()
	if s.Workers != 3 || s.QueueSize != 1 {
		t.Errorf("Verify changed explicit settings to %d workers and queue %d", s.Workers, s.QueueSize)
	}

	pool := NewPool(Settings{Workers: 5})
	defer pool.Close()
	if pool.Size() != 5 {
		t.Errorf("Size() = %d, want 5", pool.Size())
	}
}

func TestNewPoolVerifiesSettings(t *testing.T) {
	pool := NewPool(Settings{Workers: -3, QueueSize: -1})
	defer pool.Close()

	if pool.Size() != runtime.GOMAXPROCS(0) {
		t.Errorf("Size() = %d, want %d", pool.Size(), runtime.GOMAXPROCS(0))
	}
	if cap(pool.jobs) != 4*pool.Size() {
		t.Errorf("queue holds %d jobs, want %d", cap(pool.jobs), 4*pool.Size())
	}
}
