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

func TestWorkerPool_Nil(t *testing.T) {
	var pool *WorkerPool

	if pool.Workers() != 1 {
		t.Errorf("nil Workers() = %d, want 1", pool.Workers())
	}
	if pool.IsRunning() {
		t.Error("nil pool should not report running")
	}
	pool.Close()
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

func TestWorkerPool_ExecuteAll_Empty(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	// Should not panic or block
	pool.ExecuteAll(nil)
	pool.ExecuteAll([]func(){})
}

func TestWorkerPool_ExecuteAllAfterClose(t *testing.T) {
	pool := NewWorkerPool(4)
	pool.Close()

	var executed atomic.Bool
	pool.ExecuteAll([]func(){
		func() { executed.Store(true) },
	})

	time.Sleep(50 * time.Millisecond)

	if executed.Load() {
		t.Error("Work was executed on closed pool")
	}
}

// =============================================================================
// Range Tests
// =============================================================================

func TestWorkerPool_Range(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		n       int
	}{
		{"fewer items than workers", 8, 3},
		{"even split", 4, 100},
		{"uneven split", 3, 100},
		{"single worker", 1, 17},
		{"single item", 4, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewWorkerPool(tt.workers)
			defer pool.Close()

			hits := make([]int32, tt.n)
			pool.Range(tt.n, func(lo, hi int) {
				for i := lo; i < hi; i++ {
					atomic.AddInt32(&hits[i], 1)
				}
			})

			for i, h := range hits {
				if h != 1 {
					t.Fatalf("index %d visited %d times, want 1", i, h)
				}
			}
		})
	}
}

func TestWorkerPool_RangeSequentialFallback(t *testing.T) {
	check := func(t *testing.T, pool *WorkerPool) {
		t.Helper()
		var spans [][2]int
		pool.Range(10, func(lo, hi int) {
			spans = append(spans, [2]int{lo, hi})
		})
		if len(spans) != 1 || spans[0] != [2]int{0, 10} {
			t.Errorf("spans = %v, want [[0 10]]", spans)
		}
	}

	t.Run("nil pool", func(t *testing.T) {
		check(t, nil)
	})

	t.Run("closed pool", func(t *testing.T) {
		pool := NewWorkerPool(4)
		pool.Close()
		check(t, pool)
	})
}

func TestWorkerPool_RangeEmpty(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	called := false
	pool.Range(0, func(lo, hi int) { called = true })
	if called {
		t.Error("fn called for empty range")
	}
}

// =============================================================================
// Lifecycle Tests
// =============================================================================

func TestWorkerPool_CloseIdempotent(t *testing.T) {
	pool := NewWorkerPool(4)

	// Multiple closes should not panic
	pool.Close()
	pool.Close()

	if pool.IsRunning() {
		t.Error("Pool should not be running after close")
	}
}

func TestWorkerPool_Concurrent(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	numGoroutines := 10
	numTasksPerGoroutine := 50

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for range numGoroutines {
		go func() {
			defer wg.Done()
			pool.Range(numTasksPerGoroutine, func(lo, hi int) {
				counter.Add(int64(hi - lo))
			})
		}()
	}
	wg.Wait()

	want := int64(numGoroutines * numTasksPerGoroutine)
	if counter.Load() != want {
		t.Errorf("counter = %d, want %d", counter.Load(), want)
	}
}

func TestWorkerPool_NoGoroutineLeak(t *testing.T) {
	runtime.GC()
	time.Sleep(50 * time.Millisecond)
	baseline := runtime.NumGoroutine()

	for i := 0; i < 5; i++ {
		pool := NewWorkerPool(4)
		pool.Range(100, func(lo, hi int) {})
		pool.Close()
	}

	runtime.GC()
	time.Sleep(100 * time.Millisecond)

	final := runtime.NumGoroutine()

	// Allow for some variance (test framework goroutines, etc.)
	if final > baseline+2 {
		t.Errorf("goroutine count: baseline=%d, final=%d (leak detected)", baseline, final)
	}
}

func BenchmarkWorkerPool_Range(b *testing.B) {
	pool := NewWorkerPool(0)
	defer pool.Close()

	rows := make([]int, 1080)
	b.ResetTimer()
	for range b.N {
		pool.Range(len(rows), func(lo, hi int) {
			for i := lo; i < hi; i++ {
				rows[i]++
			}
		})
	}
}
