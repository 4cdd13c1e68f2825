package parallel

import (
	"runtime"
	"sync/atomic"
	"testing"
)

func TestStartDefaultsToGOMAXPROCS(t *testing.T) {
	p := Start(0)
	defer p.Wait()

	if got, want := p.Workers(), runtime.GOMAXPROCS(0); got != want {
		t.Errorf("expected %d workers, got %d", want, got)
	}
}

func TestSingleWorkerRunsInline(t *testing.T) {
	p := Start(1)

	var order []int
	for i := range 5 {
		p.Do(func() { order = append(order, i) })
		if len(order) != i+1 {
			t.Fatalf("expected job %d to run before Do returned", i)
		}
	}
	p.Wait()

	for i, v := range order {
		if v != i {
			t.Errorf("expected job %d at position %d, got %d", i, i, v)
		}
	}
}

func TestRangeRunsEveryIndexOnce(t *testing.T) {
	for _, workers := range []int{1, 2, 7} {
		const n = 500
		var hits [n]atomic.Int32

		Start(workers).Range(n, func(i int) {
			hits[i].Add(1)
		})

		for i := range hits {
			if got := hits[i].Load(); got != 1 {
				t.Errorf("workers=%d: index %d ran %d times", workers, i, got)
			}
		}
	}
}

func TestWaitIsIdempotent(t *testing.T) {
	p := Start(4)
	var count atomic.Int32
	for range 10 {
		p.Do(func() { count.Add(1) })
	}
	p.Wait()
	p.Wait()

	if got := count.Load(); got != 10 {
		t.Errorf("expected 10 jobs to run, got %d", got)
	}
}
