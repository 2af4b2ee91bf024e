package parallel

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestFor(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 16}

	var counter int64
	n := 1000

	For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != int64(n) {
		t.Errorf("Expected %d, got %d", n, counter)
	}
}

func TestChunks(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 3, MinChunkSize: 10}
	n := 100

	var mu sync.Mutex
	seen := make([]int, n)
	calls := 0
	Chunks(n, func(start, end int) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		for i := start; i < end; i++ {
			seen[i]++
		}
	}, cfg)

	for i, c := range seen {
		if c != 1 {
			t.Fatalf("element %d visited %d times", i, c)
		}
	}
	if calls != 3 {
		t.Errorf("Expected 3 chunks, got %d", calls)
	}
}

func TestChunks_Sequential(t *testing.T) {
	for _, cfg := range []Config{
		{Enabled: false, NumWorkers: 8},
		{Enabled: true, NumWorkers: 8, MinChunkSize: 64},
		{Enabled: true, NumWorkers: 1},
	} {
		calls := 0
		Chunks(100, func(start, end int) {
			calls++
			if start != 0 || end != 100 {
				t.Errorf("Expected [0, 100), got [%d, %d)", start, end)
			}
		}, cfg)
		if calls != 1 {
			t.Errorf("Expected one call for %+v, got %d", cfg, calls)
		}
	}
}

func TestChunks_Empty(t *testing.T) {
	Chunks(0, func(_, _ int) {
		t.Error("f must not be called for n = 0")
	}, DefaultConfig())
}

func BenchmarkChunks(b *testing.B) {
	cfg := DefaultConfig()
	data := make([]float64, 1<<20)

	b.Run("parallel", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			Chunks(len(data), func(s, e int) {
				for j := s; j < e; j++ {
					data[j] = float64(j) * 0.5
				}
			}, cfg)
		}
	})

	b.Run("sequential", func(b *testing.B) {
		cfgSeq := cfg
		cfgSeq.Enabled = false
		for i := 0; i < b.N; i++ {
			Chunks(len(data), func(s, e int) {
				for j := s; j < e; j++ {
					data[j] = float64(j) * 0.5
				}
			}, cfgSeq)
		}
	})
}
