package queue

import (
	"sync"
	"testing"
	"time"
)

// ===========================================================================
// Benchmark Configuration
// ===========================================================================

// queueBenchConfig holds benchmark test configuration.
type queueBenchConfig struct {
	name  string
	batch int
}

// benchConfigs defines the backlog sizes for benchmarking.
var benchConfigs = []queueBenchConfig{
	{"Small/Batch64", 64},
	{"Medium/Batch1K", 1024},
	{"Large/Batch64K", 64 * 1024},
}

// ===========================================================================
// Queue Factory Registry
// ===========================================================================

// queueFactory creates a Queue[int].
type queueFactory func() Queue[int]

// queueImplementations holds all registered queue implementations.
var queueImplementations = map[string]queueFactory{
	"Blocking":       func() Queue[int] { return New[int]() },
	"Blocking/NoClk": func() Queue[int] { return New[int](WithClock(noClock{})) },
}

// noClock skips the wall clock read on park.
type noClock struct{}

func (noClock) Now() time.Time { return time.Time{} }

func (noClock) Stop() {}

// ===========================================================================
// Single-Threaded Benchmarks
// ===========================================================================

// BenchmarkEnqueue measures Enqueue performance.
func BenchmarkEnqueue(b *testing.B) {
	for implName, factory := range queueImplementations {
		for _, cfg := range benchConfigs {
			name := implName + "/" + cfg.name
			b.Run(name, func(b *testing.B) {
				q := factory()
				b.ResetTimer()
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					_ = q.Enqueue(i)
					// Drain to keep the backlog bounded
					if i%cfg.batch == cfg.batch-1 {
						b.StopTimer()
						for j := 0; j < cfg.batch; j++ {
							q.TryDequeue()
						}
						b.StartTimer()
					}
				}
			})
		}
	}
}

// BenchmarkTryDequeue measures TryDequeue performance on a filled queue.
func BenchmarkTryDequeue(b *testing.B) {
	for implName, factory := range queueImplementations {
		for _, cfg := range benchConfigs {
			name := implName + "/" + cfg.name
			b.Run(name, func(b *testing.B) {
				q := factory()
				for i := 0; i < cfg.batch; i++ {
					_ = q.Enqueue(i)
				}
				b.ResetTimer()
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					if _, ok := q.TryDequeue(); !ok {
						b.StopTimer()
						for j := 0; j < cfg.batch; j++ {
							_ = q.Enqueue(j)
						}
						b.StartTimer()
					}
				}
			})
		}
	}
}

// BenchmarkEnqueueDequeue measures roundtrip Enqueue+Dequeue.
func BenchmarkEnqueueDequeue(b *testing.B) {
	for implName, factory := range queueImplementations {
		b.Run(implName, func(b *testing.B) {
			q := factory()
			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = q.Enqueue(i)
				_, _ = q.Dequeue()
			}
		})
	}
}

// ===========================================================================
// Concurrent Benchmarks
// ===========================================================================

// concurrencyConfigs defines producer/consumer count combinations.
var concurrencyConfigs = []struct {
	name      string
	producers int
	consumers int
}{
	{"1P1C", 1, 1},
	{"2P2C", 2, 2},
	{"4P4C", 4, 4},
	{"8P8C", 8, 8},
	{"1P8C", 1, 8},
}

// BenchmarkConcurrent_EnqueueDequeue measures producer to parked consumer handoff.
func BenchmarkConcurrent_EnqueueDequeue(b *testing.B) {
	const opsPerProducer = 10000

	for implName, factory := range queueImplementations {
		for _, cc := range concurrencyConfigs {
			name := implName + "/" + cc.name
			b.Run(name, func(b *testing.B) {
				for n := 0; n < b.N; n++ {
					q := factory()
					totalOps := cc.producers * opsPerProducer
					var wg sync.WaitGroup

					// Consumers split the total exactly so all of them return.
					wg.Add(cc.consumers)
					for c := 0; c < cc.consumers; c++ {
						quota := totalOps / cc.consumers
						if c == 0 {
							quota += totalOps % cc.consumers
						}
						go func(quota int) {
							defer wg.Done()
							for i := 0; i < quota; i++ {
								_, _ = q.Dequeue()
							}
						}(quota)
					}

					// Producers
					wg.Add(cc.producers)
					for p := 0; p < cc.producers; p++ {
						go func(id int) {
							defer wg.Done()
							for i := 0; i < opsPerProducer; i++ {
								_ = q.Enqueue(id*opsPerProducer + i)
							}
						}(p)
					}

					wg.Wait()
				}
			})
		}
	}
}

// ===========================================================================
// Throughput Benchmark (items/second)
// ===========================================================================

// BenchmarkThroughput measures maximum single-threaded throughput.
func BenchmarkThroughput(b *testing.B) {
	const batch = 1024

	for implName, factory := range queueImplementations {
		b.Run(implName, func(b *testing.B) {
			q := factory()
			b.ResetTimer()
			b.ReportAllocs()

			ops := 0
			for i := 0; i < b.N; i++ {
				for j := 0; j < batch; j++ {
					_ = q.Enqueue(j)
				}
				for j := 0; j < batch; j++ {
					q.TryDequeue()
				}
				ops += batch * 2
			}
			b.ReportMetric(float64(ops)/b.Elapsed().Seconds(), "ops/s")
		})
	}
}
