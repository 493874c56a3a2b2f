package perftests

import (
	"math/rand"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	model "gallery-auctions/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoadScenario defines configurable benchmark parameters
type LoadScenario struct {
	Name            string
	NumAuctions     int
	ReadRatio       int
	MaxBidIncrement int
	Burst           bool // if true, no delay between ops
}

// OperationMetrics collects latencies safely
type OperationMetrics struct {
	mu        sync.Mutex
	latencies []time.Duration
}

func (om *OperationMetrics) Record(d time.Duration) {
	om.mu.Lock()
	om.latencies = append(om.latencies, d)
	om.mu.Unlock()
}

func (om *OperationMetrics) Stats() (min, max, avg, p95, p99 time.Duration) {
	om.mu.Lock()
	latencies := append([]time.Duration(nil), om.latencies...)
	om.mu.Unlock()

	if len(latencies) == 0 {
		return
	}
	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

	min = latencies[0]
	max = latencies[len(latencies)-1]

	var total time.Duration
	for _, d := range latencies {
		total += d
	}
	avg = total / time.Duration(len(latencies))
	p95 = latencies[int(0.95*float64(len(latencies)-1))]
	p99 = latencies[int(0.99*float64(len(latencies)-1))]
	return
}

// Benchmark_Load_BiddingSystem runs multiple scenarios
func Benchmark_Load_BiddingSystem(b *testing.B) {
	scenarios := []LoadScenario{
		{"Low-Contention-WriteHeavy", 200, 0, 50, false},
		{"High-Contention-WriteHeavy", 10, 0, 20, false},
		{"Mixed-Workload", 50, 7, 30, false},
		{"ReadHeavy", 50, 9, 20, false},
		{"Edge-Case-SingleAuction", 1, 5, 10, false},
		{"Peak-Burst", 50, 0, 20, true},
	}

	for _, s := range scenarios {
		b.Run(s.Name, func(b *testing.B) {
			runParallelScenario(b, s)
		})
	}
}

func runParallelScenario(b *testing.B, s LoadScenario) {
	b.ReportAllocs()

	svc, ids := newAuctions(b, s.NumAuctions)

	var totalOps, acceptedBids, rejectedBids, totalReads int64
	auctionAccepted := make([]int64, s.NumAuctions)
	metrics := &OperationMetrics{}

	start := time.Now()

	b.RunParallel(func(pb *testing.PB) {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
		bidder := uuid.New()

		for pb.Next() {
			idx := rnd.Intn(s.NumAuctions)
			opType := rnd.Intn(10)

			opStart := time.Now()
			if opType < s.ReadRatio {
				if _, ok := svc.TryGetAuction(ids[idx]); !ok {
					b.Errorf("auction %s disappeared", ids[idx])
				}
				atomic.AddInt64(&totalReads, 1)
			} else {
				amount := decimal.NewFromInt(50 + int64(rnd.Intn(s.MaxBidIncrement))*atomic.LoadInt64(&auctionAccepted[idx]))
				if result, _ := svc.PlaceBid(ids[idx], bidder, amount); result == model.BidAccepted {
					atomic.AddInt64(&acceptedBids, 1)
					atomic.AddInt64(&auctionAccepted[idx], 1)
				} else {
					atomic.AddInt64(&rejectedBids, 1)
				}
			}

			metrics.Record(time.Since(opStart))
			atomic.AddInt64(&totalOps, 1)

			if !s.Burst {
				time.Sleep(time.Millisecond)
			}
		}
	})

	elapsed := time.Since(start)
	throughput := float64(totalOps) / elapsed.Seconds()
	min, max, avg, p95, p99 := metrics.Stats()

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	b.Logf(
		"Scenario: %s | Auctions: %d | Total Ops: %d | Accepted Bids: %d | Rejected Bids: %d | Reads: %d | Elapsed: %s | Throughput: %.2f ops/sec | Latency(us) min: %.2f avg: %.2f max: %.2f p95: %.2f p99: %.2f | Memory Alloc: %.2f MB",
		s.Name, s.NumAuctions, totalOps, acceptedBids, rejectedBids, totalReads, elapsed,
		throughput,
		float64(min.Microseconds()), float64(avg.Microseconds()), float64(max.Microseconds()),
		float64(p95.Microseconds()), float64(p99.Microseconds()),
		float64(mem.Alloc)/1024/1024,
	)

	// every accepted bid must be in the log, and nothing else
	for i, id := range ids {
		auction, _ := svc.TryGetAuction(id)
		if int64(len(auction.Bids)) != auctionAccepted[i] {
			b.Errorf("auction %s: %d bids logged, %d accepted", id, len(auction.Bids), auctionAccepted[i])
		}
	}
}
