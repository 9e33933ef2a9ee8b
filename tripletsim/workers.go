package main

import (
	"fmt"
	"math/rand/v2"
	"sync"

	triplet "github.com/neutron-exp/tripletsim_go/pkg"
)

// batchSize is the number of rays handed to a worker per job. Batches
// keep channel traffic low while still balancing load across workers.
const batchSize = 10000

type WorkerData struct {
	Batch int
	Count int
}

type BatchResult struct {
	Batch    int
	Emitted  int
	Detected int
	Weight   float64
	Error    bool
}

// worker owns its own source stream so runs are reproducible for a
// fixed seed and worker count. Stream 0 is reserved for the charge
// divider, workers use streams 1..N.
func worker(id int, detector *triplet.Detector, schema triplet.UserVarSchema,
	jobs <-chan WorkerData, results chan<- BatchResult) {
	source := triplet.NewSource(configuration.Source, schema,
		rand.NewPCG(uint64(configuration.Seed), uint64(id)))

	for job := range jobs {
		if configuration.Verbosity > 1 {
			fmt.Printf("Worker %d processing batch %d (%d rays)\n", id, job.Batch, job.Count)
		}
		results <- runBatch(id, source, detector, job)
	}
}

func runBatch(id int, source *triplet.Source, detector *triplet.Detector, job WorkerData) (res BatchResult) {
	res.Batch = job.Batch
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Worker %d recovered from panic: %v\n", id, r)
			res.Error = true
		}
	}()

	for i := 0; i < job.Count; i++ {
		neutron := source.Emit()
		res.Emitted++
		if detector.ProcessNeutron(&neutron) == triplet.Scattered {
			res.Detected++
			res.Weight += neutron.Weight
		}
	}
	return res
}

func sendBatchesToWorkers(nEvents int, jobs chan<- WorkerData) {
	batch := 0
	for sent := 0; sent < nEvents; sent += batchSize {
		count := batchSize
		if nEvents-sent < batchSize {
			count = nEvents - sent
		}
		jobs <- WorkerData{Batch: batch, Count: count}
		batch++
	}
	close(jobs)
}

// lockedRand guards a single PCG stream so the quantized charge
// divider can be shared between workers.
type lockedRand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func newLockedRand(seed int64) *lockedRand {
	return &lockedRand{rnd: rand.New(rand.NewPCG(uint64(seed), 0))}
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rnd.Float64()
}
