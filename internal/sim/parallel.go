package sim

import (
	"math/rand"
	"runtime"
	"strconv"
	"strings"
	"sync"
)

// GameJob is one round queued for a worker.
type GameJob struct {
	Index int
	Seed  int64
}

type jobResult struct {
	index  int
	result Result
}

// BatchStats aggregates a batch of simulated rounds. Results are ordered by job index.
type BatchStats struct {
	Games        int
	Completed    int
	Failures     int
	Divergences  int
	ForcedPasses int
	TotalSteps   int
	MaxSteps     int
	TotalTricks  int
	// FirstOut counts how often each seat (0-based) went out first.
	FirstOut map[int]int
	Results  []Result
}

// AvgSteps returns the mean number of actions per round.
func (b BatchStats) AvgSteps() float64 {
	if b.Games == 0 {
		return 0
	}
	return float64(b.TotalSteps) / float64(b.Games)
}

// RunBatch plays games rounds on a pool of workers. Each round's seed is drawn
// from seed up front, so a batch is reproducible whatever the worker count.
// cfg.Seed is ignored.
func RunBatch(cfg Config, games, workers int, seed int64) BatchStats {
	if games < 0 {
		games = 0
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	jobs := make(chan GameJob, games)
	results := make(chan jobResult, games)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go worker(&wg, cfg, jobs, results)
	}

	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < games; i++ {
		jobs <- GameJob{Index: i, Seed: rng.Int63()}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	ordered := make([]Result, games)
	for r := range results {
		ordered[r.index] = r.result
	}
	return aggregate(ordered)
}

func worker(wg *sync.WaitGroup, cfg Config, jobs <-chan GameJob, results chan<- jobResult) {
	defer wg.Done()

	for job := range jobs {
		c := cfg
		c.Seed = job.Seed
		results <- jobResult{index: job.Index, result: RunGame(c)}
	}
}

func aggregate(results []Result) BatchStats {
	stats := BatchStats{Games: len(results), FirstOut: make(map[int]int), Results: results}
	for _, r := range results {
		if r.Completed {
			stats.Completed++
		}
		if r.Failed() {
			stats.Failures++
		}
		stats.Divergences += len(r.Divergences)
		stats.ForcedPasses += r.ForcedPasses
		stats.TotalSteps += r.Steps
		stats.TotalTricks += r.Tricks
		if r.Steps > stats.MaxSteps {
			stats.MaxSteps = r.Steps
		}
		if r.Completed && len(r.Standings) > 0 {
			stats.FirstOut[seatOf(r.Standings[0])]++
		}
	}
	return stats
}

// seatOf maps a simulated player id ("cpu-N") back to its 0-based seat.
func seatOf(id string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(id, playerPrefix))
	if err != nil {
		return -1
	}
	return n - 1
}
