// Package batch extracts features from many images concurrently.
//
// Each file runs the sequential pipeline on matrices it owns; the only
// shared state is the result slice, written at distinct indices.
package batch

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"PPD/pkg/analyzer"
	"PPD/pkg/filehandler"
	"PPD/pkg/imagesource"
	"PPD/pkg/models"

	"github.com/shirou/gopsutil/v3/mem"
	"golang.org/x/sync/errgroup"
)

// ErrNoAnalyzer is returned for files whose format has no registered analyzer.
var ErrNoAnalyzer = errors.New("batch: no analyzer for format")

// bytesPerSample covers the cover and stego int buffers plus the decoded image.
const bytesPerSample = 2*8 + 4

// ProgressCallback is called after each file completes.
type ProgressCallback func(done, total int, result *models.FeatureResult)

// Runner processes a list of files with a bounded worker pool.
type Runner struct {
	Registry *analyzer.Registry
	Options  analyzer.AnalysisOptions // Seed is the base seed
	Analyzer string                   // empty picks the first for each format
	Workers  int
	Progress ProgressCallback
}

// SeedFor derives the seed used for the i-th file.
func SeedFor(base int64, i int) int64 {
	return base + int64(i)
}

// Run analyzes files and returns results in the same order. The first
// error cancels the remaining work and is returned; no partial results.
func (r *Runner) Run(ctx context.Context, files []string) ([]*models.FeatureResult, error) {
	results := make([]*models.FeatureResult, len(files))
	if len(files) == 0 {
		return results, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workerLimit(files))

	var (
		mu   sync.Mutex
		done int
	)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			res, err := r.analyze(path, i)
			if err != nil {
				return err
			}
			results[i] = res

			if r.Progress != nil {
				mu.Lock()
				done++
				r.Progress(done, len(files), res)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Runner) analyze(path string, i int) (*models.FeatureResult, error) {
	format, err := filehandler.DetectFileFormat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", imagesource.ErrImageSource, path, err)
	}

	a := r.Registry.Select(r.Analyzer, format)
	if a == nil {
		return nil, fmt.Errorf("%s: %w: %q for %s", path, ErrNoAnalyzer, r.Analyzer, format)
	}

	opts := r.Options
	opts.Seed = SeedFor(r.Options.Seed, i)
	return a.Analyze(path, opts)
}

func (r *Runner) workerLimit(files []string) int {
	workers := r.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(files) {
		workers = len(files)
	}

	var largest uint64
	for _, f := range files {
		w, h, err := imagesource.Dimensions(f)
		if err != nil {
			continue // reported by the worker
		}
		if n := uint64(w) * uint64(h); n > largest {
			largest = n
		}
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		return workers
	}
	return MemoryBoundWorkers(workers, vm.Available, largest*bytesPerSample)
}

// MemoryBoundWorkers caps workers so that each can hold perWorker bytes
// within available memory. At least one worker is always allowed.
func MemoryBoundWorkers(workers int, available, perWorker uint64) int {
	if perWorker == 0 {
		return workers
	}
	fit := available / perWorker
	if fit < uint64(workers) {
		workers = int(fit)
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}
