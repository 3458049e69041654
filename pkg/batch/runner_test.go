package batch

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"PPD/pkg/analyzer"
	"PPD/pkg/analyzer/image/ppd"
	"PPD/pkg/imagesource"
	"PPD/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, offset int) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 24, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 24; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(offset + x*3 + (x*y)%5)})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func newRunner(workers int) *Runner {
	reg := analyzer.NewRegistry()
	reg.Register(ppd.NewPPDAnalyzer())
	return &Runner{
		Registry: reg,
		Options:  analyzer.AnalysisOptions{Seed: 100, Bitrate: 1},
		Workers:  workers,
	}
}

func TestRun_OrderAndSeeds(t *testing.T) {
	dir := t.TempDir()
	var files []string
	for i, name := range []string{"a.png", "b.png", "c.png", "d.png"} {
		p := filepath.Join(dir, name)
		writePNG(t, p, 20*i+10)
		files = append(files, p)
	}

	r := newRunner(3)
	var calls []int
	r.Progress = func(done, total int, res *models.FeatureResult) {
		assert.Equal(t, 4, total)
		assert.NotNil(t, res)
		calls = append(calls, done)
	}

	results, err := r.Run(context.Background(), files)
	require.NoError(t, err)
	require.Len(t, results, 4)
	for i, res := range results {
		assert.Equal(t, filepath.Base(files[i]), res.Filename)
		assert.Equal(t, SeedFor(100, i), res.Seed)
	}
	assert.ElementsMatch(t, []int{1, 2, 3, 4}, calls)

	// sequential and parallel runs agree
	serial, err := newRunner(1).Run(context.Background(), files)
	require.NoError(t, err)
	for i := range results {
		assert.Equal(t, serial[i].Features, results[i].Features)
	}
}

func TestRun_FailureAbortsBatch(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.png")
	writePNG(t, good, 30)
	bad := filepath.Join(dir, "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("garbage"), 0644))

	results, err := newRunner(2).Run(context.Background(), []string{good, bad})
	require.ErrorIs(t, err, imagesource.ErrImageSource)
	require.Nil(t, results)
}

func TestRun_UndetectableFormat(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.png")
	writePNG(t, good, 30)
	blob := filepath.Join(dir, "blob.dat")
	require.NoError(t, os.WriteFile(blob, []byte("plain text, not an image"), 0644))

	_, err := newRunner(2).Run(context.Background(), []string{good, blob})
	require.ErrorIs(t, err, imagesource.ErrImageSource)
}

func TestRun_NamedAnalyzer(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "a.png")
	writePNG(t, p, 40)

	r := newRunner(1)
	r.Analyzer = "PPD Analyzer"
	results, err := r.Run(context.Background(), []string{p})
	require.NoError(t, err)
	require.Len(t, results, 1)

	r.Analyzer = "missing"
	_, err = r.Run(context.Background(), []string{p})
	require.ErrorIs(t, err, ErrNoAnalyzer)
}

func TestRun_Empty(t *testing.T) {
	results, err := newRunner(2).Run(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestRun_Cancelled(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "a.png")
	writePNG(t, p, 40)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newRunner(1).Run(ctx, []string{p})
	require.ErrorIs(t, err, context.Canceled)
}

func TestMemoryBoundWorkers(t *testing.T) {
	assert.Equal(t, 4, MemoryBoundWorkers(4, 1000, 0))
	assert.Equal(t, 4, MemoryBoundWorkers(4, 1000, 100))
	assert.Equal(t, 2, MemoryBoundWorkers(4, 250, 100))
	assert.Equal(t, 1, MemoryBoundWorkers(4, 10, 100))
}
