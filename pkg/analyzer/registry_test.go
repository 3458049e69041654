package analyzer_test

import (
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"PPD/pkg/analyzer"
	"PPD/pkg/analyzer/image/ppd"
	"PPD/pkg/imagesource"
	"PPD/pkg/models"
	"PPD/pkg/pixel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	r := analyzer.NewRegistry()
	require.Empty(t, r.GetSupportedFormats())

	r.Register(ppd.NewPPDAnalyzer())

	assert.Equal(t, []string{"bmp", "gif", "jpeg", "png", "tiff", "webp"}, r.GetSupportedFormats())
	require.Len(t, r.GetAnalyzersForFormat("tiff"), 1)
	assert.Empty(t, r.GetAnalyzersForFormat("svg"))

	assert.NotNil(t, r.GetAnalyzerByName("PPD Analyzer", "png"))
	assert.Nil(t, r.GetAnalyzerByName("PPD Analyzer", "svg"))
	assert.Nil(t, r.GetAnalyzerByName("other", "png"))
}

func TestBaseAnalyzer(t *testing.T) {
	b := analyzer.NewBaseAnalyzer("n", "d", []string{"tiff"})
	assert.Equal(t, "n", b.Name())
	assert.Equal(t, "d", b.Description())
	assert.True(t, b.CanAnalyze("tiff"))
	assert.False(t, b.CanAnalyze("png"))
}

// sizeAnalyzer reports only the matrix dimensions.
type sizeAnalyzer struct {
	analyzer.BaseAnalyzer
	err error
}

func newSizeAnalyzer(name string) *sizeAnalyzer {
	return &sizeAnalyzer{BaseAnalyzer: analyzer.NewBaseAnalyzer(name, "dimensions only", []string{"png"})}
}

func (s *sizeAnalyzer) Analyze(filePath string, options analyzer.AnalysisOptions) (*models.FeatureResult, error) {
	return analyzer.AnalyzeImageFile(s, filePath, options)
}

func (s *sizeAnalyzer) AnalyzeMatrix(cover *pixel.Matrix, options analyzer.AnalysisOptions) (*models.FeatureResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.FeatureResult{Width: cover.Cols(), Height: cover.Rows(), Seed: options.Seed}, nil
}

func TestRegistry_Select(t *testing.T) {
	r := analyzer.NewRegistry()
	first := newSizeAnalyzer("first")
	second := newSizeAnalyzer("second")
	r.Register(first)
	r.Register(second)

	assert.Same(t, first, r.Select("", "png"))
	assert.Same(t, second, r.Select("second", "png"))
	assert.Nil(t, r.Select("third", "png"))
	assert.Nil(t, r.Select("", "tiff"))
}

func TestAnalyzeImageFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shape.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewGray(image.Rect(0, 0, 7, 5))))
	require.NoError(t, f.Close())

	a := newSizeAnalyzer("size")
	res, err := a.Analyze(path, analyzer.AnalysisOptions{Seed: 3})
	require.NoError(t, err)
	assert.Equal(t, 7, res.Width)
	assert.Equal(t, 5, res.Height)
	assert.Equal(t, int64(3), res.Seed)
	assert.Equal(t, "shape.png", res.Filename)
	assert.Equal(t, path, res.Path)
	assert.Equal(t, "png", res.FileType)

	a.err = errors.New("boom")
	_, err = a.Analyze(path, analyzer.AnalysisOptions{})
	require.ErrorIs(t, err, a.err)

	_, err = a.Analyze(filepath.Join(t.TempDir(), "missing.png"), analyzer.AnalysisOptions{})
	require.ErrorIs(t, err, imagesource.ErrImageSource)
}
