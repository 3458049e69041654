package ppd

import (
	"fmt"
	"time"

	"PPD/pkg/analyzer"
	"PPD/pkg/analyzer/image/lsb"
	"PPD/pkg/embed"
	"PPD/pkg/feature"
	"PPD/pkg/models"
	"PPD/pkg/pattern"
	"PPD/pkg/pixel"
)

/*
Summary of this file and these functions:
- PPDAnalyzer extracts the pixel-pattern-difference feature vector of a grayscale image.
- Analyze decodes the file and hands the cover matrix to AnalyzeMatrix.
- AnalyzeMatrix derives a stego copy with the LSB matching simulator, counts the
  neighbourhood patterns of both and aggregates the two histograms into the
  normalized ratio vector.
- In verbose mode the result also carries LSB plane findings for cover and stego.
*/

// PPDAnalyzer implements feature extraction for grayscale images
type PPDAnalyzer struct {
	analyzer.BaseAnalyzer
}

var _ analyzer.MatrixAnalyzer = (*PPDAnalyzer)(nil)

// NewPPDAnalyzer creates a new PPD analyzer
func NewPPDAnalyzer() *PPDAnalyzer {
	return &PPDAnalyzer{
		BaseAnalyzer: analyzer.NewBaseAnalyzer(
			"PPD Analyzer",
			"Extracts co-occurrence ratio features between an image and its simulated LSB matching stego copy",
			[]string{"tiff", "png", "jpeg", "gif", "bmp", "webp"},
		),
	}
}

// Analyze extracts features from an image file
func (a *PPDAnalyzer) Analyze(filePath string, options analyzer.AnalysisOptions) (*models.FeatureResult, error) {
	return analyzer.AnalyzeImageFile(a, filePath, options)
}

// AnalyzeMatrix extracts features from a decoded cover matrix. The cover is
// only read; the stego copy is released before returning.
func (a *PPDAnalyzer) AnalyzeMatrix(cover *pixel.Matrix, options analyzer.AnalysisOptions) (*models.FeatureResult, error) {
	start := time.Now()

	sim := embed.NewSimulator(options.Bitrate, options.Seed)
	stego, stats, err := sim.Embed(cover)
	if err != nil {
		return nil, fmt.Errorf("embedding failed: %w", err)
	}
	defer stego.Release()

	coverHist, err := pattern.Count(cover)
	if err != nil {
		return nil, fmt.Errorf("cover patterns: %w", err)
	}
	stegoHist, err := pattern.Count(stego)
	if err != nil {
		return nil, fmt.Errorf("stego patterns: %w", err)
	}

	vec, err := feature.Aggregate(coverHist, stegoHist)
	if err != nil {
		return nil, err
	}

	result := &models.FeatureResult{
		Width:    cover.Cols(),
		Height:   cover.Rows(),
		Seed:     options.Seed,
		Bitrate:  options.Bitrate,
		Label:    options.Label,
		Features: vec,
		Embedding: models.EmbeddingInfo{
			Eligible: stats.Eligible,
			Selected: stats.Selected,
			Changed:  stats.Changed,
		},
		AnalysisTime:     start,
		AnalysisDuration: time.Since(start),
	}

	if options.Verbose {
		if err := addLSBFindings(result, cover, stego); err != nil {
			return nil, err
		}
		result.AddFinding("Pattern histogram totals",
			fmt.Sprintf("cover=%d stego=%d expected=%d", coverHist.Total(), stegoHist.Total(),
				pattern.ExpectedTotal(cover.Cols(), cover.Rows())))
	}

	return result, nil
}

func addLSBFindings(result *models.FeatureResult, cover, stego *pixel.Matrix) error {
	coverLSB, err := lsb.AnalyzeDistribution(cover)
	if err != nil {
		return fmt.Errorf("LSB analysis failed: %w", err)
	}
	stegoLSB, err := lsb.AnalyzeDistribution(stego)
	if err != nil {
		return fmt.Errorf("LSB analysis failed: %w", err)
	}
	changed, err := lsb.ChangedSamples(cover, stego)
	if err != nil {
		return fmt.Errorf("LSB analysis failed: %w", err)
	}

	result.AddFinding("LSB plane entropy",
		fmt.Sprintf("cover=%.4f stego=%.4f", coverLSB.Entropy, stegoLSB.Entropy))
	result.AddFinding("Samples modified by embedding",
		fmt.Sprintf("%d of %d eligible (%.2f%%)", changed, result.Embedding.Eligible, 100*result.ChangeRate()))
	return nil
}
