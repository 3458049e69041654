package analyzer

import (
	"fmt"
	"time"

	"PPD/pkg/filehandler"
	"PPD/pkg/imagesource"
	"PPD/pkg/models"
	"PPD/pkg/pixel"
)

/*
Analyzer.go contains the interface and base implementation for feature analyzers.
FeatureAnalyzer: interface defines the methods that all feature analyzers must implement.
MatrixAnalyzer: interface extends FeatureAnalyzer with a method for analyzing an already decoded sample matrix.
BaseAnalyzer: struct provides common functionality for analyzers, such as name, description, and supported formats.
AnalysisOptions: struct holds the per-run options (seed, bitrate, label, verbosity).
AnalyzeImageFile: decodes an image file and runs a MatrixAnalyzer on its samples.
*/

// AnalysisOptions holds configuration options for analysis
type AnalysisOptions struct {
	Seed    int64
	Bitrate float64
	Label   string
	Verbose bool
}

// FeatureAnalyzer is the interface that all feature analyzers must implement
type FeatureAnalyzer interface {
	// CanAnalyze checks if this analyzer can handle the given format
	CanAnalyze(format string) bool

	// Analyze extracts the feature vector of a file
	Analyze(filePath string, options AnalysisOptions) (*models.FeatureResult, error)

	// Name returns the name of the analyzer
	Name() string

	// Description returns a detailed description of what the analyzer does
	Description() string

	// SupportedFormats returns a list of file formats this analyzer supports
	SupportedFormats() []string
}

// MatrixAnalyzer is an interface for analyzers that work on decoded samples
type MatrixAnalyzer interface {
	FeatureAnalyzer

	// AnalyzeMatrix extracts features directly from a cover matrix
	AnalyzeMatrix(cover *pixel.Matrix, options AnalysisOptions) (*models.FeatureResult, error)
}

// BaseAnalyzer provides common functionality for analyzers
type BaseAnalyzer struct {
	name        string
	description string
	formats     []string
}

// NewBaseAnalyzer creates a new BaseAnalyzer
func NewBaseAnalyzer(name, description string, formats []string) BaseAnalyzer {
	return BaseAnalyzer{
		name:        name,
		description: description,
		formats:     formats,
	}
}

// Name returns the analyzer name
func (b *BaseAnalyzer) Name() string {
	return b.name
}

// Description returns the analyzer description
func (b *BaseAnalyzer) Description() string {
	return b.description
}

// SupportedFormats returns the supported formats
func (b *BaseAnalyzer) SupportedFormats() []string {
	return b.formats
}

// CanAnalyze checks if the analyzer supports the given format
func (b *BaseAnalyzer) CanAnalyze(format string) bool {
	for _, f := range b.formats {
		if f == format {
			return true
		}
	}
	return false
}

// AnalyzeImageFile decodes filePath into a cover matrix, runs a on it and
// fills in the file details of the result.
func AnalyzeImageFile(a MatrixAnalyzer, filePath string, options AnalysisOptions) (*models.FeatureResult, error) {
	start := time.Now()

	img, err := imagesource.Load(filePath)
	if err != nil {
		return nil, err
	}
	defer img.Close()

	name := filehandler.BaseName(filePath)
	result, err := a.AnalyzeMatrix(img.Matrix, options)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	result.Path = filePath
	result.Filename = name
	result.FileType = img.Format
	result.AnalysisTime = start
	result.AnalysisDuration = time.Since(start)
	return result, nil
}
