package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"PPD/pkg/analyzer"
	ppdanalyzer "PPD/pkg/analyzer/image/ppd"
	"PPD/pkg/batch"
	"PPD/pkg/config"
	"PPD/pkg/feature"
	"PPD/pkg/filehandler"
	"PPD/pkg/imagesource"
	"PPD/pkg/models"
	"PPD/pkg/output"
	"PPD/pkg/pixel"

	"github.com/fatih/color"
)

var (
	// Color printers
	infoColor    = color.New(color.FgBlue).SprintFunc()
	successColor = color.New(color.FgGreen).SprintFunc()
	warningColor = color.New(color.FgYellow).SprintFunc()
	errorColor   = color.New(color.FgRed).SprintFunc()
)

// Diagnostics go to stderr; stdout only carries feature records.
var diag io.Writer = color.Error

func printInfo(format string, args ...interface{}) {
	fmt.Fprintf(diag, "%s %s\n", infoColor("[*]"), fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...interface{}) {
	fmt.Fprintf(diag, "%s %s\n", successColor("[+]"), fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...interface{}) {
	fmt.Fprintf(diag, "%s %s\n", warningColor("[!]"), fmt.Sprintf(format, args...))
}

func printError(format string, args ...interface{}) {
	fmt.Fprintf(diag, "%s %s\n", errorColor("[-]"), fmt.Sprintf(format, args...))
}

func usage(fs *flag.FlagSet) func() {
	return func() {
		fmt.Fprintf(diag, "Usage: %s [flags] <input image or directory>\n", fs.Name())
		fs.PrintDefaults()
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, color.Error))
}

// run parses args, extracts features and returns the process exit code.
// Records go to stdout, everything else to stderr.
func run(args []string, stdout, stderr io.Writer) int {
	diag = stderr

	fs := flag.NewFlagSet("ppd", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath   = fs.String("config", "", "YAML configuration file")
		writeConfig  = fs.String("write-config", "", "Write the effective configuration to this YAML file")
		seed         = fs.Int64("seed", 0, "Seed for the embedding simulator (default: from clock)")
		bitrate      = fs.Float64("bitrate", 1.0, "Embedding bitrate in (0, 1]")
		format       = fs.String("format", "text", "Output format: "+strings.Join(output.Formats, ", "))
		label        = fs.String("label", "", "Label written as the last csv column (cover or stego)")
		analyzerName = fs.String("analyzer", "", "Analyzer to run (default: first registered for the format)")
		workers      = fs.Int("workers", 0, "Concurrent files in directory mode (0 = number of CPUs)")
		outPath      = fs.String("out", "", "Write records to this file instead of stdout")
		recursive    = fs.Bool("recursive", true, "Walk subdirectories in directory mode")
		verbose      = fs.Bool("verbose", false, "Enable verbose output")
	)
	fs.Usage = usage(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			printError("Failed to load configuration: %v", err)
			return 1
		}
		cfg = loaded
	}

	// explicit flags override the configuration file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.SetSeed(*seed)
		case "bitrate":
			cfg.Bitrate = *bitrate
		case "format":
			cfg.Format = *format
		case "label":
			cfg.Label = *label
		case "analyzer":
			cfg.Analyzer = *analyzerName
		case "workers":
			cfg.Workers = *workers
		case "out":
			cfg.Output = *outPath
		case "recursive":
			cfg.Recursive = *recursive
		case "verbose":
			cfg.Verbose = *verbose
		}
	})
	if err := cfg.Validate(); err != nil {
		printError("%v", err)
		return 1
	}

	if *writeConfig != "" {
		if err := config.Write(cfg, *writeConfig); err != nil {
			printError("Failed to write configuration: %v", err)
			return 1
		}
		printSuccess("Configuration written to %s", *writeConfig)
		if fs.NArg() == 0 {
			return 0
		}
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return 1
	}
	input := fs.Arg(0)

	registry := analyzer.NewRegistry()
	registerAnalyzers(registry)

	options := analyzer.AnalysisOptions{
		Seed:    cfg.ResolveSeed(),
		Bitrate: cfg.Bitrate,
		Label:   cfg.Label,
		Verbose: cfg.Verbose,
	}
	if cfg.Verbose {
		printInfo("Seed %d, bitrate %.3f", options.Seed, options.Bitrate)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var (
		results []*models.FeatureResult
		err     error
	)
	if filehandler.IsDir(input) {
		results, err = analyzeDirectory(ctx, input, registry, options, cfg)
	} else {
		var res *models.FeatureResult
		res, err = analyzeFile(input, registry, cfg.Analyzer, options)
		results = []*models.FeatureResult{res}
	}
	if err != nil {
		reportFailure(err)
		return 1
	}

	if err := writeResults(results, cfg, stdout); err != nil {
		printError("Failed to write results: %v", err)
		return 1
	}
	return 0
}

func registerAnalyzers(registry *analyzer.Registry) {
	registry.Register(ppdanalyzer.NewPPDAnalyzer())
}

func analyzeFile(filePath string, registry *analyzer.Registry, name string, options analyzer.AnalysisOptions) (*models.FeatureResult, error) {
	format, err := filehandler.DetectFileFormat(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", imagesource.ErrImageSource, filePath, err)
	}

	a := registry.Select(name, format)
	if a == nil {
		return nil, fmt.Errorf("%s: %w: %q for %s", filePath, batch.ErrNoAnalyzer, name, format)
	}
	if options.Verbose {
		printInfo("Running %s on %s as %s", a.Name(), filePath, format)
	}

	result, err := a.Analyze(filePath, options)
	if err != nil {
		return nil, err
	}

	if options.Verbose {
		displayResult(result)
	}
	return result, nil
}

func analyzeDirectory(ctx context.Context, dirPath string, registry *analyzer.Registry, options analyzer.AnalysisOptions, cfg config.Config) ([]*models.FeatureResult, error) {
	files, err := filehandler.FilesInDirectory(dirPath, cfg.Recursive)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		printWarning("No supported images found in %s", dirPath)
		return nil, nil
	}
	printInfo("Found %d images to analyze", len(files))

	runner := &batch.Runner{
		Registry: registry,
		Options:  options,
		Analyzer: cfg.Analyzer,
		Workers:  cfg.Workers,
	}
	if cfg.Verbose {
		runner.Progress = func(done, total int, res *models.FeatureResult) {
			printInfo("[%d/%d] %s (%s)", done, total, res.Filename, res.AnalysisDuration)
		}
	}

	results, err := runner.Run(ctx, files)
	if err != nil {
		return nil, err
	}
	printSuccess("Extracted features from %d images", len(results))
	return results, nil
}

func displayResult(result *models.FeatureResult) {
	printSuccess("%s: %dx%d, %d of %d eligible samples changed",
		result.Filename, result.Width, result.Height, result.Embedding.Changed, result.Embedding.Eligible)
	for i, f := range result.Findings {
		fmt.Fprintf(diag, "%d. %s: %s\n", i+1, f.Description, f.Details)
	}
}

func reportFailure(err error) {
	switch {
	case errors.Is(err, imagesource.ErrImageSource):
		printError("Error reading image: %v", err)
	case errors.Is(err, feature.ErrDegenerateNormalization):
		printError("Cannot normalize features: %v", err)
	case errors.Is(err, pixel.ErrAllocation):
		printError("Out of memory: %v", err)
	case errors.Is(err, batch.ErrNoAnalyzer):
		printError("No analyzer: %v", err)
	default:
		printError("Analysis failed: %v", err)
	}
}

func writeResults(results []*models.FeatureResult, cfg config.Config, stdout io.Writer) error {
	var buf bytes.Buffer
	dst := stdout
	if cfg.Output != "" {
		dst = &buf
	}

	w, err := output.NewWriter(dst, cfg.Format)
	if err != nil {
		return err
	}
	for _, r := range results {
		if err := w.Write(r); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if cfg.Output != "" {
		if err := filehandler.SaveFile(buf.Bytes(), cfg.Output); err != nil {
			return err
		}
		printSuccess("Features written to %s", cfg.Output)
	}
	return nil
}
