package analyzer

import (
	"sort"
	"sync"
)

// Registry is a container for all available analyzers
type Registry struct {
	analyzers map[string][]FeatureAnalyzer
	mu        sync.RWMutex
}

// NewRegistry creates a new analyzer registry
func NewRegistry() *Registry {
	return &Registry{
		analyzers: make(map[string][]FeatureAnalyzer),
	}
}

// Register adds an analyzer to the registry
func (r *Registry) Register(analyzer FeatureAnalyzer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, format := range analyzer.SupportedFormats() {
		r.analyzers[format] = append(r.analyzers[format], analyzer)
	}
}

// GetAnalyzersForFormat returns all analyzers that support the given format
func (r *Registry) GetAnalyzersForFormat(format string) []FeatureAnalyzer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.analyzers[format]
}

// GetAnalyzerByName finds an analyzer with the given name for a format
func (r *Registry) GetAnalyzerByName(name string, format string) FeatureAnalyzer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.analyzers[format] {
		if a.Name() == name {
			return a
		}
	}

	return nil
}

// Select returns the analyzer named name for format, or the first one
// registered for format when name is empty. It returns nil when none match.
func (r *Registry) Select(name, format string) FeatureAnalyzer {
	if name != "" {
		return r.GetAnalyzerByName(name, format)
	}

	analyzers := r.GetAnalyzersForFormat(format)
	if len(analyzers) == 0 {
		return nil
	}
	return analyzers[0]
}

// GetSupportedFormats returns a sorted list of all supported formats
func (r *Registry) GetSupportedFormats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var formats []string
	for format := range r.analyzers {
		formats = append(formats, format)
	}
	sort.Strings(formats)

	return formats
}
