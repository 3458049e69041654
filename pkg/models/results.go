package models

import (
	"time"
)

// Label values used in labelled output.
const (
	LabelCover = "cover"
	LabelStego = "stego"
)

// FeatureResult contains the extracted feature vector of one image
type FeatureResult struct {
	Filename  string        `json:"filename"` // base name, no directory
	Path      string        `json:"path"`
	FileType  string        `json:"fileType"`
	Width     int           `json:"width"`
	Height    int           `json:"height"`
	Seed      int64         `json:"seed"`
	Bitrate   float64       `json:"bitrate"`
	Label     string        `json:"label,omitempty"`
	Features  []float64     `json:"features"`
	Embedding EmbeddingInfo `json:"embedding"`
	Findings  []Finding     `json:"findings,omitempty"`

	AnalysisTime     time.Time     `json:"analysisTime"`
	AnalysisDuration time.Duration `json:"analysisDuration"`
}

// EmbeddingInfo records what the simulated embedding did to the cover
type EmbeddingInfo struct {
	Eligible int `json:"eligible"`
	Selected int `json:"selected"`
	Changed  int `json:"changed"`
}

// Finding represents a notable observation made while extracting
type Finding struct {
	Description string `json:"description"`
	Details     string `json:"details"`
}

// AddFinding adds a finding to the result
func (r *FeatureResult) AddFinding(description, details string) {
	r.Findings = append(r.Findings, Finding{
		Description: description,
		Details:     details,
	})
}

// ChangeRate returns the fraction of eligible samples that were modified
func (r *FeatureResult) ChangeRate() float64 {
	if r.Embedding.Eligible == 0 {
		return 0
	}
	return float64(r.Embedding.Changed) / float64(r.Embedding.Eligible)
}
