// Package model defines shared data structures.
package model

// AnalysisConfig defines the settings a break run needs.
type AnalysisConfig struct {
	CorpusPath string
	Charset    string
	Top        int
	Chunks     int
	MaxKeySize int
}
