package types

// AnalysisStatus is the lifecycle state of an analysis
type AnalysisStatus string

const (
	AnalysisStatusProcessing AnalysisStatus = "PROCESSING"
	AnalysisStatusCompleted  AnalysisStatus = "COMPLETED"
)

func (s AnalysisStatus) String() string {
	return string(s)
}

// AnalysisSource tells whether a result came from the LLM or from the deterministic fallback
type AnalysisSource string

const (
	AnalysisSourceLLM      AnalysisSource = "llm"
	AnalysisSourceFallback AnalysisSource = "fallback"
)

func (s AnalysisSource) String() string {
	return string(s)
}
