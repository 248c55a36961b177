package config

import "time"

// NewGeminiForTest creates a Gemini config for testing purposes
func NewGeminiForTest(projectID, location string) *Gemini {
	return &Gemini{
		projectID: projectID,
		location:  location,
	}
}

// NewLLMForTest creates an LLM config for testing purposes
func NewLLMForTest(provider, apiKey, geminiProject string) *LLM {
	return &LLM{
		Provider:    provider,
		APIKey:      apiKey,
		Model:       "gpt-4o-mini",
		Temperature: 0.3,
		gemini:      Gemini{projectID: geminiProject, location: "us-central1"},
	}
}

// ResolveProvider exposes provider resolution for testing
func (x *LLM) ResolveProvider() string {
	return x.provider()
}

func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{level: level, format: format, output: output}
}

func NewScoringForTest(path string) *Scoring {
	return &Scoring{path: path}
}

func NewRepositoryForTest(ttl time.Duration) *Repository {
	return &Repository{analysisTTL: ttl}
}
