package config

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/cipher/pkg/repository/memory"
	"github.com/urfave/cli/v3"
)

// Repository holds CLI flags for the in-memory repository
type Repository struct {
	analysisTTL time.Duration
}

// Flags returns CLI flags for repository configuration
func (r *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.DurationFlag{
			Name:        "analysis-ttl",
			Usage:       "How long analysis results are kept",
			Value:       memory.DefaultAnalysisTTL,
			Category:    "Repository",
			Sources:     cli.EnvVars("CIPHER_ANALYSIS_TTL"),
			Destination: &r.analysisTTL,
		},
	}
}

// AnalysisTTL returns the configured analysis retention
func (r *Repository) AnalysisTTL() time.Duration {
	return r.analysisTTL
}

// Configure creates the repository with the bundled dossiers
func (r *Repository) Configure() (*memory.Memory, error) {
	repo, err := memory.New(memory.WithAnalysisTTL(r.analysisTTL))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize repository")
	}
	return repo, nil
}
