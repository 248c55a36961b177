package memory

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/cipher/pkg/domain/interfaces"
)

// DefaultAnalysisTTL is how long an analysis is kept when no TTL is configured
const DefaultAnalysisTTL = time.Hour

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	dossier  *dossierRepository
	analysis *analysisRepository
}

var _ interfaces.Repository = &Memory{}

type options struct {
	fixture     []byte
	analysisTTL time.Duration
}

// Option configures the in-memory repository
type Option func(*options)

// WithFixture replaces the embedded dossier fixture with a TOML document
func WithFixture(data []byte) Option {
	return func(o *options) {
		o.fixture = data
	}
}

// WithAnalysisTTL sets how long analyses are kept
func WithAnalysisTTL(ttl time.Duration) Option {
	return func(o *options) {
		o.analysisTTL = ttl
	}
}

// New loads the dossier fixture and creates an empty analysis store
func New(opts ...Option) (*Memory, error) {
	o := &options{
		fixture:     defaultFixture,
		analysisTTL: DefaultAnalysisTTL,
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.analysisTTL <= 0 {
		return nil, goerr.New("analysis TTL must be positive", goerr.V("ttl", o.analysisTTL))
	}

	entries, err := parseFixture(o.fixture)
	if err != nil {
		return nil, err
	}

	return &Memory{
		dossier:  newDossierRepository(entries),
		analysis: newAnalysisRepository(o.analysisTTL),
	}, nil
}

func (m *Memory) Dossier() interfaces.DossierRepository {
	return m.dossier
}

func (m *Memory) Analysis() interfaces.AnalysisRepository {
	return m.analysis
}
