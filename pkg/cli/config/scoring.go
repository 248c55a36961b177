package config

import (
	"github.com/m-mizutani/goerr/v2"
	domainConfig "github.com/secmon-lab/cipher/pkg/domain/model/config"
	"github.com/secmon-lab/cipher/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Scoring holds CLI flags for the mitigation scoring model
type Scoring struct {
	path string
}

// Flags returns CLI flags for scoring configuration
func (x *Scoring) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "scoring-config",
			Usage:       "TOML file overriding the scoring model constants",
			Category:    "Scoring",
			Sources:     cli.EnvVars("CIPHER_SCORING_CONFIG"),
			Destination: &x.path,
		},
	}
}

// Configure returns the scoring model. Without a config file the default model is used.
func (x *Scoring) Configure() (*domainConfig.ScoringModel, error) {
	if x.path == "" {
		return domainConfig.DefaultScoringModel(), nil
	}

	cfg, err := LoadScoringConfiguration(x.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load scoring configuration")
	}

	m := cfg.ToDomainScoringModel()
	logging.Default().Info("Scoring model loaded", "path", x.path, "model", m)
	return m, nil
}
