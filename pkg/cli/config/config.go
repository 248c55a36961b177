package config

import (
	"bytes"
	"errors"
	"io/fs"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	domainConfig "github.com/secmon-lab/cipher/pkg/domain/model/config"
)

// ScoringConfig represents the scoring model configuration file.
// Omitted keys keep the default value of the model.
type ScoringConfig struct {
	Baseline   BaselineConfig   `toml:"baseline"`
	Weights    WeightsConfig    `toml:"weights"`
	Thresholds ThresholdsConfig `toml:"thresholds"`
	Ownership  OwnershipConfig  `toml:"ownership"`
}

// BaselineConfig is the lever position before mitigation
type BaselineConfig struct {
	OwnershipPercent *float64 `toml:"ownership_percent"`
	BoardSeats       *int     `toml:"board_seats"`
}

// WeightsConfig is the largest reduction each lever can apply
type WeightsConfig struct {
	Ownership *float64 `toml:"ownership"`
	Board     *float64 `toml:"board"`
	Financing *float64 `toml:"financing"`
	Personnel *float64 `toml:"personnel"`
}

// ThresholdsConfig holds the score floor and the level boundaries
type ThresholdsConfig struct {
	Floor    *float64 `toml:"floor"`
	High     *float64 `toml:"high"`
	Moderate *float64 `toml:"moderate"`
}

// OwnershipConfig holds the ownership lever metadata
type OwnershipConfig struct {
	CompliantPercent *float64  `toml:"compliant_percent"`
	Presets          []float64 `toml:"presets"`
}

// LoadScoringConfiguration loads the scoring configuration from a TOML file
func LoadScoringConfiguration(path string) (*ScoringConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, "failed to read config file", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V(ConfigPathKey, path))
	}

	var config ScoringConfig
	decoder := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := decoder.Decode(&config); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse TOML config",
			goerr.V(ConfigPathKey, path),
			goerr.V("cause", err.Error()),
		)
	}

	if err := config.ToDomainScoringModel().Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "config validation failed",
			goerr.V(ConfigPathKey, path),
			goerr.V("cause", err.Error()),
		)
	}

	return &config, nil
}

// ToDomainScoringModel applies the configured values over the default scoring model
func (c *ScoringConfig) ToDomainScoringModel() *domainConfig.ScoringModel {
	m := domainConfig.DefaultScoringModel()

	set(&m.BaselineOwnershipPercent, c.Baseline.OwnershipPercent)
	set(&m.BaselineBoardSeats, c.Baseline.BoardSeats)

	set(&m.OwnershipWeight, c.Weights.Ownership)
	set(&m.BoardWeight, c.Weights.Board)
	set(&m.FinancingWeight, c.Weights.Financing)
	set(&m.PersonnelWeight, c.Weights.Personnel)

	set(&m.ScoreFloor, c.Thresholds.Floor)
	set(&m.HighThreshold, c.Thresholds.High)
	set(&m.ModerateThreshold, c.Thresholds.Moderate)

	set(&m.CompliantOwnershipPercent, c.Ownership.CompliantPercent)
	if c.Ownership.Presets != nil {
		m.OwnershipPresets = append([]float64{}, c.Ownership.Presets...)
	}

	return m
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
