package model

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/cipher/pkg/domain/model/config"
)

var (
	// ErrInvalidMitigationSettings is returned when a lever is out of range
	ErrInvalidMitigationSettings = errors.New("invalid mitigation settings")

	settingsValidator = validator.New()
)

// MitigationSettings are the mitigation levers of the simulator
type MitigationSettings struct {
	ForeignOwnershipPercent   float64 `json:"foreignOwnershipPercent" validate:"gte=0,lte=100"`
	ForeignBoardSeats         int     `json:"foreignBoardSeats" validate:"gte=0"`
	EliminateForeignFinancing bool    `json:"eliminateForeignFinancing"`
	AddressPersonnelTies      bool    `json:"addressPersonnelTies"`
}

// BaselineSettings returns the levers before any mitigation
func BaselineSettings(m *config.ScoringModel) MitigationSettings {
	return MitigationSettings{
		ForeignOwnershipPercent: m.BaselineOwnershipPercent,
		ForeignBoardSeats:       m.BaselineBoardSeats,
	}
}

// Validate checks the levers against their ranges. maxBoardSeats bounds ForeignBoardSeats.
func (s MitigationSettings) Validate(maxBoardSeats int) error {
	if err := settingsValidator.Struct(s); err != nil {
		return goerr.Wrap(ErrInvalidMitigationSettings, err.Error(),
			goerr.V("foreign_ownership_percent", s.ForeignOwnershipPercent),
			goerr.V("foreign_board_seats", s.ForeignBoardSeats),
		)
	}
	if s.ForeignBoardSeats > maxBoardSeats {
		return goerr.Wrap(ErrInvalidMitigationSettings, "foreign board seats exceed the baseline",
			goerr.V("foreign_board_seats", s.ForeignBoardSeats),
			goerr.V("max", maxBoardSeats),
		)
	}
	return nil
}

// Change is one proposed change as presented to the analyst
type Change struct {
	Key   string
	Value string
}

// Changes returns the levers as ordered key/value pairs
func (s MitigationSettings) Changes() []Change {
	return []Change{
		{Key: "foreignOwnershipPercent", Value: strconv.FormatFloat(s.ForeignOwnershipPercent, 'f', -1, 64)},
		{Key: "foreignBoardSeats", Value: strconv.Itoa(s.ForeignBoardSeats)},
		{Key: "eliminateForeignFinancing", Value: strconv.FormatBool(s.EliminateForeignFinancing)},
		{Key: "addressPersonnelTies", Value: strconv.FormatBool(s.AddressPersonnelTies)},
	}
}

// OwnershipPreset is a suggested ownership target
type OwnershipPreset struct {
	Percent   float64 `json:"percent"`
	Compliant bool    `json:"compliant"`
}

// OwnershipPresets returns the configured ownership targets with their compliance marker
func OwnershipPresets(m *config.ScoringModel) []OwnershipPreset {
	presets := make([]OwnershipPreset, 0, len(m.OwnershipPresets))
	for _, p := range m.OwnershipPresets {
		presets = append(presets, OwnershipPreset{
			Percent:   p,
			Compliant: p <= m.CompliantOwnershipPercent,
		})
	}
	return presets
}
