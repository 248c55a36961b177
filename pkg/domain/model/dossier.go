package model

import (
	"slices"
	"strings"

	"github.com/secmon-lab/cipher/pkg/domain/types"
)

// Dossier is a fixture company profile under FOCI review
type Dossier struct {
	ID          types.DossierID `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	DataPoints  DataPoints      `json:"dataPoints"`
}

// DataPoints holds the free-text facts of a dossier per category
type DataPoints struct {
	Ownership []string `json:"ownership"`
	Board     []string `json:"board"`
	Personnel []string `json:"personnel"`
	Financing []string `json:"financing"`
	Contracts []string `json:"contracts"`
}

// DossierSummary is the list view of a dossier
type DossierSummary struct {
	ID          types.DossierID `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
}

// Get returns the data points of a category
func (d DataPoints) Get(c types.DataCategory) []string {
	switch c {
	case types.DataCategoryOwnership:
		return d.Ownership
	case types.DataCategoryBoard:
		return d.Board
	case types.DataCategoryPersonnel:
		return d.Personnel
	case types.DataCategoryFinancing:
		return d.Financing
	case types.DataCategoryContracts:
		return d.Contracts
	default:
		return nil
	}
}

// Text renders the data points as "HEADING:\nline\nline" blocks separated by blank lines
func (d DataPoints) Text() string {
	blocks := make([]string, 0, len(types.AllDataCategories()))
	for _, c := range types.AllDataCategories() {
		blocks = append(blocks, c.Heading()+":\n"+strings.Join(d.Get(c), "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

// Summary returns the list view of the dossier
func (x *Dossier) Summary() DossierSummary {
	return DossierSummary{
		ID:          x.ID,
		Name:        x.Name,
		Description: x.Description,
	}
}

// Clone returns a deep copy of the dossier
func (x *Dossier) Clone() *Dossier {
	c := *x
	c.DataPoints = DataPoints{
		Ownership: slices.Clone(x.DataPoints.Ownership),
		Board:     slices.Clone(x.DataPoints.Board),
		Personnel: slices.Clone(x.DataPoints.Personnel),
		Financing: slices.Clone(x.DataPoints.Financing),
		Contracts: slices.Clone(x.DataPoints.Contracts),
	}
	return &c
}
