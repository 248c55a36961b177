package types

import (
	"regexp"

	"github.com/m-mizutani/goerr/v2"
)

var idPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// DossierID identifies a fixture dossier, e.g. "red-october"
type DossierID string

// Validate checks if the DossierID is valid
func (d DossierID) Validate() error {
	if d == "" {
		return goerr.New("dossier ID cannot be empty")
	}
	if !idPattern.MatchString(string(d)) {
		return goerr.New("dossier ID must be lowercase alphanumeric with hyphens", goerr.V("id", d))
	}
	return nil
}

func (d DossierID) String() string {
	return string(d)
}

// NodeID identifies an entity inside a dossier's org chart
type NodeID string

// Validate checks if the NodeID is valid
func (n NodeID) Validate() error {
	if n == "" {
		return goerr.New("node ID cannot be empty")
	}
	if !idPattern.MatchString(string(n)) {
		return goerr.New("node ID must be lowercase alphanumeric with hyphens", goerr.V("id", n))
	}
	return nil
}

func (n NodeID) String() string {
	return string(n)
}
