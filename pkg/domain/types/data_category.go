package types

import "strings"

// DataCategory groups the free-text data points of a dossier
type DataCategory string

const (
	DataCategoryOwnership DataCategory = "ownership"
	DataCategoryBoard     DataCategory = "board"
	DataCategoryPersonnel DataCategory = "personnel"
	DataCategoryFinancing DataCategory = "financing"
	DataCategoryContracts DataCategory = "contracts"
)

// AllDataCategories returns the categories in the order they are presented to the analyst
func AllDataCategories() []DataCategory {
	return []DataCategory{
		DataCategoryOwnership,
		DataCategoryBoard,
		DataCategoryPersonnel,
		DataCategoryFinancing,
		DataCategoryContracts,
	}
}

// Heading returns the upper-case label used in prompts, e.g. "OWNERSHIP"
func (c DataCategory) Heading() string {
	return strings.ToUpper(string(c))
}

func (c DataCategory) String() string {
	return string(c)
}
