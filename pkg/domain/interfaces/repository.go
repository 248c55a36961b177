package interfaces

// Repository bundles the data sources of the service
type Repository interface {
	Dossier() DossierRepository
	Analysis() AnalysisRepository
}
