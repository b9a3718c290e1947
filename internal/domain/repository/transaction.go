package repository

import "context"

// TransactionManager defines the interface for managing local store transactions.
// This allows multi-table work to run atomically without depending on GORM directly.
type TransactionManager interface {
	// Execute runs a function within a database transaction.
	// If the function returns an error, the transaction is rolled back. Otherwise, it's committed.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory hands out repositories bound to one transaction.
type RepositoryFactory interface {
	NewAdventurerRepository() AdventurerRepository
	NewRegionRepository() RegionRepository
	NewLandmarkRepository() LandmarkRepository
	NewAdventureRepository() AdventureRepository
	NewTokenRepository() TokenRepository
	NewCompletedAdventureRepository() CompletedAdventureRepository
}
