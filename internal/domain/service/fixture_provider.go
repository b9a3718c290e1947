package service

import "quest/internal/domain/entity"

// FixtureProvider serves static seed data. It is read-only and never fails.
type FixtureProvider interface {
	Adventurers(filter entity.Filter) []*entity.Adventurer
	Regions(filter entity.Filter) []*entity.Region
	Landmarks(filter entity.Filter) []*entity.Landmark
	Adventures(filter entity.Filter) []*entity.Adventure
	Tokens(filter entity.Filter) []*entity.Token
	CompletedAdventures(filter entity.Filter) []*entity.CompletedAdventure
}
