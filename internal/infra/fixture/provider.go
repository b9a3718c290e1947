// Package fixture serves the static seed data used as the last-resort tier.
package fixture

import (
	"slices"

	"quest/internal/domain/entity"
	"quest/internal/domain/service"
)

type seedRow[T any] interface {
	*T
	Matches(entity.Filter) bool
	Clone() *T
}

// Provider implements service.FixtureProvider over the package seed data.
// Every call returns fresh copies, so callers may modify the results.
type Provider struct {
	data *dataset
}

// New creates the fixture provider
func New() service.FixtureProvider {
	return &Provider{data: seed()}
}

func (p *Provider) Adventurers(filter entity.Filter) []*entity.Adventurer {
	return selectMatching(p.data.adventurers, filter)
}

func (p *Provider) Regions(filter entity.Filter) []*entity.Region {
	return selectMatching(p.data.regions, filter)
}

func (p *Provider) Landmarks(filter entity.Filter) []*entity.Landmark {
	return selectMatching(p.data.landmarks, filter)
}

func (p *Provider) Adventures(filter entity.Filter) []*entity.Adventure {
	return selectMatching(p.data.adventures, filter)
}

// Tokens returns matching tokens in collection order.
func (p *Provider) Tokens(filter entity.Filter) []*entity.Token {
	tokens := selectMatching(p.data.tokens, filter)
	slices.SortStableFunc(tokens, entity.CompareTokens)

	return tokens
}

func (p *Provider) CompletedAdventures(filter entity.Filter) []*entity.CompletedAdventure {
	return selectMatching(p.data.completedAdventures, filter)
}

func selectMatching[T any, P seedRow[T]](items []T, filter entity.Filter) []*T {
	out := make([]*T, 0, len(items))
	for i := range items {
		if item := P(&items[i]); item.Matches(filter) {
			out = append(out, item.Clone())
		}
	}

	return out
}
