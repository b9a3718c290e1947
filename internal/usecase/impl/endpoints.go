package impl

import (
	"net/url"
	"strconv"

	"quest/internal/domain/entity"
)

// Remote service routes. List routes take the filter as query parameters.
const (
	endpointAdventurers         = "/adventurers"
	endpointRegions             = "/regions"
	endpointLandmarks           = "/landmarks"
	endpointAdventures          = "/adventures"
	endpointTokens              = "/tokens"
	endpointCompletedAdventures = "/completed-adventures"
)

func adventurerEndpoint(id int64) string {
	return endpointAdventurers + "/" + strconv.FormatInt(id, 10)
}

// filterQuery encodes the set filter fields as query parameters.
func filterQuery(filter entity.Filter) url.Values {
	query := url.Values{}
	if filter.AdventurerID != nil {
		query.Set("adventurer_id", strconv.FormatInt(*filter.AdventurerID, 10))
	}
	if filter.RegionID != nil {
		query.Set("region_id", strconv.FormatInt(*filter.RegionID, 10))
	}
	if filter.AdventureID != nil {
		query.Set("adventure_id", strconv.FormatInt(*filter.AdventureID, 10))
	}
	if filter.Username != "" {
		query.Set("username", filter.Username)
	}

	return query
}
