package fixture

import "quest/internal/domain/entity"

type dataset struct {
	adventurers         []entity.Adventurer
	regions             []entity.Region
	landmarks           []entity.Landmark
	adventures          []entity.Adventure
	tokens              []entity.Token
	completedAdventures []entity.CompletedAdventure
}

func pt(x, y float64) *entity.Point {
	return &entity.Point{X: x, Y: y}
}

func str(s string) *string {
	return &s
}

func seed() *dataset {
	return &dataset{
		adventurers: []entity.Adventurer{
			{ID: 1, Username: "wanderer", Password: "wanderer", ProfilePicture: str("https://picsum.photos/id/64/200")},
			{ID: 2, Username: "cartographer", Password: "cartographer"},
			{ID: 3, Username: "pathfinder", Password: "pathfinder", ProfilePicture: str("https://picsum.photos/id/91/200")},
		},
		regions: []entity.Region{
			{ID: 1, AdventurerID: 1, Name: "Old Harbor", Description: str("Piers, warehouses and the lighthouse walk."), Center: pt(121.5090, 25.0330), Radius: 800},
			{ID: 2, AdventurerID: 2, Name: "University Quarter", Description: str("Libraries, lecture halls and the botanical garden."), Center: pt(121.5395, 25.0173), Radius: 600},
			{ID: 3, AdventurerID: 1, Name: "Riverside Park", Center: pt(121.5600, 25.0720), Radius: 1200},
		},
		landmarks: []entity.Landmark{
			{ID: 1, RegionID: 1, Name: "Lighthouse", Location: pt(121.5110, 25.0345)},
			{ID: 2, RegionID: 1, Name: "Fish Market", Location: pt(121.5072, 25.0318)},
			{ID: 3, RegionID: 2, Name: "Main Library", Location: pt(121.5401, 25.0169)},
			{ID: 4, RegionID: 2, Name: "Glasshouse", Location: pt(121.5380, 25.0185)},
			{ID: 5, RegionID: 3, Name: "Rowing Club", Location: pt(121.5622, 25.0731)},
			{ID: 6, RegionID: 3, Name: "Old Bridge", Location: pt(121.5570, 25.0701)},
		},
		adventures: []entity.Adventure{
			{ID: 1, AdventurerID: 1, RegionID: 1, Name: "Harbor Lights", TokenCount: 3, Location: pt(121.5090, 25.0330)},
			{ID: 2, AdventurerID: 2, RegionID: 2, Name: "Study Break", TokenCount: 2, Location: pt(121.5395, 25.0173)},
			{ID: 3, AdventurerID: 3, RegionID: 3, Name: "Along the Water", TokenCount: 3, Location: pt(121.5600, 25.0720)},
		},
		tokens: []entity.Token{
			{ID: 3, AdventureID: 1, Location: pt(121.5072, 25.0318), Hint: "Where the morning catch is sold.", TokenOrder: 3},
			{ID: 1, AdventureID: 1, Location: pt(121.5095, 25.0335), Hint: "Start at the harbor master's door.", TokenOrder: 1},
			{ID: 2, AdventureID: 1, Location: pt(121.5110, 25.0345), Hint: "Climb toward the light.", TokenOrder: 2},
			{ID: 4, AdventureID: 2, Location: pt(121.5401, 25.0169), Hint: "Quiet please.", TokenOrder: 1},
			{ID: 5, AdventureID: 2, Location: pt(121.5380, 25.0185), Hint: "Warm, humid and green.", TokenOrder: 2},
			{ID: 6, AdventureID: 3, Location: pt(121.5570, 25.0701), Hint: "Cross here, not by boat.", TokenOrder: 1},
			{ID: 7, AdventureID: 3, Location: pt(121.5622, 25.0731), Hint: "Oars rest on the wall.", TokenOrder: 2},
			{ID: 8, AdventureID: 3, Location: pt(121.5640, 25.0760), Hint: "The last bench faces north.", TokenOrder: 3},
		},
		completedAdventures: []entity.CompletedAdventure{
			{ID: 1, AdventurerID: 2, AdventureID: 1, CompletionDate: "2024-03-02", CompletionTime: "10:15:00"},
			{ID: 2, AdventurerID: 3, AdventureID: 2, CompletionDate: "2024-03-09", CompletionTime: "16:40:30"},
			{ID: 3, AdventurerID: 1, AdventureID: 3, CompletionDate: "2024-04-21", CompletionTime: "08:05:12"},
		},
	}
}
