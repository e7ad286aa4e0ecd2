package mcp

import "context"

// The categories and stats namespaces return fixed sample data. Nothing in
// the store records categories or watch history yet.
// TODO: derive categories from channel topic details once the sync fetcher
// requests the topicDetails part.

func categoriesHandler(context.Context, Query) (any, error) {
	return []CategoryResource{
		{Category: "Tech", Channels: []string{"MKBHD", "Linus Tech Tips"}},
		{Category: "Cooking", Channels: []string{"Binging with Babish"}},
		{Category: "News", Channels: []string{"Vox", "DW News"}},
	}, nil
}

func statsHandler(context.Context, Query) (any, error) {
	return StatsResource{
		TopChannels:         []string{"MKBHD", "Daily News", "Cooking with Sarah"},
		MostWatchedCategory: "Tech",
		TimeSpent:           "12 hrs this week",
	}, nil
}
