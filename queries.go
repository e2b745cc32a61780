package main

// searchPageSize is the per_page hint sent with every search.
const searchPageSize = 100

// reportSearches returns the searches the report is built from, in the order
// their results are attributed: team escalations first, then poorly rated
// conversations. A conversation matching both is reported once, under
// whichever search found it first.
func reportSearches(start, end int64) []SearchDefinition {
	return []SearchDefinition{
		escalatedQuery(start, end),
		lowRatingQuery(start, end),
	}
}

// timeFilter restricts a search to conversations updated inside the report
// window.
func timeFilter(start, end int64) []SearchFilter {
	return []SearchFilter{
		{Field: "updated_at", Operator: ">", Value: start},
		{Field: "updated_at", Operator: "<", Value: end},
	}
}

// escalatedQuery matches conversations Fin handled that ended up routed to a
// human team.
func escalatedQuery(start, end int64) SearchDefinition {
	return SearchDefinition{
		Query: SearchQuery{
			Operator: "AND",
			Value: append([]SearchFilter{
				{Field: "ai_agent_participated", Operator: "=", Value: true},
				{Field: "ai_agent.resolution_state", Operator: "=", Value: "routed_to_team"},
			}, timeFilter(start, end)...),
		},
		Pagination: SearchPagination{PerPage: searchPageSize},
	}
}

// lowRatingQuery matches conversations Fin handled that the customer rated
// below 2.
func lowRatingQuery(start, end int64) SearchDefinition {
	return SearchDefinition{
		Query: SearchQuery{
			Operator: "AND",
			Value: append([]SearchFilter{
				{Field: "ai_agent_participated", Operator: "=", Value: true},
				{Field: "ai_agent.rating", Operator: "<", Value: 2},
			}, timeFilter(start, end)...),
		},
		Pagination: SearchPagination{PerPage: searchPageSize},
	}
}
