package main

import (
	"context"
	"fmt"
)

// collectReport drains each search in order, deduplicates by conversation id
// across all of them, and builds the two row sets: user-only transcripts and
// full transcripts. Row order is discovery order, so identical inputs always
// produce the same report. Any search or fetch error aborts the whole run.
func collectReport(ctx context.Context, searcher ConversationSearcher, fetcher ConversationFetcher, logger *Logger, sources []SearchDefinition) (userRows, fullRows []ReportRow, err error) {
	seen := make(map[string]bool)

	for i, def := range sources {
		logger.Debugf("Draining search %d/%d", i+1, len(sources))
		err := searcher.SearchConversations(ctx, def, func(summary ConversationSummary) error {
			if seen[summary.ID] {
				return nil
			}
			seen[summary.ID] = true

			detail, err := fetcher.GetConversation(ctx, summary.ID)
			if err != nil {
				return fmt.Errorf("error fetching conversation %s: %v", summary.ID, err)
			}

			pair := splitTranscript(detail)
			created := isoUTC(summary.CreatedAt)
			userRows = append(userRows, ReportRow{
				ID:        summary.ID,
				CreatedAt: created,
				Rating:    summary.AIAgent.Rating,
				Text:      pair.UserOnly,
			})
			fullRows = append(fullRows, ReportRow{
				ID:        summary.ID,
				CreatedAt: created,
				Rating:    summary.AIAgent.Rating,
				Text:      pair.Full,
			})
			return nil
		})
		if err != nil {
			return nil, nil, err
		}
	}

	return userRows, fullRows, nil
}
