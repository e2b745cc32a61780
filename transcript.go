package main

import "strings"

// partRole classifies who authored a conversation part.
type partRole int

const (
	roleIgnored partRole = iota
	roleAgent
	roleCustomer
)

// customerAuthorTypes are the Intercom author types treated as the end user.
// Everything else (admin, team, ...) stays out of both transcripts.
var customerAuthorTypes = map[string]bool{
	"contact": true,
	"user":    true,
	"lead":    true,
}

// finActorID resolves the AI agent's actor identifier, falling back to the
// ai_agent id itself when the nested actor is absent. Empty means unknown.
func finActorID(detail *ConversationDetail) string {
	if detail.AIAgent == nil {
		return ""
	}
	if detail.AIAgent.Actor != nil && detail.AIAgent.Actor.ID != "" {
		return detail.AIAgent.Actor.ID
	}
	return detail.AIAgent.ID
}

// orderedParts returns the root message (when present) followed by the
// conversation parts in their given order. Order matters: it drives both
// cutoff detection and transcript line order.
func orderedParts(detail *ConversationDetail) []ConversationPart {
	var parts []ConversationPart
	if detail.ConversationMessage != nil {
		parts = append(parts, *detail.ConversationMessage)
	} else if detail.Source != nil {
		parts = append(parts, *detail.Source)
	}
	return append(parts, detail.ConversationParts.Parts...)
}

// firstAssignment returns the timestamp of the earliest assignment part, or
// 0 when the conversation was never handed to a team.
func firstAssignment(parts []ConversationPart) int64 {
	for i := range parts {
		if parts[i].PartType == "assignment" && parts[i].CreatedAt != 0 {
			return parts[i].CreatedAt
		}
	}
	return 0
}

// classifyPart decides authorship of a single part, first match wins. The
// agent signals are checked before the author type so answers Fin delivered
// under a non-bot author identity still classify as the agent.
func classifyPart(p *ConversationPart, finID string) partRole {
	if p.PartType == "ai_answer" ||
		p.AIAnswerType != nil ||
		p.Author.Type == "bot" ||
		(finID != "" && p.Author.ID == finID) {
		return roleAgent
	}
	if customerAuthorTypes[p.Author.Type] {
		return roleCustomer
	}
	return roleIgnored
}

// splitTranscript reconstructs the dialogue up to the first human hand-off
// and derives the two report texts: what the user wrote, and the full
// user/Fin exchange. Parts at or past the hand-off timestamp are dropped;
// parts without a timestamp never terminate the scan. A detail with no
// parts, or none that qualify, yields empty transcripts.
func splitTranscript(detail *ConversationDetail) TranscriptPair {
	if detail == nil {
		return TranscriptPair{}
	}

	finID := finActorID(detail)
	parts := orderedParts(detail)
	cutoff := firstAssignment(parts)

	var userLines, fullLines []string
	for i := range parts {
		p := &parts[i]
		if cutoff != 0 && p.CreatedAt != 0 && p.CreatedAt >= cutoff {
			break
		}
		body := normalizeBody(p.Body)
		if body == "" {
			continue
		}
		switch classifyPart(p, finID) {
		case roleAgent:
			fullLines = append(fullLines, "[Fin]  "+body)
		case roleCustomer:
			userLines = append(userLines, body)
			fullLines = append(fullLines, "[User] "+body)
		}
	}

	return TranscriptPair{
		UserOnly: strings.Join(userLines, "\n\n"),
		Full:     strings.Join(fullLines, "\n\n"),
	}
}
