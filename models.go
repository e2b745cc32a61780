package main

// ConversationSummary is the lightweight record returned by conversation
// search. Rating lives under ai_agent and may be absent.
type ConversationSummary struct {
	ID        string         `json:"id"`
	CreatedAt int64          `json:"created_at"`
	AIAgent   SummaryAIAgent `json:"ai_agent"`
}

// SummaryAIAgent carries the AI agent fields present on search results.
type SummaryAIAgent struct {
	Rating *int `json:"rating"`
}

// ConversationDetail is the full record for one conversation as returned by
// GET /conversations/{id}. The root message arrives as conversation_message
// on older API versions and as source on current ones.
type ConversationDetail struct {
	ID                  string            `json:"id"`
	ConversationMessage *ConversationPart `json:"conversation_message"`
	Source              *ConversationPart `json:"source"`
	ConversationParts   ConversationParts `json:"conversation_parts"`
	AIAgent             *DetailAIAgent    `json:"ai_agent"`
}

// ConversationParts is the API's wrapper object around the part list.
type ConversationParts struct {
	Parts []ConversationPart `json:"conversation_parts"`
}

// ConversationPart is one message or event in a conversation. CreatedAt is 0
// when the API omitted the timestamp. AIAnswerType is non-nil only on parts
// the AI agent answered.
type ConversationPart struct {
	PartType     string  `json:"part_type"`
	CreatedAt    int64   `json:"created_at"`
	Body         string  `json:"body"`
	Author       Author  `json:"author"`
	AIAnswerType *string `json:"ai_answer_type"`
}

// Author identifies who wrote a conversation part.
// Type is one of bot, contact, user, lead, admin, team.
type Author struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// DetailAIAgent carries the AI agent metadata on a full conversation.
type DetailAIAgent struct {
	ID    string   `json:"id"`
	Actor *AIActor `json:"actor"`
}

// AIActor is the nested actor record under ai_agent.
type AIActor struct {
	ID string `json:"id"`
}

// SearchDefinition is one conversation search: filter triples combined with
// AND, plus a page-size hint. Serializes to the /conversations/search body.
type SearchDefinition struct {
	Query      SearchQuery      `json:"query"`
	Pagination SearchPagination `json:"pagination"`
}

// SearchQuery combines filters under a boolean operator.
type SearchQuery struct {
	Operator string         `json:"operator"`
	Value    []SearchFilter `json:"value"`
}

// SearchFilter is a single field/operator/value triple.
type SearchFilter struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    any    `json:"value"`
}

// SearchPagination carries the page size and, after the first page, the
// cursor returned by the previous page.
type SearchPagination struct {
	PerPage       int    `json:"per_page"`
	StartingAfter string `json:"starting_after,omitempty"`
}

type searchResponse struct {
	Conversations []ConversationSummary `json:"conversations"`
	Pages         searchPages           `json:"pages"`
}

type searchPages struct {
	Next *searchCursor `json:"next"`
}

type searchCursor struct {
	StartingAfter string `json:"starting_after"`
}

// TranscriptPair holds the two text artifacts derived from one conversation.
type TranscriptPair struct {
	UserOnly string
	Full     string
}

// ReportRow is one CSV row. Text holds either the user-only transcript or
// the full transcript depending on which report the row belongs to.
// A nil Rating serializes to an empty cell.
type ReportRow struct {
	ID        string
	CreatedAt string
	Rating    *int
	Text      string
}
