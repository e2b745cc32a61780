package main

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

type TranscriptTestSuite struct {
	suite.Suite
}

func TestTranscriptTestSuite(t *testing.T) {
	suite.Run(t, new(TranscriptTestSuite))
}

func (s *TranscriptTestSuite) TestSplitTranscript_Empty() {
	// Given: details with no usable parts
	tests := []struct {
		name   string
		detail *ConversationDetail
	}{
		{name: "nil detail", detail: nil},
		{name: "zero value detail", detail: &ConversationDetail{}},
		{
			name: "parts with empty bodies only",
			detail: &ConversationDetail{
				ConversationParts: ConversationParts{Parts: []ConversationPart{
					{PartType: "comment", Body: "<p> </p>", Author: Author{Type: "contact"}},
					{PartType: "note", Author: Author{Type: "admin"}},
				}},
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			// When: splitting
			pair := splitTranscript(tt.detail)

			// Then: both transcripts are empty
			s.Equal("", pair.UserOnly)
			s.Equal("", pair.Full)
		})
	}
}

func (s *TranscriptTestSuite) TestSplitTranscript_RootMessageOnly() {
	// Given: a conversation with one contact-authored root message and no parts
	detail := &ConversationDetail{
		ConversationMessage: &ConversationPart{
			Body:   "<p>Hi</p>",
			Author: Author{ID: "c1", Type: "contact"},
		},
	}

	pair := splitTranscript(detail)

	s.Equal("Hi", pair.UserOnly)
	s.Equal("[User] Hi", pair.Full)
}

func (s *TranscriptTestSuite) TestSplitTranscript_SourceFallback() {
	// The root message arrives as source on current API versions.
	detail := &ConversationDetail{
		Source: &ConversationPart{
			Body:   "Where is my order?",
			Author: Author{ID: "c1", Type: "lead"},
		},
	}

	pair := splitTranscript(detail)

	s.Equal("Where is my order?", pair.UserOnly)
	s.Equal("[User] Where is my order?", pair.Full)
}

func (s *TranscriptTestSuite) TestSplitTranscript_TruncatesAtHandoff() {
	// Given: a Fin answer, then an assignment at t=100, then a human reply at t=200
	detail := &ConversationDetail{
		ConversationParts: ConversationParts{Parts: []ConversationPart{
			{PartType: "ai_answer", CreatedAt: 50, Body: "Hello&amp;", Author: Author{ID: "fin-1", Type: "bot"}},
			{PartType: "assignment", CreatedAt: 100, Author: Author{ID: "a1", Type: "admin"}},
			{PartType: "comment", CreatedAt: 200, Body: "Human here, happy to help", Author: Author{ID: "a1", Type: "admin"}},
		}},
	}

	pair := splitTranscript(detail)

	// Then: everything at or after the hand-off is excluded
	s.Equal("", pair.UserOnly)
	s.Equal("[Fin]  Hello&", pair.Full)
}

func (s *TranscriptTestSuite) TestSplitTranscript_PartAtCutoffExcluded() {
	// A customer message stamped exactly at the hand-off does not survive.
	detail := &ConversationDetail{
		ConversationParts: ConversationParts{Parts: []ConversationPart{
			{PartType: "comment", CreatedAt: 50, Body: "before", Author: Author{Type: "user"}},
			{PartType: "assignment", CreatedAt: 100, Author: Author{Type: "admin"}},
			{PartType: "comment", CreatedAt: 100, Body: "at cutoff", Author: Author{Type: "user"}},
		}},
	}

	pair := splitTranscript(detail)

	s.Equal("before", pair.UserOnly)
	s.Equal("[User] before", pair.Full)
}

func (s *TranscriptTestSuite) TestSplitTranscript_NoHandoff() {
	// Without an assignment part the whole conversation is eligible.
	detail := &ConversationDetail{
		ConversationMessage: &ConversationPart{
			Body:   "My invoice is wrong",
			Author: Author{ID: "c1", Type: "contact"},
		},
		ConversationParts: ConversationParts{Parts: []ConversationPart{
			{PartType: "comment", CreatedAt: 10, Body: "Let me check that for you", Author: Author{ID: "fin-1", Type: "bot"}},
			{PartType: "comment", CreatedAt: 20, Body: "Thanks", Author: Author{ID: "c1", Type: "contact"}},
		}},
	}

	pair := splitTranscript(detail)

	s.Equal("My invoice is wrong\n\nThanks", pair.UserOnly)
	s.Equal("[User] My invoice is wrong\n\n[Fin]  Let me check that for you\n\n[User] Thanks", pair.Full)
}

func (s *TranscriptTestSuite) TestSplitTranscript_UntimestampedPartBeforeCutoff() {
	// A part without a timestamp never terminates the scan but is still
	// classified.
	detail := &ConversationDetail{
		ConversationParts: ConversationParts{Parts: []ConversationPart{
			{PartType: "comment", Body: "no timestamp here", Author: Author{Type: "user"}},
			{PartType: "assignment", CreatedAt: 100, Author: Author{Type: "admin"}},
		}},
	}

	pair := splitTranscript(detail)

	s.Equal("no timestamp here", pair.UserOnly)
	s.Equal("[User] no timestamp here", pair.Full)
}

func (s *TranscriptTestSuite) TestSplitTranscript_UnassignedAssignmentIgnoredForCutoff() {
	// An assignment part without a timestamp cannot define the cutoff.
	detail := &ConversationDetail{
		ConversationParts: ConversationParts{Parts: []ConversationPart{
			{PartType: "assignment", Author: Author{Type: "admin"}},
			{PartType: "comment", CreatedAt: 500, Body: "still included", Author: Author{Type: "contact"}},
		}},
	}

	pair := splitTranscript(detail)

	s.Equal("still included", pair.UserOnly)
}

func (s *TranscriptTestSuite) TestSplitTranscript_AdminIgnored() {
	// Given: an admin note with no bot markers
	detail := &ConversationDetail{
		ConversationParts: ConversationParts{Parts: []ConversationPart{
			{PartType: "note", CreatedAt: 10, Body: "internal note", Author: Author{ID: "a1", Type: "admin"}},
		}},
	}

	pair := splitTranscript(detail)

	// Then: it contributes to neither transcript
	s.Equal("", pair.UserOnly)
	s.Equal("", pair.Full)
}

func (s *TranscriptTestSuite) TestSplitTranscript_ActorIDFallback() {
	// Given: ai_agent has no nested actor, so the agent id comes from
	// ai_agent.id; the part author is not typed bot
	detail := &ConversationDetail{
		AIAgent: &DetailAIAgent{ID: "fin-77"},
		ConversationParts: ConversationParts{Parts: []ConversationPart{
			{PartType: "comment", CreatedAt: 10, Body: "Answer from Fin", Author: Author{ID: "fin-77", Type: "user"}},
			{PartType: "comment", CreatedAt: 20, Body: "From a real user", Author: Author{ID: "u-2", Type: "user"}},
		}},
	}

	pair := splitTranscript(detail)

	// Then: the matching author id wins over the user author type
	s.Equal("From a real user", pair.UserOnly)
	s.Equal("[Fin]  Answer from Fin\n\n[User] From a real user", pair.Full)
}

func (s *TranscriptTestSuite) TestClassifyPart() {
	tests := []struct {
		name  string
		part  ConversationPart
		finID string
		want  partRole
	}{
		{
			name: "ai_answer part type",
			part: ConversationPart{PartType: "ai_answer", Author: Author{Type: "admin"}},
			want: roleAgent,
		},
		{
			name: "ai_answer_type marker",
			part: ConversationPart{PartType: "comment", AIAnswerType: strPtr("ai_answer"), Author: Author{Type: "contact"}},
			want: roleAgent,
		},
		{
			name: "bot author",
			part: ConversationPart{PartType: "comment", Author: Author{Type: "bot"}},
			want: roleAgent,
		},
		{
			name:  "author id matches fin actor",
			part:  ConversationPart{PartType: "comment", Author: Author{ID: "fin-1", Type: "user"}},
			finID: "fin-1",
			want:  roleAgent,
		},
		{
			name:  "unknown fin id disables the id signal",
			part:  ConversationPart{PartType: "comment", Author: Author{ID: "", Type: "user"}},
			finID: "",
			want:  roleCustomer,
		},
		{
			name: "contact author",
			part: ConversationPart{PartType: "comment", Author: Author{Type: "contact"}},
			want: roleCustomer,
		},
		{
			name: "lead author",
			part: ConversationPart{PartType: "comment", Author: Author{Type: "lead"}},
			want: roleCustomer,
		},
		{
			name: "admin author",
			part: ConversationPart{PartType: "comment", Author: Author{Type: "admin"}},
			want: roleIgnored,
		},
		{
			name: "team author",
			part: ConversationPart{PartType: "comment", Author: Author{Type: "team"}},
			want: roleIgnored,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.Equal(tt.want, classifyPart(&tt.part, tt.finID))
		})
	}
}

func (s *TranscriptTestSuite) TestFinActorID() {
	tests := []struct {
		name   string
		detail ConversationDetail
		want   string
	}{
		{name: "no ai_agent", detail: ConversationDetail{}, want: ""},
		{
			name:   "actor id preferred",
			detail: ConversationDetail{AIAgent: &DetailAIAgent{ID: "outer", Actor: &AIActor{ID: "inner"}}},
			want:   "inner",
		},
		{
			name:   "empty actor falls back to agent id",
			detail: ConversationDetail{AIAgent: &DetailAIAgent{ID: "outer", Actor: &AIActor{}}},
			want:   "outer",
		},
		{
			name:   "no actor falls back to agent id",
			detail: ConversationDetail{AIAgent: &DetailAIAgent{ID: "outer"}},
			want:   "outer",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.Equal(tt.want, finActorID(&tt.detail))
		})
	}
}

func (s *TranscriptTestSuite) TestFirstAssignment() {
	parts := []ConversationPart{
		{PartType: "comment", CreatedAt: 10},
		{PartType: "assignment"}, // no timestamp, skipped
		{PartType: "assignment", CreatedAt: 40},
		{PartType: "assignment", CreatedAt: 90},
	}
	s.Equal(int64(40), firstAssignment(parts))
	s.Equal(int64(0), firstAssignment(nil))
}
