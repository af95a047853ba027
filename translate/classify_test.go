package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func candidateWithText(finish, text string) Candidate {
	return Candidate{
		FinishReason: finish,
		Content:      &Content{Parts: []Part{{Text: text}}},
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		resp *GenerateResponse
		want Outcome
	}{
		{
			name: "normal completion",
			resp: &GenerateResponse{Candidates: []Candidate{candidateWithText("STOP", "translated")}},
			want: Outcome{Kind: Success, Text: "translated"},
		},
		{
			name: "missing finish reason treated as normal",
			resp: &GenerateResponse{Candidates: []Candidate{candidateWithText("", "translated")}},
			want: Outcome{Kind: Success, Text: "translated"},
		},
		{
			name: "prompt-level block wins over candidate content",
			resp: &GenerateResponse{
				Candidates: []Candidate{candidateWithText("STOP", "should not matter")},
				PromptFeedback: &PromptFeedback{
					BlockReason: "SAFETY",
					SafetyRatings: []SafetyRating{
						{Category: "HARM_CATEGORY_HARASSMENT", Blocked: true},
						{Category: "HARM_CATEGORY_HATE_SPEECH", Blocked: false},
					},
				},
			},
			want: Outcome{Kind: Blocked, Reason: "SAFETY", Categories: []string{"HARM_CATEGORY_HARASSMENT"}},
		},
		{
			name: "no candidates",
			resp: &GenerateResponse{},
			want: Outcome{Kind: Failed, Message: "empty response"},
		},
		{
			name: "safety stop collects blocked categories",
			resp: &GenerateResponse{Candidates: []Candidate{{
				FinishReason: "SAFETY",
				SafetyRatings: []SafetyRating{
					{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Blocked: true},
				},
			}}},
			want: Outcome{Kind: Blocked, Reason: "safety filter", Categories: []string{"HARM_CATEGORY_DANGEROUS_CONTENT"}},
		},
		{
			name: "token limit with content is truncated, text preserved verbatim",
			resp: &GenerateResponse{Candidates: []Candidate{candidateWithText("MAX_TOKENS", "partial out")}},
			want: Outcome{Kind: Truncated, Text: "partial out"},
		},
		{
			name: "token limit without content fails",
			resp: &GenerateResponse{Candidates: []Candidate{{FinishReason: "MAX_TOKENS"}}},
			want: Outcome{Kind: Failed, Message: "token limit reached with no content"},
		},
		{
			name: "recitation stop",
			resp: &GenerateResponse{Candidates: []Candidate{candidateWithText("RECITATION", "quoted")}},
			want: Outcome{Kind: Blocked, Reason: "recitation"},
		},
		{
			name: "unknown finish reason",
			resp: &GenerateResponse{Candidates: []Candidate{{FinishReason: "OTHER"}}},
			want: Outcome{Kind: Failed, Message: "unexpected finish reason: OTHER"},
		},
		{
			name: "normal completion without content",
			resp: &GenerateResponse{Candidates: []Candidate{{FinishReason: "STOP"}}},
			want: Outcome{Kind: Failed, Message: "empty content"},
		},
		{
			name: "normal completion with empty parts",
			resp: &GenerateResponse{Candidates: []Candidate{{FinishReason: "STOP", Content: &Content{}}}},
			want: Outcome{Kind: Failed, Message: "empty content"},
		},
		{
			name: "only first candidate is inspected",
			resp: &GenerateResponse{Candidates: []Candidate{
				candidateWithText("STOP", "first"),
				candidateWithText("SAFETY", "second"),
			}},
			want: Outcome{Kind: Success, Text: "first"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.resp))
		})
	}
}

func TestOutcomeDetail(t *testing.T) {
	assert.Equal(t, "", Outcome{Kind: Success, Text: "x"}.Detail())
	assert.Equal(t, "boom", Outcome{Kind: Failed, Message: "boom"}.Detail())
	assert.Equal(t, "recitation", Outcome{Kind: Blocked, Reason: "recitation"}.Detail())
	assert.Equal(t,
		"safety filter (A, B)",
		Outcome{Kind: Blocked, Reason: "safety filter", Categories: []string{"A", "B"}}.Detail(),
	)
}
