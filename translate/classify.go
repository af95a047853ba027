package translate

// Classify maps a parsed provider response onto a terminal Outcome. It is
// deterministic, touches no shared state, and performs no I/O.
//
// Check order matters: a prompt-level block wins over anything in the
// candidates, and the finish reason is inspected before content extraction
// so a safety stop with partial content still classifies as blocked.
func Classify(resp *GenerateResponse) Outcome {
	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" {
		return Outcome{
			Kind:       Blocked,
			Reason:     fb.BlockReason,
			Categories: blockedCategories(fb.SafetyRatings),
		}
	}

	if len(resp.Candidates) == 0 {
		return Outcome{Kind: Failed, Message: "empty response"}
	}
	c := resp.Candidates[0]

	switch c.FinishReason {
	case "", "STOP":
		// Normal completion, fall through to extraction.
	case "SAFETY":
		return Outcome{
			Kind:       Blocked,
			Reason:     "safety filter",
			Categories: blockedCategories(c.SafetyRatings),
		}
	case "MAX_TOKENS":
		if text := firstText(c); text != "" {
			return Outcome{Kind: Truncated, Text: text}
		}
		return Outcome{Kind: Failed, Message: "token limit reached with no content"}
	case "RECITATION":
		return Outcome{Kind: Blocked, Reason: "recitation"}
	default:
		return Outcome{Kind: Failed, Message: "unexpected finish reason: " + c.FinishReason}
	}

	text := firstText(c)
	if text == "" {
		return Outcome{Kind: Failed, Message: "empty content"}
	}
	return Outcome{Kind: Success, Text: text}
}

func blockedCategories(ratings []SafetyRating) []string {
	var cats []string
	for _, r := range ratings {
		if r.Blocked {
			cats = append(cats, r.Category)
		}
	}
	return cats
}

func firstText(c Candidate) string {
	if c.Content == nil || len(c.Content.Parts) == 0 {
		return ""
	}
	return c.Content.Parts[0].Text
}
