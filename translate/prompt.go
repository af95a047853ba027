package translate

import "fmt"

// PromptMode selects how much the model is asked to produce.
type PromptMode int

const (
	// PromptDetailed asks for language detection, translation, slang
	// notes, and a summary.
	PromptDetailed PromptMode = iota
	// PromptConcise asks for the translation only, five lines max.
	PromptConcise
)

func (m PromptMode) String() string {
	if m == PromptConcise {
		return "concise"
	}
	return "detailed"
}

// ParsePromptMode parses the config value.
func ParsePromptMode(s string) (PromptMode, error) {
	switch s {
	case "", "detailed":
		return PromptDetailed, nil
	case "concise":
		return PromptConcise, nil
	}
	return PromptDetailed, fmt.Errorf("unknown prompt mode: %s", s)
}

const detailedTemplate = `Analyze the following text and answer in this format:

[Language]
Detected language: <name>

[Translation]
<If the text is Japanese, translate it to English; otherwise translate it to Japanese.>

[Slang and idioms]
<Explain any slang or unusual expressions, or write "none".>

[Summary]
<The gist of the text in one or two sentences.>

---
Text:
%s`

const conciseTemplate = `Translate the following text.
- If it is Japanese, translate to English; otherwise translate to Japanese.
- Five lines or fewer, essentials only.
- Output only the translation, no extra commentary.

Text:
%s`

// BuildPrompt renders the request prompt for the given mode around the
// clipboard text.
func BuildPrompt(mode PromptMode, text string) string {
	if mode == PromptConcise {
		return fmt.Sprintf(conciseTemplate, text)
	}
	return fmt.Sprintf(detailedTemplate, text)
}
