package llm

import "strings"

// CleanJSONBlock strips markdown code fencing from a model response. Models
// wrap JSON in ```json fences often enough, even with a JSON response MIME
// type requested, that every JSON response goes through this.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	if rest, ok := strings.CutPrefix(text, "```json"); ok {
		text = rest
	} else {
		text = strings.TrimPrefix(text, "```")
		// Drop a language identifier on the opening fence line ("js", "txt").
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.ContainsAny(firstLine, " {[") {
				text = text[idx+1:]
			}
		}
	}

	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
