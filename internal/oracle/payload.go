package oracle

import "strings"

// UnwrapPayload normalizes a raw oracle reply into the JSON object it is
// expected to contain. Contract: strip an optional triple-backtick fence
// (with or without a "json" language tag), then cut to the outermost
// {...} object; if no object markers are found the trimmed body is
// returned as-is and left for the JSON decoder to reject.
func UnwrapPayload(raw string) string {
	text := stripCodeFence(raw)
	return extractJSONObject(text)
}

func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

func extractJSONObject(text string) string {
	if strings.HasPrefix(text, "{") && strings.HasSuffix(text, "}") {
		return text
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return text
}
