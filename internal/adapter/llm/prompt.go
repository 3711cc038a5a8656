package llm

import "strings"

// BuildPrompt assembles the analysis prompt for one chunk. The prompt is a
// deterministic concatenation of the context string and the chunk text, so
// identical (chunk, context) pairs always produce the same prompt and the
// same cache key.
func BuildPrompt(chunk, analysisContext string) string {
	var sb strings.Builder

	sb.WriteString("Analyze the following code in the context of ")
	sb.WriteString(analysisContext)
	sb.WriteString(".\n\n")
	sb.WriteString(`Extract and return a single JSON object with these optional keys:
- "entities": list of {"name", "attributes", "methods", "dependencies", "rules"}
- "processes": list of {"name", "description", "steps", "entities_involved", "dependencies", "critical_paths"}
- "relationships": list of {"source", "target", "type", "reason"}
- "rules": list of business rule strings

Omit keys with no findings. Output ONLY the JSON object, with no explanations
and no markdown fences.

Code to analyze:
`)
	sb.WriteString(chunk)

	return sb.String()
}

// stripMarkdownCodeFence removes a wrapping markdown code fence from a
// response. Handles ```json\n...\n``` and ```\n...\n```.
func stripMarkdownCodeFence(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "```") {
		firstNewline := strings.Index(s, "\n")
		if firstNewline == -1 {
			return s
		}
		s = s[firstNewline+1:]
		if strings.HasSuffix(s, "```") {
			s = s[:len(s)-3]
		}
		s = strings.TrimSpace(s)
	}

	return s
}
