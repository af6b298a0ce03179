package retrieval

import "strings"

// queryExpansions maps question words to terms that tend to appear in the
// passages those questions are after
var queryExpansions = map[string][]string{
	"summarize": {"summary", "main", "key", "important", "conclusion", "overview"},
	"summary":   {"summarize", "main", "key", "important", "conclusion", "overview"},
	"what":      {"about", "topic", "subject", "main", "content"},
	"explain":   {"about", "description", "definition", "meaning"},
	"describe":  {"about", "description", "explanation", "details"},
	"overview":  {"summary", "main", "introduction", "about"},
}

type QueryExpander struct {
	expansions map[string][]string
}

func NewQueryExpander() *QueryExpander {
	return &QueryExpander{expansions: queryExpansions}
}

// Expand returns the lowercased query words plus one level of expansions,
// deduplicated, in first appearance order
func (q *QueryExpander) Expand(query string) []string {
	words := strings.Fields(strings.ToLower(query))

	seen := make(map[string]struct{}, len(words))
	var terms []string
	add := func(t string) {
		if _, dup := seen[t]; dup {
			return
		}
		seen[t] = struct{}{}
		terms = append(terms, t)
	}

	for _, w := range words {
		add(w)
	}
	for _, w := range words {
		for _, e := range q.expansions[w] {
			add(e)
		}
	}
	return terms
}
