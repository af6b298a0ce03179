package retrieval

import (
	"sort"
	"strings"

	"github.com/akolanti/DocChatAPI/internal/config"
	"github.com/akolanti/DocChatAPI/internal/domain/docModel"
)

// genericQueries still deserve a hit when nothing matched directly, a broad
// ask should surface something rather than nothing
var genericQueries = map[string]struct{}{
	"summarize":    {},
	"summary":      {},
	"what is this": {},
	"main topic":   {},
}

// scoreChunks ranks chunks against the query and keeps the top scorers.
// The sort is stable so equal scores stay in store order and repeated
// queries return identical rankings.
func (s *service) scoreChunks(query string, chunks []docModel.Chunk) []docModel.ScoredChunk {
	queryLower := strings.ToLower(query)
	terms := s.expander.Expand(query)

	var results []docModel.ScoredChunk
	for _, chunk := range chunks {
		score := scoreChunk(queryLower, terms, chunk)

		if score == 0 {
			if _, generic := genericQueries[queryLower]; generic {
				score = config.GenericQueryFloorScore
			}
		}

		if score > 0 {
			results = append(results, docModel.ScoredChunk{Chunk: chunk, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })

	if len(results) > config.MaxSearchResults {
		results = results[:config.MaxSearchResults]
	}
	return results
}

func scoreChunk(queryLower string, terms []string, chunk docModel.Chunk) int {
	content := strings.ToLower(chunk.Content)

	score := 0

	//whole query appearing verbatim beats everything else
	if strings.Contains(content, queryLower) {
		score += 5
	}

	exact := make(map[string]struct{}, len(chunk.Keywords))
	for _, k := range chunk.Keywords {
		exact[k] = struct{}{}
	}

	for _, term := range terms {
		if strings.Contains(content, term) {
			score += 3
		}
		if _, hit := exact[term]; hit {
			score += 2
		}

		//longer terms also count partial keyword hits and a content echo
		if len(term) > 3 {
			for _, keyword := range chunk.Keywords {
				if strings.Contains(keyword, term) {
					score++
					break
				}
			}
			if strings.Contains(content, term) {
				score++
			}
		}
	}
	return score
}
