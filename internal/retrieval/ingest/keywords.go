package ingest

import (
	"regexp"
	"sort"
	"strings"

	"github.com/akolanti/DocChatAPI/internal/config"
)

//keyword extraction

// wordPattern keeps letter runs of two or more characters, everything else separates words
var wordPattern = regexp.MustCompile(`\b[a-zA-Z]{2,}\b`)

// defaultStopWords is the filler vocabulary dropped before counting
var defaultStopWords = []string{
	"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for",
	"of", "with", "by", "is", "are", "was", "were", "be", "been", "have",
	"has", "had", "do", "does", "did", "will", "would", "could", "should",
	"this", "that", "these", "those", "i", "you", "he", "she", "it", "we",
	"they", "them", "their", "there", "where", "when", "what", "which", "who", "how",
	"can", "may", "must", "shall", "also", "just", "only", "even", "still",
	"now", "then", "here", "very", "more", "most", "much", "many", "some", "any",
}

type KeywordExtractor struct {
	stopWords map[string]struct{}
	limit     int
}

func NewKeywordExtractor() *KeywordExtractor {
	return NewKeywordExtractorWithStopWords(defaultStopWords)
}

// NewKeywordExtractorWithStopWords builds an extractor over a custom stop word list
func NewKeywordExtractorWithStopWords(words []string) *KeywordExtractor {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return &KeywordExtractor{stopWords: set, limit: config.MaxKeywordsPerChunk}
}

// Extract returns the most frequent content words of text, highest count first.
// Ties keep first appearance order so the same text always yields the same list.
func (k *KeywordExtractor) Extract(text string) []string {
	words := wordPattern.FindAllString(strings.ToLower(text), -1)

	counts := make(map[string]int, len(words))
	order := make([]string, 0, len(words))
	for _, w := range words {
		if _, stop := k.stopWords[w]; stop {
			continue
		}
		if _, seen := counts[w]; !seen {
			order = append(order, w)
		}
		counts[w]++
	}

	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })

	if len(order) > k.limit {
		order = order[:k.limit]
	}
	return order
}
