package ingest

import (
	"fmt"
	"strings"
	"testing"
)

func TestExtract_Scenarios(t *testing.T) {
	extractor := NewKeywordExtractor()

	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "Frequency_Order",
			text:     "network network network latency latency jitter",
			expected: []string{"network", "latency", "jitter"},
		},
		{
			name:     "Stop_Words_Filtered",
			text:     "the cat and the dog are in the house",
			expected: []string{"cat", "dog", "house"},
		},
		{
			name:     "Tie_Keeps_First_Seen",
			text:     "banana apple banana apple cherry",
			expected: []string{"banana", "apple", "cherry"},
		},
		{
			name:     "Case_Folded",
			text:     "Redis REDIS redis Cluster",
			expected: []string{"redis", "cluster"},
		},
		{
			name:     "Single_Letters_Dropped",
			text:     "a b c go routines",
			expected: []string{"go", "routines"},
		},
		{
			name:     "Digits_Break_Word_Boundaries",
			text:     "abc1def plain words",
			expected: []string{"plain", "words"},
		},
		{
			name:     "Empty_Text",
			text:     "",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractor.Extract(tt.text)

			if len(got) != len(tt.expected) {
				t.Fatalf("keyword count got %d (%v), want %d (%v)", len(got), got, len(tt.expected), tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("keyword[%d] got %s, want %s", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestExtract_CapsAtLimit(t *testing.T) {
	extractor := NewKeywordExtractor()

	// 20 distinct words, the first five repeated so they must lead the list
	var b strings.Builder
	for i := 0; i < 20; i++ {
		word := fmt.Sprintf("word%c", 'a'+i)
		b.WriteString(word + " ")
		if i < 5 {
			b.WriteString(word + " ")
		}
	}

	got := extractor.Extract(b.String())

	if len(got) != 15 {
		t.Fatalf("keyword count got %d, want 15", len(got))
	}
	for i := 0; i < 5; i++ {
		want := fmt.Sprintf("word%c", 'a'+i)
		if got[i] != want {
			t.Errorf("keyword[%d] got %s, want %s", i, got[i], want)
		}
	}
}

func TestExtract_CustomStopWords(t *testing.T) {
	extractor := NewKeywordExtractorWithStopWords([]string{"foo", "BAR"})

	got := extractor.Extract("foo bar baz the")

	// default vocabulary no longer applies, only the custom words are dropped
	want := []string{"baz", "the"}
	if len(got) != len(want) {
		t.Fatalf("keyword count got %d (%v), want %d", len(got), got, len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("keyword[%d] got %s, want %s", i, got[i], want[i])
		}
	}
}
