package synthesis

import (
	"context"
	"fmt"
	"strings"
)

type Provider interface {
	Generate(ctx context.Context, question string, contextBlocks []string) (string, error)
}

// BuildUserPrompt renders the retrieved context and the question into the
// user message every synthesis backend sends. Keeping the template here means
// switching backends never changes what the model is asked.
func BuildUserPrompt(question string, contextBlocks []string) string {
	return fmt.Sprintf("Based on the following document excerpts, please answer the question.\n\n"+
		"Context:\n%s\n\nQuestion: %s\n\n"+
		"Please provide a clear, concise answer based only on the information provided in the context. "+
		"If the context doesn't contain enough information to answer the question, say so.",
		strings.Join(contextBlocks, "\n\n"), question)
}
