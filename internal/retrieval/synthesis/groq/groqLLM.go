package groq

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/akolanti/DocChatAPI/internal/config"
	"github.com/akolanti/DocChatAPI/internal/customHttpClient"
	"github.com/akolanti/DocChatAPI/internal/retrieval/synthesis"
	"github.com/akolanti/DocChatAPI/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type llmClient struct {
	client    openai.Client
	modelName string
}

var logger *logger_i.Logger
var groqClient *llmClient
var once sync.Once

// GetGroqClient builds the shared Groq client on first use. Returns nil when
// no API key is configured so the caller falls back to extractive answers.
func GetGroqClient(ctx context.Context, modelName string, apikey string) synthesis.Provider {
	once.Do(func() {
		logger = logger_i.NewLogger("llm_groq")
		newGroqClient(modelName, apikey)
	})

	if groqClient == nil {
		return nil
	}
	return &llmClient{client: groqClient.client, modelName: groqClient.modelName}
}

func newGroqClient(modelName string, apikey string) {
	if apikey == "" {
		logger.Info("GROQ_API_KEY not set, Groq synthesis disabled")
		return
	}

	//Groq speaks the OpenAI chat protocol, only the base URL differs
	c := openai.NewClient(
		option.WithAPIKey(apikey),
		option.WithBaseURL(config.GroqBaseURL),
		option.WithHTTPClient(customHttpClient.PooledClient()),
	)
	groqClient = &llmClient{client: c, modelName: modelName}
	logger.Debug("Groq ", modelName, " client created")
	logger.Info("Groq client created")
}

func (c *llmClient) Generate(ctx context.Context, question string, contextBlocks []string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.modelName),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(config.ModelContext),
			openai.UserMessage(synthesis.BuildUserPrompt(question, contextBlocks)),
		},
		MaxTokens:   openai.Int(config.MaxAnswerTokens),
		Temperature: openai.Float(config.ModelTemperature),
		TopP:        openai.Float(0.9),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("groq returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
