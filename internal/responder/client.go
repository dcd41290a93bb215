// Package responder wraps the external conversational service. The triage
// core never calls into this package; handlers invoke it only after the
// crisis scan has passed.
package responder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/furyfist/WellNest/pkg/circuitbreaker"
	"github.com/furyfist/WellNest/pkg/config"
	"github.com/furyfist/WellNest/pkg/logger"
	"github.com/furyfist/WellNest/pkg/retry"
)

// ErrUnavailable marks upstream failures that degrade to the fixed apology
// message instead of surfacing to the user.
var ErrUnavailable = errors.New("conversational responder unavailable")

// FallbackReply is returned when the responder cannot be reached. Crisis
// scanning has already happened by the time this is used.
const FallbackReply = "I'm sorry, but I'm having trouble connecting. Please try again in a moment."

const systemPrompt = `You are a supportive mental health assistant for university students.
You listen first and respond with warmth, without judgement.

Rules:
1. Base factual claims only on the supporting context when it is provided.
2. Never diagnose; encourage professional support where appropriate.
3. Keep responses short and conversational.
4. If the context does not cover the question, say so honestly.`

// Retriever supplies supporting resource chunks for a message embedding.
// It is optional; without one the responder answers from the prompt alone.
type Retriever interface {
	Search(ctx context.Context, embedding []float32, topK int) ([]string, error)
}

type Client struct {
	api            *openai.Client
	model          string
	embeddingModel string
	temperature    float32
	maxTokens      int
	timeout        time.Duration
	topK           int

	retriever Retriever
	breaker   *circuitbreaker.Breaker
	policy    retry.Policy
}

func NewClient(cfg config.ResponderConfig, retriever Retriever) *Client {
	breaker := circuitbreaker.New("responder", circuitbreaker.Settings{
		HalfOpenMax:      5,
		OpenTimeout:      30 * time.Second,
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Logger:           logger.GetLogger(),
	})

	policy := retry.Policy{
		MaxAttempts:    3,
		InitialDelay:   500 * time.Millisecond,
		MaxDelay:       5 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.1,
		Logger:         logger.GetLogger(),
	}

	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	logger.Info("Responder client initialized",
		zap.String("model", cfg.Model),
		zap.Bool("retrieval", retriever != nil),
	)

	return &Client{
		api:            openai.NewClient(cfg.APIKey),
		model:          cfg.Model,
		embeddingModel: cfg.EmbeddingModel,
		temperature:    cfg.Temperature,
		maxTokens:      cfg.MaxTokens,
		timeout:        timeout,
		topK:           cfg.RetrievalTopK,
		retriever:      retriever,
		breaker:        breaker,
		policy:         policy,
	}
}

// Reply generates a conversational response for one message. On any upstream
// failure the returned error wraps ErrUnavailable so the handler can swap in
// the fixed fallback.
func (c *Client) Reply(ctx context.Context, message string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	contextChunks := c.retrieveContext(ctx, message)

	userPrompt := message
	if len(contextChunks) > 0 {
		userPrompt = fmt.Sprintf("Supporting context:\n---\n%s\n---\n\nStudent's message:\n%s",
			strings.Join(contextChunks, "\n\n"), message)
	}

	var reply string
	err := c.breaker.Execute(ctx, func() error {
		return retry.Do(ctx, c.policy, func() error {
			resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
				Model:       c.model,
				Temperature: c.temperature,
				MaxTokens:   c.maxTokens,
				Messages: []openai.ChatCompletionMessage{
					{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
					{Role: openai.ChatMessageRoleUser, Content: userPrompt},
				},
			})
			if err != nil {
				return fmt.Errorf("chat completion: %w", err)
			}
			if len(resp.Choices) == 0 {
				return errors.New("chat completion returned no choices")
			}

			logger.Debug("Responder reply generated",
				zap.Int("prompt_tokens", resp.Usage.PromptTokens),
				zap.Int("completion_tokens", resp.Usage.CompletionTokens),
			)

			reply = resp.Choices[0].Message.Content
			return nil
		})
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return reply, nil
}

// Embed produces a vector for retrieval and resource ingestion.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var embedding []float32
	err := c.breaker.Execute(ctx, func() error {
		return retry.Do(ctx, c.policy, func() error {
			resp, err := c.api.CreateEmbeddings(ctx, openai.EmbeddingRequest{
				Input: []string{text},
				Model: openai.EmbeddingModel(c.embeddingModel),
			})
			if err != nil {
				return fmt.Errorf("create embedding: %w", err)
			}
			if len(resp.Data) == 0 {
				return errors.New("embedding response was empty")
			}
			embedding = resp.Data[0].Embedding
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return embedding, nil
}

// retrieveContext is best-effort; a retrieval failure never blocks a reply.
func (c *Client) retrieveContext(ctx context.Context, message string) []string {
	if c.retriever == nil {
		return nil
	}

	embedding, err := c.Embed(ctx, message)
	if err != nil {
		logger.Warn("Context embedding failed, replying without retrieval", zap.Error(err))
		return nil
	}

	chunks, err := c.retriever.Search(ctx, embedding, c.topK)
	if err != nil {
		logger.Warn("Context retrieval failed, replying without retrieval", zap.Error(err))
		return nil
	}

	return chunks
}
