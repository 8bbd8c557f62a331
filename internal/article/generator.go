// Package article turns an extracted conversation into a long-form Markdown
// article through a chat-completion backend.
package article

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/chatscribe/chatscribe/internal/cache"
	"github.com/chatscribe/chatscribe/internal/conversation"
	"github.com/chatscribe/chatscribe/internal/llm"
)

// Article is the generated long-form output. Title is recovered from the
// model's leading "Title:" line when present; Body is the Markdown content.
type Article struct {
	Title string
	Body  string
}

// ErrEmptyCompletion indicates the model returned a response with no usable
// content, typically due to safety filters or input complexity.
var ErrEmptyCompletion = errors.New("model returned empty content")

// systemPrompt instructs the model to weave the turns into a complete
// article rather than summarize them.
const systemPrompt = `You are an expert technical writer. Your task is to generate a comprehensive and detailed blog post based on the provided conversation history.
The conversation includes messages with roles 'system' (metadata), 'user' (questions/prompts), and 'assistant' (responses).

Instructions:
1. Synthesize the conversation: weave the user questions and assistant answers into a coherent narrative or a well-structured Q&A format suitable for a blog post.
2. Preserve technical details: retain ALL technical information, code snippets, examples, commands, and explanations accurately. Do not simplify or omit technical content.
3. Clarity and structure: organize the content logically with clear markdown headings, paragraphs, and bullet points or numbered lists where appropriate.
4. Introduction and conclusion: add a suitable introduction that sets the context and a concluding summary.
5. Title: suggest a relevant and engaging title at the very beginning, formatted like: "Title: [Your Suggested Title]".
6. Long-form content: generate a detailed, in-depth article; aim for completeness.
7. Tone: professional, informative, and engaging, suitable for a technical audience.
8. No placeholders: do not include placeholder text or comments about the generation process.
9. Direct output: start with the suggested title, followed by the article content.

Use the following conversation history to generate the blog post:`

const maxOutputTokens = 4000

// sleepFunc is swappable in tests to avoid real backoff waits.
var sleepFunc = time.Sleep

// Generator calls the chat backend to produce the article.
type Generator struct {
	Client llm.Client
	Model  string
	// Cache, when set, stores responses keyed by model and prompt so
	// regenerating the same conversation is free and deterministic.
	Cache *cache.LLMCache
}

// Generate builds the prompt from the conversation and requests a single
// completion, retrying once on transport errors.
func (g *Generator) Generate(ctx context.Context, msgs []conversation.Message) (Article, error) {
	if g.Client == nil || strings.TrimSpace(g.Model) == "" {
		return Article{}, errors.New("generator not configured")
	}
	if len(msgs) == 0 {
		return Article{}, errors.New("no conversation messages to generate from")
	}

	payload := make([]openai.ChatCompletionMessage, 0, len(msgs)+1)
	payload = append(payload, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: systemPrompt})
	for _, m := range msgs {
		payload = append(payload, openai.ChatCompletionMessage{
			Role:    string(conversation.NormalizeRole(string(m.Role))),
			Content: SanitizeLatin1(m.Content),
		})
	}

	key := cache.KeyFrom(g.Model, promptDigest(payload))
	if g.Cache != nil {
		if raw, ok, _ := g.Cache.Get(ctx, key); ok {
			var out struct {
				Markdown string `json:"markdown"`
			}
			if err := json.Unmarshal(raw, &out); err == nil && strings.TrimSpace(out.Markdown) != "" {
				log.Debug().Msg("article served from cache")
				return Split(out.Markdown), nil
			}
		}
	}

	req := openai.ChatCompletionRequest{
		Model:       g.Model,
		Messages:    payload,
		Temperature: 0.7,
		MaxTokens:   maxOutputTokens,
		N:           1,
	}
	resp, err := g.Client.CreateChatCompletion(ctx, req)
	if err != nil {
		// One short-backoff retry before failing; the pipeline itself never
		// retries, so this is the only second chance.
		sleepFunc(100 * time.Millisecond)
		resp, err = g.Client.CreateChatCompletion(ctx, req)
		if err != nil {
			return Article{}, fmt.Errorf("generation call (after retry): %w", err)
		}
	}
	if len(resp.Choices) == 0 {
		return Article{}, ErrEmptyCompletion
	}
	choice := resp.Choices[0]
	content := strings.TrimSpace(choice.Message.Content)
	if content == "" {
		if choice.FinishReason != "" {
			return Article{}, fmt.Errorf("%w (finish reason: %s)", ErrEmptyCompletion, choice.FinishReason)
		}
		return Article{}, ErrEmptyCompletion
	}

	if g.Cache != nil {
		raw, _ := json.Marshal(map[string]string{"markdown": content})
		_ = g.Cache.Save(ctx, key, raw)
	}
	return Split(content), nil
}

// Summarize produces a technical summary of arbitrary content. Kept separate
// from Generate so callers can condense oversized conversations first.
func (g *Generator) Summarize(ctx context.Context, content string) (string, error) {
	if g.Client == nil || strings.TrimSpace(g.Model) == "" {
		return "", errors.New("generator not configured")
	}
	prompt := "Analyze the following content and provide a technical summary focusing on:\n" +
		"1. Core concepts and principles\n" +
		"2. Technical implementation details\n" +
		"3. Problem-solution patterns\n" +
		"4. Key technical specifications\n" +
		"5. Implementation considerations\n\n" +
		"Content:\n" + content + "\n\nSummary:"

	resp, err := g.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.Model,
		Messages:    []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleUser, Content: prompt}},
		Temperature: 0.7,
		N:           1,
	})
	if err != nil {
		return "", fmt.Errorf("summarize call: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyCompletion
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Split separates the "Title: …" first line from the Markdown body. When no
// title line is present the whole content becomes the body.
func Split(content string) Article {
	content = strings.TrimSpace(content)
	line, rest, found := strings.Cut(content, "\n")
	if title, ok := strings.CutPrefix(strings.TrimSpace(line), "Title:"); ok {
		a := Article{Title: strings.TrimSpace(title)}
		if found {
			a.Body = strings.TrimSpace(rest)
		}
		return a
	}
	return Article{Body: content}
}

func promptDigest(msgs []openai.ChatCompletionMessage) string {
	var sb strings.Builder
	for _, m := range msgs {
		sb.WriteString(m.Role)
		sb.WriteString(": ")
		sb.WriteString(m.Content)
		sb.WriteString("\n\n")
	}
	return sb.String()
}
