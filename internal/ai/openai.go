package ai

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClassifier implements Classifier over a chat-completion model.
// Low temperature keeps repeated classifications stable; every call
// carries a bounded timeout.
type OpenAIClassifier struct {
	Client  *openai.Client
	Model   string
	Timeout time.Duration
}

func NewOpenAIClassifier(apiKey, model string, timeout time.Duration) *OpenAIClassifier {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &OpenAIClassifier{
		Client:  openai.NewClient(apiKey),
		Model:   model,
		Timeout: timeout,
	}
}

func (c *OpenAIClassifier) Classify(ctx context.Context, text string, taxonomy Taxonomy) (Result, error) {
	timeout := c.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining > 0 && remaining < timeout {
			timeout = remaining
		}
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := c.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.Model,
		Temperature: 0.1,
		MaxTokens:   16,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt(taxonomy)},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		return Result{}, fmt.Errorf("classifier completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Result{}, fmt.Errorf("classifier returned no choices")
	}
	return parseResponse(resp.Choices[0].Message.Content, taxonomy)
}

func systemPrompt(t Taxonomy) string {
	var b strings.Builder
	if t.Scored {
		b.WriteString("You score the sentiment of a customer message sent to a pool and landscape supply chatbot. ")
		b.WriteString("Respond ONLY with a single number between -1 (most negative) and 1 (most positive). No other text.")
		return b.String()
	}
	b.WriteString("You classify customer queries for a pool and landscape supply company.\nCategories:\n")
	for _, bucket := range t.Buckets {
		fmt.Fprintf(&b, "- %s: %s\n", bucket.ID, bucket.Description)
	}
	b.WriteString("Respond ONLY with the category id. No other text.")
	return b.String()
}

func parseResponse(content string, t Taxonomy) (Result, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Result{}, fmt.Errorf("empty classifier response")
	}
	if t.Scored {
		score, err := strconv.ParseFloat(strings.Fields(content)[0], 64)
		if err != nil {
			return Result{}, fmt.Errorf("unparsable sentiment score %q: %w", content, err)
		}
		if score > 1 {
			score = 1
		}
		if score < -1 {
			score = -1
		}
		return Result{Bucket: SentimentBand(score), Score: score}, nil
	}
	// The bucket is returned as-is; coercion to the catch-all happens at
	// the subsystem boundary so anomalies can be counted there.
	bucket := strings.ToLower(strings.Fields(content)[0])
	return Result{Bucket: strings.Trim(bucket, `"'.`)}, nil
}
