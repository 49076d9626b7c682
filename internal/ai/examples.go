package ai

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"
)

// ExampleBackfill lazily fetches example sentences for breakdown words that
// arrived without one. Each distinct (word, meaning) pair is attempted at
// most once per display session, success or not; failures leave the field
// empty silently.
type ExampleBackfill struct {
	client *Client

	mu        sync.Mutex
	attempted map[string]bool
}

// NewExampleBackfill creates a backfill session.
func NewExampleBackfill(client *Client) *ExampleBackfill {
	return &ExampleBackfill{
		client:    client,
		attempted: make(map[string]bool),
	}
}

// Fetch returns an example sentence in the form
// "<japanese sentence> (<english translation>)" for the word, or ("", false)
// if the pair was already attempted or the request failed. Callers are
// expected to invoke this off the rendering path; Fetch itself blocks for
// the duration of the backend call.
func (b *ExampleBackfill) Fetch(ctx context.Context, word, meaning string) (string, bool) {
	key := word + "\x00" + meaning

	b.mu.Lock()
	if b.attempted[key] {
		b.mu.Unlock()
		return "", false
	}
	b.attempted[key] = true
	b.mu.Unlock()

	prompt := fmt.Sprintf(`Write one short, natural Japanese example sentence using the word %q (meaning: %s).
Respond with exactly one line in the form:
<japanese sentence> (<english translation>)`, word, meaning)

	resp, err := b.client.gen.GenerateContent(ctx, b.client.cfg.Model, genai.Text(prompt), nil)
	if err != nil {
		return "", false
	}

	sentence := strings.TrimSpace(responseText(resp))
	if sentence == "" {
		return "", false
	}
	return sentence, true
}

// Attempted reports whether the pair was already tried this session.
func (b *ExampleBackfill) Attempted(word, meaning string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.attempted[word+"\x00"+meaning]
}
