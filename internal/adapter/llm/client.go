package llm

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"archlens/internal/adapter/cache"
	"archlens/internal/domain"
	"archlens/internal/port"
)

// Client is the bounded, cache-backed analysis façade over a raw model.
// At most batchSize calls are in flight at once; cache hits bypass the
// limiter entirely. Any failure, whether transport or a malformed
// response, degrades to an empty Analysis after a logged diagnostic, so
// callers see "no findings" and "call failed" the same way. A single bad
// call must never abort a run.
type Client struct {
	llm          port.LLM
	cache        *cache.ResponseCache
	sem          *semaphore.Weighted
	systemPrompt string
	log          *slog.Logger

	calls atomic.Int64
}

// NewClient creates a bounded client. batchSize caps concurrent external
// calls; values below 1 are treated as 1.
func NewClient(model port.LLM, responseCache *cache.ResponseCache, batchSize int, systemPrompt string, log *slog.Logger) *Client {
	if batchSize < 1 {
		batchSize = 1
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		llm:          model,
		cache:        responseCache,
		sem:          semaphore.NewWeighted(int64(batchSize)),
		systemPrompt: systemPrompt,
		log:          log,
	}
}

// AnalyzeChunk analyzes one chunk of text with the given context string.
// The cache key is the digest of the exact prompt; a hit returns without
// an external call or a semaphore slot.
func (c *Client) AnalyzeChunk(ctx context.Context, chunk, analysisContext string) domain.Analysis {
	prompt := BuildPrompt(chunk, analysisContext)
	key := cache.Key(prompt)

	if data, ok := c.cache.Get(key); ok {
		var a domain.Analysis
		if err := json.Unmarshal(data, &a); err == nil {
			return a
		}
		// Entry parses as JSON but not as an analysis; refresh it.
		c.log.Warn("undecodable cache entry, refetching", "key", key)
	}

	if err := c.sem.Acquire(ctx, 1); err != nil {
		c.log.Warn("analysis canceled while waiting for slot", "error", err)
		return domain.Analysis{}
	}
	defer c.sem.Release(1)

	c.calls.Add(1)
	text, err := c.llm.Chat(ctx, c.systemPrompt, prompt)
	if err != nil {
		c.log.Warn("model call failed, returning empty analysis",
			"model", c.llm.ModelName(), "error", err)
		return domain.Analysis{}
	}

	cleaned := stripMarkdownCodeFence(text)

	var a domain.Analysis
	if err := json.Unmarshal([]byte(cleaned), &a); err != nil {
		c.log.Warn("malformed model response, returning empty analysis",
			"model", c.llm.ModelName(), "error", err)
		return domain.Analysis{}
	}

	if err := c.cache.Put(key, []byte(cleaned)); err != nil {
		c.log.Warn("failed to cache response", "key", key, "error", err)
	}

	return a
}

// ExternalCalls returns how many calls reached the underlying model.
func (c *Client) ExternalCalls() int64 {
	return c.calls.Load()
}
