package cache

import (
	"strings"
	"time"
)

// AIResponseCache stores generated AI content so repeated requests for
// the same capability and input do not hit the upstream service.
type AIResponseCache interface {
	Get(capability, key string) (string, bool)
	Set(capability, key, content string, ttl time.Duration)
	Invalidate(capability, key string)
}

type aiResponseCache struct {
	responses Cache[string, string]
}

// NewAIResponseCache returns an in-memory cache for AI completions.
func NewAIResponseCache() AIResponseCache {
	return &aiResponseCache{
		responses: NewTTLCache[string, string](),
	}
}

func (c *aiResponseCache) Get(capability, key string) (string, bool) {
	return c.responses.Get(cacheKey(capability, key))
}

func (c *aiResponseCache) Set(capability, key, content string, ttl time.Duration) {
	if content == "" {
		return
	}
	c.responses.Set(cacheKey(capability, key), content, ttl)
}

func (c *aiResponseCache) Invalidate(capability, key string) {
	c.responses.Delete(cacheKey(capability, key))
}

func cacheKey(parts ...string) string {
	return strings.Join(parts, "|")
}
