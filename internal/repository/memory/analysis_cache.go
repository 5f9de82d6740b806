package memory

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// AnalysisCache holds derived summaries keyed by session and analysis kind.
// Entries are invalidated implicitly: the consumer rewrites them after every
// completed step, and a short TTL covers sessions nothing subscribes to.
type AnalysisCache struct {
	cache *gocache.Cache
}

func NewAnalysisCache() *AnalysisCache {
	return &AnalysisCache{
		cache: gocache.New(30*time.Minute, 10*time.Minute),
	}
}

func analysisKey(sessionId, kind string) string {
	return fmt.Sprintf("%s:%s", sessionId, kind)
}

func (c *AnalysisCache) Get(sessionId, kind string) (any, bool) {
	return c.cache.Get(analysisKey(sessionId, kind))
}

func (c *AnalysisCache) Set(sessionId, kind string, value any) {
	c.cache.Set(analysisKey(sessionId, kind), value, gocache.DefaultExpiration)
}

func (c *AnalysisCache) Invalidate(sessionId string) {
	for _, kind := range []string{"summary", "decision", "validity", "feasibility"} {
		c.cache.Delete(analysisKey(sessionId, kind))
	}
}
