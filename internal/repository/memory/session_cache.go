package memory

import (
	"time"

	"rag-assistant-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

const documentListPrefix = "documents:"

// SessionCache is the in-process read-through cache in front of the
// relational store: ids of sessions created in this process (which may not
// have persisted turns yet) and per-session document lists. The store
// remains the single source of truth; everything here is droppable.
type SessionCache struct {
	cache *cache.Cache
}

func NewSessionCache() *SessionCache {
	// Document lists expire after an hour and are purged every 10 minutes;
	// locally created session ids never expire (they are tiny and the
	// process is their only record until a turn is saved).
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionCache{
		cache: c,
	}
}

// RememberSessionId records a session id created in this process.
func (r *SessionCache) RememberSessionId(sessionId string) {
	r.cache.Set("session:"+sessionId, struct{}{}, cache.NoExpiration)
}

// LocalSessionIds returns every session id created in-process, unordered.
func (r *SessionCache) LocalSessionIds() []string {
	var ids []string
	for key := range r.cache.Items() {
		if len(key) > 8 && key[:8] == "session:" {
			ids = append(ids, key[8:])
		}
	}
	return ids
}

// SetDocuments caches a session's document list.
func (r *SessionCache) SetDocuments(sessionId string, documents []*entity.Document) {
	r.cache.Set(documentListPrefix+sessionId, documents, cache.DefaultExpiration)
}

// GetDocuments returns a cached document list, if any.
func (r *SessionCache) GetDocuments(sessionId string) ([]*entity.Document, bool) {
	if x, found := r.cache.Get(documentListPrefix + sessionId); found {
		return x.([]*entity.Document), true
	}
	return nil, false
}

// InvalidateDocuments drops a session's cached document list.
func (r *SessionCache) InvalidateDocuments(sessionId string) {
	r.cache.Delete(documentListPrefix + sessionId)
}
