package telegram

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"workspace-assistant/internal/assistant"
	"workspace-assistant/internal/model"
)

// conversation is the per-chat state the engine itself does not keep: the
// session record and the rolling history window.
type conversation struct {
	Session assistant.SessionState
	History []model.Turn
}

// convoStore keeps conversations per Telegram chat. Entries expire after the
// TTL so a stale pending action does not trap a chat forever.
type convoStore struct {
	cache *expirable.LRU[int64, conversation]
}

func newConvoStore(size int, ttl time.Duration) *convoStore {
	return &convoStore{
		cache: expirable.NewLRU[int64, conversation](size, nil, ttl),
	}
}

// Get returns the conversation for a chat, or a fresh one.
func (s *convoStore) Get(chatID int64) conversation {
	if convo, ok := s.cache.Get(chatID); ok {
		return convo
	}
	return conversation{}
}

func (s *convoStore) Put(chatID int64, convo conversation) {
	s.cache.Add(chatID, convo)
}
