package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DraftKind distinguishes what a stored draft will do when approved.
type DraftKind string

const (
	DraftKindChat       DraftKind = "chat"
	DraftKindSuggestion DraftKind = "suggestion"
)

// StoredDraft is an uncommitted side effect held until the user approves,
// refines, or cancels it. Chat messages and document edit suggestions live
// here; email drafts live in the mailbox itself.
type StoredDraft struct {
	ID          string
	Kind        DraftKind
	ChatID      string
	ChatName    string
	Body        string
	DocumentID  string
	Target      string
	Replacement string
	Instruction string
	CreatedAt   time.Time
}

// DraftStore holds pending drafts in an expiring LRU so abandoned drafts
// disappear on their own instead of leaking.
type DraftStore struct {
	cache *expirable.LRU[string, StoredDraft]
}

// NewDraftStore creates a store evicting entries after ttl or beyond size.
func NewDraftStore(size int, ttl time.Duration) *DraftStore {
	return &DraftStore{
		cache: expirable.NewLRU[string, StoredDraft](size, nil, ttl),
	}
}

// Put stores the draft under a fresh id and returns it.
func (s *DraftStore) Put(draft StoredDraft) StoredDraft {
	draft.ID = uuid.NewString()
	draft.CreatedAt = time.Now()
	s.cache.Add(draft.ID, draft)
	return draft
}

// Get returns the draft if it is still alive.
func (s *DraftStore) Get(id string) (StoredDraft, bool) {
	return s.cache.Get(id)
}

// Delete discards the draft.
func (s *DraftStore) Delete(id string) {
	s.cache.Remove(id)
}
