package usecase

import (
	"context"
	"testing"

	"workspace-assistant/internal/intent"
)

func TestResolveCandidate(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		f := newFixture(t, &fakeClassifier{intent: intent.IntentGeneralChat}, &fakeExtractor{}, scriptedManager())
		_, ok := f.uc.resolveCandidate(context.Background(), "whatever", nil)
		if ok {
			t.Error("empty list must not resolve")
		}
	})

	t.Run("single candidate skips the LLM", func(t *testing.T) {
		// No scripted responses, so any LLM call would fail the resolve.
		f := newFixture(t, &fakeClassifier{intent: intent.IntentGeneralChat}, &fakeExtractor{}, scriptedManager())

		id, ok := f.uc.resolveCandidate(context.Background(), "open the report",
			[]Candidate{{ID: "only", Label: "The Report"}})
		if !ok || id != "only" {
			t.Errorf("single candidate must resolve directly, got id=%q ok=%v", id, ok)
		}
	})

	t.Run("LLM picks among several", func(t *testing.T) {
		f := newFixture(t, &fakeClassifier{intent: intent.IntentGeneralChat}, &fakeExtractor{},
			scriptedManager(`{"id": "b"}`))

		id, ok := f.uc.resolveCandidate(context.Background(), "the latest one",
			[]Candidate{
				{ID: "a", Label: "Old", When: "2026-01-01T00:00:00Z"},
				{ID: "b", Label: "New", When: "2026-08-01T00:00:00Z"},
			})
		if !ok || id != "b" {
			t.Errorf("got id=%q ok=%v", id, ok)
		}
	})

	t.Run("id outside the list is not confident", func(t *testing.T) {
		f := newFixture(t, &fakeClassifier{intent: intent.IntentGeneralChat}, &fakeExtractor{},
			scriptedManager(`{"id": "made-up"}`))

		_, ok := f.uc.resolveCandidate(context.Background(), "that one",
			[]Candidate{{ID: "a", Label: "A"}, {ID: "b", Label: "B"}})
		if ok {
			t.Error("fabricated id must not count as a match")
		}
	})

	t.Run("unparseable answer is not confident", func(t *testing.T) {
		f := newFixture(t, &fakeClassifier{intent: intent.IntentGeneralChat}, &fakeExtractor{},
			scriptedManager(`I think it is the second one`))

		_, ok := f.uc.resolveCandidate(context.Background(), "that one",
			[]Candidate{{ID: "a", Label: "A"}, {ID: "b", Label: "B"}})
		if ok {
			t.Error("prose answer must not count as a match")
		}
	})
}

func TestDraftStore(t *testing.T) {
	store := NewDraftStore(4, 0)

	draft := store.Put(StoredDraft{Kind: DraftKindChat, ChatID: "c1", Body: "hello"})
	if draft.ID == "" {
		t.Fatal("Put must assign an id")
	}

	got, ok := store.Get(draft.ID)
	if !ok || got.Body != "hello" {
		t.Fatalf("Get = %+v, %v", got, ok)
	}

	replacement := store.Put(StoredDraft{Kind: DraftKindChat, ChatID: "c1", Body: "hello again"})
	if replacement.ID == draft.ID {
		t.Error("Put must mint a fresh id")
	}

	store.Delete(draft.ID)
	store.Delete(replacement.ID)
	if _, ok := store.Get(draft.ID); ok {
		t.Error("Delete did not remove the draft")
	}
}
