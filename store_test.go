package main

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	store, err := NewStore(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("NewStore error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreSessionRoundTrip(t *testing.T) {
	store := newTestStore(t)

	if _, ok, err := store.Session(); err != nil || ok {
		t.Fatalf("expected empty store, ok=%v err=%v", ok, err)
	}

	session := Session{Token: "tok", UserID: 3, Username: "tester"}
	if err := store.SaveSession(session); err != nil {
		t.Fatalf("SaveSession error: %v", err)
	}
	loaded, ok, err := store.Session()
	if err != nil || !ok {
		t.Fatalf("Session error: ok=%v err=%v", ok, err)
	}
	if loaded != session {
		t.Fatalf("unexpected session %+v", loaded)
	}

	// saving again replaces the single row
	session.Token = "tok2"
	if err := store.SaveSession(session); err != nil {
		t.Fatalf("SaveSession replace error: %v", err)
	}
	loaded, _, _ = store.Session()
	if loaded.Token != "tok2" {
		t.Fatalf("expected replaced token, got %q", loaded.Token)
	}

	if err := store.ClearSession(); err != nil {
		t.Fatalf("ClearSession error: %v", err)
	}
	if _, ok, _ := store.Session(); ok {
		t.Fatalf("expected session cleared")
	}
}

func TestStoreDraftRoundTrip(t *testing.T) {
	store := newTestStore(t)

	if _, ok, err := store.Draft(0); err != nil || ok {
		t.Fatalf("expected no draft, ok=%v err=%v", ok, err)
	}

	if err := store.SaveDraft(Draft{ArticleID: 0, Title: "제목", Content: "내용"}); err != nil {
		t.Fatalf("SaveDraft error: %v", err)
	}
	if err := store.SaveDraft(Draft{ArticleID: 7, Title: "수정 제목", Content: "수정 내용"}); err != nil {
		t.Fatalf("SaveDraft error: %v", err)
	}

	draft, ok, err := store.Draft(0)
	if err != nil || !ok || draft.Title != "제목" {
		t.Fatalf("unexpected draft %+v ok=%v err=%v", draft, ok, err)
	}
	if draft.SavedAt.IsZero() {
		t.Fatalf("expected saved timestamp")
	}
	draft, ok, _ = store.Draft(7)
	if !ok || draft.Content != "수정 내용" {
		t.Fatalf("unexpected edit draft %+v", draft)
	}

	if err := store.SaveDraft(Draft{ArticleID: 0, Title: "새 제목", Content: "새 내용"}); err != nil {
		t.Fatalf("SaveDraft overwrite error: %v", err)
	}
	draft, _, _ = store.Draft(0)
	if draft.Title != "새 제목" {
		t.Fatalf("expected overwritten draft, got %q", draft.Title)
	}

	if err := store.DeleteDraft(7); err != nil {
		t.Fatalf("DeleteDraft error: %v", err)
	}
	if _, ok, _ := store.Draft(7); ok {
		t.Fatalf("expected draft deleted")
	}
}

func TestStoreEmptyDraftDeletes(t *testing.T) {
	store := newTestStore(t)
	if err := store.SaveDraft(Draft{ArticleID: 2, Title: "제목", Content: "내용"}); err != nil {
		t.Fatalf("SaveDraft error: %v", err)
	}
	if err := store.SaveDraft(Draft{ArticleID: 2}); err != nil {
		t.Fatalf("SaveDraft empty error: %v", err)
	}
	if _, ok, _ := store.Draft(2); ok {
		t.Fatalf("expected empty draft removed")
	}
}

func TestStorePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore error: %v", err)
	}
	if err := store.SaveSession(Session{Token: "tok", UserID: 1, Username: "tester"}); err != nil {
		t.Fatalf("SaveSession error: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	store, err = NewStore(path)
	if err != nil {
		t.Fatalf("NewStore reopen error: %v", err)
	}
	defer store.Close()
	session, ok, err := store.Session()
	if err != nil || !ok || session.Token != "tok" {
		t.Fatalf("expected persisted session, got %+v ok=%v err=%v", session, ok, err)
	}
}

func TestTimeConversions(t *testing.T) {
	if timeToUnix(time.Time{}) != 0 {
		t.Fatalf("expected zero time to map to 0")
	}
	if !unixToTime(0).IsZero() {
		t.Fatalf("expected 0 to map to zero time")
	}
	now := time.Now().UTC().Truncate(time.Second)
	if got := unixToTime(timeToUnix(now)); !got.Equal(now) {
		t.Fatalf("expected round trip, got %v want %v", got, now)
	}
}
