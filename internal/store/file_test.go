package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/emberlane/emberlane-backend/internal/domain"
)

func TestFileStoreSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "content.json")

	s, err := NewFileStore(path, testLogger(t))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	created := mustCreatePost(t, s, "survives")
	doomed := mustCreatePost(t, s, "doomed")
	if _, err := s.DeleteBlogPost(ctx, doomed.ID); err != nil {
		t.Fatalf("DeleteBlogPost: %v", err)
	}
	if _, err := s.GetAdminCredentials(ctx); err != nil {
		t.Fatalf("GetAdminCredentials: %v", err)
	}

	reopened, err := NewFileStore(path, testLogger(t))
	if err != nil {
		t.Fatalf("NewFileStore (reopen): %v", err)
	}

	got, err := reopened.GetBlogPostByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetBlogPostByID after reopen: %v", err)
	}
	if got.Slug != "survives" || !got.PublishedAt.Equal(created.PublishedAt) {
		t.Fatalf("post did not survive restart intact: %+v", got)
	}

	// The id counter is part of the persisted state, so a restart never
	// re-issues the deleted post's id.
	next := mustCreatePost(t, s, "after-restart")
	if next.ID != 3 {
		t.Fatalf("expected id 3 after restart, got %d", next.ID)
	}

	creds, err := reopened.GetAdminCredentials(ctx)
	if err != nil {
		t.Fatalf("GetAdminCredentials after reopen: %v", err)
	}
	if creds.Email != DefaultAdminEmail || creds.UpdatedAt.IsZero() {
		t.Fatalf("materialized singleton not persisted: %+v", creds)
	}
}

func TestFileStoreWritesSynchronously(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.json")

	s, err := NewFileStore(path, testLogger(t))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	mustCreatePost(t, s, "on-disk")

	// A reader of the file immediately after a completed call sees the
	// mutation; there is no write-behind.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("store file not written: %v", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("store file is not a valid snapshot: %v", err)
	}
	if len(snap.BlogPosts) != 1 || snap.BlogPosts[0].ID != 1 {
		t.Fatalf("snapshot missing the new post: %+v", snap.BlogPosts)
	}
	if snap.Counters["blogPosts"] != 1 {
		t.Fatalf("counters not persisted: %+v", snap.Counters)
	}
}

func TestFileStoreRollsBackOnWriteFailure(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "store")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(dir, "content.json")

	s, err := NewFileStore(path, testLogger(t))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	mustCreatePost(t, s, "committed")

	// Removing the directory makes the next write fail, which must roll the
	// in-memory state back to the last persisted snapshot.
	if err := os.RemoveAll(dir); err != nil {
		t.Fatalf("remove dir: %v", err)
	}

	_, err = s.CreateBlogPost(ctx, domain.NewBlogPost{Title: "Lost", Slug: "lost"})
	if err == nil {
		t.Fatalf("expected a persistence error")
	}

	posts, err := s.GetBlogPosts(ctx)
	if err != nil {
		t.Fatalf("GetBlogPosts: %v", err)
	}
	if len(posts) != 1 || posts[0].Slug != "committed" {
		t.Fatalf("failed write leaked into memory: %+v", posts)
	}
}
