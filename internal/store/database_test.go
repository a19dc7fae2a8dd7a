package store

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/emberlane/emberlane-backend/internal/domain"
)

var errMissingDSN = errors.New("missing TEST_POSTGRES_DSN")

var (
	testDBOnce sync.Once
	testDB     *gorm.DB
	testDBErr  error
)

func databaseStore(tb testing.TB) *DatabaseStore {
	tb.Helper()

	testDBOnce.Do(func() {
		dsn := os.Getenv("TEST_POSTGRES_DSN")
		if dsn == "" {
			testDBErr = errMissingDSN
			return
		}
		var err error
		testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		if err != nil {
			testDBErr = err
			return
		}
		testDBErr = AutoMigrate(testDB)
	})

	if errors.Is(testDBErr, errMissingDSN) {
		tb.Skip("set TEST_POSTGRES_DSN to run database store tests")
	}
	if testDBErr != nil {
		tb.Fatalf("failed to init test db: %v", testDBErr)
	}

	s := NewDatabaseStore(testDB, testLogger(tb))
	// Importing an empty snapshot wipes every table and resets the counters,
	// giving each test a clean slate on the shared database.
	if err := s.ImportSnapshot(context.Background(), &Snapshot{Counters: map[string]int{}}); err != nil {
		tb.Fatalf("failed to reset test db: %v", err)
	}
	return s
}

func TestDatabaseStoreIDAllocation(t *testing.T) {
	s := databaseStore(t)
	ctx := context.Background()

	first := mustCreatePost(t, s, "db-first")
	second := mustCreatePost(t, s, "db-second")
	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("expected ids 1,2; got %d,%d", first.ID, second.ID)
	}

	if _, err := s.DeleteBlogPost(ctx, second.ID); err != nil {
		t.Fatalf("DeleteBlogPost: %v", err)
	}
	third := mustCreatePost(t, s, "db-third")
	if third.ID != 3 {
		t.Fatalf("counter row did not survive the delete: got id %d", third.ID)
	}

	_, err := s.CreateBlogPost(ctx, domain.NewBlogPost{Title: "Dup", Slug: "db-first"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	_, err = s.GetBlogPostByID(ctx, 999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDatabaseStoreSingletonsAndReplace(t *testing.T) {
	s := databaseStore(t)
	ctx := context.Background()

	hero, err := s.GetHeroData(ctx)
	if err != nil {
		t.Fatalf("GetHeroData: %v", err)
	}
	if hero.ID != 1 || hero.Title1 == "" {
		t.Fatalf("default hero not materialized: %+v", hero)
	}

	title := "Poured in Bali"
	updated, err := s.UpdateHeroData(ctx, domain.HeroDataPatch{Title1: &title})
	if err != nil {
		t.Fatalf("UpdateHeroData: %v", err)
	}
	if updated.Title1 != title || updated.Title2 != hero.Title2 {
		t.Fatalf("merge semantics violated: %+v", updated)
	}

	if _, err := s.ReplaceWorkshopCurriculum(ctx, []domain.WorkshopCurriculumInput{
		{Step: "02", Title: "Wick", Order: 2},
		{Step: "01", Title: "Blend", Order: 1},
	}); err != nil {
		t.Fatalf("ReplaceWorkshopCurriculum: %v", err)
	}
	steps, err := s.GetWorkshopCurriculum(ctx)
	if err != nil {
		t.Fatalf("GetWorkshopCurriculum: %v", err)
	}
	if len(steps) != 2 || steps[0].Title != "Blend" || steps[0].ID != 2 {
		t.Fatalf("unexpected curriculum: %+v", steps)
	}
}

func TestDatabaseStoreSnapshotRoundTrip(t *testing.T) {
	s := databaseStore(t)
	ctx := context.Background()

	mustCreatePost(t, s, "db-kept")
	if _, err := s.CreateGalleryItem(ctx, domain.NewGalleryItem{
		Title: "Pour shot", ImageURL: "/uploads/pour.jpg", Order: 1,
	}); err != nil {
		t.Fatalf("CreateGalleryItem: %v", err)
	}
	if _, err := s.GetContactInfo(ctx); err != nil {
		t.Fatalf("GetContactInfo: %v", err)
	}

	snap, err := s.ExportSnapshot(ctx)
	if err != nil {
		t.Fatalf("ExportSnapshot: %v", err)
	}

	restored := NewMemoryStore(testLogger(t))
	if err := restored.ImportSnapshot(ctx, snap); err != nil {
		t.Fatalf("ImportSnapshot into memory store: %v", err)
	}
	post, err := restored.GetBlogPostBySlug(ctx, "db-kept")
	if err != nil {
		t.Fatalf("GetBlogPostBySlug after restore: %v", err)
	}
	if post.ID != 1 {
		t.Fatalf("unexpected post after restore: %+v", post)
	}
	info, err := restored.GetContactInfo(ctx)
	if err != nil {
		t.Fatalf("GetContactInfo after restore: %v", err)
	}
	if info.ID != 1 {
		t.Fatalf("contact info singleton lost in round trip")
	}
}
