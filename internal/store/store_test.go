package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/emberlane/emberlane-backend/internal/domain"
	"github.com/emberlane/emberlane-backend/internal/platform/logger"
)

func testLogger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logg, err := logger.New("test")
	if err != nil {
		tb.Fatalf("failed to init logger: %v", err)
	}
	return logg
}

// eachBackend runs fn against the in-memory and file backends; both must
// expose identical behavior.
func eachBackend(t *testing.T, fn func(t *testing.T, s ContentStore)) {
	t.Helper()

	t.Run("memory", func(t *testing.T) {
		fn(t, NewMemoryStore(testLogger(t)))
	})
	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "content.json")
		s, err := NewFileStore(path, testLogger(t))
		if err != nil {
			t.Fatalf("NewFileStore: %v", err)
		}
		fn(t, s)
	})
}

func mustCreatePost(t *testing.T, s ContentStore, slug string) *domain.BlogPost {
	t.Helper()
	post, err := s.CreateBlogPost(context.Background(), domain.NewBlogPost{
		Title:   "Pouring your first soy candle",
		Slug:    slug,
		Excerpt: "What to expect in a beginner session.",
		Content: "Long form body.",
	})
	if err != nil {
		t.Fatalf("CreateBlogPost(%s): %v", slug, err)
	}
	return post
}

func TestBlogPostIDsNeverReused(t *testing.T) {
	eachBackend(t, func(t *testing.T, s ContentStore) {
		ctx := context.Background()

		first := mustCreatePost(t, s, "first")
		second := mustCreatePost(t, s, "second")
		if first.ID != 1 || second.ID != 2 {
			t.Fatalf("expected ids 1,2; got %d,%d", first.ID, second.ID)
		}

		for _, id := range []int{first.ID, second.ID} {
			deleted, err := s.DeleteBlogPost(ctx, id)
			if err != nil {
				t.Fatalf("DeleteBlogPost(%d): %v", id, err)
			}
			if !deleted {
				t.Fatalf("DeleteBlogPost(%d): expected true", id)
			}
		}

		third := mustCreatePost(t, s, "third")
		if third.ID != 3 {
			t.Fatalf("expected id 3 after deleting all rows, got %d", third.ID)
		}
	})
}

func TestDeleteMissingBlogPost(t *testing.T) {
	eachBackend(t, func(t *testing.T, s ContentStore) {
		deleted, err := s.DeleteBlogPost(context.Background(), 42)
		if err != nil {
			t.Fatalf("DeleteBlogPost: %v", err)
		}
		if deleted {
			t.Fatalf("expected false for missing id")
		}
	})
}

func TestBlogPostSlugConflict(t *testing.T) {
	eachBackend(t, func(t *testing.T, s ContentStore) {
		ctx := context.Background()

		mustCreatePost(t, s, "taken")
		other := mustCreatePost(t, s, "other")

		_, err := s.CreateBlogPost(ctx, domain.NewBlogPost{Title: "Dup", Slug: "taken"})
		if !errors.Is(err, ErrConflict) {
			t.Fatalf("create with duplicate slug: expected ErrConflict, got %v", err)
		}

		slug := "taken"
		_, err = s.UpdateBlogPost(ctx, other.ID, domain.BlogPostPatch{Slug: &slug})
		if !errors.Is(err, ErrConflict) {
			t.Fatalf("update to duplicate slug: expected ErrConflict, got %v", err)
		}

		// Re-submitting a post's own slug is not a conflict.
		if _, err := s.UpdateBlogPost(ctx, other.ID, domain.BlogPostPatch{Slug: &other.Slug}); err != nil {
			t.Fatalf("update keeping own slug: %v", err)
		}
	})
}

func TestBlogPostPartialUpdate(t *testing.T) {
	eachBackend(t, func(t *testing.T, s ContentStore) {
		ctx := context.Background()
		created := mustCreatePost(t, s, "wick-trimming")

		title := "Wick trimming, demystified"
		updated, err := s.UpdateBlogPost(ctx, created.ID, domain.BlogPostPatch{Title: &title})
		if err != nil {
			t.Fatalf("UpdateBlogPost: %v", err)
		}
		if updated.Title != title {
			t.Fatalf("title not applied: %q", updated.Title)
		}
		if updated.Slug != created.Slug || updated.Excerpt != created.Excerpt || updated.Content != created.Content {
			t.Fatalf("absent patch fields were not preserved: %+v", updated)
		}
		if !updated.PublishedAt.Equal(created.PublishedAt) {
			t.Fatalf("PublishedAt changed on update")
		}
		if updated.UpdatedAt.Before(created.UpdatedAt) {
			t.Fatalf("UpdatedAt went backwards")
		}

		_, err = s.UpdateBlogPost(ctx, 999, domain.BlogPostPatch{Title: &title})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("update missing id: expected ErrNotFound, got %v", err)
		}
	})
}

func TestBlogPostLookupBySlug(t *testing.T) {
	eachBackend(t, func(t *testing.T, s ContentStore) {
		ctx := context.Background()
		created := mustCreatePost(t, s, "studio-notes")

		got, err := s.GetBlogPostBySlug(ctx, "studio-notes")
		if err != nil {
			t.Fatalf("GetBlogPostBySlug: %v", err)
		}
		if got.ID != created.ID {
			t.Fatalf("expected id %d, got %d", created.ID, got.ID)
		}

		_, err = s.GetBlogPostBySlug(ctx, "nope")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestBlogPostListOrdering(t *testing.T) {
	eachBackend(t, func(t *testing.T, s ContentStore) {
		mustCreatePost(t, s, "a")
		mustCreatePost(t, s, "b")
		mustCreatePost(t, s, "c")

		posts, err := s.GetBlogPosts(context.Background())
		if err != nil {
			t.Fatalf("GetBlogPosts: %v", err)
		}
		if len(posts) != 3 {
			t.Fatalf("expected 3 posts, got %d", len(posts))
		}
		// Newest first; equal timestamps fall back to id descending.
		if posts[0].Slug != "c" || posts[1].Slug != "b" || posts[2].Slug != "a" {
			t.Fatalf("unexpected order: %s %s %s", posts[0].Slug, posts[1].Slug, posts[2].Slug)
		}
	})
}

func TestHeroDataMaterializesDefault(t *testing.T) {
	eachBackend(t, func(t *testing.T, s ContentStore) {
		ctx := context.Background()

		hero, err := s.GetHeroData(ctx)
		if err != nil {
			t.Fatalf("GetHeroData: %v", err)
		}
		if hero.ID != 1 {
			t.Fatalf("expected singleton id 1, got %d", hero.ID)
		}
		if hero.Title1 == "" || !hero.ShowButtons {
			t.Fatalf("default hero payload not materialized: %+v", hero)
		}

		again, err := s.GetHeroData(ctx)
		if err != nil {
			t.Fatalf("GetHeroData (second): %v", err)
		}
		if !again.UpdatedAt.Equal(hero.UpdatedAt) {
			t.Fatalf("second read re-materialized the default")
		}

		title := "Candles, poured slow"
		show := false
		updated, err := s.UpdateHeroData(ctx, domain.HeroDataPatch{Title1: &title, ShowStats: &show})
		if err != nil {
			t.Fatalf("UpdateHeroData: %v", err)
		}
		if updated.ID != 1 {
			t.Fatalf("update changed singleton id: %d", updated.ID)
		}
		if updated.Title1 != title || updated.ShowStats {
			t.Fatalf("patch not applied: %+v", updated)
		}
		if updated.Title2 != hero.Title2 || updated.Description != hero.Description {
			t.Fatalf("absent patch fields were not preserved")
		}
	})
}

func TestUpdateHeroDataWithoutPriorRead(t *testing.T) {
	eachBackend(t, func(t *testing.T, s ContentStore) {
		title := "First touch is a write"
		updated, err := s.UpdateHeroData(context.Background(), domain.HeroDataPatch{Title1: &title})
		if err != nil {
			t.Fatalf("UpdateHeroData: %v", err)
		}
		if updated.ID != 1 || updated.Title1 != title {
			t.Fatalf("update did not materialize-then-merge: %+v", updated)
		}
		if updated.Title2 == "" {
			t.Fatalf("default fields missing after materialize-then-merge")
		}
	})
}

func TestContactInfoSingleton(t *testing.T) {
	eachBackend(t, func(t *testing.T, s ContentStore) {
		ctx := context.Background()

		info, err := s.GetContactInfo(ctx)
		if err != nil {
			t.Fatalf("GetContactInfo: %v", err)
		}
		if info.ID != 1 || info.Email == "" {
			t.Fatalf("default contact info not materialized: %+v", info)
		}

		email := "studio@example.com"
		updated, err := s.UpdateContactInfo(ctx, domain.ContactInfoPatch{Email: &email})
		if err != nil {
			t.Fatalf("UpdateContactInfo: %v", err)
		}
		if updated.Email != email || updated.Phone != info.Phone {
			t.Fatalf("merge semantics violated: %+v", updated)
		}
	})
}

func TestAdminCredentialsDefaultHash(t *testing.T) {
	eachBackend(t, func(t *testing.T, s ContentStore) {
		creds, err := s.GetAdminCredentials(context.Background())
		if err != nil {
			t.Fatalf("GetAdminCredentials: %v", err)
		}
		if creds.ID != 1 || creds.Email != DefaultAdminEmail {
			t.Fatalf("unexpected default credentials: %+v", creds)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(creds.Password), []byte(DefaultAdminPassword)); err != nil {
			t.Fatalf("stored password is not a hash of the default: %v", err)
		}
	})
}

func TestCollectionReplaceReassignsIDs(t *testing.T) {
	eachBackend(t, func(t *testing.T, s ContentStore) {
		ctx := context.Background()

		three := []domain.WorkshopPackageInput{
			{Name: "Taster", Price: "350000", Features: `["1 candle"]`},
			{Name: "Signature", Price: "550000", Features: `["2 candles","tea"]`, IsPopular: true},
			{Name: "Private", Price: "1200000", Features: `["studio hire"]`},
		}
		got, err := s.ReplaceWorkshopPackages(ctx, three)
		if err != nil {
			t.Fatalf("ReplaceWorkshopPackages: %v", err)
		}
		for i, pkg := range got {
			if pkg.ID != i+1 {
				t.Fatalf("expected positional id %d, got %d", i+1, pkg.ID)
			}
		}

		// Replacing with a shorter list reassigns from 1 again; collection
		// ids carry no cross-replace identity.
		got, err = s.ReplaceWorkshopPackages(ctx, three[1:])
		if err != nil {
			t.Fatalf("ReplaceWorkshopPackages (shrink): %v", err)
		}
		if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
			t.Fatalf("shrink did not reassign ids 1..N: %+v", got)
		}
		if got[0].Name != "Signature" {
			t.Fatalf("list order not preserved: %+v", got)
		}

		got, err = s.ReplaceWorkshopPackages(ctx, nil)
		if err != nil {
			t.Fatalf("ReplaceWorkshopPackages (empty): %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("expected empty list, got %d", len(got))
		}

		listed, err := s.GetWorkshopPackages(ctx)
		if err != nil {
			t.Fatalf("GetWorkshopPackages: %v", err)
		}
		if len(listed) != 0 {
			t.Fatalf("expected empty list after clearing, got %d", len(listed))
		}
	})
}

func TestCurriculumSortedByOrder(t *testing.T) {
	eachBackend(t, func(t *testing.T, s ContentStore) {
		ctx := context.Background()

		_, err := s.ReplaceWorkshopCurriculum(ctx, []domain.WorkshopCurriculumInput{
			{Step: "03", Title: "Pour", Order: 3},
			{Step: "01", Title: "Blend", Order: 1},
			{Step: "02", Title: "Wick", Order: 2},
		})
		if err != nil {
			t.Fatalf("ReplaceWorkshopCurriculum: %v", err)
		}

		steps, err := s.GetWorkshopCurriculum(ctx)
		if err != nil {
			t.Fatalf("GetWorkshopCurriculum: %v", err)
		}
		if len(steps) != 3 {
			t.Fatalf("expected 3 steps, got %d", len(steps))
		}
		if steps[0].Title != "Blend" || steps[1].Title != "Wick" || steps[2].Title != "Pour" {
			t.Fatalf("not sorted by order: %s %s %s", steps[0].Title, steps[1].Title, steps[2].Title)
		}
		// Ids are positional from the submitted list, not the sorted view.
		if steps[0].ID != 2 || steps[2].ID != 1 {
			t.Fatalf("ids not assigned by list position: %+v", steps)
		}
	})
}

func TestReplaceProducts(t *testing.T) {
	eachBackend(t, func(t *testing.T, s ContentStore) {
		ctx := context.Background()
		moq := 12
		got, err := s.ReplaceProducts(ctx, []domain.ProductInput{
			{Name: "Amber Noir 180g", Category: "jar", Price: "180000", Stock: 24, Status: domain.ProductStatusActive, MOQ: &moq},
			{Name: "Sea Salt Pillar", Category: "pillar", Price: "150000", Status: domain.ProductStatusOutOfStock},
		})
		if err != nil {
			t.Fatalf("ReplaceProducts: %v", err)
		}
		if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
			t.Fatalf("unexpected products: %+v", got)
		}
		if got[0].MOQ == nil || *got[0].MOQ != 12 {
			t.Fatalf("MOQ not preserved: %+v", got[0])
		}
		if got[1].MOQ != nil {
			t.Fatalf("absent MOQ should stay nil: %+v", got[1])
		}
	})
}

func TestGallerySortAndHighlight(t *testing.T) {
	eachBackend(t, func(t *testing.T, s ContentStore) {
		ctx := context.Background()

		for _, in := range []domain.NewGalleryItem{
			{Title: "Pour shot", ImageURL: "/uploads/pour.jpg", Order: 3, IsHighlighted: true},
			{Title: "Finished jars", ImageURL: "/uploads/jars.jpg", Order: 1},
			{Title: "Wick bar", ImageURL: "/uploads/wicks.jpg", Order: 2, IsHighlighted: true},
		} {
			if _, err := s.CreateGalleryItem(ctx, in); err != nil {
				t.Fatalf("CreateGalleryItem: %v", err)
			}
		}

		items, err := s.GetGalleryItems(ctx)
		if err != nil {
			t.Fatalf("GetGalleryItems: %v", err)
		}
		if items[0].Title != "Finished jars" || items[1].Title != "Wick bar" || items[2].Title != "Pour shot" {
			t.Fatalf("not sorted by order: %s %s %s", items[0].Title, items[1].Title, items[2].Title)
		}

		highlighted, err := s.GetHighlightedGalleryItems(ctx)
		if err != nil {
			t.Fatalf("GetHighlightedGalleryItems: %v", err)
		}
		if len(highlighted) != 2 || highlighted[0].Title != "Wick bar" || highlighted[1].Title != "Pour shot" {
			t.Fatalf("unexpected highlighted set: %+v", highlighted)
		}

		order := 0
		updated, err := s.UpdateGalleryItem(ctx, items[2].ID, domain.GalleryItemPatch{Order: &order})
		if err != nil {
			t.Fatalf("UpdateGalleryItem: %v", err)
		}
		if updated.Order != 0 || updated.Title != "Pour shot" {
			t.Fatalf("patch not applied: %+v", updated)
		}

		items, err = s.GetGalleryItems(ctx)
		if err != nil {
			t.Fatalf("GetGalleryItems (resorted): %v", err)
		}
		if items[0].Title != "Pour shot" {
			t.Fatalf("reorder not reflected: %+v", items)
		}
	})
}

func TestContactsInsertionOrderAndDelete(t *testing.T) {
	eachBackend(t, func(t *testing.T, s ContentStore) {
		ctx := context.Background()

		phone := "+62 811-1111-1111"
		first, err := s.CreateContact(ctx, domain.NewContact{
			Name: "Ayu", Email: "ayu@example.com", Phone: &phone,
			Subject: "Workshop for 6", Message: "Do you host private groups?",
		})
		if err != nil {
			t.Fatalf("CreateContact: %v", err)
		}
		second, err := s.CreateContact(ctx, domain.NewContact{
			Name: "Marta", Email: "marta@example.com",
			Subject: "Wholesale", Message: "MOQ for the amber jars?",
		})
		if err != nil {
			t.Fatalf("CreateContact (second): %v", err)
		}

		contacts, err := s.GetContacts(ctx)
		if err != nil {
			t.Fatalf("GetContacts: %v", err)
		}
		if len(contacts) != 2 || contacts[0].ID != first.ID || contacts[1].ID != second.ID {
			t.Fatalf("not in insertion order: %+v", contacts)
		}
		if contacts[0].CreatedAt.IsZero() {
			t.Fatalf("CreatedAt not stamped")
		}

		deleted, err := s.DeleteContact(ctx, first.ID)
		if err != nil || !deleted {
			t.Fatalf("DeleteContact: deleted=%v err=%v", deleted, err)
		}
		deleted, err = s.DeleteContact(ctx, first.ID)
		if err != nil {
			t.Fatalf("DeleteContact (repeat): %v", err)
		}
		if deleted {
			t.Fatalf("second delete of same id should report false")
		}
	})
}

func TestUserUniqueness(t *testing.T) {
	eachBackend(t, func(t *testing.T, s ContentStore) {
		ctx := context.Background()

		created, err := s.CreateUser(ctx, domain.NewUser{Username: "admin", Password: "hash"})
		if err != nil {
			t.Fatalf("CreateUser: %v", err)
		}
		if created.ID != 1 {
			t.Fatalf("expected id 1, got %d", created.ID)
		}

		_, err = s.CreateUser(ctx, domain.NewUser{Username: "admin", Password: "other"})
		if !errors.Is(err, ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}

		got, err := s.GetUserByUsername(ctx, "admin")
		if err != nil {
			t.Fatalf("GetUserByUsername: %v", err)
		}
		if got.ID != created.ID {
			t.Fatalf("unexpected user: %+v", got)
		}

		_, err = s.GetUserByUsername(ctx, "ghost")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestSnapshotRoundTrip(t *testing.T) {
	eachBackend(t, func(t *testing.T, s ContentStore) {
		ctx := context.Background()

		mustCreatePost(t, s, "kept")
		deleted := mustCreatePost(t, s, "gone")
		if _, err := s.DeleteBlogPost(ctx, deleted.ID); err != nil {
			t.Fatalf("DeleteBlogPost: %v", err)
		}
		if _, err := s.GetHeroData(ctx); err != nil {
			t.Fatalf("GetHeroData: %v", err)
		}
		if _, err := s.ReplaceProducts(ctx, []domain.ProductInput{
			{Name: "Amber Noir 180g", Status: domain.ProductStatusActive},
		}); err != nil {
			t.Fatalf("ReplaceProducts: %v", err)
		}

		snap, err := s.ExportSnapshot(ctx)
		if err != nil {
			t.Fatalf("ExportSnapshot: %v", err)
		}

		restored := NewMemoryStore(testLogger(t))
		if err := restored.ImportSnapshot(ctx, snap); err != nil {
			t.Fatalf("ImportSnapshot: %v", err)
		}

		// Counters travel with the snapshot, so the next id continues past
		// the deleted row.
		post, err := restored.CreateBlogPost(ctx, domain.NewBlogPost{Title: "New", Slug: "new"})
		if err != nil {
			t.Fatalf("CreateBlogPost after restore: %v", err)
		}
		if post.ID != 3 {
			t.Fatalf("expected id 3 after restore, got %d", post.ID)
		}

		hero, err := restored.GetHeroData(ctx)
		if err != nil {
			t.Fatalf("GetHeroData after restore: %v", err)
		}
		if hero.ID != 1 {
			t.Fatalf("hero singleton lost in round trip")
		}

		products, err := restored.GetProducts(ctx)
		if err != nil {
			t.Fatalf("GetProducts after restore: %v", err)
		}
		if len(products) != 1 || products[0].Name != "Amber Noir 180g" {
			t.Fatalf("products lost in round trip: %+v", products)
		}
	})
}

func TestImportSnapshotFloorsMissingCounters(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(testLogger(t))
	mustCreatePost(t, s, "a")
	mustCreatePost(t, s, "b")

	snap, err := s.ExportSnapshot(ctx)
	if err != nil {
		t.Fatalf("ExportSnapshot: %v", err)
	}
	snap.Counters = nil

	restored := NewMemoryStore(testLogger(t))
	if err := restored.ImportSnapshot(ctx, snap); err != nil {
		t.Fatalf("ImportSnapshot: %v", err)
	}

	post, err := restored.CreateBlogPost(ctx, domain.NewBlogPost{Title: "C", Slug: "c"})
	if err != nil {
		t.Fatalf("CreateBlogPost: %v", err)
	}
	if post.ID != 3 {
		t.Fatalf("counter not floored at restored ids: got id %d", post.ID)
	}
}
