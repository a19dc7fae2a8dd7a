package store

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/emberlane/emberlane-backend/internal/domain"
)

// nowUTC stamps mutation timestamps. Truncated to milliseconds so values
// survive a JSON round-trip and database storage without drift.
func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// ErrNotFound signals a point lookup on a missing id or slug. It is a normal
// outcome, surfaced by the HTTP layer as 404.
var ErrNotFound = errors.New("record not found")

// ErrConflict signals a uniqueness violation (duplicate blog slug or
// username).
var ErrConflict = errors.New("record conflicts with an existing one")

// ContentStore is the uniform CRUD facade over the site's content entities.
// Three interchangeable backends implement it (memory, file, database); the
// externally observable behavior is identical regardless of backend:
//
//   - auto-increment ids are unique and monotonically increasing per entity
//     family and are never reused, even after deletion;
//   - singletons (HeroData, ContactInfo, AdminCredentials) materialize a
//     hard-coded default row on first read and always have exactly one row;
//   - collection-replace entities (WorkshopPackage, WorkshopCurriculum,
//     Product) are replaced wholesale on update, with ids reassigned 1..N by
//     list position;
//   - timestamps are stamped by the store at mutation time, never taken from
//     the caller's payload;
//   - mutations are never partially applied: persistence and any in-memory
//     mirror either both reflect a mutation or neither does.
type ContentStore interface {
	// Users
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	CreateUser(ctx context.Context, in domain.NewUser) (*domain.User, error)

	// Blog posts, listed by publishedAt descending.
	GetBlogPosts(ctx context.Context) ([]domain.BlogPost, error)
	GetBlogPostByID(ctx context.Context, id int) (*domain.BlogPost, error)
	GetBlogPostBySlug(ctx context.Context, slug string) (*domain.BlogPost, error)
	CreateBlogPost(ctx context.Context, in domain.NewBlogPost) (*domain.BlogPost, error)
	UpdateBlogPost(ctx context.Context, id int, patch domain.BlogPostPatch) (*domain.BlogPost, error)
	DeleteBlogPost(ctx context.Context, id int) (bool, error)

	// Contact submissions, listed in insertion order.
	GetContacts(ctx context.Context) ([]domain.Contact, error)
	CreateContact(ctx context.Context, in domain.NewContact) (*domain.Contact, error)
	DeleteContact(ctx context.Context, id int) (bool, error)

	// Singletons
	GetHeroData(ctx context.Context) (*domain.HeroData, error)
	UpdateHeroData(ctx context.Context, patch domain.HeroDataPatch) (*domain.HeroData, error)
	GetContactInfo(ctx context.Context) (*domain.ContactInfo, error)
	UpdateContactInfo(ctx context.Context, patch domain.ContactInfoPatch) (*domain.ContactInfo, error)
	GetAdminCredentials(ctx context.Context) (*domain.AdminCredentials, error)
	UpdateAdminCredentials(ctx context.Context, patch domain.AdminCredentialsPatch) (*domain.AdminCredentials, error)

	// Collection-replace families
	GetWorkshopPackages(ctx context.Context) ([]domain.WorkshopPackage, error)
	ReplaceWorkshopPackages(ctx context.Context, items []domain.WorkshopPackageInput) ([]domain.WorkshopPackage, error)
	GetWorkshopCurriculum(ctx context.Context) ([]domain.WorkshopCurriculum, error)
	ReplaceWorkshopCurriculum(ctx context.Context, items []domain.WorkshopCurriculumInput) ([]domain.WorkshopCurriculum, error)
	GetProducts(ctx context.Context) ([]domain.Product, error)
	ReplaceProducts(ctx context.Context, items []domain.ProductInput) ([]domain.Product, error)

	// Gallery, listed by Order ascending with insertion-order ties.
	GetGalleryItems(ctx context.Context) ([]domain.GalleryItem, error)
	GetHighlightedGalleryItems(ctx context.Context) ([]domain.GalleryItem, error)
	GetGalleryItemByID(ctx context.Context, id int) (*domain.GalleryItem, error)
	CreateGalleryItem(ctx context.Context, in domain.NewGalleryItem) (*domain.GalleryItem, error)
	UpdateGalleryItem(ctx context.Context, id int, patch domain.GalleryItemPatch) (*domain.GalleryItem, error)
	DeleteGalleryItem(ctx context.Context, id int) (bool, error)

	// Snapshot round-trips the full observable state, id counters included.
	ExportSnapshot(ctx context.Context) (*Snapshot, error)
	ImportSnapshot(ctx context.Context, snap *Snapshot) error

	Close() error
}

// Id counter families for the point-addressable entities.
const (
	familyUsers     = "users"
	familyBlogPosts = "blogPosts"
	familyContacts  = "contacts"
	familyGallery   = "gallery"
)

func sortBlogPosts(posts []domain.BlogPost) {
	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].PublishedAt.Equal(posts[j].PublishedAt) {
			return posts[i].PublishedAt.After(posts[j].PublishedAt)
		}
		return posts[i].ID > posts[j].ID
	})
}

// sortGalleryItems orders by the Order sort key; ties keep insertion order,
// which ids reflect.
func sortGalleryItems(items []domain.GalleryItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Order != items[j].Order {
			return items[i].Order < items[j].Order
		}
		return items[i].ID < items[j].ID
	})
}

func sortCurriculum(steps []domain.WorkshopCurriculum) {
	sort.SliceStable(steps, func(i, j int) bool {
		if steps[i].Order != steps[j].Order {
			return steps[i].Order < steps[j].Order
		}
		return steps[i].ID < steps[j].ID
	})
}
