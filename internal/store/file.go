package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/emberlane/emberlane-backend/internal/domain"
	"github.com/emberlane/emberlane-backend/internal/platform/logger"
)

// FileStore wraps the in-memory engine with a JSON document on disk. Every
// mutating call serializes the full state and writes it synchronously before
// returning, so a reader of the file immediately after a completed call sees
// the mutation. There is no batching or write-behind. If the write fails the
// in-memory state is rolled back to the pre-mutation snapshot, so a mutation
// is never partially applied.
type FileStore struct {
	mu   sync.Mutex
	log  *logger.Logger
	mem  *MemoryStore
	path string
}

func NewFileStore(path string, baseLog *logger.Logger) (*FileStore, error) {
	s := &FileStore{
		log:  baseLog.With("store", "file", "path", path),
		mem:  NewMemoryStore(baseLog),
		path: path,
	}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		s.log.Info("Store file not found, starting empty")
	case err != nil:
		return nil, fmt.Errorf("read store file: %w", err)
	default:
		var snap Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("decode store file: %w", err)
		}
		if err := s.mem.ImportSnapshot(context.Background(), &snap); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// persistMutation runs op against the in-memory engine, then writes the full
// state to disk; on write failure the pre-mutation state is restored and a
// storage error is returned.
func persistMutation[T any](s *FileStore, ctx context.Context, op func() (T, error)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, _ := s.mem.ExportSnapshot(ctx)
	out, err := op()
	if err != nil {
		return out, err
	}
	if err := s.save(ctx); err != nil {
		_ = s.mem.ImportSnapshot(ctx, prev)
		var zero T
		return zero, fmt.Errorf("persist store file: %w", err)
	}
	return out, nil
}

func (s *FileStore) save(ctx context.Context) error {
	snap, err := s.mem.ExportSnapshot(ctx)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// Users

func (s *FileStore) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.mem.GetUserByUsername(ctx, username)
}

func (s *FileStore) CreateUser(ctx context.Context, in domain.NewUser) (*domain.User, error) {
	return persistMutation(s, ctx, func() (*domain.User, error) {
		return s.mem.CreateUser(ctx, in)
	})
}

// Blog posts

func (s *FileStore) GetBlogPosts(ctx context.Context) ([]domain.BlogPost, error) {
	return s.mem.GetBlogPosts(ctx)
}

func (s *FileStore) GetBlogPostByID(ctx context.Context, id int) (*domain.BlogPost, error) {
	return s.mem.GetBlogPostByID(ctx, id)
}

func (s *FileStore) GetBlogPostBySlug(ctx context.Context, slug string) (*domain.BlogPost, error) {
	return s.mem.GetBlogPostBySlug(ctx, slug)
}

func (s *FileStore) CreateBlogPost(ctx context.Context, in domain.NewBlogPost) (*domain.BlogPost, error) {
	return persistMutation(s, ctx, func() (*domain.BlogPost, error) {
		return s.mem.CreateBlogPost(ctx, in)
	})
}

func (s *FileStore) UpdateBlogPost(ctx context.Context, id int, patch domain.BlogPostPatch) (*domain.BlogPost, error) {
	return persistMutation(s, ctx, func() (*domain.BlogPost, error) {
		return s.mem.UpdateBlogPost(ctx, id, patch)
	})
}

func (s *FileStore) DeleteBlogPost(ctx context.Context, id int) (bool, error) {
	return persistMutation(s, ctx, func() (bool, error) {
		return s.mem.DeleteBlogPost(ctx, id)
	})
}

// Contacts

func (s *FileStore) GetContacts(ctx context.Context) ([]domain.Contact, error) {
	return s.mem.GetContacts(ctx)
}

func (s *FileStore) CreateContact(ctx context.Context, in domain.NewContact) (*domain.Contact, error) {
	return persistMutation(s, ctx, func() (*domain.Contact, error) {
		return s.mem.CreateContact(ctx, in)
	})
}

func (s *FileStore) DeleteContact(ctx context.Context, id int) (bool, error) {
	return persistMutation(s, ctx, func() (bool, error) {
		return s.mem.DeleteContact(ctx, id)
	})
}

// Singletons. A first read materializes the default row, which must hit disk
// like any other mutation; later reads are plain passthroughs.

func (s *FileStore) GetHeroData(ctx context.Context) (*domain.HeroData, error) {
	if s.mem.hasHeroData() {
		return s.mem.GetHeroData(ctx)
	}
	return persistMutation(s, ctx, func() (*domain.HeroData, error) {
		return s.mem.GetHeroData(ctx)
	})
}

func (s *FileStore) UpdateHeroData(ctx context.Context, patch domain.HeroDataPatch) (*domain.HeroData, error) {
	return persistMutation(s, ctx, func() (*domain.HeroData, error) {
		return s.mem.UpdateHeroData(ctx, patch)
	})
}

func (s *FileStore) GetContactInfo(ctx context.Context) (*domain.ContactInfo, error) {
	if s.mem.hasContactInfo() {
		return s.mem.GetContactInfo(ctx)
	}
	return persistMutation(s, ctx, func() (*domain.ContactInfo, error) {
		return s.mem.GetContactInfo(ctx)
	})
}

func (s *FileStore) UpdateContactInfo(ctx context.Context, patch domain.ContactInfoPatch) (*domain.ContactInfo, error) {
	return persistMutation(s, ctx, func() (*domain.ContactInfo, error) {
		return s.mem.UpdateContactInfo(ctx, patch)
	})
}

func (s *FileStore) GetAdminCredentials(ctx context.Context) (*domain.AdminCredentials, error) {
	if s.mem.hasAdminCredentials() {
		return s.mem.GetAdminCredentials(ctx)
	}
	return persistMutation(s, ctx, func() (*domain.AdminCredentials, error) {
		return s.mem.GetAdminCredentials(ctx)
	})
}

func (s *FileStore) UpdateAdminCredentials(ctx context.Context, patch domain.AdminCredentialsPatch) (*domain.AdminCredentials, error) {
	return persistMutation(s, ctx, func() (*domain.AdminCredentials, error) {
		return s.mem.UpdateAdminCredentials(ctx, patch)
	})
}

// Collection-replace families

func (s *FileStore) GetWorkshopPackages(ctx context.Context) ([]domain.WorkshopPackage, error) {
	return s.mem.GetWorkshopPackages(ctx)
}

func (s *FileStore) ReplaceWorkshopPackages(ctx context.Context, items []domain.WorkshopPackageInput) ([]domain.WorkshopPackage, error) {
	return persistMutation(s, ctx, func() ([]domain.WorkshopPackage, error) {
		return s.mem.ReplaceWorkshopPackages(ctx, items)
	})
}

func (s *FileStore) GetWorkshopCurriculum(ctx context.Context) ([]domain.WorkshopCurriculum, error) {
	return s.mem.GetWorkshopCurriculum(ctx)
}

func (s *FileStore) ReplaceWorkshopCurriculum(ctx context.Context, items []domain.WorkshopCurriculumInput) ([]domain.WorkshopCurriculum, error) {
	return persistMutation(s, ctx, func() ([]domain.WorkshopCurriculum, error) {
		return s.mem.ReplaceWorkshopCurriculum(ctx, items)
	})
}

func (s *FileStore) GetProducts(ctx context.Context) ([]domain.Product, error) {
	return s.mem.GetProducts(ctx)
}

func (s *FileStore) ReplaceProducts(ctx context.Context, items []domain.ProductInput) ([]domain.Product, error) {
	return persistMutation(s, ctx, func() ([]domain.Product, error) {
		return s.mem.ReplaceProducts(ctx, items)
	})
}

// Gallery

func (s *FileStore) GetGalleryItems(ctx context.Context) ([]domain.GalleryItem, error) {
	return s.mem.GetGalleryItems(ctx)
}

func (s *FileStore) GetHighlightedGalleryItems(ctx context.Context) ([]domain.GalleryItem, error) {
	return s.mem.GetHighlightedGalleryItems(ctx)
}

func (s *FileStore) GetGalleryItemByID(ctx context.Context, id int) (*domain.GalleryItem, error) {
	return s.mem.GetGalleryItemByID(ctx, id)
}

func (s *FileStore) CreateGalleryItem(ctx context.Context, in domain.NewGalleryItem) (*domain.GalleryItem, error) {
	return persistMutation(s, ctx, func() (*domain.GalleryItem, error) {
		return s.mem.CreateGalleryItem(ctx, in)
	})
}

func (s *FileStore) UpdateGalleryItem(ctx context.Context, id int, patch domain.GalleryItemPatch) (*domain.GalleryItem, error) {
	return persistMutation(s, ctx, func() (*domain.GalleryItem, error) {
		return s.mem.UpdateGalleryItem(ctx, id, patch)
	})
}

func (s *FileStore) DeleteGalleryItem(ctx context.Context, id int) (bool, error) {
	return persistMutation(s, ctx, func() (bool, error) {
		return s.mem.DeleteGalleryItem(ctx, id)
	})
}

// Snapshot

func (s *FileStore) ExportSnapshot(ctx context.Context) (*Snapshot, error) {
	return s.mem.ExportSnapshot(ctx)
}

func (s *FileStore) ImportSnapshot(ctx context.Context, snap *Snapshot) error {
	_, err := persistMutation(s, ctx, func() (struct{}, error) {
		return struct{}{}, s.mem.ImportSnapshot(ctx, snap)
	})
	return err
}

func (s *FileStore) Close() error { return nil }
