package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/emberlane/emberlane-backend/internal/domain"
	"github.com/emberlane/emberlane-backend/internal/platform/logger"
)

// storeState is a single-row table carrying the per-family id counters.
// Ids are allocated from here, never from database autoincrement, so that
// restarts never re-issue an id and collection-replace families can reassign
// ids 1..N with the same code path on every driver.
type storeState struct {
	ID       int            `gorm:"primaryKey"`
	Counters datatypes.JSON `gorm:"not null"`
}

func (storeState) TableName() string { return "store_state" }

// DatabaseStore implements the content store on a relational database via
// gorm; postgres and sqlite are both supported and behave identically. Every
// mutation runs in one transaction, so a failed call leaves no partial write.
type DatabaseStore struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDatabaseStore(db *gorm.DB, baseLog *logger.Logger) *DatabaseStore {
	return &DatabaseStore{db: db, log: baseLog.With("store", "database")}
}

// AutoMigrate creates the schema for every entity family plus the counters
// row table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.BlogPost{},
		&domain.Contact{},
		&domain.HeroData{},
		&domain.ContactInfo{},
		&domain.AdminCredentials{},
		&domain.WorkshopPackage{},
		&domain.WorkshopCurriculum{},
		&domain.Product{},
		&domain.GalleryItem{},
		&storeState{},
	)
}

func loadCounters(tx *gorm.DB) (map[string]int, error) {
	var state storeState
	err := tx.First(&state, "id = ?", 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return map[string]int{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load id counters: %w", err)
	}
	counters := map[string]int{}
	if len(state.Counters) > 0 {
		if err := json.Unmarshal(state.Counters, &counters); err != nil {
			return nil, fmt.Errorf("decode id counters: %w", err)
		}
	}
	return counters, nil
}

func saveCounters(tx *gorm.DB, counters map[string]int) error {
	raw, err := json.Marshal(counters)
	if err != nil {
		return err
	}
	state := storeState{ID: 1, Counters: datatypes.JSON(raw)}
	if err := tx.Save(&state).Error; err != nil {
		return fmt.Errorf("save id counters: %w", err)
	}
	return nil
}

func nextID(tx *gorm.DB, family string) (int, error) {
	counters, err := loadCounters(tx)
	if err != nil {
		return 0, err
	}
	counters[family]++
	if err := saveCounters(tx, counters); err != nil {
		return 0, err
	}
	return counters[family], nil
}

// Users

func (s *DatabaseStore) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *DatabaseStore) CreateUser(ctx context.Context, in domain.NewUser) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.User{}).Where("username = ?", in.Username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrConflict
		}
		id, err := nextID(tx, familyUsers)
		if err != nil {
			return err
		}
		user = domain.User{ID: id, Username: in.Username, Password: in.Password}
		return tx.Create(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Blog posts

func (s *DatabaseStore) GetBlogPosts(ctx context.Context) ([]domain.BlogPost, error) {
	var posts []domain.BlogPost
	if err := s.db.WithContext(ctx).Order("published_at DESC, id DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *DatabaseStore) GetBlogPostByID(ctx context.Context, id int) (*domain.BlogPost, error) {
	var post domain.BlogPost
	err := s.db.WithContext(ctx).First(&post, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *DatabaseStore) GetBlogPostBySlug(ctx context.Context, slug string) (*domain.BlogPost, error) {
	var post domain.BlogPost
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *DatabaseStore) CreateBlogPost(ctx context.Context, in domain.NewBlogPost) (*domain.BlogPost, error) {
	var post domain.BlogPost
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.BlogPost{}).Where("slug = ?", in.Slug).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrConflict
		}
		id, err := nextID(tx, familyBlogPosts)
		if err != nil {
			return err
		}
		now := nowUTC()
		post = domain.BlogPost{
			ID:          id,
			Title:       in.Title,
			Slug:        in.Slug,
			Excerpt:     in.Excerpt,
			Content:     in.Content,
			ImageURL:    in.ImageURL,
			Featured:    in.Featured,
			PublishedAt: now,
			UpdatedAt:   now,
		}
		return tx.Create(&post).Error
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *DatabaseStore) UpdateBlogPost(ctx context.Context, id int, patch domain.BlogPostPatch) (*domain.BlogPost, error) {
	var post domain.BlogPost
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&post, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if patch.Slug != nil {
			var count int64
			if err := tx.Model(&domain.BlogPost{}).
				Where("slug = ? AND id <> ?", *patch.Slug, id).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrConflict
			}
		}
		applyBlogPostPatch(&post, patch)
		post.UpdatedAt = nowUTC()
		return tx.Save(&post).Error
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *DatabaseStore) DeleteBlogPost(ctx context.Context, id int) (bool, error) {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.BlogPost{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Contacts

func (s *DatabaseStore) GetContacts(ctx context.Context) ([]domain.Contact, error) {
	var contacts []domain.Contact
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

func (s *DatabaseStore) CreateContact(ctx context.Context, in domain.NewContact) (*domain.Contact, error) {
	var contact domain.Contact
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := nextID(tx, familyContacts)
		if err != nil {
			return err
		}
		contact = domain.Contact{
			ID:        id,
			Name:      in.Name,
			Email:     in.Email,
			Phone:     in.Phone,
			Subject:   in.Subject,
			Message:   in.Message,
			CreatedAt: nowUTC(),
		}
		return tx.Create(&contact).Error
	})
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func (s *DatabaseStore) DeleteContact(ctx context.Context, id int) (bool, error) {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Contact{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Singletons

func (s *DatabaseStore) GetHeroData(ctx context.Context) (*domain.HeroData, error) {
	var hero domain.HeroData
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&hero, "id = ?", 1).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			hero = defaultHeroData(nowUTC())
			return tx.Create(&hero).Error
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return &hero, nil
}

func (s *DatabaseStore) UpdateHeroData(ctx context.Context, patch domain.HeroDataPatch) (*domain.HeroData, error) {
	var hero domain.HeroData
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&hero, "id = ?", 1).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			hero = defaultHeroData(nowUTC())
			if err := tx.Create(&hero).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		applyHeroDataPatch(&hero, patch)
		hero.UpdatedAt = nowUTC()
		return tx.Save(&hero).Error
	})
	if err != nil {
		return nil, err
	}
	return &hero, nil
}

func (s *DatabaseStore) GetContactInfo(ctx context.Context) (*domain.ContactInfo, error) {
	var info domain.ContactInfo
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&info, "id = ?", 1).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			info = defaultContactInfo(nowUTC())
			return tx.Create(&info).Error
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (s *DatabaseStore) UpdateContactInfo(ctx context.Context, patch domain.ContactInfoPatch) (*domain.ContactInfo, error) {
	var info domain.ContactInfo
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&info, "id = ?", 1).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			info = defaultContactInfo(nowUTC())
			if err := tx.Create(&info).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		applyContactInfoPatch(&info, patch)
		info.UpdatedAt = nowUTC()
		return tx.Save(&info).Error
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (s *DatabaseStore) GetAdminCredentials(ctx context.Context) (*domain.AdminCredentials, error) {
	var creds domain.AdminCredentials
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&creds, "id = ?", 1).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			creds, err = defaultAdminCredentials(nowUTC())
			if err != nil {
				return err
			}
			return tx.Create(&creds).Error
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return &creds, nil
}

func (s *DatabaseStore) UpdateAdminCredentials(ctx context.Context, patch domain.AdminCredentialsPatch) (*domain.AdminCredentials, error) {
	var creds domain.AdminCredentials
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&creds, "id = ?", 1).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			creds, err = defaultAdminCredentials(nowUTC())
			if err != nil {
				return err
			}
			if err := tx.Create(&creds).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		applyAdminCredentialsPatch(&creds, patch)
		creds.UpdatedAt = nowUTC()
		return tx.Save(&creds).Error
	})
	if err != nil {
		return nil, err
	}
	return &creds, nil
}

// Collection-replace families

func (s *DatabaseStore) GetWorkshopPackages(ctx context.Context) ([]domain.WorkshopPackage, error) {
	var items []domain.WorkshopPackage
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *DatabaseStore) ReplaceWorkshopPackages(ctx context.Context, items []domain.WorkshopPackageInput) ([]domain.WorkshopPackage, error) {
	now := nowUTC()
	next := make([]domain.WorkshopPackage, 0, len(items))
	for i, in := range items {
		next = append(next, domain.WorkshopPackage{
			ID:          i + 1,
			Name:        in.Name,
			Description: in.Description,
			Price:       in.Price,
			Duration:    in.Duration,
			Features:    in.Features,
			IsPopular:   in.IsPopular,
			UpdatedAt:   now,
		})
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&domain.WorkshopPackage{}).Error; err != nil {
			return err
		}
		if len(next) == 0 {
			return nil
		}
		return tx.Create(&next).Error
	})
	if err != nil {
		return nil, err
	}
	return next, nil
}

func (s *DatabaseStore) GetWorkshopCurriculum(ctx context.Context) ([]domain.WorkshopCurriculum, error) {
	var steps []domain.WorkshopCurriculum
	if err := s.db.WithContext(ctx).Order("sort_order ASC, id ASC").Find(&steps).Error; err != nil {
		return nil, err
	}
	return steps, nil
}

func (s *DatabaseStore) ReplaceWorkshopCurriculum(ctx context.Context, items []domain.WorkshopCurriculumInput) ([]domain.WorkshopCurriculum, error) {
	now := nowUTC()
	next := make([]domain.WorkshopCurriculum, 0, len(items))
	for i, in := range items {
		next = append(next, domain.WorkshopCurriculum{
			ID:          i + 1,
			Step:        in.Step,
			Title:       in.Title,
			Description: in.Description,
			Duration:    in.Duration,
			Order:       in.Order,
			UpdatedAt:   now,
		})
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&domain.WorkshopCurriculum{}).Error; err != nil {
			return err
		}
		if len(next) == 0 {
			return nil
		}
		return tx.Create(&next).Error
	})
	if err != nil {
		return nil, err
	}
	sorted := make([]domain.WorkshopCurriculum, len(next))
	copy(sorted, next)
	sortCurriculum(sorted)
	return sorted, nil
}

func (s *DatabaseStore) GetProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *DatabaseStore) ReplaceProducts(ctx context.Context, items []domain.ProductInput) ([]domain.Product, error) {
	now := nowUTC()
	next := make([]domain.Product, 0, len(items))
	for i, in := range items {
		next = append(next, domain.Product{
			ID:          i + 1,
			Name:        in.Name,
			Category:    in.Category,
			Price:       in.Price,
			Stock:       in.Stock,
			Sold:        in.Sold,
			Status:      in.Status,
			ImageURL:    in.ImageURL,
			Description: in.Description,
			MOQ:         in.MOQ,
			UpdatedAt:   now,
		})
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&domain.Product{}).Error; err != nil {
			return err
		}
		if len(next) == 0 {
			return nil
		}
		return tx.Create(&next).Error
	})
	if err != nil {
		return nil, err
	}
	return next, nil
}

// Gallery

func (s *DatabaseStore) GetGalleryItems(ctx context.Context) ([]domain.GalleryItem, error) {
	var items []domain.GalleryItem
	if err := s.db.WithContext(ctx).Order("sort_order ASC, id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *DatabaseStore) GetHighlightedGalleryItems(ctx context.Context) ([]domain.GalleryItem, error) {
	var items []domain.GalleryItem
	if err := s.db.WithContext(ctx).
		Where("is_highlighted = ?", true).
		Order("sort_order ASC, id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *DatabaseStore) GetGalleryItemByID(ctx context.Context, id int) (*domain.GalleryItem, error) {
	var item domain.GalleryItem
	err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *DatabaseStore) CreateGalleryItem(ctx context.Context, in domain.NewGalleryItem) (*domain.GalleryItem, error) {
	var item domain.GalleryItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := nextID(tx, familyGallery)
		if err != nil {
			return err
		}
		now := nowUTC()
		item = domain.GalleryItem{
			ID:            id,
			Title:         in.Title,
			Description:   in.Description,
			ImageURL:      in.ImageURL,
			IsHighlighted: in.IsHighlighted,
			Category:      in.Category,
			Order:         in.Order,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		return tx.Create(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *DatabaseStore) UpdateGalleryItem(ctx context.Context, id int, patch domain.GalleryItemPatch) (*domain.GalleryItem, error) {
	var item domain.GalleryItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&item, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		applyGalleryItemPatch(&item, patch)
		item.UpdatedAt = nowUTC()
		return tx.Save(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *DatabaseStore) DeleteGalleryItem(ctx context.Context, id int) (bool, error) {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.GalleryItem{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Snapshot

func (s *DatabaseStore) ExportSnapshot(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{Counters: map[string]int{}}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var users []domain.User
		if err := tx.Order("id ASC").Find(&users).Error; err != nil {
			return err
		}
		for _, u := range users {
			snap.Users = append(snap.Users, Pair[domain.User]{ID: u.ID, Record: u})
		}
		var posts []domain.BlogPost
		if err := tx.Order("id ASC").Find(&posts).Error; err != nil {
			return err
		}
		for _, p := range posts {
			snap.BlogPosts = append(snap.BlogPosts, Pair[domain.BlogPost]{ID: p.ID, Record: p})
		}
		var contacts []domain.Contact
		if err := tx.Order("id ASC").Find(&contacts).Error; err != nil {
			return err
		}
		for _, c := range contacts {
			snap.Contacts = append(snap.Contacts, Pair[domain.Contact]{ID: c.ID, Record: c})
		}
		var gallery []domain.GalleryItem
		if err := tx.Order("id ASC").Find(&gallery).Error; err != nil {
			return err
		}
		for _, g := range gallery {
			snap.Gallery = append(snap.Gallery, Pair[domain.GalleryItem]{ID: g.ID, Record: g})
		}
		if err := tx.Order("id ASC").Find(&snap.Packages).Error; err != nil {
			return err
		}
		if err := tx.Order("id ASC").Find(&snap.Curriculum).Error; err != nil {
			return err
		}
		if err := tx.Order("id ASC").Find(&snap.Products).Error; err != nil {
			return err
		}

		var hero domain.HeroData
		err := tx.First(&hero, "id = ?", 1).Error
		if err == nil {
			snap.HeroData = &hero
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		var info domain.ContactInfo
		err = tx.First(&info, "id = ?", 1).Error
		if err == nil {
			snap.ContactInfo = &info
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		var creds domain.AdminCredentials
		err = tx.First(&creds, "id = ?", 1).Error
		if err == nil {
			snap.AdminCredentials = &creds
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		counters, err := loadCounters(tx)
		if err != nil {
			return err
		}
		snap.Counters = counters
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *DatabaseStore) ImportSnapshot(ctx context.Context, snap *Snapshot) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{
			&domain.User{}, &domain.BlogPost{}, &domain.Contact{},
			&domain.GalleryItem{}, &domain.WorkshopPackage{},
			&domain.WorkshopCurriculum{}, &domain.Product{},
			&domain.HeroData{}, &domain.ContactInfo{}, &domain.AdminCredentials{},
		} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}
		for _, p := range snap.Users {
			record := p.Record
			record.ID = p.ID
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		}
		for _, p := range snap.BlogPosts {
			record := p.Record
			record.ID = p.ID
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		}
		for _, p := range snap.Contacts {
			record := p.Record
			record.ID = p.ID
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		}
		for _, p := range snap.Gallery {
			record := p.Record
			record.ID = p.ID
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		}
		if len(snap.Packages) > 0 {
			items := append([]domain.WorkshopPackage{}, snap.Packages...)
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		if len(snap.Curriculum) > 0 {
			items := append([]domain.WorkshopCurriculum{}, snap.Curriculum...)
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		if len(snap.Products) > 0 {
			items := append([]domain.Product{}, snap.Products...)
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		if snap.HeroData != nil {
			hero := *snap.HeroData
			if err := tx.Create(&hero).Error; err != nil {
				return err
			}
		}
		if snap.ContactInfo != nil {
			info := *snap.ContactInfo
			if err := tx.Create(&info).Error; err != nil {
				return err
			}
		}
		if snap.AdminCredentials != nil {
			creds := *snap.AdminCredentials
			if err := tx.Create(&creds).Error; err != nil {
				return err
			}
		}
		counters := map[string]int{}
		for family, n := range snap.Counters {
			counters[family] = n
		}
		// Floor each counter at the highest restored id so a backup with
		// missing counters can never hand an existing id out again.
		floorCounter(counters, familyUsers, maxPairID(snap.Users))
		floorCounter(counters, familyBlogPosts, maxPairID(snap.BlogPosts))
		floorCounter(counters, familyContacts, maxPairID(snap.Contacts))
		floorCounter(counters, familyGallery, maxPairID(snap.Gallery))
		return saveCounters(tx, counters)
	})
}

func (s *DatabaseStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
