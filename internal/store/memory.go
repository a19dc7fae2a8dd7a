package store

import (
	"context"
	"sort"
	"sync"

	"github.com/emberlane/emberlane-backend/internal/domain"
	"github.com/emberlane/emberlane-backend/internal/platform/logger"
)

// MemoryStore keeps everything in process memory and resets on restart. It is
// the reference implementation of the store semantics; the file backend wraps
// it and adds persistence.
//
// The mutex guards individual operations for memory safety only. Concurrent
// callers mutating the same singleton or collection race on a last-write-wins
// basis, which is the documented behavior of every backend.
type MemoryStore struct {
	mu  sync.Mutex
	log *logger.Logger

	users     map[int]domain.User
	blogPosts map[int]domain.BlogPost
	contacts  map[int]domain.Contact
	gallery   map[int]domain.GalleryItem

	hero        *domain.HeroData
	contactInfo *domain.ContactInfo
	adminCreds  *domain.AdminCredentials

	packages   []domain.WorkshopPackage
	curriculum []domain.WorkshopCurriculum
	products   []domain.Product

	counters map[string]int
}

func NewMemoryStore(baseLog *logger.Logger) *MemoryStore {
	return &MemoryStore{
		log:       baseLog.With("store", "memory"),
		users:     map[int]domain.User{},
		blogPosts: map[int]domain.BlogPost{},
		contacts:  map[int]domain.Contact{},
		gallery:   map[int]domain.GalleryItem{},
		counters:  map[string]int{},
	}
}

func (s *MemoryStore) nextID(family string) int {
	s.counters[family]++
	return s.counters[family]
}

// Users

func (s *MemoryStore) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			out := u
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreateUser(ctx context.Context, in domain.NewUser) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == in.Username {
			return nil, ErrConflict
		}
	}
	user := domain.User{
		ID:       s.nextID(familyUsers),
		Username: in.Username,
		Password: in.Password,
	}
	s.users[user.ID] = user
	return &user, nil
}

// Blog posts

func (s *MemoryStore) GetBlogPosts(ctx context.Context) ([]domain.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.BlogPost, 0, len(s.blogPosts))
	for _, p := range s.blogPosts {
		out = append(out, p)
	}
	sortBlogPosts(out)
	return out, nil
}

func (s *MemoryStore) GetBlogPostByID(ctx context.Context, id int) (*domain.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.blogPosts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &post, nil
}

func (s *MemoryStore) GetBlogPostBySlug(ctx context.Context, slug string) (*domain.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.blogPosts {
		if p.Slug == slug {
			out := p
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreateBlogPost(ctx context.Context, in domain.NewBlogPost) (*domain.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.blogPosts {
		if p.Slug == in.Slug {
			return nil, ErrConflict
		}
	}
	now := nowUTC()
	post := domain.BlogPost{
		ID:          s.nextID(familyBlogPosts),
		Title:       in.Title,
		Slug:        in.Slug,
		Excerpt:     in.Excerpt,
		Content:     in.Content,
		ImageURL:    in.ImageURL,
		Featured:    in.Featured,
		PublishedAt: now,
		UpdatedAt:   now,
	}
	s.blogPosts[post.ID] = post
	return &post, nil
}

func (s *MemoryStore) UpdateBlogPost(ctx context.Context, id int, patch domain.BlogPostPatch) (*domain.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.blogPosts[id]
	if !ok {
		return nil, ErrNotFound
	}
	if patch.Slug != nil {
		for otherID, p := range s.blogPosts {
			if otherID != id && p.Slug == *patch.Slug {
				return nil, ErrConflict
			}
		}
	}
	applyBlogPostPatch(&post, patch)
	post.UpdatedAt = nowUTC()
	s.blogPosts[id] = post
	return &post, nil
}

func (s *MemoryStore) DeleteBlogPost(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blogPosts[id]; !ok {
		return false, nil
	}
	delete(s.blogPosts, id)
	return true, nil
}

// Contacts

func (s *MemoryStore) GetContacts(ctx context.Context) ([]domain.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Contact, 0, len(s.contacts))
	for _, c := range s.contacts {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) CreateContact(ctx context.Context, in domain.NewContact) (*domain.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	contact := domain.Contact{
		ID:        s.nextID(familyContacts),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Subject:   in.Subject,
		Message:   in.Message,
		CreatedAt: nowUTC(),
	}
	s.contacts[contact.ID] = contact
	return &contact, nil
}

func (s *MemoryStore) DeleteContact(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contacts[id]; !ok {
		return false, nil
	}
	delete(s.contacts, id)
	return true, nil
}

// Singletons

func (s *MemoryStore) GetHeroData(ctx context.Context) (*domain.HeroData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hero == nil {
		hero := defaultHeroData(nowUTC())
		s.hero = &hero
	}
	out := *s.hero
	return &out, nil
}

func (s *MemoryStore) UpdateHeroData(ctx context.Context, patch domain.HeroDataPatch) (*domain.HeroData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hero == nil {
		hero := defaultHeroData(nowUTC())
		s.hero = &hero
	}
	applyHeroDataPatch(s.hero, patch)
	s.hero.UpdatedAt = nowUTC()
	out := *s.hero
	return &out, nil
}

func (s *MemoryStore) GetContactInfo(ctx context.Context) (*domain.ContactInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.contactInfo == nil {
		info := defaultContactInfo(nowUTC())
		s.contactInfo = &info
	}
	out := *s.contactInfo
	return &out, nil
}

func (s *MemoryStore) UpdateContactInfo(ctx context.Context, patch domain.ContactInfoPatch) (*domain.ContactInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.contactInfo == nil {
		info := defaultContactInfo(nowUTC())
		s.contactInfo = &info
	}
	applyContactInfoPatch(s.contactInfo, patch)
	s.contactInfo.UpdatedAt = nowUTC()
	out := *s.contactInfo
	return &out, nil
}

func (s *MemoryStore) GetAdminCredentials(ctx context.Context) (*domain.AdminCredentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.adminCreds == nil {
		creds, err := defaultAdminCredentials(nowUTC())
		if err != nil {
			return nil, err
		}
		s.adminCreds = &creds
	}
	out := *s.adminCreds
	return &out, nil
}

func (s *MemoryStore) UpdateAdminCredentials(ctx context.Context, patch domain.AdminCredentialsPatch) (*domain.AdminCredentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.adminCreds == nil {
		creds, err := defaultAdminCredentials(nowUTC())
		if err != nil {
			return nil, err
		}
		s.adminCreds = &creds
	}
	applyAdminCredentialsPatch(s.adminCreds, patch)
	s.adminCreds.UpdatedAt = nowUTC()
	out := *s.adminCreds
	return &out, nil
}

// Collection-replace families

func (s *MemoryStore) GetWorkshopPackages(ctx context.Context) ([]domain.WorkshopPackage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.WorkshopPackage, len(s.packages))
	copy(out, s.packages)
	return out, nil
}

func (s *MemoryStore) ReplaceWorkshopPackages(ctx context.Context, items []domain.WorkshopPackageInput) ([]domain.WorkshopPackage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
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
	s.packages = next
	out := make([]domain.WorkshopPackage, len(next))
	copy(out, next)
	return out, nil
}

func (s *MemoryStore) GetWorkshopCurriculum(ctx context.Context) ([]domain.WorkshopCurriculum, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.WorkshopCurriculum, len(s.curriculum))
	copy(out, s.curriculum)
	sortCurriculum(out)
	return out, nil
}

func (s *MemoryStore) ReplaceWorkshopCurriculum(ctx context.Context, items []domain.WorkshopCurriculumInput) ([]domain.WorkshopCurriculum, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
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
	s.curriculum = next
	out := make([]domain.WorkshopCurriculum, len(next))
	copy(out, next)
	sortCurriculum(out)
	return out, nil
}

func (s *MemoryStore) GetProducts(ctx context.Context) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func (s *MemoryStore) ReplaceProducts(ctx context.Context, items []domain.ProductInput) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
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
	s.products = next
	out := make([]domain.Product, len(next))
	copy(out, next)
	return out, nil
}

// Gallery

func (s *MemoryStore) GetGalleryItems(ctx context.Context) ([]domain.GalleryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.GalleryItem, 0, len(s.gallery))
	for _, item := range s.gallery {
		out = append(out, item)
	}
	sortGalleryItems(out)
	return out, nil
}

func (s *MemoryStore) GetHighlightedGalleryItems(ctx context.Context) ([]domain.GalleryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.GalleryItem, 0)
	for _, item := range s.gallery {
		if item.IsHighlighted {
			out = append(out, item)
		}
	}
	sortGalleryItems(out)
	return out, nil
}

func (s *MemoryStore) GetGalleryItemByID(ctx context.Context, id int) (*domain.GalleryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.gallery[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &item, nil
}

func (s *MemoryStore) CreateGalleryItem(ctx context.Context, in domain.NewGalleryItem) (*domain.GalleryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := nowUTC()
	item := domain.GalleryItem{
		ID:            s.nextID(familyGallery),
		Title:         in.Title,
		Description:   in.Description,
		ImageURL:      in.ImageURL,
		IsHighlighted: in.IsHighlighted,
		Category:      in.Category,
		Order:         in.Order,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.gallery[item.ID] = item
	return &item, nil
}

func (s *MemoryStore) UpdateGalleryItem(ctx context.Context, id int, patch domain.GalleryItemPatch) (*domain.GalleryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.gallery[id]
	if !ok {
		return nil, ErrNotFound
	}
	applyGalleryItemPatch(&item, patch)
	item.UpdatedAt = nowUTC()
	s.gallery[id] = item
	return &item, nil
}

func (s *MemoryStore) DeleteGalleryItem(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.gallery[id]; !ok {
		return false, nil
	}
	delete(s.gallery, id)
	return true, nil
}

// Snapshot

func (s *MemoryStore) ExportSnapshot(ctx context.Context) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exportLocked(), nil
}

func (s *MemoryStore) exportLocked() *Snapshot {
	snap := &Snapshot{
		Users:     pairsOf(s.users),
		BlogPosts: pairsOf(s.blogPosts),
		Contacts:  pairsOf(s.contacts),
		Gallery:   pairsOf(s.gallery),
		Packages:  append([]domain.WorkshopPackage{}, s.packages...),
		Curriculum: append([]domain.WorkshopCurriculum{},
			s.curriculum...),
		Products: append([]domain.Product{}, s.products...),
		Counters: map[string]int{},
	}
	for family, n := range s.counters {
		snap.Counters[family] = n
	}
	if s.hero != nil {
		hero := *s.hero
		snap.HeroData = &hero
	}
	if s.contactInfo != nil {
		info := *s.contactInfo
		snap.ContactInfo = &info
	}
	if s.adminCreds != nil {
		creds := *s.adminCreds
		snap.AdminCredentials = &creds
	}
	return snap
}

func (s *MemoryStore) ImportSnapshot(ctx context.Context, snap *Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.importLocked(snap)
	return nil
}

func (s *MemoryStore) importLocked(snap *Snapshot) {
	s.users = mapOf(snap.Users)
	s.blogPosts = mapOf(snap.BlogPosts)
	s.contacts = mapOf(snap.Contacts)
	s.gallery = mapOf(snap.Gallery)
	s.packages = append([]domain.WorkshopPackage{}, snap.Packages...)
	s.curriculum = append([]domain.WorkshopCurriculum{}, snap.Curriculum...)
	s.products = append([]domain.Product{}, snap.Products...)
	s.hero = nil
	if snap.HeroData != nil {
		hero := *snap.HeroData
		s.hero = &hero
	}
	s.contactInfo = nil
	if snap.ContactInfo != nil {
		info := *snap.ContactInfo
		s.contactInfo = &info
	}
	s.adminCreds = nil
	if snap.AdminCredentials != nil {
		creds := *snap.AdminCredentials
		s.adminCreds = &creds
	}
	s.counters = map[string]int{}
	for family, n := range snap.Counters {
		s.counters[family] = n
	}
	// A hand-edited or partial backup may omit counters. Floor each counter
	// at the highest id present so restored ids are never handed out again.
	floorCounter(s.counters, familyUsers, maxID(s.users))
	floorCounter(s.counters, familyBlogPosts, maxID(s.blogPosts))
	floorCounter(s.counters, familyContacts, maxID(s.contacts))
	floorCounter(s.counters, familyGallery, maxID(s.gallery))
}

func floorCounter(counters map[string]int, family string, floor int) {
	if counters[family] < floor {
		counters[family] = floor
	}
}

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) hasHeroData() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hero != nil
}

func (s *MemoryStore) hasContactInfo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contactInfo != nil
}

func (s *MemoryStore) hasAdminCredentials() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adminCreds != nil
}

func pairsOf[T any](records map[int]T) []Pair[T] {
	ids := make([]int, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]Pair[T], 0, len(ids))
	for _, id := range ids {
		out = append(out, Pair[T]{ID: id, Record: records[id]})
	}
	return out
}

func maxPairID[T any](pairs []Pair[T]) int {
	max := 0
	for _, p := range pairs {
		if p.ID > max {
			max = p.ID
		}
	}
	return max
}

func maxID[T any](records map[int]T) int {
	max := 0
	for id := range records {
		if id > max {
			max = id
		}
	}
	return max
}

func mapOf[T any](pairs []Pair[T]) map[int]T {
	out := make(map[int]T, len(pairs))
	for _, p := range pairs {
		out[p.ID] = p.Record
	}
	return out
}
