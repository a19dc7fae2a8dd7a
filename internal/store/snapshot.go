package store

import (
	"encoding/json"
	"fmt"

	"github.com/emberlane/emberlane-backend/internal/domain"
)

// Pair is an [id, record] tuple. Point-addressable families are persisted as
// arrays of these pairs; the JSON form is a two-element array.
type Pair[T any] struct {
	ID     int
	Record T
}

func (p Pair[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{p.ID, p.Record})
}

func (p *Pair[T]) UnmarshalJSON(data []byte) error {
	var raw [2]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode id/record pair: %w", err)
	}
	if err := json.Unmarshal(raw[0], &p.ID); err != nil {
		return fmt.Errorf("decode pair id: %w", err)
	}
	if err := json.Unmarshal(raw[1], &p.Record); err != nil {
		return fmt.Errorf("decode pair record: %w", err)
	}
	return nil
}

// Snapshot is the persisted-state document: the file backend writes exactly
// this shape after every mutation, and backup/restore reuses it on every
// backend. Writing and re-reading a snapshot reproduces an equivalent store,
// id counters included.
type Snapshot struct {
	Users            []Pair[domain.User]         `json:"users"`
	BlogPosts        []Pair[domain.BlogPost]     `json:"blogPosts"`
	Contacts         []Pair[domain.Contact]      `json:"contacts"`
	Gallery          []Pair[domain.GalleryItem]  `json:"gallery"`
	HeroData         *domain.HeroData            `json:"heroData"`
	ContactInfo      *domain.ContactInfo         `json:"contactInfo"`
	AdminCredentials *domain.AdminCredentials    `json:"adminCredentials"`
	Packages         []domain.WorkshopPackage    `json:"workshopPackages"`
	Curriculum       []domain.WorkshopCurriculum `json:"workshopCurriculum"`
	Products         []domain.Product            `json:"products"`
	Counters         map[string]int              `json:"counters"`
}
