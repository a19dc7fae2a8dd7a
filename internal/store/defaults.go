package store

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/emberlane/emberlane-backend/internal/domain"
)

// Default singleton payloads, materialized and persisted on first read. The
// default admin password is meant to be rotated immediately via
// PUT /api/admin/credentials.
const (
	DefaultAdminEmail    = "admin@emberlane.studio"
	DefaultAdminPassword = "emberlane2024"
)

func defaultHeroData(now time.Time) domain.HeroData {
	return domain.HeroData{
		ID:          1,
		Title1:      "Hand-Poured Candles,",
		Title2:      "Made By You",
		Description: "Join our studio workshops and learn to blend, pour and finish your own soy candles — or browse the pieces we make in-house.",
		ImageURL:    nil,
		ImageAlt:    "Candle-making workshop table with jars, wicks and melted wax",
		ShowButtons: true,
		ShowStats:   true,
		StatsNumber: "500+",
		StatsLabel:  "workshop guests",
		UpdatedAt:   now,
	}
}

func defaultContactInfo(now time.Time) domain.ContactInfo {
	return domain.ContactInfo{
		ID:        1,
		Phone:     "+62 812-0000-0000",
		WhatsApp:  "+62 812-0000-0000",
		Email:     "hello@emberlane.studio",
		Website:   "https://emberlane.studio",
		Address:   "Emberlane Atelier, Jl. Kayu Aya No. 8, Seminyak, Bali",
		MapEmbed:  "",
		Instagram: "https://instagram.com/emberlane.studio",
		Facebook:  "https://facebook.com/emberlane.studio",
		TikTok:    "https://tiktok.com/@emberlane.studio",
		UpdatedAt: now,
	}
}

func defaultAdminCredentials(now time.Time) (domain.AdminCredentials, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return domain.AdminCredentials{}, err
	}
	return domain.AdminCredentials{
		ID:        1,
		Email:     DefaultAdminEmail,
		Password:  string(hash),
		UpdatedAt: now,
	}, nil
}
