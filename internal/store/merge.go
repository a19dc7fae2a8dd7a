package store

import "github.com/emberlane/emberlane-backend/internal/domain"

// Patch application is shared by every backend so partial-update merge
// semantics cannot drift: nil patch fields preserve the existing value, and
// creation timestamps are never touched.

func applyBlogPostPatch(post *domain.BlogPost, patch domain.BlogPostPatch) {
	if patch.Title != nil {
		post.Title = *patch.Title
	}
	if patch.Slug != nil {
		post.Slug = *patch.Slug
	}
	if patch.Excerpt != nil {
		post.Excerpt = *patch.Excerpt
	}
	if patch.Content != nil {
		post.Content = *patch.Content
	}
	if patch.ImageURL != nil {
		post.ImageURL = *patch.ImageURL
	}
	if patch.Featured != nil {
		post.Featured = *patch.Featured
	}
}

func applyHeroDataPatch(hero *domain.HeroData, patch domain.HeroDataPatch) {
	if patch.Title1 != nil {
		hero.Title1 = *patch.Title1
	}
	if patch.Title2 != nil {
		hero.Title2 = *patch.Title2
	}
	if patch.Description != nil {
		hero.Description = *patch.Description
	}
	if patch.ImageURL != nil {
		v := *patch.ImageURL
		hero.ImageURL = &v
	}
	if patch.ImageAlt != nil {
		hero.ImageAlt = *patch.ImageAlt
	}
	if patch.ShowButtons != nil {
		hero.ShowButtons = *patch.ShowButtons
	}
	if patch.ShowStats != nil {
		hero.ShowStats = *patch.ShowStats
	}
	if patch.StatsNumber != nil {
		hero.StatsNumber = *patch.StatsNumber
	}
	if patch.StatsLabel != nil {
		hero.StatsLabel = *patch.StatsLabel
	}
}

func applyContactInfoPatch(info *domain.ContactInfo, patch domain.ContactInfoPatch) {
	if patch.Phone != nil {
		info.Phone = *patch.Phone
	}
	if patch.WhatsApp != nil {
		info.WhatsApp = *patch.WhatsApp
	}
	if patch.Email != nil {
		info.Email = *patch.Email
	}
	if patch.Website != nil {
		info.Website = *patch.Website
	}
	if patch.Address != nil {
		info.Address = *patch.Address
	}
	if patch.MapEmbed != nil {
		info.MapEmbed = *patch.MapEmbed
	}
	if patch.Instagram != nil {
		info.Instagram = *patch.Instagram
	}
	if patch.Facebook != nil {
		info.Facebook = *patch.Facebook
	}
	if patch.TikTok != nil {
		info.TikTok = *patch.TikTok
	}
}

func applyAdminCredentialsPatch(creds *domain.AdminCredentials, patch domain.AdminCredentialsPatch) {
	if patch.Email != nil {
		creds.Email = *patch.Email
	}
	if patch.Password != nil {
		creds.Password = *patch.Password
	}
}

func applyGalleryItemPatch(item *domain.GalleryItem, patch domain.GalleryItemPatch) {
	if patch.Title != nil {
		item.Title = *patch.Title
	}
	if patch.Description != nil {
		v := *patch.Description
		item.Description = &v
	}
	if patch.ImageURL != nil {
		item.ImageURL = *patch.ImageURL
	}
	if patch.IsHighlighted != nil {
		item.IsHighlighted = *patch.IsHighlighted
	}
	if patch.Category != nil {
		item.Category = *patch.Category
	}
	if patch.Order != nil {
		item.Order = *patch.Order
	}
}
