package domain

import "time"

// Article is an advertorial: an editorial-styled marketing article that
// drives traffic to a product CTA URL.
type Article struct {
	ID           string    `json:"id"`
	Slug         string    `json:"slug"`
	Title        string    `json:"title"`
	Subtitle     string    `json:"subtitle,omitempty"`
	Author       string    `json:"author,omitempty"`
	HeroImageURL string    `json:"heroImageUrl,omitempty"`
	BodyHTML     string    `json:"bodyHtml"`
	CtaText      string    `json:"ctaText,omitempty"`
	CtaURL       string    `json:"ctaUrl,omitempty"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PixelProvider identifies which ad platform a tracking pixel belongs to.
type PixelProvider string

const (
	PixelFacebook PixelProvider = "facebook"
	PixelTikTok   PixelProvider = "tiktok"
	PixelGoogle   PixelProvider = "google"
)

// Pixel is a tracking pixel configured by the operator and injected into
// public pages.
type Pixel struct {
	ID       string        `json:"id"`
	Provider PixelProvider `json:"provider"`
	PixelID  string        `json:"pixelId"`
	Enabled  bool          `json:"enabled"`
}

// CTAUrl is a named destination URL for call-to-action buttons.
type CTAUrl struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	URL       string `json:"url"`
	IsDefault bool   `json:"isDefault"`
}

// Domain is a hostname content is served from.
type Domain struct {
	ID        string `json:"id"`
	Hostname  string `json:"hostname"`
	Verified  bool   `json:"verified"`
	IsDefault bool   `json:"isDefault"`
}
